package importrun

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"

	runEntity "woocommerce.GO/model/entity/importrun"
	"woocommerce.GO/service/upload"
)

type ImportRunRepository struct {
	db *gorm.DB
}

func NewImportRunRepository(db *gorm.DB) (*ImportRunRepository, error) {
	if err := db.AutoMigrate(&runEntity.ImportRun{}); err != nil {
		return nil, err
	}
	return &ImportRunRepository{db: db}, nil
}

// Record stores one finished run.
func (r *ImportRunRepository) Record(sourceFile string, mode upload.Mode, startedAt time.Time, res upload.Result) (*runEntity.ImportRun, error) {
	counters, err := json.Marshal(runEntity.Counters{
		Processed: res.Processed,
		New:       res.New,
		Updated:   res.Updated,
		Skipped:   res.Skipped,
		Errors:    res.Errors,
		Total:     res.Total,
	})
	if err != nil {
		return nil, err
	}

	run := runEntity.ImportRun{
		SourceFile: sourceFile,
		Mode:       mode.String(),
		Success:    res.Success,
		Stopped:    res.Stopped,
		Counters:   counters,
		Message:    res.Message,
		StartedAt:  startedAt,
		FinishedAt: time.Now(),
	}
	if err := r.db.Create(&run).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

// Latest returns the most recent runs, newest first.
func (r *ImportRunRepository) Latest(limit int) ([]runEntity.ImportRun, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []runEntity.ImportRun
	err := r.db.Order("run_id DESC").Limit(limit).Find(&runs).Error
	return runs, err
}

// GetByID returns one run.
func (r *ImportRunRepository) GetByID(id uint) (*runEntity.ImportRun, error) {
	var run runEntity.ImportRun
	if err := r.db.First(&run, "run_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &run, nil
}
