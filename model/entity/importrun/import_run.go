package importrun

import (
	"time"

	"gorm.io/datatypes"
)

// ImportRun represents one upload run in the local journal (import_run table)
type ImportRun struct {
	RunID      uint           `gorm:"column:run_id;primaryKey;autoIncrement" json:"run_id,omitempty"`
	SourceFile string         `gorm:"column:source_file;type:varchar(512);not null" json:"source_file"`
	Mode       string         `gorm:"column:mode;type:varchar(32);not null" json:"mode"`
	Success    bool           `gorm:"column:success;not null;default:false" json:"success"`
	Stopped    bool           `gorm:"column:stopped;not null;default:false" json:"stopped"`
	Counters   datatypes.JSON `gorm:"column:counters" json:"counters"`
	Message    string         `gorm:"column:message;type:text" json:"message"`
	StartedAt  time.Time      `gorm:"column:started_at;not null" json:"started_at"`
	FinishedAt time.Time      `gorm:"column:finished_at" json:"finished_at"`
}

func (ImportRun) TableName() string {
	return "import_run"
}

// Counters is the JSON shape stored in the counters column.
type Counters struct {
	Processed int `json:"processed"`
	New       int `json:"new"`
	Updated   int `json:"updated"`
	Skipped   int `json:"skipped"`
	Errors    int `json:"errors"`
	Total     int `json:"total"`
}
