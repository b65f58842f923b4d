package upload

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"woocommerce.GO/api"
	"woocommerce.GO/config"
	"woocommerce.GO/csvadapter"
	runRepo "woocommerce.GO/model/repository/importrun"
	"woocommerce.GO/service/runner"
	uploadService "woocommerce.GO/service/upload"
)

func init() {
	api.RegisterModule(RegisterUploadRoutes)
	api.RegisterGET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
}

// state tracks the single in-flight run. The orchestrator is sequential by
// design, so the API rejects a second run while one is active.
var state struct {
	mu        sync.Mutex
	running   bool
	file      string
	mode      uploadService.Mode
	startedAt time.Time
	processed int
	total     int
	last      *uploadService.Result
	uploader  *uploadService.Uploader
}

func RegisterUploadRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/upload")

	// POST /api/upload/run – start an upload in the background
	g.POST("/run", func(c echo.Context) error {
		var body struct {
			File string `json:"file"`
			Mode string `json:"mode"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if body.File == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "file is required"})
		}
		mode := uploadService.SkipExisting
		switch body.Mode {
		case "", "skip-existing":
		case "update-existing":
			mode = uploadService.UpdateExisting
		default:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "mode must be skip-existing or update-existing"})
		}

		mapping, err := config.LoadCSVMapping()
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		rows, err := csvadapter.LoadFile(body.File, mapping)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}

		state.mu.Lock()
		if state.running {
			state.mu.Unlock()
			return c.JSON(http.StatusConflict, echo.Map{"error": "an upload is already running"})
		}

		u, closer, err := runner.Build()
		if err != nil {
			state.mu.Unlock()
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		u.Progress = func(processed, total int) {
			state.mu.Lock()
			state.processed = processed
			state.total = total
			state.mu.Unlock()
		}

		state.running = true
		state.file = body.File
		state.mode = mode
		state.startedAt = time.Now()
		state.processed = 0
		state.total = len(rows)
		state.uploader = u
		state.mu.Unlock()

		go func() {
			defer closer()
			res := u.Run(context.Background(), rows, mode)

			state.mu.Lock()
			state.running = false
			state.last = &res
			state.uploader = nil
			started := state.startedAt
			state.mu.Unlock()

			if db != nil {
				if repo, err := runRepo.NewImportRunRepository(db); err == nil {
					repo.Record(body.File, mode, started, res)
				}
			}
		}()

		return c.JSON(http.StatusAccepted, echo.Map{
			"status": "started",
			"file":   body.File,
			"mode":   mode.String(),
			"total":  len(rows),
		})
	})

	// GET /api/upload/status – progress of the active run / last result
	g.GET("/status", func(c echo.Context) error {
		state.mu.Lock()
		defer state.mu.Unlock()

		resp := echo.Map{
			"running":   state.running,
			"processed": state.processed,
			"total":     state.total,
		}
		if state.running {
			resp["file"] = state.file
			resp["mode"] = state.mode.String()
			resp["started_at"] = state.startedAt
		}
		if state.last != nil {
			resp["last_result"] = state.last
		}
		return c.JSON(http.StatusOK, resp)
	})

	// POST /api/upload/stop – cooperative stop after the current batch
	g.POST("/stop", func(c echo.Context) error {
		state.mu.Lock()
		defer state.mu.Unlock()
		if !state.running || state.uploader == nil {
			return c.JSON(http.StatusConflict, echo.Map{"error": "no upload is running"})
		}
		state.uploader.RequestStop()
		return c.JSON(http.StatusAccepted, echo.Map{"status": "stopping"})
	})

	// GET /api/upload/runs – journal of past runs
	g.GET("/runs", func(c echo.Context) error {
		if db == nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "journal not available"})
		}
		repo, err := runRepo.NewImportRunRepository(db)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		limit := 20
		if v := c.QueryParam("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				limit = n
			}
		}
		runs, err := repo.Latest(limit)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"runs": runs})
	})
}
