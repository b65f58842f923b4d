package upload

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	RegisterUploadRoutes(e.Group("/api"), nil)
	return e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestUploadRunRequiresFile(t *testing.T) {
	e := newTestServer(t)
	rec := doJSON(e, http.MethodPost, "/api/upload/run", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestUploadRunRejectsUnknownMode(t *testing.T) {
	e := newTestServer(t)
	rec := doJSON(e, http.MethodPost, "/api/upload/run", `{"file":"x.csv","mode":"overwrite"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestUploadStatusIdle(t *testing.T) {
	e := newTestServer(t)
	rec := doJSON(e, http.MethodGet, "/api/upload/status", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"running":false`) {
		t.Fatalf("expected idle status, got %s", rec.Body.String())
	}
}

func TestUploadStopWithoutRun(t *testing.T) {
	e := newTestServer(t)
	rec := doJSON(e, http.MethodPost, "/api/upload/stop", "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestUploadRunsWithoutJournal(t *testing.T) {
	e := newTestServer(t)
	rec := doJSON(e, http.MethodGet, "/api/upload/runs", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}
