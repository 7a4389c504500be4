package response

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"

	"github.com/GregMSThompson/backup-dashboard/internal/errs"
	"github.com/GregMSThompson/backup-dashboard/pkg/logger"
)

func TestHandleError_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", errs.NewNotFoundError("widget \"x\" is not available"), http.StatusNotFound, "not_found"},
		{"duplicate", errs.NewAlreadyExistsError("Total Jobs is already on the dashboard"), http.StatusConflict, "already_exists"},
		{"validation", errs.NewValidationError("bad"), http.StatusBadRequest, "invalid_input"},
		{"database", errs.NewDatabaseError("write", "failed", errors.New("disk")), http.StatusInternalServerError, "internal_error"},
		{"transient upstream", errs.NewExternalServiceError("backup-api", true, errors.New("open")), http.StatusServiceUnavailable, "service_unavailable"},
		{"upstream", errs.NewExternalServiceError("backup-api", false, errors.New("bad json")), http.StatusBadGateway, "service_unavailable"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}
	h := New(slog.New(logger.NewTestHandler(slog.LevelInfo)))

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			h.HandleError(rr, req, tc.err)

			if rr.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rr.Code)
			}
			var body ErrorResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if body.Code != tc.code {
				t.Fatalf("expected code %q, got %q", tc.code, body.Code)
			}
		})
	}
}

func TestWriteSuccess_Envelope(t *testing.T) {
	h := New(slog.New(logger.NewTestHandler(slog.LevelInfo)))
	rr := httptest.NewRecorder()
	h.WriteSuccess(rr, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusCreated, map[string]int{"n": 1})

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rr.Code)
	}
	if rr.Header().Get("Content-Type") != "application/json" {
		t.Fatal("expected json content type")
	}
	var env struct {
		Success bool           `json:"success"`
		Data    map[string]int `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !env.Success || env.Data["n"] != 1 {
		t.Fatalf("unexpected envelope %+v", env)
	}
}
