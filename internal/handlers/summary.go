package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/GregMSThompson/backup-dashboard/internal/dto"
	"github.com/GregMSThompson/backup-dashboard/internal/errs"
	"github.com/GregMSThompson/backup-dashboard/internal/response"
)

const defaultSessionDays = 7

type summaryService interface {
	GetSummary(ctx context.Context, authorization string, sessionDays int) (dto.DashboardSummary, error)
}

type summaryHandlers struct {
	ResponseHandler response.ResponseHandler
	SummarySvc      summaryService
}

func NewSummaryHandlers(deps *Deps) *summaryHandlers {
	return &summaryHandlers{
		ResponseHandler: deps.ResponseHandler,
		SummarySvc:      deps.SummarySvc,
	}
}

// GetSummary serves the VBR overview. ?days bounds the session window.
func (h *summaryHandlers) GetSummary(w http.ResponseWriter, r *http.Request) {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		h.ResponseHandler.WriteError(w, r, http.StatusUnauthorized, "unauthorized", "Authorization header required")
		return
	}

	days := defaultSessionDays
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 365 {
			h.ResponseHandler.HandleError(w, r, errs.NewValidationError("days must be between 1 and 365"))
			return
		}
		days = n
	}

	summary, err := h.SummarySvc.GetSummary(r.Context(), auth, days)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, summary)
}
