package handlers

import (
	"log/slog"

	"github.com/GregMSThompson/backup-dashboard/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	DashboardSvc    dashboardService
	SummarySvc      summaryService
	Relay           relayClient
}
