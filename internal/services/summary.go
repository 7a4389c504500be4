package services

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/GregMSThompson/backup-dashboard/internal/dto"
	"github.com/GregMSThompson/backup-dashboard/pkg/logger"
)

const (
	sessionsLimit = 2000
	malwareLimit  = 10
)

// backupAPI is the slice of the backup API adapter used for summaries.
type backupAPI interface {
	GetJSON(ctx context.Context, authorization, path string, query url.Values, out any) error
}

type summaryService struct {
	api backupAPI
	now func() time.Time
}

func NewSummaryService(api backupAPI) *summaryService {
	return &summaryService{api: api, now: time.Now}
}

// GetSummary fetches everything the VBR stat cards need in parallel and
// reduces it. sessionDays bounds the session window (7 or 30 in the UI).
func (s *summaryService) GetSummary(ctx context.Context, authorization string, sessionDays int) (dto.DashboardSummary, error) {
	var (
		jobs     dto.PagedResult[dto.BackupJob]
		sessions dto.PagedResult[dto.Session]
		license  dto.License
		malware  dto.PagedResult[dto.MalwareEvent]
		security dto.PagedResult[dto.SecurityBestPractice]
		server   *dto.ServerInfo
	)
	if sessionDays <= 0 {
		sessionDays = 7
	}
	createdAfter := s.now().AddDate(0, 0, -sessionDays).UTC().Format(time.RFC3339)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var info dto.ServerInfo
		if err := s.api.GetJSON(gctx, authorization, "serverInfo", nil, &info); err != nil {
			// Best effort: the server card renders "Unknown" without it.
			logger.FromContext(ctx).Warn("server info unavailable", "error", err)
			return nil
		}
		server = &info
		return nil
	})
	g.Go(func() error {
		return s.api.GetJSON(gctx, authorization, "jobs", nil, &jobs)
	})
	g.Go(func() error {
		return s.api.GetJSON(gctx, authorization, "sessions", url.Values{
			"limit":              {strconv.Itoa(sessionsLimit)},
			"orderColumn":        {"CreationTime"},
			"orderAsc":           {"false"},
			"createdAfterFilter": {createdAfter},
		}, &sessions)
	})
	g.Go(func() error {
		return s.api.GetJSON(gctx, authorization, "license", nil, &license)
	})
	g.Go(func() error {
		return s.api.GetJSON(gctx, authorization, "malwareDetection/events", url.Values{
			"limit": {strconv.Itoa(malwareLimit)},
		}, &malware)
	})
	g.Go(func() error {
		return s.api.GetJSON(gctx, authorization, "securityAnalyzer/bestPractices", nil, &security)
	})
	if err := g.Wait(); err != nil {
		return dto.DashboardSummary{}, err
	}

	return dto.DashboardSummary{
		Server:   server,
		Jobs:     SummarizeJobs(jobs.Data),
		Sessions: SummarizeSessions(sessions.Data),
		License:  SummarizeLicense(license),
		Malware:  SummarizeMalware(malware.Data),
		Security: SummarizeSecurity(security.Data),
	}, nil
}

// --- Reducers ---

func SummarizeJobs(jobs []dto.BackupJob) dto.JobsSummary {
	out := dto.JobsSummary{Total: len(jobs)}
	for _, j := range jobs {
		if j.IsRunning || j.Status == "Running" {
			out.Active++
		}
	}
	return out
}

// SummarizeLicense prefers the instance summary block and falls back to
// instances plus sockets for older servers.
func SummarizeLicense(l dto.License) dto.LicenseSummary {
	out := dto.LicenseSummary{Type: l.Type}
	if out.Type == "" {
		out.Type = "Unknown"
	}
	if l.InstanceLicenseSummary != nil {
		out.Used = l.InstanceLicenseSummary.UsedInstancesNumber
		out.Total = l.InstanceLicenseSummary.LicensedInstancesNumber
	} else {
		out.Used = l.UsedInstances + l.UsedSockets
		out.Total = l.LicensedInstances + l.LicensedSockets
	}
	out.Percent = percent(out.Used, out.Total)
	return out
}

func SummarizeMalware(events []dto.MalwareEvent) dto.MalwareSummary {
	out := dto.MalwareSummary{Total: len(events)}
	for _, e := range events {
		if e.Status != "Resolved" {
			out.Unresolved++
		}
	}
	return out
}

func SummarizeSecurity(items []dto.SecurityBestPractice) dto.SecuritySummary {
	out := dto.SecuritySummary{Total: len(items), Violations: []dto.SecurityBestPractice{}}
	for _, it := range items {
		if strings.EqualFold(it.Status, "ok") {
			out.Passed++
			continue
		}
		out.Violations = append(out.Violations, it)
	}
	out.Percent = percent(float64(out.Passed), float64(out.Total))
	return out
}

func SummarizeSessions(sessions []dto.Session) dto.SessionsSummary {
	out := dto.SessionsSummary{Total: len(sessions)}
	for _, s := range sessions {
		switch s.Result.Result {
		case "Success":
			out.Success++
		case "Warning":
			out.Warning++
		case "Failed":
			out.Failed++
		default:
			out.Other++
		}
	}
	return out
}

func percent(part, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return part / total * 100
}
