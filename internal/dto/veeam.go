package dto

// --- Backup API payloads (subset of fields the dashboard reads) ---

type BackupJob struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Status    string `json:"status"`
	IsRunning bool   `json:"isRunning"`
}

type SessionResult struct {
	Result  string `json:"result"`
	Message string `json:"message"`
}

type Session struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	SessionType  string        `json:"sessionType"`
	State        string        `json:"state"`
	CreationTime string        `json:"creationTime"`
	EndTime      string        `json:"endTime"`
	Result       SessionResult `json:"result"`
}

type InstanceLicenseSummary struct {
	LicensedInstancesNumber float64 `json:"licensedInstancesNumber"`
	UsedInstancesNumber     float64 `json:"usedInstancesNumber"`
}

// ServerInfo is the backup server's identity block.
type ServerInfo struct {
	VbrID          string `json:"vbrId"`
	Name           string `json:"name"`
	BuildVersion   string `json:"buildVersion"`
	Platform       string `json:"platform"`
	DatabaseVendor string `json:"databaseVendor,omitempty"`
}

type License struct {
	Type                   string                  `json:"type"`
	Status                 string                  `json:"status"`
	LicensedInstances      float64                 `json:"licensedInstances"`
	UsedInstances          float64                 `json:"usedInstances"`
	LicensedSockets        float64                 `json:"licensedSockets"`
	UsedSockets            float64                 `json:"usedSockets"`
	InstanceLicenseSummary *InstanceLicenseSummary `json:"instanceLicenseSummary,omitempty"`
}

type MalwareEvent struct {
	ID            string `json:"id"`
	Type          string `json:"type"`
	Status        string `json:"status"`
	Severity      string `json:"severity"`
	DetectionTime string `json:"detectionTimeUtc"`
	MachineName   string `json:"machineName"`
}

type SecurityBestPractice struct {
	ID           string `json:"id"`
	BestPractice string `json:"bestPractice"`
	Status       string `json:"status"`
	Note         string `json:"note"`
}

// PagedResult is the {"data": [...]} envelope list endpoints return.
type PagedResult[T any] struct {
	Data []T `json:"data"`
}

// --- Summaries ---

type JobsSummary struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

type LicenseSummary struct {
	Type    string  `json:"type"`
	Used    float64 `json:"used"`
	Total   float64 `json:"total"`
	Percent float64 `json:"percent"`
}

type MalwareSummary struct {
	Total      int `json:"total"`
	Unresolved int `json:"unresolved"`
}

type SecuritySummary struct {
	Passed     int                    `json:"passed"`
	Total      int                    `json:"total"`
	Percent    float64                `json:"percent"`
	Violations []SecurityBestPractice `json:"violations"`
}

type SessionsSummary struct {
	Total   int `json:"total"`
	Success int `json:"success"`
	Warning int `json:"warning"`
	Failed  int `json:"failed"`
	Other   int `json:"other"`
}

// DashboardSummary feeds the VBR stat cards. Server is nil when the server
// info could not be fetched.
type DashboardSummary struct {
	Server   *ServerInfo     `json:"server"`
	Jobs     JobsSummary     `json:"jobs"`
	Sessions SessionsSummary `json:"sessions"`
	License  LicenseSummary  `json:"license"`
	Malware  MalwareSummary  `json:"malware"`
	Security SecuritySummary `json:"security"`
}
