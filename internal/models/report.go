package models

// ProjectStatus buckets a project by its latest reported progress.
type ProjectStatus string

const (
	StatusNotStarted ProjectStatus = "NOT_STARTED"
	StatusInProgress ProjectStatus = "IN_PROGRESS"
	StatusCompleted  ProjectStatus = "COMPLETED"
)

// Report is one submitted status update for a project within a date window.
// ProjectName and UnitID are denormalized copies of the parent project's
// fields at write time; the store keeps them in sync when a project is
// renamed or reassigned. Timestamp is epoch millis at submission.
type Report struct {
	ID              string `json:"id" db:"id"`
	UnitID          string `json:"unitId" db:"unit_id"`
	ProjectID       string `json:"projectId" db:"project_id"`
	ProjectName     string `json:"projectName" db:"project_name"`
	ReportDateStart string `json:"reportDateStart" db:"report_date_start"`
	ReportDateEnd   string `json:"reportDateEnd" db:"report_date_end"`
	PastPerformance string `json:"pastPerformance" db:"past_performance"`
	NextPlan        string `json:"nextPlan" db:"next_plan"`
	Progress        int    `json:"progress" db:"progress"`
	Obstacles       string `json:"obstacles" db:"obstacles"`
	Remarks         string `json:"remarks" db:"remarks"`
	FileLink        string `json:"fileLink" db:"file_link"`
	Timestamp       int64  `json:"timestamp" db:"submitted_at"`
}
