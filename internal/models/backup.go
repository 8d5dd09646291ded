package models

// BackupVersion tags exported snapshots.
const BackupVersion = "3.0 (API)"

// BackupFile is the full-store snapshot exchanged by backup export/import.
// Reports, Projects and Units are mandatory on import; Groups is optional
// for snapshots taken before grouping existed.
type BackupFile struct {
	Reports   []Report       `json:"reports"`
	Projects  []Project      `json:"projects"`
	Units     []Unit         `json:"units"`
	Groups    []ProjectGroup `json:"groups,omitempty"`
	Timestamp int64          `json:"timestamp"`
	Version   string         `json:"version"`
}
