package entity

import "time"

// Report statuses move forward only; there is no delete path.
const (
	ReportStatusReported   = "reported"
	ReportStatusInProgress = "in_progress"
	ReportStatusResolved   = "resolved"
)

// Report is a citizen-submitted waste incident with photo attachments.
type Report struct {
	ID             int64
	Description    string
	WasteType      string
	PhotoURLs      []string
	Status         string
	Neighborhood   string
	Address        string
	DirectionNotes string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
