package models

// Weekly report row states, ordered worst to best. A venue's state is the
// best state reached by any of its events within the report week.
const (
	ReportStateNoSubmission = "no_submission"
	ReportStateUnvalidated  = "unvalidated"
	ReportStateValidated    = "validated"
	ReportStatePosted       = "posted"
)

type WeeklyReport struct {
	WeekStart string            `json:"week_start"`
	WeekEnd   string            `json:"week_end"`
	Rows      []WeeklyReportRow `json:"rows"`
}

type WeeklyReportRow struct {
	VenueID    int                 `json:"venue_id"`
	Venue      string              `json:"venue"`
	DefaultDay string              `json:"default_day"`
	State      string              `json:"state"`
	Events     []WeeklyReportEvent `json:"events"`
}

type WeeklyReportEvent struct {
	EventID     int    `json:"event_id"`
	EventDate   string `json:"event_date"`
	Status      string `json:"status"`
	IsValidated bool   `json:"is_validated"`
}
