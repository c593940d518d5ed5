package models

import "time"

// Event statuses.
const (
	EventStatusUnposted = "unposted"
	EventStatusPosted   = "posted"
)

type Event struct {
	ID           int       `json:"id" db:"id"`
	HostID       *int      `json:"host_id" db:"host_id"`
	VenueID      int       `json:"venue_id" db:"venue_id"`
	EventDate    time.Time `json:"event_date" db:"event_date"`
	ShowType     string    `json:"show_type" db:"show_type"`
	Status       string    `json:"status" db:"status"`
	IsValidated  bool      `json:"is_validated" db:"is_validated"`
	Highlights   string    `json:"highlights" db:"highlights"`
	TotalPlayers *int      `json:"total_players" db:"total_players"`
	TotalTeams   *int      `json:"total_teams" db:"total_teams"`
	PDFURL       *string   `json:"pdf_url,omitempty" db:"pdf_url"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	Host   *Host    `json:"host,omitempty" db:"-"`
	Venue  *Venue   `json:"venue,omitempty" db:"-"`
	Photos []string `json:"photos,omitempty" db:"-"`
}

// EventFilter narrows admin event listings. Query matches host or venue
// name; zero values mean "no constraint".
type EventFilter struct {
	Query    string
	ShowType string
	Status   string
	Start    *time.Time
	End      *time.Time
	Limit    int
}
