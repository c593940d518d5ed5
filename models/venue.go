package models

// Venue show types.
const (
	ShowTypeGSP     = "gsp"
	ShowTypeMusingo = "musingo"
	ShowTypePrivate = "private"
)

type Venue struct {
	ID            int    `json:"id" db:"id"`
	Name          string `json:"name" db:"name"`
	Slug          string `json:"slug" db:"slug"`
	DefaultDay    string `json:"default_day" db:"default_day"`
	DefaultTime   string `json:"default_time" db:"default_time"`
	ShowType      string `json:"show_type" db:"show_type"`
	DefaultHostID *int   `json:"default_host_id" db:"default_host_id"`
	IsActive      bool   `json:"is_active" db:"is_active"`
	Cancelled     bool   `json:"cancelled" db:"cancelled"`
	CancelReason  string `json:"cancel_reason" db:"cancel_reason"`

	// AccessKey unlocks the venue-owner portal; omitted from public payloads.
	AccessKey *string `json:"access_key,omitempty" db:"access_key"`

	DefaultHost *Host `json:"default_host,omitempty" db:"-"`
}
