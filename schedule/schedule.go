// Package schedule holds the editable weekly venue schedule: the
// snapshot/current row pair the diff engine reconciles, the week window
// math, and the plaintext announcement generator. Everything here is pure;
// persistence and transport live in the service layer.
package schedule

import (
	"strings"
	"time"
)

// Show type buckets. Anything unrecognized renders in the gsp bucket,
// matching how the consoles badge unknown types.
const (
	ShowTypeGSP     = "gsp"
	ShowTypeMusingo = "musingo"
	ShowTypePrivate = "private"
)

// Fields are the tracked, editable schedule fields of a venue. A row is
// dirty when any of them differs from its load-time snapshot.
type Fields struct {
	DefaultDay    string `json:"default_day"`
	DefaultTime   string `json:"default_time"`
	DefaultHostID *int   `json:"default_host_id"`
	IsActive      bool   `json:"is_active"`
	Cancelled     bool   `json:"cancelled"`
	CancelReason  string `json:"cancel_reason"`
}

// Row is one editable schedule entry: identity, current values, and the
// snapshot captured when the row was loaded.
type Row struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	ShowType string `json:"show_type"`
	HostName string `json:"host_name,omitempty"`
	Fields
	Original Fields `json:"original"`
}

var dayNames = map[string]string{
	"sun": "Sunday", "sunday": "Sunday",
	"mon": "Monday", "monday": "Monday",
	"tue": "Tuesday", "tues": "Tuesday", "tuesday": "Tuesday",
	"wed": "Wednesday", "weds": "Wednesday", "wednesday": "Wednesday",
	"thu": "Thursday", "thur": "Thursday", "thurs": "Thursday", "thursday": "Thursday",
	"fri": "Friday", "friday": "Friday",
	"sat": "Saturday", "saturday": "Saturday",
}

// NormalizeDay maps day abbreviations ("tues", "Thurs") to full weekday
// names. Unrecognized input is returned unchanged.
func NormalizeDay(s string) string {
	if s == "" {
		return ""
	}
	if full, ok := dayNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return full
	}
	return s
}

// WeekOf returns the Monday of ref's week and the Saturday five days later.
// A Sunday reference belongs to the week that started six days earlier.
func WeekOf(ref time.Time) (monday, saturday time.Time) {
	ref = time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	offset := int(ref.Weekday()) - int(time.Monday)
	if ref.Weekday() == time.Sunday {
		offset = 6
	}
	monday = ref.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 5)
}
