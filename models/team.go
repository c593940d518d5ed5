package models

// TournamentTeam is a league team competing for seasonal points.
type TournamentTeam struct {
	ID           int    `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	HomeVenueID  *int   `json:"home_venue_id" db:"home_venue_id"`
	CaptainName  string `json:"captain_name" db:"captain_name"`
	CaptainEmail string `json:"captain_email" db:"captain_email"`
	CaptainPhone string `json:"captain_phone" db:"captain_phone"`
	PlayerCount  *int   `json:"player_count" db:"player_count"`

	HomeVenue *string `json:"home_venue,omitempty" db:"-"`
}

// WeeklyScore is one week-ending entry of a team's score sheet at a venue.
// Points and player count are nil for weeks with no recorded score.
type WeeklyScore struct {
	WeekEnding string `json:"week_ending" db:"week_ending"`
	Points     *int   `json:"points" db:"points"`
	NumPlayers *int   `json:"num_players" db:"num_players"`
}
