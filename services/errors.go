package services

import "errors"

// Shared errors used across services and the HTTP mapping layer.
var (
	// Validation and business-rule errors
	ErrNameRequired        = errors.New("name is required")
	ErrInvalidDay          = errors.New("invalid day of week")
	ErrInvalidShowType     = errors.New("invalid show type")
	ErrInvalidEventStatus  = errors.New("invalid event status")
	ErrInvalidDate         = errors.New("invalid date")
	ErrInvalidWeekEnding   = errors.New("invalid week ending date")
	ErrNoValidRows         = errors.New("no valid rows found")
	ErrNothingToSave       = errors.New("nothing to save")
	ErrNotifierDisabled    = errors.New("announcement channel is not configured")
	ErrUploadEmpty         = errors.New("uploaded file is empty")
	ErrUploadTypeInvalid   = errors.New("unsupported upload content type")
	ErrPhotoURLRequired    = errors.New("photo url is required")
	ErrVenueRequired       = errors.New("venue is required")
	ErrSuggestNamesMissing = errors.New("at least one team name is required")

	// Conflict errors
	ErrHostNameConflict  = errors.New("host name is already in use")
	ErrVenueSlugConflict = errors.New("venue name is already in use")
	ErrTeamNameConflict  = errors.New("tournament team name is already in use")
	ErrEventDateConflict = errors.New("an event already exists for this venue and date")

	// Referential errors
	ErrHostInUse  = errors.New("host is referenced by venues or events")
	ErrVenueInUse = errors.New("venue is referenced by events or teams")

	// Authentication
	ErrAuthInvalidCredentials = errors.New("invalid email or password")

	// Entity-specific not-found
	ErrHostNotFound  = errors.New("host not found")
	ErrVenueNotFound = errors.New("venue not found")
	ErrTeamNotFound  = errors.New("tournament team not found")
	ErrEventNotFound = errors.New("event not found")
	ErrPhotoNotFound = errors.New("event photo not found")
)
