package services

import (
	"regexp"
	"strings"
)

const (
	defaultSearchLimit = 25
	maxSearchLimit     = 200
)

func clampSearchLimit(limit int) int {
	if limit <= 0 {
		return defaultSearchLimit
	}
	if limit > maxSearchLimit {
		return maxSearchLimit
	}
	return limit
}

var slugStripPattern = regexp.MustCompile(`[^a-z0-9]+`)

// slugify reduces a venue name to a url-safe identifier.
func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugStripPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

var validDays = map[string]bool{
	"":          true,
	"monday":    true,
	"tuesday":   true,
	"wednesday": true,
	"thursday":  true,
	"friday":    true,
	"saturday":  true,
	"sunday":    true,
}

func isValidDay(day string) bool {
	return validDays[strings.ToLower(strings.TrimSpace(day))]
}

func isValidShowType(showType string) bool {
	switch strings.ToLower(showType) {
	case "", "gsp", "musingo", "private":
		return true
	default:
		return false
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
