package schedule

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekOf(t *testing.T) {
	tests := []struct {
		name       string
		ref        time.Time
		wantMonday time.Time
	}{
		{"wednesday", date(2024, time.January, 3), date(2024, time.January, 1)},
		{"monday itself", date(2024, time.January, 1), date(2024, time.January, 1)},
		{"saturday", date(2024, time.January, 6), date(2024, time.January, 1)},
		{"sunday belongs to prior monday", date(2024, time.January, 7), date(2024, time.January, 1)},
		{"month boundary", date(2024, time.March, 1), date(2024, time.February, 26)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			monday, saturday := WeekOf(tt.ref)
			assert.Equal(t, tt.wantMonday, monday)
			assert.Equal(t, tt.wantMonday.AddDate(0, 0, 5), saturday)
		})
	}
}

func TestGenerateText_SingleRow(t *testing.T) {
	rows := []Row{{
		ID:       1,
		Name:     "Pub A",
		ShowType: "gsp",
		Fields:   Fields{DefaultDay: "Monday", DefaultTime: "7pm"},
	}}
	// Reference date is a Wednesday.
	out := GenerateText(rows, date(2024, time.January, 3))

	mondaySection := section(t, out, "MONDAY 1/1")
	assert.Contains(t, mondaySection, "GAME SHOW PALOOZA\n")
	assert.Contains(t, mondaySection, "- Pub A (7pm)\n")

	for _, heading := range []string{"TUESDAY 1/2", "WEDNESDAY 1/3", "THURSDAY 1/4", "FRIDAY 1/5", "SATURDAY 1/6"} {
		assert.Contains(t, section(t, out, heading), "No scheduled venues")
	}
}

func TestGenerateText_Deterministic(t *testing.T) {
	rows := []Row{
		{ID: 1, Name: "Zebra Lounge", ShowType: "musingo", Fields: Fields{DefaultDay: "Friday", DefaultTime: "8pm"}},
		{ID: 2, Name: "alpha Tavern", ShowType: "gsp", Fields: Fields{DefaultDay: "Friday", DefaultTime: "7pm"}},
		{ID: 3, Name: "Middle House", ShowType: "private", Fields: Fields{DefaultDay: "Tuesday"}},
	}
	ref := date(2024, time.June, 12)
	assert.Equal(t, GenerateText(rows, ref), GenerateText(rows, ref))
}

func TestGenerateText_BucketsSortedAndLabeled(t *testing.T) {
	rows := []Row{
		{ID: 1, Name: "Zebra Lounge", ShowType: "GSP", Fields: Fields{DefaultDay: "Monday", DefaultTime: "9pm"}},
		{ID: 2, Name: "alpha Tavern", ShowType: "gsp", Fields: Fields{DefaultDay: "Monday", DefaultTime: "7pm"}},
		{ID: 3, Name: "Bingo Barn", ShowType: "Musingo", Fields: Fields{DefaultDay: "Monday", DefaultTime: "8pm"}},
	}
	out := GenerateText(rows, date(2024, time.January, 1))
	monday := section(t, out, "MONDAY 1/1")

	// Case-insensitive alphabetical order inside the gsp bucket.
	alphaIdx := strings.Index(monday, "- alpha Tavern (7pm)")
	zebraIdx := strings.Index(monday, "- Zebra Lounge (9pm)")
	require.GreaterOrEqual(t, alphaIdx, 0)
	require.GreaterOrEqual(t, zebraIdx, 0)
	assert.Less(t, alphaIdx, zebraIdx)

	// Bucket labels in fixed order, gsp before musingo.
	assert.Less(t, strings.Index(monday, "GAME SHOW PALOOZA"), strings.Index(monday, "MUSINGO"))
	assert.Contains(t, monday, "- Bingo Barn (8pm)")
}

func TestGenerateText_CancelledRow(t *testing.T) {
	rows := []Row{
		{ID: 1, Name: "Pub A", ShowType: "gsp", HostName: "Taylor",
			Fields: Fields{DefaultDay: "Monday", DefaultTime: "7pm", Cancelled: true, CancelReason: "flooding"}},
		{ID: 2, Name: "Pub B", ShowType: "gsp",
			Fields: Fields{DefaultDay: "Monday", DefaultTime: "8pm", Cancelled: true}},
	}
	out := GenerateText(rows, date(2024, time.January, 1))
	monday := section(t, out, "MONDAY 1/1")

	// Cancelled rows drop the time and carry the marker (with reason if set).
	assert.Contains(t, monday, "- Pub A w/ Taylor ***CANCELED flooding***\n")
	assert.Contains(t, monday, "- Pub B ***CANCELED***\n")
	assert.NotContains(t, monday, "(7pm)")
	assert.NotContains(t, monday, "(8pm)")
}

func TestGenerateText_ExcludesSundayAndDaylessRows(t *testing.T) {
	rows := []Row{
		{ID: 1, Name: "Sunday Spot", ShowType: "gsp", Fields: Fields{DefaultDay: "Sunday"}},
		{ID: 2, Name: "Homeless Venue", ShowType: "gsp", Fields: Fields{DefaultDay: ""}},
		{ID: 3, Name: "Odd Day", ShowType: "gsp", Fields: Fields{DefaultDay: "someday"}},
	}
	out := GenerateText(rows, date(2024, time.January, 1))
	assert.NotContains(t, out, "Sunday Spot")
	assert.NotContains(t, out, "Homeless Venue")
	assert.NotContains(t, out, "Odd Day")
}

func TestGenerateText_DayAbbreviationsNormalized(t *testing.T) {
	rows := []Row{
		{ID: 1, Name: "Pub A", ShowType: "gsp", Fields: Fields{DefaultDay: "tues", DefaultTime: "7pm"}},
	}
	out := GenerateText(rows, date(2024, time.January, 1))
	assert.Contains(t, section(t, out, "TUESDAY 1/2"), "- Pub A (7pm)")
}

func TestGenerateText_HeaderAndFooter(t *testing.T) {
	out := GenerateText(nil, date(2024, time.January, 3))
	assert.True(t, strings.HasPrefix(out, "GAME SHOW PALOOZA WEEKLY SCHEDULE\n"))
	assert.Contains(t, out, "Week of 1/1/2024 - 1/6/2024\n")
	assert.Contains(t, out, "This week's bonus question: [BONUS QUESTION HERE]\n")
	assert.True(t, strings.HasSuffix(out, "See you out there!\n"))
}

// section returns the output chunk from heading to the next blank line.
func section(t *testing.T, out, heading string) string {
	t.Helper()
	start := strings.Index(out, heading)
	require.GreaterOrEqual(t, start, 0, "heading %q not found in output:\n%s", heading, out)
	rest := out[start:]
	if end := strings.Index(rest, "\n\n"); end >= 0 {
		return rest[:end]
	}
	return rest
}
