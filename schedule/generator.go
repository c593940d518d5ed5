package schedule

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// renderDays is the Monday..Saturday announcement body order. Sunday rows
// and rows without a recognized day are excluded from the body.
var renderDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

var showTypeBuckets = []struct {
	key   string
	label string
}{
	{ShowTypeGSP, "GAME SHOW PALOOZA"},
	{ShowTypeMusingo, "MUSINGO"},
	{ShowTypePrivate, "PRIVATE SHOW"},
}

// GenerateText renders the weekly plaintext announcement for the week
// containing ref. It is a pure function of its inputs: identical rows and
// reference date produce byte-identical output.
func GenerateText(rows []Row, ref time.Time) string {
	monday, saturday := WeekOf(ref)

	byDay := make(map[string][]Row, len(renderDays))
	for _, r := range rows {
		day := NormalizeDay(r.DefaultDay)
		byDay[day] = append(byDay[day], r)
	}

	var b strings.Builder
	b.WriteString("GAME SHOW PALOOZA WEEKLY SCHEDULE\n")
	fmt.Fprintf(&b, "Week of %s - %s\n", shortDate(monday), shortDate(saturday))

	for i, day := range renderDays {
		date := monday.AddDate(0, 0, i)
		fmt.Fprintf(&b, "\n%s %d/%d\n", strings.ToUpper(day), int(date.Month()), date.Day())

		dayRows := byDay[day]
		if len(dayRows) == 0 {
			b.WriteString("No scheduled venues\n")
			continue
		}
		for _, bucket := range showTypeBuckets {
			var entries []Row
			for _, r := range dayRows {
				if bucketKey(r.ShowType) == bucket.key {
					entries = append(entries, r)
				}
			}
			if len(entries) == 0 {
				continue
			}
			sort.SliceStable(entries, func(i, j int) bool {
				return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
			})
			b.WriteString(bucket.label + "\n")
			for _, r := range entries {
				b.WriteString(renderLine(r) + "\n")
			}
		}
	}

	b.WriteString("\nThis week's bonus question: [BONUS QUESTION HERE]\n")
	b.WriteString("See you out there!\n")
	return b.String()
}

func renderLine(r Row) string {
	line := "- " + r.Name
	if r.HostName != "" {
		line += " w/ " + r.HostName
	}
	switch {
	case r.Cancelled && r.CancelReason != "":
		line += " ***CANCELED " + r.CancelReason + "***"
	case r.Cancelled:
		line += " ***CANCELED***"
	case r.DefaultTime != "":
		line += " (" + r.DefaultTime + ")"
	}
	return line
}

// bucketKey lower-cases a show type and folds unknowns into gsp.
func bucketKey(showType string) string {
	switch strings.ToLower(strings.TrimSpace(showType)) {
	case ShowTypeMusingo:
		return ShowTypeMusingo
	case ShowTypePrivate:
		return ShowTypePrivate
	default:
		return ShowTypeGSP
	}
}

func shortDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year())
}
