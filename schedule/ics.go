package schedule

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
)

// BuildCalendar renders the week containing ref as an iCalendar feed, one
// all-day event per active scheduled venue. Cancelled and inactive rows are
// left out; recurring-show times are free text ("7pm"), so events are
// all-day with the time carried in the summary.
func BuildCalendar(rows []Row, ref time.Time) *ics.Calendar {
	monday, _ := WeekOf(ref)

	dayOffsets := make(map[string]int, len(renderDays))
	for i, day := range renderDays {
		dayOffsets[day] = i
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//gspevents//event-admin//EN")

	for _, r := range rows {
		if !r.IsActive || r.Cancelled {
			continue
		}
		offset, ok := dayOffsets[NormalizeDay(r.DefaultDay)]
		if !ok {
			continue
		}
		date := monday.AddDate(0, 0, offset)

		summary := r.Name
		if r.DefaultTime != "" {
			summary += " (" + r.DefaultTime + ")"
		}
		description := bucketKey(r.ShowType)
		if r.HostName != "" {
			description += ", hosted by " + r.HostName
		}

		event := cal.AddEvent(fmt.Sprintf("venue-%d-%s@gspevents", r.ID, date.Format("20060102")))
		event.SetDtStampTime(monday)
		event.SetAllDayStartAt(date)
		event.SetAllDayEndAt(date.AddDate(0, 0, 1))
		event.SetSummary(summary)
		event.SetDescription(description)
	}
	return cal
}
