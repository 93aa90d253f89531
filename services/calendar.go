// file: services/calendar.go
package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"MYR/models"

	ics "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"
)

const (
	performanceColor = "#dc3545"
	eventColor       = "#0d6efd"

	// Upper bound per recurring event, so an open-ended rule stays finite.
	maxOccurrencesPerEvent = 400
)

// Occurrence is one drawn instance of a club event. End is exclusive.
type Occurrence struct {
	EventID     uint32    `json:"event_id"`
	Title       string    `json:"title"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Color       string    `json:"color"`
	Performance bool      `json:"performance"`
}

func dateIn(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func parseRRule(s string, start time.Time) (*rrule.RRule, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "RRULE:")
	r, err := rrule.StrToRRule(s)
	if err != nil {
		return nil, err
	}
	r.DTStart(start)
	return r, nil
}

// ValidateEvent checks the dates and, when present, the recurrence rule.
func ValidateEvent(e *models.ClubEvent) error {
	if strings.TrimSpace(e.Title) == "" {
		return invalid("title", "title is required")
	}
	if e.StartDate.IsZero() || e.EndDate.IsZero() {
		return invalid("start_date", "start and end dates are required")
	}
	if e.EndDate.Before(e.StartDate) {
		return invalid("end_date", "end date is before start date")
	}
	if e.RRule != "" {
		if _, err := parseRRule(e.RRule, e.StartDate); err != nil {
			return &ValidationError{Field: "rrule", Reason: err.Error(), Err: err}
		}
	}
	return nil
}

// ExpandEvents returns every occurrence that intersects [from, to), sorted by start.
// Broken rules fall back to the single stored instance.
func ExpandEvents(events []models.ClubEvent, from, to time.Time, loc *time.Location) []Occurrence {
	if loc == nil {
		loc = time.Local
	}
	out := make([]Occurrence, 0, len(events))
	for _, e := range events {
		start := dateIn(e.StartDate, loc)
		span := dateIn(e.EndDate, loc).AddDate(0, 0, 1).Sub(start)
		occ := Occurrence{
			EventID:     e.ID,
			Title:       e.Title,
			Performance: e.IsPerformance(),
			Color:       eventColor,
		}
		if occ.Performance {
			occ.Color = performanceColor
		}

		starts := []time.Time{start}
		if e.RRule != "" {
			if r, err := parseRRule(e.RRule, start); err == nil {
				// An instance that began before from may still run into the window.
				starts = r.Between(from.Add(-span), to, true)
				if len(starts) > maxOccurrencesPerEvent {
					starts = starts[:maxOccurrencesPerEvent]
				}
			}
		}
		for _, s := range starts {
			end := s.Add(span)
			if !s.Before(to) || !end.After(from) {
				continue
			}
			o := occ
			o.Start, o.End = s, end
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

// BuildICS renders the club calendar as iCalendar text. Recurring events keep their
// rule so clients expand them.
func BuildICS(events []models.ClubEvent, loc *time.Location, now time.Time) string {
	if loc == nil {
		loc = time.Local
	}
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//MYR//Club Calendar//KO")
	cal.SetXWRCalName("MYR")
	cal.SetXWRTimezone(loc.String())

	for _, e := range events {
		ev := cal.AddEvent(fmt.Sprintf("club-event-%d@myr", e.ID))
		ev.SetSummary(e.Title)
		ev.SetDtStampTime(now)
		ev.SetAllDayStartAt(dateIn(e.StartDate, loc))
		ev.SetAllDayEndAt(dateIn(e.EndDate, loc).AddDate(0, 0, 1))
		if e.IsPerformance() {
			ev.SetProperty(ics.ComponentPropertyCategories, "PERFORMANCE")
		}
		if e.RRule != "" {
			ev.AddRrule(strings.TrimPrefix(strings.TrimSpace(e.RRule), "RRULE:"))
		}
	}
	return cal.Serialize()
}
