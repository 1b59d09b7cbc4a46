package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	// fetchWindowDays is how far ahead events are fetched.
	fetchWindowDays = 5

	// summaryDays is how many of those days are summarized. Intentionally
	// smaller than the fetch window to keep the text short.
	summaryDays = 3

	// fullDayThreshold is the event count above which a day reads as full.
	fullDayThreshold = 4
)

// Availability fetches the next days of events and reduces them to a
// human-readable free/busy block, one line per day. This is a coarse
// per-day count heuristic, not an exact free-slot computation.
func (s *Service) Availability(ctx context.Context, calendarID string) (string, error) {
	now := time.Now().In(s.loc)

	events, err := s.api.Events.List(calendarID).
		TimeMin(now.Format(time.RFC3339)).
		TimeMax(now.AddDate(0, 0, fetchWindowDays).Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("list events for %s: %w", calendarID, err)
	}

	starts := make([]time.Time, 0, len(events.Items))
	for _, item := range events.Items {
		if item.Start == nil {
			continue
		}
		if t, ok := s.parseEventStart(item.Start.DateTime, item.Start.Date); ok {
			starts = append(starts, t)
		}
	}

	return Summarize(starts, now), nil
}

// parseEventStart handles both timed events (RFC 3339) and all-day events
// (plain date).
func (s *Service) parseEventStart(dateTime, date string) (time.Time, bool) {
	if dateTime != "" {
		if t, err := time.Parse(time.RFC3339, dateTime); err == nil {
			return t.In(s.loc), true
		}
		return time.Time{}, false
	}
	if date != "" {
		if t, err := time.ParseInLocation("2006-01-02", date, s.loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Summarize reduces event start times into the per-day availability block
// for the next summaryDays calendar days starting at now. Events outside
// those days are ignored.
func Summarize(starts []time.Time, now time.Time) string {
	var b strings.Builder
	b.WriteString("📅 *Horarios Disponibles esta semana:*\n")

	for i := 0; i < summaryDays; i++ {
		day := now.AddDate(0, 0, i)

		count := 0
		for _, start := range starts {
			if sameDay(start.In(now.Location()), day) {
				count++
			}
		}

		fmt.Fprintf(&b, "- %s: %s\n", day.Weekday(), classifyDay(count))
	}

	return b.String()
}

// classifyDay is the fixed ordinal rule: no events means free, more than
// fullDayThreshold means full, anything in between has room.
func classifyDay(count int) string {
	switch {
	case count == 0:
		return "✅ Todo el día libre (9am - 6pm)"
	case count > fullDayThreshold:
		return "🔴 Día muy lleno"
	default:
		return fmt.Sprintf("⚠️ Quedan espacios (tiene %d citas)", count)
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
