package calendar

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyDay(t *testing.T) {
	assert.Equal(t, "✅ Todo el día libre (9am - 6pm)", classifyDay(0))
	assert.Equal(t, "⚠️ Quedan espacios (tiene 1 citas)", classifyDay(1))
	assert.Equal(t, "⚠️ Quedan espacios (tiene 4 citas)", classifyDay(4))
	assert.Equal(t, "🔴 Día muy lleno", classifyDay(5))
	assert.Equal(t, "🔴 Día muy lleno", classifyDay(10))
}

func TestSummarize(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC) // Tuesday

	starts := []time.Time{
		// Tomorrow: two appointments.
		now.AddDate(0, 0, 1).Add(2 * time.Hour),
		now.AddDate(0, 0, 1).Add(4 * time.Hour),
		// Day after tomorrow: five appointments.
		now.AddDate(0, 0, 2),
		now.AddDate(0, 0, 2).Add(time.Hour),
		now.AddDate(0, 0, 2).Add(2 * time.Hour),
		now.AddDate(0, 0, 2).Add(3 * time.Hour),
		now.AddDate(0, 0, 2).Add(4 * time.Hour),
		// Outside the summary window, must be ignored.
		now.AddDate(0, 0, 4),
	}

	out := Summarize(starts, now)

	assert.True(t, strings.HasPrefix(out, "📅 *Horarios Disponibles esta semana:*\n"))
	assert.Contains(t, out, "- Tuesday: ✅ Todo el día libre (9am - 6pm)\n")
	assert.Contains(t, out, "- Wednesday: ⚠️ Quedan espacios (tiene 2 citas)\n")
	assert.Contains(t, out, "- Thursday: 🔴 Día muy lleno\n")
	assert.Equal(t, 3, strings.Count(out, "\n- "), "exactly three days summarized")
}

func TestSummarizeNoEvents(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	out := Summarize(nil, now)

	for i := 0; i < 3; i++ {
		day := now.AddDate(0, 0, i)
		assert.Contains(t, out, fmt.Sprintf("- %s: ✅ Todo el día libre (9am - 6pm)\n", day.Weekday()))
	}
}

func TestParseEventStart(t *testing.T) {
	loc, err := time.LoadLocation("America/Mexico_City")
	assert.NoError(t, err)
	s := &Service{loc: loc}

	timed, ok := s.parseEventStart("2026-09-01T15:00:00-06:00", "")
	assert.True(t, ok)
	assert.Equal(t, 15, timed.Hour())

	allDay, ok := s.parseEventStart("", "2026-09-01")
	assert.True(t, ok)
	assert.Equal(t, 2026, allDay.Year())
	assert.Equal(t, time.September, allDay.Month())

	_, ok = s.parseEventStart("", "")
	assert.False(t, ok)

	_, ok = s.parseEventStart("not-a-time", "")
	assert.False(t, ok)
}
