package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	gcal "google.golang.org/api/calendar/v3"
)

const visitDuration = time.Hour

// CreateVisit parses a free-text date/time permissively, creates a one-hour
// viewing appointment on the agent's calendar and returns the provider's
// viewable link. Parse and provider errors propagate; the caller decides the
// user-facing fallback.
func (s *Service) CreateVisit(ctx context.Context, calendarID, clientName, when string) (string, error) {
	start, err := dateparse.ParseIn(when, s.loc)
	if err != nil {
		return "", fmt.Errorf("parse visit time %q: %w", when, err)
	}
	end := start.Add(visitDuration)

	event := &gcal.Event{
		Summary:     "Visita: " + clientName,
		Location:    "Ubicación de la Propiedad",
		Description: "Cita agendada por la plataforma para " + clientName,
		Start: &gcal.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: s.tz,
		},
		End: &gcal.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: s.tz,
		},
	}

	created, err := s.api.Events.Insert(calendarID, event).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("insert event: %w", err)
	}

	return created.HtmlLink, nil
}
