// Package calendar integrates with Google Calendar: a coarse availability
// summary for the sales prompt and one-hour viewing appointments.
package calendar

import (
	"context"
	"fmt"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Service wraps the Google Calendar API for a fixed target timezone.
type Service struct {
	api *gcal.Service
	loc *time.Location
	tz  string
}

// New creates a calendar service authenticated with a service-account key
// file. The timezone is the fixed zone all event math happens in.
func New(ctx context.Context, credentialsFile, timezone string) (*Service, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", timezone, err)
	}

	api, err := gcal.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gcal.CalendarScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}

	return &Service{api: api, loc: loc, tz: timezone}, nil
}

// Location returns the service's target timezone.
func (s *Service) Location() *time.Location {
	return s.loc
}
