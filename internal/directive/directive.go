// Package directive parses the structured instructions the model embeds in
// its free-text replies and exposes them as a typed reply envelope.
package directive

import (
	"strings"
)

const (
	photoMarker   = "FOTO:"
	bookingMarker = "AGENDA_CITA|"
)

// Booking holds the fields of a booking instruction. The short form carries
// only Name, When and Message; the long form adds Age and Profile.
type Booking struct {
	Name    string
	Age     string
	Profile string
	When    string
	Message string
}

// Reply is the typed view of a raw model reply. Text is always usable as an
// outbound body; MediaURL and Booking are set only when the corresponding
// directive parsed cleanly.
type Reply struct {
	Text     string
	MediaURL string
	Booking  *Booking
}

// Parse interprets a raw model reply. It never fails: malformed directives
// degrade to plain text with the marker token stripped.
func Parse(raw string) Reply {
	rep := Reply{Text: strings.TrimSpace(raw)}

	// Photo directive: only the first marker matters, everything after it
	// belongs to the URL candidate. The URL is the first whitespace-delimited
	// token with trailing punctuation removed.
	if idx := strings.Index(raw, photoMarker); idx >= 0 {
		rep.Text = strings.TrimSpace(raw[:idx])
		rest := raw[idx+len(photoMarker):]
		if fields := strings.Fields(rest); len(fields) > 0 {
			if url := strings.TrimRight(fields[0], ".,"); url != "" {
				rep.MediaURL = url
			}
		}
	}

	// Booking directive: the whole reply is split on the pipe delimiter and
	// fields are taken positionally. Six or more segments is the long form,
	// four or five the short form, anything less is treated as noise.
	if strings.Contains(raw, bookingMarker) {
		parts := strings.Split(raw, "|")
		switch {
		case len(parts) >= 6:
			rep.Booking = &Booking{
				Name:    strings.TrimSpace(parts[1]),
				Age:     strings.TrimSpace(parts[2]),
				Profile: strings.TrimSpace(parts[3]),
				When:    strings.TrimSpace(parts[4]),
				Message: strings.TrimSpace(parts[5]),
			}
		case len(parts) >= 4:
			rep.Booking = &Booking{
				Name:    strings.TrimSpace(parts[1]),
				When:    strings.TrimSpace(parts[2]),
				Message: strings.TrimSpace(parts[3]),
			}
		default:
			rep.Text = strings.TrimSpace(strings.ReplaceAll(rep.Text, bookingMarker, ""))
		}
	}

	return rep
}
