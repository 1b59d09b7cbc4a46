package directive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlainText(t *testing.T) {
	rep := Parse("  Hola, ¿en qué te ayudo? ")

	assert.Equal(t, "Hola, ¿en qué te ayudo?", rep.Text)
	assert.Empty(t, rep.MediaURL)
	assert.Nil(t, rep.Booking)
}

func TestParsePhoto(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantText string
		wantURL  string
	}{
		{
			name:     "url at end",
			raw:      "Mira esta belleza 🏡 FOTO:https://cdn.example.com/casa1.jpg",
			wantText: "Mira esta belleza 🏡",
			wantURL:  "https://cdn.example.com/casa1.jpg",
		},
		{
			name:     "trailing punctuation stripped",
			raw:      "Aquí está FOTO:https://cdn.example.com/casa1.jpg.",
			wantText: "Aquí está",
			wantURL:  "https://cdn.example.com/casa1.jpg",
		},
		{
			name:     "text after url ignored",
			raw:      "Te va a encantar FOTO:https://cdn.example.com/a.jpg ¿qué te parece?",
			wantText: "Te va a encantar",
			wantURL:  "https://cdn.example.com/a.jpg",
		},
		{
			name:     "marker with no url",
			raw:      "Aquí la foto FOTO:",
			wantText: "Aquí la foto",
			wantURL:  "",
		},
		{
			name:     "only first marker used",
			raw:      "Mira FOTO:https://cdn.example.com/a.jpg FOTO:https://cdn.example.com/b.jpg",
			wantText: "Mira",
			wantURL:  "https://cdn.example.com/a.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := Parse(tt.raw)
			assert.Equal(t, tt.wantText, rep.Text)
			assert.Equal(t, tt.wantURL, rep.MediaURL)
			assert.Nil(t, rep.Booking)
		})
	}
}

func TestParseBookingLongForm(t *testing.T) {
	rep := Parse("AGENDA_CITA|Ana García|34|Familia con dos hijos|2026-09-02 16:00|¡Perfecto Ana! Nos vemos el miércoles. 🏡")

	require.NotNil(t, rep.Booking)
	assert.Equal(t, "Ana García", rep.Booking.Name)
	assert.Equal(t, "34", rep.Booking.Age)
	assert.Equal(t, "Familia con dos hijos", rep.Booking.Profile)
	assert.Equal(t, "2026-09-02 16:00", rep.Booking.When)
	assert.Equal(t, "¡Perfecto Ana! Nos vemos el miércoles. 🏡", rep.Booking.Message)
}

func TestParseBookingShortForm(t *testing.T) {
	rep := Parse("AGENDA_CITA|Luis|2026-09-03 11:00|Listo Luis, agendado.")

	require.NotNil(t, rep.Booking)
	assert.Equal(t, "Luis", rep.Booking.Name)
	assert.Empty(t, rep.Booking.Age)
	assert.Empty(t, rep.Booking.Profile)
	assert.Equal(t, "2026-09-03 11:00", rep.Booking.When)
	assert.Equal(t, "Listo Luis, agendado.", rep.Booking.Message)
}

func TestParseBookingMalformed(t *testing.T) {
	rep := Parse("Claro, déjame agendar AGENDA_CITA|mañana")

	assert.Nil(t, rep.Booking)
	assert.Equal(t, "Claro, déjame agendar mañana", rep.Text)
}

func TestParseBookingFieldsTrimmed(t *testing.T) {
	rep := Parse("AGENDA_CITA| Pedro | 28 | Soltero | 2026-09-05 10:00 | Nos vemos Pedro ")

	require.NotNil(t, rep.Booking)
	assert.Equal(t, "Pedro", rep.Booking.Name)
	assert.Equal(t, "28", rep.Booking.Age)
	assert.Equal(t, "Soltero", rep.Booking.Profile)
	assert.Equal(t, "2026-09-05 10:00", rep.Booking.When)
	assert.Equal(t, "Nos vemos Pedro", rep.Booking.Message)
}
