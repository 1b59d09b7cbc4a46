package twiml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTextOnly(t *testing.T) {
	out, err := Render("Hola 👋", "")
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, s, "<Body>Hola 👋</Body>")
	assert.NotContains(t, s, "<Media>")
}

func TestRenderWithMedia(t *testing.T) {
	out, err := Render("Mira", "https://cdn.example.com/casa.jpg")
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "<Body>Mira</Body>")
	assert.Contains(t, s, "<Media>https://cdn.example.com/casa.jpg</Media>")
}

func TestRenderEscapesMarkup(t *testing.T) {
	out, err := Render("precio < 2M & trato directo", "")
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "precio &lt; 2M &amp; trato directo")
}
