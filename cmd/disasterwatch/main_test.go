package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"disasterwatch/internal/domain"
	"disasterwatch/internal/ui/views"
)

func TestPrintEvents(t *testing.T) {
	r := views.NewEventRenderer(views.NewStyles(), true, true)

	var buf bytes.Buffer
	printEvents(&buf, r, []domain.Event{
		{ID: "a", Title: "Flood", Start: "2024-07-01", Category: "disasters",
			Geo: &domain.Geo{Address: &domain.Address{City: "Mumbai"}}},
		{ID: "b", Title: "Cyclone", Start: "2024-07-02", Category: "disasters"},
	})

	assert.Equal(t, `Flood
Date: 2024-07-01
Category: disasters
Location: Mumbai

Cyclone
Date: 2024-07-02
Category: disasters
Location: Not available

2 events
`, buf.String())
}

func TestPrintNoEvents(t *testing.T) {
	var buf bytes.Buffer
	printEvents(&buf, views.NewEventRenderer(views.NewStyles(), true, true), nil)
	assert.Equal(t, "No events found.\n", buf.String())
}
