package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"disasterwatch/internal/domain"
)

const notAvailable = "Not available"

// EventRenderer handles rendering of event cards
type EventRenderer struct {
	styles       *Styles
	showLabels   bool
	showLocation bool
}

// NewEventRenderer creates a new event renderer
func NewEventRenderer(styles *Styles, showLabels, showLocation bool) *EventRenderer {
	return &EventRenderer{
		styles:       styles,
		showLabels:   showLabels,
		showLocation: showLocation,
	}
}

// CardLines returns the plain text lines of an event card
func (r *EventRenderer) CardLines(ev domain.Event) []string {
	category := ev.Category
	if category == "" {
		category = notAvailable
	}

	lines := []string{
		ev.Title,
		fmt.Sprintf("Date: %s", ev.Start),
		fmt.Sprintf("Category: %s", category),
	}

	if r.showLabels && len(ev.Labels) > 0 {
		lines = append(lines, fmt.Sprintf("Labels: %s", strings.Join(ev.Labels, ", ")))
	}

	if r.showLocation {
		location := ev.Location()
		if location == "" {
			location = notAvailable
		}
		lines = append(lines, fmt.Sprintf("Location: %s", location))
	}

	if ev.Timezone != "" {
		lines = append(lines, fmt.Sprintf("Timezone: %s", ev.Timezone))
	}
	if ev.State != "" {
		lines = append(lines, fmt.Sprintf("Status: %s", ev.State))
	}

	return lines
}

// RenderEvent renders an event as a bordered card
func (r *EventRenderer) RenderEvent(ev domain.Event, isSelected bool, width int) string {
	lines := r.CardLines(ev)

	styled := make([]string, len(lines))
	styled[0] = r.styles.EventTitle.Render(lines[0])
	for i := 1; i < len(lines); i++ {
		key, value, found := strings.Cut(lines[i], ": ")
		if !found {
			styled[i] = lines[i]
			continue
		}
		valueStyle := lipgloss.NewStyle()
		if key == "Status" {
			valueStyle = valueStyle.Foreground(lipgloss.Color(GetStateColor(ev.State)))
		}
		styled[i] = r.styles.Label.Render(key+":") + " " + valueStyle.Render(value)
	}

	card := r.styles.Card
	if isSelected {
		card = r.styles.CardSelected
	}
	if width > 8 {
		card = card.Width(width - 6) // main padding plus border
	}
	return card.Render(strings.Join(styled, "\n"))
}

// RenderDetail renders the full event for the pager
func (r *EventRenderer) RenderDetail(ev domain.Event) string {
	var b strings.Builder
	b.WriteString(r.styles.EventTitle.Render(ev.Title))
	b.WriteString("\n\n")
	for _, line := range r.CardLines(ev)[1:] {
		b.WriteString(line)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "End: %s\n", ev.End)
	fmt.Fprintf(&b, "ID: %s\n", ev.ID)
	if ev.Geo != nil && ev.Geo.Geometry != nil && len(ev.Geo.Geometry.Coordinates) == 2 {
		fmt.Fprintf(&b, "Coordinates: %.4f, %.4f\n", ev.Geo.Geometry.Coordinates[1], ev.Geo.Geometry.Coordinates[0])
	}
	if ev.Geo != nil && ev.Geo.Address != nil && ev.Geo.Address.CountryCode != "" {
		fmt.Fprintf(&b, "Country: %s\n", ev.Geo.Address.CountryCode)
	}
	if ev.Description != "" {
		b.WriteString("\n")
		b.WriteString(ev.Description)
		b.WriteString("\n")
	}
	return b.String()
}
