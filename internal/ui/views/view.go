package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"disasterwatch/internal/domain"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width            int
	Height           int
	Events           []domain.Event
	SelectedIndex    int
	ViewportOffset   int
	ViewportHeight   int
	Query            string
	Loading          bool
	Spinner          string
	ErrorMessage     string
	HasMore          bool
	ShowLoadMore     bool
	StatusMessage    string
	InputMode        string
	TextInput        string
	ShowHelp         bool
	HelpScrollOffset int
	KeyHints         string // short key help for the footer
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	eventRender *EventRenderer
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(showLabels, showLocation bool) *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		eventRender: NewEventRenderer(styles, showLabels, showLocation),
		popupRender: NewPopupRenderer(styles),
	}
}

// Events returns the event card renderer
func (r *Renderer) Events() *EventRenderer {
	return r.eventRender
}

// ItemHeights returns the rendered height of each card including the gap line
func (r *Renderer) ItemHeights(events []domain.Event, width int) []int {
	heights := make([]int, len(events))
	for i, ev := range events {
		heights[i] = lipgloss.Height(r.eventRender.RenderEvent(ev, false, width)) + 1
	}
	return heights
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitleLine(state))
	content.WriteString("\n")

	if state.InputMode == "search" {
		content.WriteString(r.styles.Query.Render("Search: "))
		content.WriteString(state.TextInput)
		content.WriteString("\n\n")
	}

	var mainContent string
	switch {
	case state.Loading && len(state.Events) == 0:
		mainContent = r.styles.StatusLoading.Render("Loading...")
	case state.ErrorMessage != "":
		mainContent = r.renderError(state)
	case len(state.Events) == 0 && state.Query == "":
		mainContent = r.styles.Dim.Render("Press / and enter a location (e.g., Mumbai, India)")
	case len(state.Events) == 0:
		mainContent = r.styles.Dim.Render("No events found.")
	default:
		mainContent = r.renderEventList(state)
	}
	content.WriteString(mainContent)

	if state.ShowLoadMore && state.ErrorMessage == "" {
		content.WriteString("\n")
		content.WriteString(r.styles.LoadMore.Render("[m] Load More"))
	}

	if state.StatusMessage != "" {
		content.WriteString("\n")
		content.WriteString(r.styles.Status.Render(state.StatusMessage))
	}

	helpText := ""
	if !state.ShowHelp {
		hints := state.KeyHints
		if hints == "" {
			hints = "Press ? for help"
		}
		helpText = r.styles.Help.Render(hints)
	}

	if helpText != "" {
		currentLines := strings.Count(content.String(), "\n") + 1

		availableLines := state.Height - 2
		if availableLines <= 0 {
			availableLines = 22
		}

		paddingNeeded := availableLines - currentLines - 1
		if paddingNeeded > 0 {
			content.WriteString(strings.Repeat("\n", paddingNeeded))
		}

		content.WriteString("\n")
		content.WriteString(helpText)
	}

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	finalContent := mainStyle.Render(content.String())

	if state.ShowHelp {
		helpContent := RenderHelpContent(state.Height, state.HelpScrollOffset)
		return r.popupRender.RenderPopupOverlay(finalContent, helpContent, state.Height, state.Width, r.styles.InfoBox)
	}

	return finalContent
}

// renderTitleLine renders the logo with right-aligned indicators
func (r *Renderer) renderTitleLine(state ViewState) string {
	logo := r.styles.Title.Render("disasterwatch")

	var indicators []string
	if state.Loading {
		indicators = append(indicators, r.styles.Dim.Render(fmt.Sprintf("%s Loading", state.Spinner)))
	}
	if state.Query != "" {
		indicators = append(indicators, r.styles.Query.Render(fmt.Sprintf("[%s: %d]", state.Query, len(state.Events))))
	}
	if len(indicators) == 0 {
		return logo
	}

	rightContent := strings.Join(indicators, "  ")

	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	paddingWidth := termWidth - 4 - lipgloss.Width(logo) - lipgloss.Width(rightContent)
	if paddingWidth > 0 {
		return logo + strings.Repeat(" ", paddingWidth) + rightContent
	}
	return logo + "  " + rightContent
}

func (r *Renderer) renderError(state ViewState) string {
	var b strings.Builder
	b.WriteString(r.styles.StatusError.Render("Error: " + state.ErrorMessage))
	if state.HasMore {
		b.WriteString("\n")
		b.WriteString(r.styles.Dim.Render(fmt.Sprintf("%d events loaded. Press m to retry, / to search again.", len(state.Events))))
	}
	return b.String()
}

// renderEventList renders the visible window of event cards
func (r *Renderer) renderEventList(state ViewState) string {
	var lines []string

	if state.ViewportOffset > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more above ↑", state.ViewportOffset)))
	}

	budget := state.ViewportHeight
	if budget <= 0 {
		budget = 1 << 30
	}

	used := 0
	last := state.ViewportOffset
	for i := state.ViewportOffset; i < len(state.Events); i++ {
		card := r.eventRender.RenderEvent(state.Events[i], i == state.SelectedIndex, state.Width)
		h := lipgloss.Height(card) + 1
		if i > state.ViewportOffset && used+h > budget {
			break
		}
		lines = append(lines, card, "")
		used += h
		last = i + 1
	}

	if below := len(state.Events) - last; below > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below ↓", below)))
	} else if len(lines) > 0 {
		lines = lines[:len(lines)-1]
	}

	return strings.Join(lines, "\n")
}
