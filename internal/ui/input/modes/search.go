package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"disasterwatch/internal/ui/input/types"
)

// SearchMode reads a location to search events for
type SearchMode struct {
	TextInputMode
}

func NewSearchMode(ti *textinput.Model) *SearchMode {
	ti.Placeholder = "e.g., Mumbai, India"
	return &SearchMode{
		TextInputMode: NewTextInputMode(types.ModeSearch, "search", "Search: ", ti),
	}
}
