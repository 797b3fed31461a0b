package modes

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"disasterwatch/internal/ui/input/types"
)

// KeyMap holds the normal mode bindings
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Bottom    key.Binding
	Search    key.Binding
	LoadMore  key.Binding
	Detail    key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:  key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Bottom:    key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		LoadMore:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "load more")),
		Detail:    key.NewBinding(key.WithKeys("v", "enter"), key.WithHelp("v", "details")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// ShortHelp returns the bindings shown in the footer
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Down, k.Detail, k.LoadMore, k.Help, k.Quit}
}

// FullHelp returns the bindings grouped into columns
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Bottom},
		{k.Search, k.LoadMore, k.Detail},
		{k.Help, k.Quit},
	}
}

type NormalMode struct {
	keys        KeyMap
	lastKeyWasG bool
	lastGTime   time.Time
}

func NewNormalMode() *NormalMode {
	return &NormalMode{keys: DefaultKeyMap()}
}

// Keys returns the bindings in use
func (m *NormalMode) Keys() KeyMap {
	return m.keys
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return []types.Action{types.QuitAction{Force: true}}, true
	}

	if ctx.ShowingHelp() {
		return m.handleHelpKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case key.Matches(msg, m.keys.Down):
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case key.Matches(msg, m.keys.PageUp):
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true

	case key.Matches(msg, m.keys.PageDown):
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true

	case key.Matches(msg, m.keys.Bottom):
		m.lastKeyWasG = false
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case msg.String() == "home":
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case msg.String() == "g":
		if m.lastKeyWasG && time.Since(m.lastGTime) < 500*time.Millisecond {
			// gg - go to top
			m.lastKeyWasG = false
			return []types.Action{types.NavigateAction{Direction: "home"}}, true
		}
		m.lastKeyWasG = true
		m.lastGTime = time.Now()
		return nil, true

	case key.Matches(msg, m.keys.Search):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch}}, true

	case key.Matches(msg, m.keys.LoadMore):
		if ctx.CanLoadMore() {
			return []types.Action{types.LoadMoreAction{}}, true
		}
		return nil, true

	case key.Matches(msg, m.keys.Detail):
		if ctx.HasSelectedEvent() {
			return []types.Action{types.OpenDetailAction{}}, true
		}
		return nil, false

	case key.Matches(msg, m.keys.Help):
		return []types.Action{types.ToggleHelpAction{}}, true

	case key.Matches(msg, m.keys.Quit):
		return []types.Action{types.QuitAction{Force: false}}, true
	}

	// Any other key cancels the 'g' prefix
	m.lastKeyWasG = false
	return nil, false
}

// handleHelpKey scrolls or closes the help popup
func (m *NormalMode) handleHelpKey(msg tea.KeyMsg) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, m.keys.Up):
		return []types.Action{types.ScrollHelpAction{Delta: -1}}, true
	case key.Matches(msg, m.keys.Down):
		return []types.Action{types.ScrollHelpAction{Delta: 1}}, true
	case key.Matches(msg, m.keys.Help), msg.String() == "esc":
		return []types.Action{types.ToggleHelpAction{}}, true
	case key.Matches(msg, m.keys.Quit):
		return []types.Action{types.QuitAction{Force: false}}, true
	}
	return nil, true
}
