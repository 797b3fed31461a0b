package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"disasterwatch/internal/accumulator"
	"disasterwatch/internal/config"
	"disasterwatch/internal/predicthq"
	"disasterwatch/internal/ui/handlers"
	"disasterwatch/internal/ui/input"
	inputtypes "disasterwatch/internal/ui/input/types"
	"disasterwatch/internal/ui/logic"
	"disasterwatch/internal/ui/state"
	"disasterwatch/internal/ui/views"
)

// Searcher runs searches on behalf of the UI
type Searcher interface {
	StartSearch(ctx context.Context, term string) error
	AdvancePage(ctx context.Context) error
	Snapshot() accumulator.State
}

// Model represents the UI state
type Model struct {
	searcher Searcher
	state    *state.AppState // centralized state

	// UI-specific state not in AppState
	width       int
	height      int
	help        help.Model
	spinner     spinner.Model
	inPagerMode bool // tracks if we're currently in pager mode

	// Handlers
	navigator    *logic.Navigator       // navigation and viewport handler
	renderer     *views.Renderer        // view renderer
	eventHandler *handlers.EventHandler // event processing handler
	inputHandler *input.Handler         // input handling
	pager        *PagerOps              // ov pager

	// Search lifetime. Each search gets a child of ctx; starting another
	// search or quitting cancels it.
	ctx          context.Context
	cancel       context.CancelFunc
	searchCtx    context.Context
	cancelSearch context.CancelFunc

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(cfg *config.Config, searcher Searcher) *Model {
	ctx, cancel := context.WithCancel(context.Background())

	m := &Model{
		searcher:     searcher,
		state:        state.NewAppState(),
		help:         help.New(),
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		navigator:    logic.NewNavigator(),
		renderer:     views.NewRenderer(cfg.UISettings.ShowLabels, cfg.UISettings.ShowLocation),
		inputHandler: input.New(),
		pager:        NewPagerOps(),
		ctx:          ctx,
		cancel:       cancel,
		searchCtx:    ctx,
	}
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
	m.eventHandler = handlers.NewEventHandler(m.state)

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateViewportHeight()
		m.syncViewport()
		return m, nil

	case tea.KeyMsg:
		ctx := &input.ModelContext{State: m.state}

		actions, cmd := m.inputHandler.HandleKey(msg, ctx)

		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}
		return m, tea.Batch(cmds...)

	default:
		// Cursor blink and similar messages belong to the text input
		inputCmd := m.inputHandler.Update(msg)
		_, cmd := m.handleNonKeyboardMsg(msg)
		return m, tea.Batch(inputCmd, cmd)
	}
}

// handleNonKeyboardMsg handles search results, bus events and pager lifecycle
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		if m.eventHandler.HandleEvent(msg.Event) {
			m.refresh()
		}
		return m, nil

	case searchDoneMsg:
		switch {
		case msg.err == nil:
		case errors.Is(msg.err, accumulator.ErrSuperseded), errors.Is(msg.err, context.Canceled):
			log.Printf("Search %q stopped: %v", msg.term, msg.err)
		default:
			log.Printf("Search %q failed: %v", msg.term, msg.err)
		}
		m.refresh()
		return m, nil

	case pageDoneMsg:
		if msg.err != nil && !errors.Is(msg.err, accumulator.ErrSuperseded) {
			log.Printf("Load more failed: %v", msg.err)
		}
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.state.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case detailPagerMsg:
		if msg.err != nil {
			log.Printf("Detail pager failed for %s: %v", msg.eventID, msg.err)
			m.state.StatusMessage = fmt.Sprintf("Could not open details: %v", msg.err)
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		// Bubble Tea's RestoreTerminal() handles the actual resuming
		m.inPagerMode = false
		return m, nil
	}

	return m, nil
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.syncViewport()
		m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.Move(a.Direction)

	case inputtypes.SubmitTextAction:
		if a.Mode == inputtypes.ModeSearch {
			return m.startSearch(a.Text)
		}

	case inputtypes.CancelTextAction:
		m.state.StatusMessage = ""

	case inputtypes.UpdateTextAction:
		// The text input is read directly when rendering

	case inputtypes.LoadMoreAction:
		return m.loadMore()

	case inputtypes.OpenDetailAction:
		return m.openDetail()

	case inputtypes.ToggleHelpAction:
		m.state.ShowHelp = !m.state.ShowHelp
		m.state.HelpScrollOffset = 0

	case inputtypes.ScrollHelpAction:
		m.state.HelpScrollOffset += a.Delta
		if m.state.HelpScrollOffset < 0 {
			m.state.HelpScrollOffset = 0
		}

	case inputtypes.QuitAction:
		m.Shutdown()
		return tea.Quit
	}

	return nil
}

// startSearch replaces the current search with a new one for term
func (m *Model) startSearch(text string) tea.Cmd {
	term := strings.TrimSpace(text)
	if term == "" {
		return nil
	}

	if m.cancelSearch != nil {
		m.cancelSearch()
	}
	searchCtx, cancel := context.WithCancel(m.ctx)
	m.searchCtx = searchCtx
	m.cancelSearch = cancel

	// Show the fresh search right away; snapshots take over as pages land
	m.state.Query = term
	m.state.Events = nil
	m.state.ErrorMessage = ""
	m.state.HasMore = false
	m.state.Loading = true
	m.state.SelectedIndex = 0
	m.state.ViewportOffset = 0

	searcher := m.searcher
	return tea.Batch(
		func() tea.Msg {
			return searchDoneMsg{term: term, err: searcher.StartSearch(searchCtx, term)}
		},
		m.spinner.Tick,
	)
}

// loadMore requests the next single page, or retries a failed one
func (m *Model) loadMore() tea.Cmd {
	if !m.state.CanAdvance(predicthq.PageSize) {
		return nil
	}
	m.state.Loading = true
	m.state.ErrorMessage = ""

	ctx := m.searchCtx
	searcher := m.searcher
	return tea.Batch(
		func() tea.Msg {
			return pageDoneMsg{err: searcher.AdvancePage(ctx)}
		},
		m.spinner.Tick,
	)
}

// openDetail shows the selected event in the ov pager
func (m *Model) openDetail() tea.Cmd {
	ev, ok := m.state.SelectedEvent()
	if !ok {
		return nil
	}
	if m.program == nil {
		m.state.StatusMessage = "Details unavailable"
		return nil
	}

	content := views.StripANSI(m.renderer.Events().RenderDetail(ev))
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := m.pager.ShowInPager(content)
		m.program.Send(resumeRenderingMsg{})
		return detailPagerMsg{eventID: ev.ID, err: err}
	}
}

// refresh pulls the latest accumulator snapshot into the UI state
func (m *Model) refresh() {
	m.state.ApplySnapshot(m.searcher.Snapshot())
	m.syncViewport()
}

// syncViewport recomputes card heights and keeps the selection visible
func (m *Model) syncViewport() {
	heights := m.renderer.ItemHeights(m.state.Events, m.width)
	m.navigator.UpdateState(m.state.SelectedIndex, m.state.ViewportOffset, m.state.ViewportHeight, heights)
	m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.SetSelectedIndex(m.navigator.GetSelectedIndex())
}

// updateViewportHeight calculates the available height for the event list
func (m *Model) updateViewportHeight() {
	// Title (2 lines), load more and status (3 lines), help (2 lines), padding
	reservedLines := 9

	m.state.ViewportHeight = m.height - reservedLines
	if m.state.ViewportHeight < 1 {
		m.state.ViewportHeight = 1
	}
}

// Shutdown cancels any running search
func (m *Model) Shutdown() {
	if m.cancelSearch != nil {
		m.cancelSearch()
	}
	m.cancel()
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	if m.width == 0 {
		return "Starting..."
	}

	vs := views.ViewState{
		Width:            m.width,
		Height:           m.height,
		Events:           m.state.Events,
		SelectedIndex:    m.state.SelectedIndex,
		ViewportOffset:   m.state.ViewportOffset,
		ViewportHeight:   m.state.ViewportHeight,
		Query:            m.state.Query,
		Loading:          m.state.Loading,
		Spinner:          m.spinner.View(),
		ErrorMessage:     m.state.ErrorMessage,
		HasMore:          m.state.HasMore,
		ShowLoadMore:     !m.state.Loading && m.state.ShowLoadMore(predicthq.PageSize),
		StatusMessage:    m.state.StatusMessage,
		ShowHelp:         m.state.ShowHelp,
		HelpScrollOffset: m.state.HelpScrollOffset,
		KeyHints:         m.help.View(m.inputHandler.Keys()),
	}

	if m.inputHandler.GetMode() == inputtypes.ModeSearch {
		vs.InputMode = m.inputHandler.ModeName()
		vs.TextInput = m.inputHandler.GetTextInput().View()
	}

	return m.renderer.Render(vs)
}
