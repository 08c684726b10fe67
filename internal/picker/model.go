// Package picker implements the interactive corpus picker TUI.
package picker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/runger/trove/internal/config"
	"github.com/runger/trove/internal/search"
)

// defaultDebounce is the delay after the last keystroke before
// triggering a fetch, when the config does not override it.
const defaultDebounce = 100 * time.Millisecond

// pickerState represents the current state of the picker's state machine.
type pickerState int

const (
	stateIdle      pickerState = iota // Initial state before first fetch
	stateLoading                      // Fetch in progress
	stateLoaded                       // Results loaded successfully (len > 0)
	stateEmpty                        // Fetch succeeded but returned 0 results
	stateError                        // Fetch failed
	stateCancelled                    // User cancelled (Esc / Ctrl+C)
)

// fetchDoneMsg is sent when an async Provider.Fetch completes.
type fetchDoneMsg struct {
	requestID uint64
	items     []search.UnifiedResult
	atEnd     bool
	err       error
}

// debounceMsg fires after the debounce timer expires.
type debounceMsg struct {
	id uint64 // Must match current debounceID to be accepted
}

// initMsg is sent by Init() to trigger the first fetch via Update(),
// ensuring state mutations are visible to the Bubble Tea runtime.
type initMsg struct{}

// Model is the Bubble Tea model for the corpus picker TUI.
type Model struct {
	state     pickerState
	tabs      []config.TabDef
	activeTab int
	items     []search.UnifiedResult
	selection int // Index into items; -1 when empty
	offset    int // Pagination offset
	atEnd     bool
	err       error

	requestID uint64 // Monotonic counter for stale detection
	provider  Provider
	input     textinput.Model
	debounce  time.Duration

	width  int
	height int

	// chosen holds the selected result after the user presses Enter.
	chosen    search.UnifiedResult
	hasChosen bool

	// cancelFetch cancels the in-flight Provider.Fetch context.
	cancelFetch context.CancelFunc

	// debounceID tracks the latest debounce timer; only a matching
	// debounceMsg will trigger a fetch.
	debounceID uint64
}

// NewModel creates a new picker Model. debounce <= 0 uses the default.
func NewModel(tabs []config.TabDef, provider Provider, debounce time.Duration) Model {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "search (try tag:planning or is:pinned)"
	input.Focus()
	return Model{
		state:     stateIdle,
		tabs:      tabs,
		activeTab: 0,
		selection: -1,
		provider:  provider,
		input:     input,
		debounce:  debounce,
	}
}

// Result returns the selected result and whether one was chosen.
func (m Model) Result() (search.UnifiedResult, bool) {
	return m.chosen, m.hasChosen
}

// Init implements tea.Model. It sends an initMsg so that the first
// fetch is triggered through Update, where state mutations are
// properly captured.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, func() tea.Msg { return initMsg{} })
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case fetchDoneMsg:
		return m.handleFetchDone(msg)

	case debounceMsg:
		return m.handleDebounce(msg)

	case initMsg:
		return m, m.startFetch()
	}

	return m, nil
}

// handleKey processes keyboard input. Navigation keys are handled
// here; everything else feeds the query input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.state = stateCancelled
		m.cancelInflight()
		return m, tea.Quit

	case tea.KeyEnter:
		if m.selection >= 0 && m.selection < len(m.items) {
			m.chosen = m.items[m.selection]
			m.hasChosen = true
		}
		m.cancelInflight()
		return m, tea.Quit

	case tea.KeyUp:
		if m.state != stateLoading && m.selection > 0 {
			m.selection--
		}
		return m, nil

	case tea.KeyDown:
		if m.state != stateLoading && m.selection < len(m.items)-1 {
			m.selection++
		}
		return m, nil

	case tea.KeyTab:
		if len(m.tabs) > 1 {
			m.activeTab = (m.activeTab + 1) % len(m.tabs)
			m.offset = 0
			return m, m.startFetch()
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.offset = 0
		return m, tea.Batch(cmd, m.startDebounce())
	}
	return m, cmd
}

// handleFetchDone processes the result of an async fetch.
func (m Model) handleFetchDone(msg fetchDoneMsg) (tea.Model, tea.Cmd) {
	// Discard stale responses.
	if msg.requestID != m.requestID {
		return m, nil
	}

	if msg.err != nil {
		m.state = stateError
		m.err = msg.err
		m.items = nil
		m.selection = -1
		return m, nil
	}

	m.items = msg.items
	m.atEnd = msg.atEnd

	if len(m.items) == 0 {
		m.state = stateEmpty
		m.selection = -1
	} else {
		m.state = stateLoaded
		m.clampSelection()
	}

	return m, nil
}

// handleDebounce fires the fetch if the debounce timer is still current.
func (m Model) handleDebounce(msg debounceMsg) (tea.Model, tea.Cmd) {
	if msg.id != m.debounceID {
		return m, nil // Stale debounce timer; ignore.
	}
	return m, m.startFetch()
}

// startDebounce increments the debounce counter and returns a
// tea.Tick command that fires after the debounce interval.
func (m *Model) startDebounce() tea.Cmd {
	m.debounceID++
	id := m.debounceID
	return tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return debounceMsg{id: id}
	})
}

// startFetch cancels any in-flight fetch, increments requestID, and
// returns a tea.Cmd that calls the provider.
func (m *Model) startFetch() tea.Cmd {
	m.cancelInflight()
	m.requestID++
	m.state = stateLoading

	reqID := m.requestID
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelFetch = cancel

	tab := m.currentTab()
	req := Request{
		RequestID: reqID,
		Query:     m.input.Value(),
		TabID:     tab.ID,
		Type:      tab.Type,
		Limit:     m.listHeight(),
		Offset:    m.offset,
	}

	p := m.provider
	return func() tea.Msg {
		resp, err := p.Fetch(ctx, req)
		if err != nil {
			return fetchDoneMsg{requestID: reqID, err: err}
		}
		return fetchDoneMsg{
			requestID: reqID,
			items:     resp.Items,
			atEnd:     resp.AtEnd,
		}
	}
}

// cancelInflight cancels any in-progress fetch context.
func (m *Model) cancelInflight() {
	if m.cancelFetch != nil {
		m.cancelFetch()
		m.cancelFetch = nil
	}
}

// clampSelection ensures the selection index is within bounds.
func (m *Model) clampSelection() {
	if len(m.items) == 0 {
		m.selection = -1
		return
	}
	if m.selection < 0 {
		m.selection = 0
	}
	if m.selection >= len(m.items) {
		m.selection = len(m.items) - 1
	}
}

// currentTab returns the active TabDef.
func (m Model) currentTab() config.TabDef {
	if m.activeTab >= 0 && m.activeTab < len(m.tabs) {
		return m.tabs[m.activeTab]
	}
	return config.TabDef{ID: "all", Label: "All"}
}

// listHeight returns the number of visible list rows (terminal height
// minus tab bar, query line, and status row).
func (m Model) listHeight() int {
	const chrome = 3
	h := m.height - chrome
	if h < 1 {
		h = 20 // Sensible default before first WindowSizeMsg
	}
	return h
}

// --- View rendering ---

var (
	activeTabStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62"))
	inactiveTabStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	selectedStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	normalStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	kindStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("73"))
	badgeStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.viewTabBar())
	b.WriteRune('\n')
	b.WriteString(m.viewContent())
	b.WriteRune('\n')
	b.WriteString(m.input.View())

	return b.String()
}

// viewTabBar renders the tab bar.
func (m Model) viewTabBar() string {
	var parts []string
	for i, tab := range m.tabs {
		label := " " + tab.Label + " "
		if i == m.activeTab {
			parts = append(parts, activeTabStyle.Render(label))
		} else {
			parts = append(parts, inactiveTabStyle.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

// viewContent renders the result list or a status message.
func (m Model) viewContent() string {
	switch m.state {
	case stateIdle, stateLoading:
		return dimStyle.Render("Loading...")

	case stateEmpty:
		return dimStyle.Render("No matches")

	case stateError:
		msg := "Error"
		if m.err != nil {
			msg = fmt.Sprintf("Error: %s", m.err)
		}
		return errorStyle.Render(msg)

	case stateCancelled:
		return dimStyle.Render("Cancelled")

	case stateLoaded:
		return m.viewList()

	default:
		return ""
	}
}

// viewList renders the result list with selection marker.
func (m Model) viewList() string {
	var b strings.Builder
	maxItems := m.listHeight()
	for i, item := range m.items {
		if i >= maxItems {
			break
		}
		row := m.renderRow(item, i == m.selection)
		b.WriteString(row)
		if i < len(m.items)-1 && i < maxItems-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}

// renderRow renders one result: kind tag, title, match badges.
func (m Model) renderRow(r search.UnifiedResult, selected bool) string {
	title := r.Title
	if title == "" {
		title = r.ID
	}
	title = ValidateUTF8(StripANSI(title))
	if m.width > 20 {
		title = MiddleTruncate(title, m.width-20)
	}

	kind := kindStyle.Render(fmt.Sprintf("%-10s", r.Kind))
	var badges string
	if len(r.Badges) > 0 {
		parts := make([]string, len(r.Badges))
		for i, bd := range r.Badges {
			parts[i] = string(bd)
		}
		badges = " " + badgeStyle.Render("["+strings.Join(parts, ",")+"]")
	}

	if selected {
		return selectedStyle.Render("> ") + kind + selectedStyle.Render(title) + badges
	}
	return "  " + kind + normalStyle.Render(title) + badges
}
