package ui

import (
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"itemcursor/internal/cursor"
	"itemcursor/internal/ui/input"
	"itemcursor/internal/ui/logic"
	"itemcursor/internal/ui/services/events"
	"itemcursor/internal/ui/services/navigation"
	"itemcursor/internal/ui/views"
)

// Options configures a new Model
type Options struct {
	Title           string
	Items           []string
	Unavailable     []string
	Wrap            bool
	Required        bool
	InitialIndex    int // -1 for none
	FilterMode      logic.FilterMode
	ShowPageNumbers bool
	ViewportHeight  int // 0 fits the list to the terminal
}

// Model is the list box: it owns the item source and the cursor, turns key
// presses into navigation and records the chosen item.
type Model struct {
	bus  events.EventBus
	opts Options

	// Data
	source   []string // items in arrival order
	sortMode logic.SortMode
	filter   *logic.SearchFilter
	nav      *navigation.Service[string]
	loading  bool

	// UI-specific state
	width         int
	height        int
	keys          input.KeyMap
	filterKeys    input.FilterKeyMap
	textInput     textinput.Model
	filtering     bool
	help          help.Model
	renderer      *views.Renderer
	statusMessage string
	inPagerMode   bool

	// Result
	chosen    string
	hasChosen bool
	quitting  bool

	// Program reference for terminal management
	program *tea.Program
	helpOps *HelpOps
}

// NewModel creates a new UI model
func NewModel(bus events.EventBus, opts Options) *Model {
	if bus == nil {
		bus = events.NewBus()
	}

	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "filter"

	m := &Model{
		bus:        bus,
		opts:       opts,
		source:     append([]string(nil), opts.Items...),
		filter:     logic.NewSearchFilter(nil, opts.Unavailable, opts.FilterMode),
		keys:       input.DefaultKeyMap(),
		filterKeys: input.DefaultFilterKeyMap(),
		textInput:  ti,
		help:       help.New(),
		renderer:   views.NewRenderer(),
	}

	c := cursor.New[string](nil, cursor.Options{
		Wrap:                opts.Wrap,
		CurrentItemRequired: opts.Required,
	})
	m.nav = navigation.NewService(bus, c)
	if opts.ViewportHeight > 0 {
		m.nav.SetViewportHeight(opts.ViewportHeight)
	}
	m.refreshItems()
	if opts.InitialIndex >= 0 {
		// Remembered until enough items have arrived.
		m.nav.MoveToIndex(opts.InitialIndex)
	}

	bus.Subscribe(events.TypeOf(navigation.CursorMovedEvent{}), func(e interface{}) {
		m.statusMessage = ""
	})
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// SetLoading marks the item source as still streaming
func (m *Model) SetLoading(loading bool) {
	m.loading = loading
}

// Chosen returns the item picked with enter, if any
func (m *Model) Chosen() (string, bool) {
	return m.chosen, m.hasChosen
}

// Cursor exposes the underlying cursor
func (m *Model) Cursor() *cursor.Cursor[string] {
	return m.nav.Cursor()
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
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m, m.handleFilterKey(msg)
		}
		return m, m.handleKey(msg)

	case AppendItemsMsg:
		m.source = append(m.source, msg.Items...)
		m.refreshItems()
		return m, nil

	case SourceDoneMsg:
		m.loading = false
		if msg.Err != nil {
			log.Printf("[ERR] item source failed: %v", msg.Err)
			m.statusMessage = "error reading items"
		} else {
			log.Printf("[INFO] loaded %d items", len(m.source))
		}
		return m, nil

	case helpPagerMsg:
		if msg.err != nil {
			// Pager failed: log only; do not surface in status bar
			log.Printf("[WARN] help pager failed: %v", msg.err)
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil
	}

	if m.filtering {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey handles keys in normal mode
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.nav.Navigate(navigation.DirectionUp)
	case key.Matches(msg, m.keys.Down):
		m.nav.Navigate(navigation.DirectionDown)
	case key.Matches(msg, m.keys.Home):
		m.nav.Navigate(navigation.DirectionHome)
	case key.Matches(msg, m.keys.End):
		m.nav.Navigate(navigation.DirectionEnd)
	case key.Matches(msg, m.keys.PageUp):
		m.nav.Navigate(navigation.DirectionPageUp)
	case key.Matches(msg, m.keys.PageDown):
		m.nav.Navigate(navigation.DirectionPageDown)

	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.textInput.SetValue(m.filter.Query())
		m.textInput.CursorEnd()
		m.updateViewportHeight()
		return tea.Batch(m.textInput.Focus(), textinput.Blink)

	case key.Matches(msg, m.keys.ClearFilter):
		if m.filter.Active() {
			m.setQuery("")
		}

	case key.Matches(msg, m.keys.ToggleWrap):
		m.nav.SetWrap(!m.nav.Cursor().Wraps())
		m.statusMessage = onOff("wrap", m.nav.Cursor().Wraps())

	case key.Matches(msg, m.keys.ToggleRequire):
		m.nav.SetRequired(!m.nav.Cursor().Required())
		m.statusMessage = onOff("required", m.nav.Cursor().Required())

	case key.Matches(msg, m.keys.Sort):
		m.sortMode = m.sortMode.Next()
		m.refreshItems()

	case key.Matches(msg, m.keys.Choose):
		item, ok := m.nav.Cursor().CurrentItem()
		if !ok {
			m.statusMessage = "nothing to choose"
			return nil
		}
		log.Printf("[INFO] chose %q", item)
		m.chosen, m.hasChosen = item, true
		m.quitting = true
		return tea.Quit

	case key.Matches(msg, m.keys.Help):
		if m.program == nil {
			m.help.ShowAll = !m.help.ShowAll
			return nil
		}
		return m.fetchHelpPager(RenderHelpContent(m.keys))
	}
	return nil
}

// handleFilterKey edits the filter query, applying it as the user types
func (m *Model) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.filterKeys.Apply):
		m.stopFiltering()
		return nil
	case key.Matches(msg, m.filterKeys.Cancel):
		m.stopFiltering()
		m.setQuery("")
		return nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	if m.textInput.Value() != m.filter.Query() {
		m.setQuery(m.textInput.Value())
	}
	return cmd
}

func (m *Model) stopFiltering() {
	m.filtering = false
	m.textInput.Blur()
	m.updateViewportHeight()
}

func (m *Model) setQuery(query string) {
	m.filter.SetQuery(query)
	if !m.filtering {
		m.textInput.Reset()
	}
	m.refreshItems()
}

// refreshItems pushes sorted, filtered items and their availability into
// the cursor, which keeps the current item by identity.
func (m *Model) refreshItems() {
	m.filter.SetSource(logic.SortItems(m.source, m.sortMode))
	items, flags := m.filter.Apply()
	m.nav.SetItems(items, flags)
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.helpOps.ShowHelpInPager(helpContent)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return helpPagerMsg{err: err}
	}
}

// updateViewportHeight calculates the available height for the item list
func (m *Model) updateViewportHeight() {
	if m.opts.ViewportHeight > 0 {
		m.nav.SetViewportHeight(m.opts.ViewportHeight)
		return
	}
	if m.height == 0 {
		return
	}
	reserved := views.ReservedLines
	if m.filtering {
		reserved++
	}
	m.nav.SetViewportHeight(m.height - reserved)
}

// View renders the list box
func (m *Model) View() string {
	if m.quitting || m.inPagerMode {
		return ""
	}

	c := m.nav.Cursor()
	status := m.statusMessage
	switch {
	case m.loading:
		status = fmt.Sprintf("loading… %d", len(m.source))
	case status == "" && m.filter.Active():
		status = fmt.Sprintf("%d of %d match", m.filter.MatchCount(), len(m.source))
	}

	filterInput := ""
	var helpView string
	if m.filtering {
		filterInput = m.textInput.View()
		helpView = m.help.View(m.filterKeys)
	} else {
		helpView = m.help.View(m.keys)
	}

	return m.renderer.Render(views.ViewState{
		Width:           m.width,
		Height:          m.height,
		Title:           m.opts.Title,
		Items:           c.Items(),
		AvailableFlags:  c.State().AvailableItemFlags,
		CurrentIndex:    c.CurrentIndex(),
		ViewportOffset:  m.nav.GetViewportOffset(),
		ViewportHeight:  m.nav.GetViewportHeight(),
		FilterQuery:     m.filter.Query(),
		FilterInput:     filterInput,
		Wrap:            c.Wraps(),
		Required:        c.Required(),
		SortLabel:       m.sortMode.String(),
		ShowPageNumbers: m.opts.ShowPageNumbers,
		StatusMessage:   status,
		HelpView:        helpView,
	})
}

func onOff(name string, on bool) string {
	if on {
		return name + " on"
	}
	return name + " off"
}
