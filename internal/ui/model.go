// Package ui is the bubbletea front end: a search box over the search
// controller, the result list, and the help, about and profile dialogs run by
// the modal manager.
package ui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"lookout/internal/config"
	"lookout/internal/dom"
	"lookout/internal/domain"
	"lookout/internal/eventbus"
	"lookout/internal/lookup"
	"lookout/internal/modal"
	"lookout/internal/search"
	"lookout/internal/stats"
	"lookout/internal/ui/input"
	inputtypes "lookout/internal/ui/input/types"
	"lookout/internal/ui/views"
)

// Options wires a Model to the rest of the program
type Options struct {
	Config     *config.Config
	ConfigPath string
	Client     lookup.Client
	Bus        eventbus.EventBus
	Stats      *stats.Session
	Version    string

	// Clipboard defaults to the system clipboard
	Clipboard func(string) error
}

// Model represents the application state
type Model struct {
	cfg        *config.Config
	configPath string
	bus        eventbus.EventBus
	stats      *stats.Session
	version    string
	clipboard  func(string) error

	search       *search.Controller
	doc          *dom.Document
	modals       *modal.Manager
	inputHandler *input.Handler
	renderer     *views.Renderer
	helpText     *HelpRenderer
	keys         keyMap
	help         help.Model
	spinner      spinner.Model

	page        pageNodes
	resultNodes []*dom.Node
	resultsKey  string
	profile     *domain.User

	width         int
	height        int
	layout        views.Layout
	statusMessage string
	statusSeq     int
	pending       []tea.Cmd
	unbind        []func()
	disposed      bool
}

// NewModel creates a new Model
func NewModel(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = clipboard.WriteAll
	}

	keys := newKeyMap()
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		cfg:          cfg,
		configPath:   opts.ConfigPath,
		bus:          opts.Bus,
		stats:        opts.Stats,
		version:      opts.Version,
		clipboard:    clip,
		inputHandler: input.New(),
		renderer:     views.NewRenderer(),
		helpText:     NewHelpRenderer(keys),
		keys:         keys,
		help:         help.New(),
		spinner:      sp,
	}

	m.search = search.NewController(opts.Client, search.Options{
		Debounce:       cfg.Search.Debounce(),
		MinQueryLength: cfg.Search.MinQueryLength,
		Bus:            opts.Bus,
	})

	m.buildDocument()
	m.modals = modal.NewManager(m.doc, opts.Bus)

	// Our click handler runs before the trigger handler so the profile
	// target is known by the time the profile dialog opens.
	m.unbind = append(m.unbind,
		m.doc.AddClickListener(m.doc.Root(), m.onClick),
		m.modals.BindTriggers(),
	)

	m.doc.Focus(m.page.query)
	return m
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case search.DebouncedMsg, search.LookupSettledMsg:
		return m, m.updateSearch(msg)

	case spinner.TickMsg:
		if m.search.Status() != domain.StatusLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case helpPagerMsg:
		if msg.err != nil {
			log.Error("help pager failed", "error", msg.err)
			return m, m.flash("Pager unavailable, see log for details")
		}
		return m, nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.statusMessage = ""
		}
		return m, nil

	default:
		return m, m.inputHandler.Update(msg)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	actions, cmd := m.inputHandler.HandleKey(msg, m)

	cmds := []tea.Cmd{cmd}
	for _, action := range actions {
		cmds = append(cmds, m.processAction(action))
	}
	m.syncMode()
	cmds = append(cmds, m.drainPending()...)
	return tea.Batch(cmds...)
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if !m.cfg.UI.Mouse || msg.Action != tea.MouseActionPress {
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if len(m.modals.OpenIDs()) == 0 {
			m.navigate("up")
		}
	case tea.MouseButtonWheelDown:
		if len(m.modals.OpenIDs()) == 0 {
			m.navigate("down")
		}
	case tea.MouseButtonLeft:
		id, ok := m.layout.Hit(msg.X, msg.Y)
		if !ok {
			return nil
		}
		node := m.doc.GetElementByID(id)
		if node == nil {
			return nil
		}
		log.Debug("ui: click", "x", msg.X, "y", msg.Y, "node", node)
		m.doc.DispatchClick(node)
	default:
		return nil
	}

	m.syncMode()
	return tea.Batch(m.drainPending()...)
}

// processAction applies one input action
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.UpdateTextAction:
		return m.search.InputChanged(a.Text)

	case inputtypes.DispatchKeyAction:
		m.doc.DispatchKey(a.Key)

	case inputtypes.NavigateAction:
		m.navigate(a.Direction)

	case inputtypes.FocusSearchAction:
		m.doc.Focus(m.page.query)

	case inputtypes.OpenDialogAction:
		m.modals.Open(a.ID)

	case inputtypes.OpenPagerAction:
		return showHelpInPager(m.helpText.PagerContent())

	case inputtypes.QuitAction:
		m.Dispose()
		return tea.Quit
	}
	return nil
}

// updateSearch feeds a controller message through and mirrors the outcome
// into the document
func (m *Model) updateSearch(msg tea.Msg) tea.Cmd {
	wasLoading := m.search.Status() == domain.StatusLoading
	cmd := m.search.Update(msg)
	m.syncResults()
	m.syncMode()

	if !wasLoading && m.search.Status() == domain.StatusLoading {
		return tea.Batch(cmd, m.spinner.Tick)
	}
	return cmd
}

// syncMode derives the input mode from where focus is
func (m *Model) syncMode() {
	var mode inputtypes.Mode
	active := m.doc.ActiveElement()
	switch {
	case len(m.modals.OpenIDs()) > 0:
		mode = inputtypes.ModeDialog
	case active == nil || active == m.page.query:
		m.doc.Focus(m.page.query)
		mode = inputtypes.ModeSearch
	default:
		mode = inputtypes.ModeNavigate
	}
	m.inputHandler.SetMode(mode, m)
}

// navigate moves focus through the result list. Moving up past the first
// result returns to the query box.
func (m *Model) navigate(direction string) {
	n := len(m.resultNodes)
	if n == 0 {
		if direction == "up" {
			m.doc.Focus(m.page.query)
		}
		return
	}

	idx := -1
	active := m.doc.ActiveElement()
	for i, node := range m.resultNodes {
		if node == active {
			idx = i
			break
		}
	}

	switch direction {
	case "down":
		if idx < n-1 {
			idx++
		}
	case "up":
		if idx <= 0 {
			m.doc.Focus(m.page.query)
			return
		}
		idx--
	case "home":
		idx = 0
	case "end":
		idx = n - 1
	}
	m.doc.Focus(m.resultNodes[idx])
}

func (m *Model) drainPending() []tea.Cmd {
	cmds := m.pending
	m.pending = nil
	return cmds
}

// flash shows a status line for a few seconds
func (m *Model) flash(text string) tea.Cmd {
	m.statusMessage = text
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}

func (m *Model) copyProfileLink() {
	if m.profile == nil {
		return
	}
	url := m.profile.ProfileURL
	if err := m.clipboard(url); err != nil {
		log.Error("clipboard write failed", "error", err)
		if m.bus != nil {
			m.bus.Publish(eventbus.ErrorEvent{Message: "clipboard write failed", Err: err})
		}
		m.pending = append(m.pending, m.flash("Could not copy link"))
		return
	}
	m.pending = append(m.pending, m.flash(fmt.Sprintf("Copied %s", url)))
}

// Dispose cancels outstanding work and removes every listener. It is safe to
// call more than once.
func (m *Model) Dispose() {
	if m.disposed {
		return
	}
	m.disposed = true
	m.search.Dispose()
	m.modals.CloseAll()
	for _, fn := range m.unbind {
		fn()
	}
	m.unbind = nil
}

// Query implements the input context
func (m *Model) Query() string { return m.search.Query() }

func (m *Model) ResultCount() int { return len(m.resultNodes) }

func (m *Model) ActiveDialog() string { return m.modals.Active() }
