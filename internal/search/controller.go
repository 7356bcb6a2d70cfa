// Package search holds the debounced, cancelable query controller behind the
// search box.
//
// The controller is driven from the bubbletea event loop. Keystrokes come in
// through InputChanged, the debounce timer and lookup completions come back
// as messages through Update. Every lookup runs under a fresh token and any
// settlement carrying an older token is dropped, so the visible state only
// ever reflects the most recent query.
package search

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"lookout/internal/config"
	"lookout/internal/domain"
	"lookout/internal/eventbus"
	"lookout/internal/lookup"
	"lookout/internal/task"
)

// ErrorMessage is the only failure text shown to the user
const ErrorMessage = "Failed to fetch results. Please try again later."

const (
	// DefaultDebounce is the quiet period used when Options.Debounce is unset
	DefaultDebounce = time.Duration(config.DefaultDebounceMS) * time.Millisecond
	// DefaultMinQueryLength is used when Options.MinQueryLength is unset
	DefaultMinQueryLength = config.DefaultMinQueryLength
)

// DebouncedMsg is delivered when the debounce window for Version elapses
type DebouncedMsg struct {
	Version uint64
	Text    string
}

// LookupSettledMsg carries the outcome of the lookup started under Token
type LookupSettledMsg struct {
	Token uint64
	Query string
	Users []domain.User
	Err   error
}

// Options tunes a Controller. Zero values fall back to the defaults.
type Options struct {
	Debounce       time.Duration
	MinQueryLength int
	Bus            eventbus.EventBus
}

// Controller owns the query text, the debounce version and the in-flight lookup
type Controller struct {
	client   lookup.Client
	bus      eventbus.EventBus
	debounce time.Duration
	minLen   int

	query     string
	debounced string
	settled   bool
	version   uint64
	token     uint64

	status     domain.SearchStatus
	results    []domain.User
	errMessage string

	inflight *task.Handle[[]domain.User]
}

// NewController creates a controller that looks users up through client
func NewController(client lookup.Client, opts Options) *Controller {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.MinQueryLength <= 0 {
		opts.MinQueryLength = DefaultMinQueryLength
	}
	return &Controller{
		client:   client,
		bus:      opts.Bus,
		debounce: opts.Debounce,
		minLen:   opts.MinQueryLength,
		status:   domain.StatusIdle,
	}
}

// InputChanged records the raw text and restarts the debounce window
func (c *Controller) InputChanged(text string) tea.Cmd {
	c.query = text
	c.version++
	version := c.version
	return tea.Tick(c.debounce, func(time.Time) tea.Msg {
		return DebouncedMsg{Version: version, Text: text}
	})
}

// Update routes controller messages. Anything else is ignored.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case DebouncedMsg:
		if msg.Version != c.version {
			return nil
		}
		return c.Settle(msg.Text)
	case LookupSettledMsg:
		c.LookupSettled(msg)
	}
	return nil
}

// Settle reacts to the debounced text. It returns the command that waits for
// the new lookup, or nil when no lookup was started.
func (c *Controller) Settle(text string) tea.Cmd {
	text = strings.TrimSpace(text)
	if c.settled && text == c.debounced {
		return nil
	}
	c.settled = true
	c.debounced = text

	if utf8.RuneCountInString(text) < c.minLen {
		c.cancelInflight()
		c.token++
		c.status = domain.StatusIdle
		c.results = nil
		c.errMessage = ""
		return nil
	}

	c.cancelInflight()
	c.token++
	token := c.token
	c.status = domain.StatusLoading
	c.results = nil
	c.errMessage = ""

	client := c.client
	h := task.Start(context.Background(), token, func(ctx context.Context) ([]domain.User, error) {
		return client.Lookup(ctx, text)
	})
	c.inflight = h

	log.Debug("search: lookup started", "query", text, "token", token)
	c.publish(eventbus.QueryIssuedEvent{Query: text, Token: token})

	return func() tea.Msg {
		r := h.Wait()
		return LookupSettledMsg{Token: r.Token, Query: text, Users: r.Value, Err: r.Err}
	}
}

// LookupSettled applies a lookup outcome if it belongs to the current token
func (c *Controller) LookupSettled(msg LookupSettledMsg) {
	if msg.Token != c.token {
		log.Debug("search: dropping stale result", "query", msg.Query, "token", msg.Token, "current", c.token)
		return
	}
	c.inflight = nil

	switch {
	case msg.Err == nil:
		c.status = domain.StatusSuccess
		c.results = msg.Users
		if c.results == nil {
			c.results = []domain.User{}
		}
		c.errMessage = ""
	case task.IsCanceled(msg.Err):
		return
	default:
		log.Error("search: lookup failed", "query", msg.Query, "error", msg.Err)
		c.status = domain.StatusError
		c.results = nil
		c.errMessage = ErrorMessage
	}

	c.publish(eventbus.SearchSettledEvent{
		Query:   msg.Query,
		Token:   msg.Token,
		Status:  c.status,
		Results: len(c.results),
	})
}

// Dispose invalidates the pending tick and cancels any outstanding lookup
func (c *Controller) Dispose() {
	c.version++
	c.cancelInflight()
	c.token++
}

func (c *Controller) cancelInflight() {
	if c.inflight == nil {
		return
	}
	c.inflight.Cancel()
	c.inflight = nil
}

func (c *Controller) publish(event eventbus.DomainEvent) {
	if c.bus != nil {
		c.bus.Publish(event)
	}
}

// Query returns the raw input text
func (c *Controller) Query() string { return c.query }

// Debounced returns the last settled, trimmed text
func (c *Controller) Debounced() string { return c.debounced }

func (c *Controller) Status() domain.SearchStatus { return c.status }

func (c *Controller) Results() []domain.User { return c.results }

func (c *Controller) ErrMessage() string { return c.errMessage }

func (c *Controller) Token() uint64 { return c.token }

// Version returns the current debounce version
func (c *Controller) Version() uint64 { return c.version }

// InFlight reports whether a lookup is outstanding
func (c *Controller) InFlight() bool { return c.inflight != nil }

// NoResults reports the settled-but-empty case for a non-empty query
func (c *Controller) NoResults() bool {
	return c.status == domain.StatusSuccess && len(c.results) == 0 && c.debounced != ""
}
