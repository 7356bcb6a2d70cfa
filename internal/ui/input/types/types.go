package types

import tea "github.com/charmbracelet/bubbletea"

// Mode represents an input mode
type Mode int

const (
	// ModeSearch: the query box has focus and printable keys edit it
	ModeSearch Mode = iota
	// ModeNavigate: focus is on a result or a page button
	ModeNavigate
	// ModeDialog: a modal dialog holds focus
	ModeDialog
)

func (m Mode) String() string {
	switch m {
	case ModeSearch:
		return "search"
	case ModeNavigate:
		return "navigate"
	case ModeDialog:
		return "dialog"
	default:
		return "unknown"
	}
}

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// Context provides read-only access to model state needed for input handling
type Context interface {
	Query() string
	ResultCount() int
	ActiveDialog() string
}

// ModeHandler handles input for a specific mode
type ModeHandler interface {
	// HandleKey processes a key message and returns actions and whether to consume the event
	HandleKey(msg tea.KeyMsg, ctx Context) ([]Action, bool)

	// Enter is called when entering this mode
	Enter(ctx Context) []Action

	// Exit is called when leaving this mode
	Exit(ctx Context) []Action

	// Name returns the mode name for display
	Name() string
}
