package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"lookout/internal/ui/input/types"
)

// NavigateMode moves through results and page buttons
type NavigateMode struct{}

func NewNavigateMode() *NavigateMode {
	return &NavigateMode{}
}

func (m *NavigateMode) Name() string {
	return "navigate"
}

func (m *NavigateMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NavigateMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NavigateMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if actions, ok := globalKey(msg); ok {
		return actions, true
	}

	switch msg.String() {
	case "q":
		return []types.Action{types.QuitAction{}}, true
	case "esc", "/":
		return []types.Action{types.FocusSearchAction{}}, true
	case "up", "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case "down", "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case "home", "g":
		return []types.Action{types.NavigateAction{Direction: "home"}}, true
	case "end", "G":
		return []types.Action{types.NavigateAction{Direction: "end"}}, true
	case "?":
		return []types.Action{types.OpenDialogAction{ID: "help"}}, true
	case "i":
		return []types.Action{types.OpenDialogAction{ID: "about"}}, true
	}

	if k, ok := focusKey(msg); ok {
		return dispatch(k), true
	}

	// Swallow everything else so stray keys do not leak into the query
	return nil, true
}
