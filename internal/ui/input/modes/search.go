package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"lookout/internal/ui/input/types"
)

// SearchMode edits the query. Keys it does not claim go to the text input.
type SearchMode struct {
	textInput *textinput.Model
}

func NewSearchMode(ti *textinput.Model) *SearchMode {
	return &SearchMode{textInput: ti}
}

func (m *SearchMode) Name() string {
	return "search"
}

func (m *SearchMode) Enter(ctx types.Context) []types.Action {
	if m.textInput != nil {
		m.textInput.Focus()
	}
	return nil
}

func (m *SearchMode) Exit(ctx types.Context) []types.Action {
	if m.textInput != nil {
		m.textInput.Blur()
	}
	return nil
}

func (m *SearchMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if actions, ok := globalKey(msg); ok {
		return actions, true
	}

	switch msg.String() {
	case "esc":
		if ctx.Query() != "" {
			return []types.Action{types.ClearTextAction{}}, true
		}
		return nil, true
	case "down":
		if ctx.ResultCount() > 0 {
			return []types.Action{types.NavigateAction{Direction: "down"}}, true
		}
		return nil, true
	case " ":
		// space is text here, not activation
		return nil, false
	}

	if k, ok := focusKey(msg); ok {
		return dispatch(k), true
	}

	return nil, false
}
