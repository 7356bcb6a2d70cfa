package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"lookout/internal/dom"
	"lookout/internal/ui/input/types"
)

// DialogMode is active while a modal holds focus. The page behind it gets
// no keys at all.
type DialogMode struct{}

func NewDialogMode() *DialogMode {
	return &DialogMode{}
}

func (m *DialogMode) Name() string {
	return "dialog"
}

func (m *DialogMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *DialogMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *DialogMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{}}, true
	case "left", "h":
		return dispatch(dom.Key{Name: dom.KeyTab, Shift: true}), true
	case "right", "l":
		return dispatch(dom.Key{Name: dom.KeyTab}), true
	case "p":
		if ctx.ActiveDialog() == "help" {
			return []types.Action{types.OpenPagerAction{}}, true
		}
	}

	if k, ok := focusKey(msg); ok {
		return dispatch(k), true
	}

	return nil, true
}
