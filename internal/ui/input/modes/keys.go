package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"lookout/internal/dom"
	"lookout/internal/ui/input/types"
)

// focusKey maps the keys the page itself understands onto dom keys
func focusKey(msg tea.KeyMsg) (dom.Key, bool) {
	switch msg.String() {
	case "tab":
		return dom.Key{Name: dom.KeyTab}, true
	case "shift+tab":
		return dom.Key{Name: dom.KeyTab, Shift: true}, true
	case "esc":
		return dom.Key{Name: dom.KeyEscape}, true
	case "enter":
		return dom.Key{Name: dom.KeyEnter}, true
	case " ":
		return dom.Key{Name: dom.KeySpace}, true
	}
	return dom.Key{}, false
}

func dispatch(k dom.Key) []types.Action {
	return []types.Action{types.DispatchKeyAction{Key: k}}
}

// globalKey handles bindings shared by every page mode
func globalKey(msg tea.KeyMsg) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{}}, true
	case "f1":
		return []types.Action{types.OpenDialogAction{ID: "help"}}, true
	case "f2":
		return []types.Action{types.OpenDialogAction{ID: "about"}}, true
	}
	return nil, false
}
