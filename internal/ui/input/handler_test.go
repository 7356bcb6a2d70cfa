package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"lookout/internal/dom"
	"lookout/internal/ui/input/types"
)

type fakeContext struct {
	query   string
	results int
	dialog  string
}

func (c fakeContext) Query() string        { return c.query }
func (c fakeContext) ResultCount() int     { return c.results }
func (c fakeContext) ActiveDialog() string { return c.dialog }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSearchModeEditsText(t *testing.T) {
	h := New()

	actions, _ := h.HandleKey(runes("g"), fakeContext{})
	assert.Equal(t, []types.Action{types.UpdateTextAction{Text: "g"}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, fakeContext{query: "g"})
	assert.Equal(t, []types.Action{types.UpdateTextAction{Text: "g "}}, actions)
	assert.Equal(t, "g ", h.TextInput().Value())
}

func TestSearchModeKeys(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
		ctx  fakeContext
		want []types.Action
	}{
		{"tab moves focus", tea.KeyMsg{Type: tea.KeyTab}, fakeContext{},
			[]types.Action{types.DispatchKeyAction{Key: dom.Key{Name: dom.KeyTab}}}},
		{"shift+tab moves focus back", tea.KeyMsg{Type: tea.KeyShiftTab}, fakeContext{},
			[]types.Action{types.DispatchKeyAction{Key: dom.Key{Name: dom.KeyTab, Shift: true}}}},
		{"down enters results", tea.KeyMsg{Type: tea.KeyDown}, fakeContext{results: 3},
			[]types.Action{types.NavigateAction{Direction: "down"}}},
		{"down without results", tea.KeyMsg{Type: tea.KeyDown}, fakeContext{}, nil},
		{"esc on empty query", tea.KeyMsg{Type: tea.KeyEsc}, fakeContext{}, nil},
		{"f1 opens help", tea.KeyMsg{Type: tea.KeyF1}, fakeContext{},
			[]types.Action{types.OpenDialogAction{ID: "help"}}},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, fakeContext{},
			[]types.Action{types.QuitAction{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New()
			actions, _ := h.HandleKey(tt.key, tt.ctx)
			assert.Equal(t, tt.want, actions)
			assert.Equal(t, "", h.TextInput().Value())
		})
	}
}

func TestEscClearsNonEmptyQuery(t *testing.T) {
	h := New()
	h.HandleKey(runes("gae"), fakeContext{})
	assert.Equal(t, "gae", h.TextInput().Value())

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, fakeContext{query: "gae"})
	assert.Equal(t, []types.Action{types.UpdateTextAction{Text: ""}}, actions)
	assert.Equal(t, "", h.TextInput().Value())
}

func TestNavigateModeSwallowsStrayKeys(t *testing.T) {
	h := New()
	h.SetMode(types.ModeNavigate, fakeContext{})
	assert.False(t, h.TextInput().Focused())

	actions, _ := h.HandleKey(runes("x"), fakeContext{})
	assert.Empty(t, actions)
	assert.Equal(t, "", h.TextInput().Value())

	actions, _ = h.HandleKey(runes("j"), fakeContext{})
	assert.Equal(t, []types.Action{types.NavigateAction{Direction: "down"}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, fakeContext{})
	assert.Equal(t, []types.Action{types.DispatchKeyAction{Key: dom.Key{Name: dom.KeyEnter}}}, actions)

	actions, _ = h.HandleKey(runes("/"), fakeContext{})
	assert.Equal(t, []types.Action{types.FocusSearchAction{}}, actions)
}

func TestDialogModeKeys(t *testing.T) {
	h := New()
	h.SetMode(types.ModeDialog, fakeContext{dialog: "help"})
	assert.Equal(t, types.ModeDialog, h.CurrentMode())

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, fakeContext{dialog: "help"})
	assert.Equal(t, []types.Action{types.DispatchKeyAction{Key: dom.Key{Name: dom.KeyEscape}}}, actions)

	actions, _ = h.HandleKey(runes("l"), fakeContext{dialog: "help"})
	assert.Equal(t, []types.Action{types.DispatchKeyAction{Key: dom.Key{Name: dom.KeyTab}}}, actions)

	actions, _ = h.HandleKey(runes("p"), fakeContext{dialog: "help"})
	assert.Equal(t, []types.Action{types.OpenPagerAction{}}, actions)

	actions, _ = h.HandleKey(runes("p"), fakeContext{dialog: "about"})
	assert.Empty(t, actions)

	actions, _ = h.HandleKey(runes("q"), fakeContext{dialog: "about"})
	assert.Empty(t, actions, "q does not quit from inside a dialog")
}

func TestSetModeIsIdempotent(t *testing.T) {
	h := New()
	assert.Nil(t, h.SetMode(types.ModeSearch, fakeContext{}))
	h.SetMode(types.ModeNavigate, fakeContext{})
	h.SetMode(types.ModeSearch, fakeContext{})
	assert.True(t, h.TextInput().Focused())
}
