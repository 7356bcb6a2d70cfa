package modal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lookout/internal/dom"
	"lookout/internal/eventbus"
)

type fixture struct {
	doc  *dom.Document
	mgr  *Manager
	node map[string]*dom.Node
}

func (f *fixture) add(parent *dom.Node, n *dom.Node) *dom.Node {
	if err := f.doc.Append(parent, n); err != nil {
		panic(err)
	}
	f.node[n.ID] = n
	return n
}

func (f *fixture) key(name string, shift bool) {
	f.doc.DispatchKey(dom.Key{Name: name, Shift: shift})
}

func (f *fixture) focused() string {
	if n := f.doc.ActiveElement(); n != nil {
		return n.ID
	}
	return ""
}

// newFixture builds a page with an opener button and two modals:
// "a" with three focusable controls and "empty" with only text.
func newFixture(t *testing.T, bus eventbus.EventBus) *fixture {
	t.Helper()
	f := &fixture{doc: dom.NewDocument(), node: map[string]*dom.Node{}}
	root := f.doc.Root()

	f.add(root, dom.NewNode("search", dom.RoleInput, "Search"))
	f.add(root, dom.NewNode("open-a", dom.RoleButton, "Open A")).SetAttr(dom.AttrOpenModal, "a")
	f.add(root, dom.NewNode("open-empty", dom.RoleButton, "Open empty")).SetAttr(dom.AttrOpenModal, "empty")

	a := f.add(root, dom.NewNode("a", dom.RoleModal, ""))
	a.SetHidden(true)
	dialogA := f.add(a, dom.NewNode("a-dialog", dom.RoleDialog, "Modal A"))
	f.add(dialogA, dom.NewNode("a-title", dom.RoleText, "Modal A"))
	f.add(dialogA, dom.NewNode("a-name", dom.RoleInput, "Name"))
	f.add(dialogA, dom.NewNode("a-ok", dom.RoleButton, "OK"))
	f.add(dialogA, dom.NewNode("a-close", dom.RoleButton, "Close")).SetAttr(dom.AttrCloseModal, "")

	empty := f.add(root, dom.NewNode("empty", dom.RoleModal, ""))
	empty.SetHidden(true)
	dialogEmpty := f.add(empty, dom.NewNode("empty-dialog", dom.RoleDialog, "Notice"))
	f.add(dialogEmpty, dom.NewNode("empty-text", dom.RoleText, "Nothing to click"))

	f.mgr = NewManager(f.doc, bus)
	return f
}

func TestOpenFocusesFirstAndCloseRestores(t *testing.T) {
	f := newFixture(t, nil)
	require.True(t, f.doc.Focus(f.node["open-a"]))

	require.True(t, f.mgr.Open("a"))
	assert.False(t, f.node["a"].Hidden())
	assert.Equal(t, "a-name", f.focused())
	assert.Equal(t, "a", f.mgr.Active())

	require.True(t, f.mgr.Close("a"))
	assert.True(t, f.node["a"].Hidden())
	assert.Equal(t, "open-a", f.focused())
	assert.Empty(t, f.mgr.Active())
}

func TestTabAndShiftTabWrapInsideDialog(t *testing.T) {
	f := newFixture(t, nil)
	f.mgr.Open("a")

	f.key(dom.KeyTab, false)
	assert.Equal(t, "a-ok", f.focused())
	f.key(dom.KeyTab, false)
	assert.Equal(t, "a-close", f.focused())

	f.key(dom.KeyTab, false)
	assert.Equal(t, "a-name", f.focused(), "tab on last wraps to first")

	f.key(dom.KeyTab, true)
	assert.Equal(t, "a-close", f.focused(), "shift+tab on first wraps to last")

	f.key(dom.KeyTab, true)
	assert.Equal(t, "a-ok", f.focused())
}

func TestEscapeClosesOnlyTheFocusedModal(t *testing.T) {
	f := newFixture(t, nil)
	var rootSawEscape bool
	f.doc.AddKeyListener(f.doc.Root(), func(e *dom.Event) {
		if e.Key.Name == dom.KeyEscape {
			rootSawEscape = true
		}
	})

	f.mgr.Open("empty")
	f.mgr.Open("a")
	require.Equal(t, []string{"a", "empty"}, f.mgr.OpenIDs())
	require.Equal(t, "a", f.mgr.Active())

	f.key(dom.KeyEscape, false)

	assert.False(t, f.mgr.IsOpen("a"))
	assert.True(t, f.mgr.IsOpen("empty"))
	assert.False(t, rootSawEscape, "escape does not propagate past the dialog")
}

func TestEscapeOutsideModalsDoesNothing(t *testing.T) {
	f := newFixture(t, nil)
	f.mgr.Open("a")
	require.True(t, f.doc.Focus(f.node["search"]))

	f.key(dom.KeyEscape, false)
	assert.True(t, f.mgr.IsOpen("a"))
}

func TestBackdropClickCloses(t *testing.T) {
	f := newFixture(t, nil)
	f.doc.Focus(f.node["search"])
	f.mgr.Open("a")

	f.doc.DispatchClick(f.node["a-dialog"])
	f.doc.DispatchClick(f.node["a-ok"])
	assert.True(t, f.mgr.IsOpen("a"), "clicks inside the dialog keep it open")

	f.doc.DispatchClick(f.node["a"])
	assert.False(t, f.mgr.IsOpen("a"))
	assert.Equal(t, "search", f.focused())
}

func TestDoubleOpenIsNoOp(t *testing.T) {
	f := newFixture(t, nil)
	f.doc.Focus(f.node["open-a"])
	baseline := f.doc.ListenerCount()

	require.True(t, f.mgr.Open("a"))
	f.key(dom.KeyTab, false)
	require.Equal(t, "a-ok", f.focused())
	withOne := f.doc.ListenerCount()

	assert.False(t, f.mgr.Open("a"))
	assert.Equal(t, withOne, f.doc.ListenerCount(), "no duplicate trap")
	assert.Equal(t, "a-ok", f.focused(), "focus unchanged")

	f.mgr.Close("a")
	assert.Equal(t, baseline, f.doc.ListenerCount())
	assert.Equal(t, "open-a", f.focused(), "return focus captured by the first open")
}

func TestDoubleCloseAndUnknownIDs(t *testing.T) {
	f := newFixture(t, nil)

	assert.False(t, f.mgr.Close("a"))
	assert.False(t, f.mgr.Open("missing"))
	assert.False(t, f.mgr.Open("search"), "non-modal nodes cannot be opened")
	assert.False(t, f.mgr.Close("missing"))
	assert.False(t, f.mgr.CloseEnclosing(f.node["search"]))
	assert.False(t, f.mgr.CloseEnclosing(nil))
}

func TestListenersDoNotLeakAcrossCycles(t *testing.T) {
	f := newFixture(t, nil)
	baseline := f.doc.ListenerCount()

	for i := 0; i < 50; i++ {
		f.mgr.Open("a")
		f.mgr.Open("empty")
		if i%2 == 0 {
			f.key(dom.KeyEscape, false)
		}
		f.mgr.CloseAll()
	}

	assert.Equal(t, baseline, f.doc.ListenerCount())
	assert.Empty(t, f.mgr.OpenIDs())
}

func TestDetachedReturnFocusIsSkipped(t *testing.T) {
	f := newFixture(t, nil)
	f.doc.Focus(f.node["open-a"])
	f.mgr.Open("a")

	f.doc.Remove(f.node["open-a"])

	assert.True(t, f.mgr.Close("a"))
	assert.Empty(t, f.focused())
}

func TestHiddenReturnFocusIsSkipped(t *testing.T) {
	f := newFixture(t, nil)
	f.doc.Focus(f.node["search"])
	f.mgr.Open("a")

	f.node["search"].SetHidden(true)
	f.mgr.Close("a")

	assert.Empty(t, f.focused())
}

func TestDialogWithoutFocusableTakesFocus(t *testing.T) {
	f := newFixture(t, nil)
	f.doc.Focus(f.node["search"])

	require.True(t, f.mgr.Open("empty"))
	assert.Equal(t, "empty-dialog", f.focused())

	f.key(dom.KeyTab, false)
	assert.Equal(t, "empty-dialog", f.focused(), "tab cannot leave an empty dialog")

	f.key(dom.KeyEscape, false)
	assert.False(t, f.mgr.IsOpen("empty"))
	assert.Equal(t, "search", f.focused())
}

func TestTriggerAttributes(t *testing.T) {
	f := newFixture(t, nil)
	unbind := f.mgr.BindTriggers()
	defer unbind()

	f.doc.Focus(f.node["open-a"])
	f.key(dom.KeyEnter, false)
	require.True(t, f.mgr.IsOpen("a"))

	f.doc.DispatchClick(f.node["a-close"])
	assert.False(t, f.mgr.IsOpen("a"))
	assert.Equal(t, "open-a", f.focused())
}

func TestCloseEnclosing(t *testing.T) {
	f := newFixture(t, nil)
	f.mgr.Open("a")

	assert.True(t, f.mgr.CloseEnclosing(f.node["a-ok"]))
	assert.False(t, f.mgr.IsOpen("a"))
}

func TestFocusOrderRecomputedOnOpen(t *testing.T) {
	f := newFixture(t, nil)
	f.mgr.Open("a")
	f.mgr.Close("a")

	f.node["a-name"].Disabled = true
	f.mgr.Open("a")
	assert.Equal(t, "a-ok", f.focused())

	f.key(dom.KeyTab, true)
	assert.Equal(t, "a-close", f.focused())
}

func TestManagerPublishesEvents(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	events := make(chan eventbus.DomainEvent, 4)
	bus.Subscribe(eventbus.EventModalOpened, func(e eventbus.DomainEvent) { events <- e })
	bus.Subscribe(eventbus.EventModalClosed, func(e eventbus.DomainEvent) { events <- e })

	f := newFixture(t, bus)
	f.doc.Focus(f.node["search"])
	f.mgr.Open("a")
	f.mgr.Close("a")

	var got []eventbus.DomainEvent
	require.Eventually(t, func() bool {
		select {
		case e := <-events:
			got = append(got, e)
		default:
		}
		return len(got) == 2
	}, time.Second, 5*time.Millisecond)

	assert.Contains(t, got, eventbus.ModalOpenedEvent{ID: "a"})
	assert.Contains(t, got, eventbus.ModalClosedEvent{ID: "a", FocusRestored: true})
}
