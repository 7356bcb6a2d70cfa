// Package modal manages accessible modal dialogs on a dom.Document.
//
// A modal is a RoleModal overlay node, hidden while closed, whose RoleDialog
// child holds the content. While a modal is open its dialog traps Tab and
// Shift+Tab, Escape closes it, and a click on the bare overlay (the backdrop)
// closes it. Closing returns focus to whatever had it before the modal opened,
// provided that element can still take focus.
//
// Nested modals are not supported: Escape and CloseEnclosing only resolve the
// nearest enclosing modal. Independent modals may be open at the same time and
// each keeps its own trap.
package modal

import (
	"sort"

	"github.com/charmbracelet/log"

	"lookout/internal/dom"
	"lookout/internal/eventbus"
)

type session struct {
	overlay     *dom.Node
	dialog      *dom.Node
	focusable   []*dom.Node
	returnFocus *dom.Node
	removeKey   func()
	removeClick func()
}

// Manager tracks one focus-trap session per open modal
type Manager struct {
	doc      *dom.Document
	bus      eventbus.EventBus
	sessions map[string]*session
}

// NewManager creates a manager for modals in doc. bus may be nil.
func NewManager(doc *dom.Document, bus eventbus.EventBus) *Manager {
	return &Manager{
		doc:      doc,
		bus:      bus,
		sessions: make(map[string]*session),
	}
}

// Open shows the modal with the given id. It returns false when the modal is
// already open or no modal has that id.
func (m *Manager) Open(id string) bool {
	if _, open := m.sessions[id]; open {
		return false
	}
	overlay := m.doc.GetElementByID(id)
	if overlay == nil || overlay.Role != dom.RoleModal {
		log.Debug("modal: open ignored", "id", id)
		return false
	}

	overlay.SetHidden(false)
	dialog := dialogOf(overlay)

	s := &session{
		overlay:     overlay,
		dialog:      dialog,
		focusable:   dom.FocusOrder(dialog),
		returnFocus: m.doc.ActiveElement(),
	}

	if len(s.focusable) > 0 {
		m.doc.Focus(s.focusable[0])
	} else {
		if _, ok := dialog.TabIndex(); !ok {
			dialog.SetTabIndex(-1)
		}
		m.doc.Focus(dialog)
	}

	s.removeKey = m.doc.AddKeyListener(dialog, func(e *dom.Event) {
		m.handleKey(id, s, e)
	})
	s.removeClick = m.doc.AddClickListener(overlay, func(e *dom.Event) {
		if e.Target == overlay {
			m.Close(id)
		}
	})
	m.sessions[id] = s

	log.Debug("modal: opened", "id", id, "focusable", len(s.focusable), "return_focus", s.returnFocus)
	m.publish(eventbus.ModalOpenedEvent{ID: id})
	return true
}

// Close hides the modal and restores focus. It returns false when the modal
// was not open.
func (m *Manager) Close(id string) bool {
	s, open := m.sessions[id]
	if !open {
		return false
	}
	delete(m.sessions, id)

	s.overlay.SetHidden(true)
	s.removeKey()
	s.removeClick()

	restored := false
	if s.returnFocus != nil && m.doc.CanFocus(s.returnFocus) {
		restored = m.doc.Focus(s.returnFocus)
	}

	log.Debug("modal: closed", "id", id, "focus_restored", restored)
	m.publish(eventbus.ModalClosedEvent{ID: id, FocusRestored: restored})
	return true
}

// CloseEnclosing closes the nearest modal containing node
func (m *Manager) CloseEnclosing(node *dom.Node) bool {
	if node == nil {
		return false
	}
	overlay := node.Closest(func(n *dom.Node) bool { return n.Role == dom.RoleModal })
	if overlay == nil {
		return false
	}
	return m.Close(overlay.ID)
}

// BindTriggers handles clicks on elements carrying the open-modal or
// close-modal attribute anywhere in the document. The returned function
// removes the handler.
func (m *Manager) BindTriggers() func() {
	return m.doc.AddClickListener(m.doc.Root(), func(e *dom.Event) {
		if opener := e.Target.Closest(hasAttr(dom.AttrOpenModal)); opener != nil {
			id, _ := opener.Attr(dom.AttrOpenModal)
			m.Open(id)
			return
		}
		if closer := e.Target.Closest(hasAttr(dom.AttrCloseModal)); closer != nil {
			m.CloseEnclosing(closer)
		}
	})
}

func (m *Manager) IsOpen(id string) bool {
	_, open := m.sessions[id]
	return open
}

// OpenIDs returns the ids of all open modals, sorted
func (m *Manager) OpenIDs() []string {
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Active returns the id of the open modal containing focus, or "".
func (m *Manager) Active() string {
	focused := m.doc.ActiveElement()
	if focused == nil {
		return ""
	}
	for id, s := range m.sessions {
		if s.overlay.Contains(focused) {
			return id
		}
	}
	return ""
}

// CloseAll closes every open modal
func (m *Manager) CloseAll() {
	for _, id := range m.OpenIDs() {
		m.Close(id)
	}
}

func (m *Manager) handleKey(id string, s *session, e *dom.Event) {
	switch e.Key.Name {
	case dom.KeyEscape:
		e.PreventDefault()
		e.StopPropagation()
		m.Close(id)
	case dom.KeyTab:
		m.trapTab(s, e)
	}
}

// trapTab wraps focus at the ends of the dialog. Moves between the ends are
// left to the document's default Tab action.
func (m *Manager) trapTab(s *session, e *dom.Event) {
	if len(s.focusable) == 0 {
		e.PreventDefault()
		return
	}
	first := s.focusable[0]
	last := s.focusable[len(s.focusable)-1]

	active := m.doc.ActiveElement()
	inOrder := false
	for _, n := range s.focusable {
		if n == active {
			inOrder = true
			break
		}
	}

	switch {
	case e.Key.Shift && (active == first || !inOrder):
		e.PreventDefault()
		m.doc.Focus(last)
	case !e.Key.Shift && (active == last || !inOrder):
		e.PreventDefault()
		m.doc.Focus(first)
	}
}

func (m *Manager) publish(event eventbus.DomainEvent) {
	if m.bus != nil {
		m.bus.Publish(event)
	}
}

func dialogOf(overlay *dom.Node) *dom.Node {
	var found *dom.Node
	var walk func(*dom.Node)
	walk = func(n *dom.Node) {
		for _, c := range n.Children() {
			if found != nil {
				return
			}
			if c.Role == dom.RoleDialog {
				found = c
				return
			}
			walk(c)
		}
	}
	walk(overlay)
	if found == nil {
		return overlay
	}
	return found
}

func hasAttr(name string) func(*dom.Node) bool {
	return func(n *dom.Node) bool {
		_, ok := n.Attr(name)
		return ok
	}
}
