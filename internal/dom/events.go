package dom

// Key names understood by the default actions
const (
	KeyTab    = "tab"
	KeyEscape = "esc"
	KeyEnter  = "enter"
	KeySpace  = "space"
)

// Key is a key press
type Key struct {
	Name  string
	Shift bool
}

// Event is passed to listeners while it bubbles
type Event struct {
	Key           Key
	Target        *Node
	CurrentTarget *Node

	defaultPrevented bool
	stopped          bool
}

// PreventDefault suppresses the document's default action for the event
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// StopPropagation ends bubbling once the current node's listeners have run
func (e *Event) StopPropagation() { e.stopped = true }

func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

func (e *Event) Stopped() bool { return e.stopped }

// Listener handles a key or click event
type Listener func(*Event)

type listener struct {
	id uint64
	fn Listener
}

// AddKeyListener installs fn on node and returns its removal function
func (d *Document) AddKeyListener(node *Node, fn Listener) func() {
	return d.addListener(node, &node.keyListeners, fn)
}

// AddClickListener installs fn on node and returns its removal function
func (d *Document) AddClickListener(node *Node, fn Listener) func() {
	return d.addListener(node, &node.clickListeners, fn)
}

func (d *Document) addListener(node *Node, list *[]listener, fn Listener) func() {
	d.nextID++
	id := d.nextID
	*list = append(*list, listener{id: id, fn: fn})
	d.listeners++

	removed := false
	return func() {
		if removed {
			return
		}
		removed = true
		for i, l := range *list {
			if l.id == id {
				*list = append((*list)[:i], (*list)[i+1:]...)
				d.listeners--
				return
			}
		}
	}
}

// DispatchKey delivers k to the focused element, or the root when nothing
// has focus, and bubbles it up. Unless a listener prevented it, Tab moves
// focus sequentially with wrap-around, and Enter or Space on a button or link
// clicks it.
func (d *Document) DispatchKey(k Key) *Event {
	target := d.ActiveElement()
	if target == nil {
		target = d.root
	}
	ev := &Event{Key: k, Target: target}
	d.bubble(ev, func(n *Node) []listener { return n.keyListeners })

	if ev.defaultPrevented {
		return ev
	}
	switch k.Name {
	case KeyTab:
		d.moveFocus(k.Shift)
	case KeyEnter, KeySpace:
		if target.Role == RoleButton || target.Role == RoleLink {
			d.DispatchClick(target)
		}
	}
	return ev
}

// DispatchClick focuses target when it can take focus and bubbles a click from it
func (d *Document) DispatchClick(target *Node) *Event {
	if target == nil {
		return nil
	}
	if d.CanFocus(target) {
		d.active = target
	}
	ev := &Event{Target: target}
	d.bubble(ev, func(n *Node) []listener { return n.clickListeners })
	return ev
}

func (d *Document) bubble(ev *Event, listeners func(*Node) []listener) {
	for n := ev.Target; n != nil; n = n.parent {
		ev.CurrentTarget = n
		// copy so listeners may remove themselves while running
		for _, l := range append([]listener(nil), listeners(n)...) {
			l.fn(ev)
		}
		if ev.stopped {
			break
		}
	}
	ev.CurrentTarget = nil
}

// moveFocus is the default Tab action over the whole document
func (d *Document) moveFocus(backward bool) {
	order := FocusOrder(d.root)
	if len(order) == 0 {
		return
	}
	idx := -1
	active := d.ActiveElement()
	for i, n := range order {
		if n == active {
			idx = i
			break
		}
	}

	var next int
	switch {
	case idx < 0 && backward:
		next = len(order) - 1
	case idx < 0:
		next = 0
	case backward:
		next = (idx - 1 + len(order)) % len(order)
	default:
		next = (idx + 1) % len(order)
	}
	d.active = order[next]
}
