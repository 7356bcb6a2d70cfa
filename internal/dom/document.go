package dom

import "errors"

// ErrAttached is returned when appending a node that already has a parent
var ErrAttached = errors.New("node already has a parent")

// Document owns the root node, the focused element and listener bookkeeping
type Document struct {
	root      *Node
	active    *Node
	nextID    uint64
	listeners int
}

// NewDocument creates a document with an empty page root
func NewDocument() *Document {
	root := NewNode("root", RolePage, "")
	root.root = true
	return &Document{root: root}
}

func (d *Document) Root() *Node { return d.root }

// Append attaches child as the last child of parent
func (d *Document) Append(parent, child *Node) error {
	if child.parent != nil || child.root {
		return ErrAttached
	}
	child.parent = parent
	parent.children = append(parent.children, child)
	return nil
}

// Remove detaches node from its parent. Focus inside the removed subtree is lost.
func (d *Document) Remove(node *Node) {
	parent := node.parent
	if parent == nil {
		return
	}
	for i, c := range parent.children {
		if c == node {
			parent.children = append(parent.children[:i], parent.children[i+1:]...)
			break
		}
	}
	node.parent = nil
	if node.Contains(d.active) {
		d.active = nil
	}
}

// GetElementByID finds an attached node by id
func (d *Document) GetElementByID(id string) *Node {
	var found *Node
	var walk func(*Node) bool
	walk = func(n *Node) bool {
		if n.ID == id {
			found = n
			return true
		}
		for _, c := range n.children {
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(d.root)
	return found
}

// ActiveElement returns the focused node, or nil when focus was lost
// because the node was detached, hidden or disabled.
func (d *Document) ActiveElement() *Node {
	if d.active != nil && !d.CanFocus(d.active) {
		d.active = nil
	}
	return d.active
}

// CanFocus reports whether n may receive focus right now
func (d *Document) CanFocus(n *Node) bool {
	if n == nil || n.Disabled || !n.Attached() || !n.Visible() {
		return false
	}
	if _, ok := n.TabIndex(); ok {
		return true
	}
	return n.interactive()
}

// Focus moves focus to n. It reports false and leaves focus alone when n
// cannot be focused.
func (d *Document) Focus(n *Node) bool {
	if !d.CanFocus(n) {
		return false
	}
	d.active = n
	return true
}

// ListenerCount returns the number of installed key and click listeners
func (d *Document) ListenerCount() int {
	return d.listeners
}
