// Package dom is a small element tree with focus and bubbling key and click
// events. The modal manager and the terminal view both work against it, so
// focus behaviour is defined in one place and can be tested without a
// terminal.
package dom

import "strings"

// Role identifies what kind of element a node is
type Role int

const (
	RolePage Role = iota
	RoleInput
	RoleButton
	RoleLink
	RoleModal
	RoleDialog
	RoleText
	RoleGroup
)

func (r Role) String() string {
	switch r {
	case RolePage:
		return "page"
	case RoleInput:
		return "input"
	case RoleButton:
		return "button"
	case RoleLink:
		return "link"
	case RoleModal:
		return "modal"
	case RoleDialog:
		return "dialog"
	case RoleText:
		return "text"
	case RoleGroup:
		return "group"
	default:
		return "unknown"
	}
}

// Common attribute names
const (
	AttrOpenModal  = "open-modal"
	AttrCloseModal = "close-modal"
	AttrLabelledBy = "labelledby"
	AttrHref       = "href"
)

// Node is one element of the tree
type Node struct {
	ID       string
	Role     Role
	Label    string
	Disabled bool

	attrs       map[string]string
	tabIndex    int
	hasTabIndex bool
	hidden      bool
	root        bool

	parent   *Node
	children []*Node

	keyListeners   []listener
	clickListeners []listener
}

// NewNode creates a detached node
func NewNode(id string, role Role, label string) *Node {
	return &Node{ID: id, Role: role, Label: label}
}

// Attr returns the value of an attribute
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// SetAttr sets an attribute and returns n for chaining
func (n *Node) SetAttr(name, value string) *Node {
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[name] = value
	return n
}

// SetTabIndex gives the node an explicit tab index. A negative index allows
// programmatic focus while keeping the node out of the tab order.
func (n *Node) SetTabIndex(i int) *Node {
	n.tabIndex = i
	n.hasTabIndex = true
	return n
}

// TabIndex returns the explicit tab index, if one was set
func (n *Node) TabIndex() (int, bool) {
	return n.tabIndex, n.hasTabIndex
}

func (n *Node) Hidden() bool { return n.hidden }

func (n *Node) SetHidden(hidden bool) { n.hidden = hidden }

// Children returns a copy of the child list
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

// Closest returns the nearest node, starting at n itself, that satisfies pred
func (n *Node) Closest(pred func(*Node) bool) *Node {
	for cur := n; cur != nil; cur = cur.parent {
		if pred(cur) {
			return cur
		}
	}
	return nil
}

// Contains reports whether other is n or one of its descendants
func (n *Node) Contains(other *Node) bool {
	if other == nil {
		return false
	}
	for cur := other; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}

// Attached reports whether n is reachable from a document root
func (n *Node) Attached() bool {
	cur := n
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur.root
}

// Visible is true when neither n nor any ancestor is hidden
func (n *Node) Visible() bool {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.hidden {
			return false
		}
	}
	return true
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString(n.Role.String())
	if n.ID != "" {
		b.WriteString("#")
		b.WriteString(n.ID)
	}
	return b.String()
}

// interactive roles are in the tab order without an explicit index
func (n *Node) interactive() bool {
	switch n.Role {
	case RoleInput, RoleButton, RoleLink:
		return true
	}
	return false
}

func (n *Node) tabbable() bool {
	if n.Disabled {
		return false
	}
	if n.hasTabIndex {
		return n.tabIndex >= 0
	}
	return n.interactive()
}

// FocusOrder returns the tabbable descendants of container in document order.
// Hidden subtrees are skipped. The result is computed fresh on every call.
func FocusOrder(container *Node) []*Node {
	if container == nil || container.hidden {
		return nil
	}
	var out []*Node
	var walk func(*Node)
	walk = func(n *Node) {
		for _, child := range n.children {
			if child.hidden {
				continue
			}
			if child.tabbable() {
				out = append(out, child)
			}
			walk(child)
		}
	}
	walk(container)
	return out
}
