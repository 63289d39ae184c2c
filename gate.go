package dropzone

import "sync"

// State is the interaction state rendered by the presentation layer
type State struct {
	Hovering bool
	Disabled bool
}

// Element is a node of the host's element tree. The gate uses it to tell
// whether a drag left its own subtree or only crossed into a descendant.
type Element interface {
	Parent() Element
}

// Node is a minimal Element implementation
type Node struct {
	Name   string
	parent *Node
}

// NewNode creates a node under parent. parent may be nil for a root.
func NewNode(name string, parent *Node) *Node {
	return &Node{Name: name, parent: parent}
}

// Parent implements Element
func (n *Node) Parent() Element {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// Contains reports whether el is root or one of its descendants
func Contains(root, el Element) bool {
	if root == nil {
		return false
	}
	for e := el; e != nil; e = e.Parent() {
		if e == root {
			return true
		}
	}
	return false
}

// Gate decides whether intake is allowed and tracks hover feedback.
// Every transition method reports whether the state changed.
type Gate struct {
	mu       sync.Mutex
	root     Element
	hovering bool
	disabled bool
}

// NewGate creates a gate for the element subtree rooted at root
func NewGate(root Element, disabled bool) *Gate {
	return &Gate{root: root, disabled: disabled}
}

// State returns the current interaction state
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return State{Hovering: g.hovering, Disabled: g.disabled}
}

// SetDisabled updates the disabled flag
func (g *Gate) SetDisabled(disabled bool) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.disabled == disabled {
		return false
	}
	g.disabled = disabled
	return true
}

// DragEnter starts hover feedback unless the gate is disabled
func (g *Gate) DragEnter() bool {
	return g.hover()
}

// DragOver starts hover feedback unless the gate is disabled
func (g *Gate) DragOver() bool {
	return g.hover()
}

func (g *Gate) hover() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.disabled || g.hovering {
		return false
	}
	g.hovering = true
	return true
}

// DragLeave ends hover feedback only when related, the element the pointer
// moved to, is outside the gate's subtree. A nil related means the pointer
// left the host entirely.
func (g *Gate) DragLeave(related Element) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if related != nil && Contains(g.root, related) {
		return false
	}
	return g.idle()
}

// Drop ends hover feedback unconditionally
func (g *Gate) Drop() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.idle()
}

func (g *Gate) idle() bool {
	if !g.hovering {
		return false
	}
	g.hovering = false
	return true
}

// CanSelect reports whether an explicit chooser action is allowed
func (g *Gate) CanSelect() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return !g.disabled
}

// Admit checks the batch-level preconditions of an intake attempt
func (g *Gate) Admit(batchSize int, allowMultiple bool) error {
	g.mu.Lock()
	disabled := g.disabled
	g.mu.Unlock()

	if disabled {
		return ErrDisabled
	}
	if !allowMultiple && batchSize > 1 {
		return ErrMultipleNotAllowed
	}
	return nil
}
