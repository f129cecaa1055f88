package explorer

import (
	"fmt"
	"iter"
	"slices"

	"github.com/wcy168/scada-v6/internal/model"
)

// Node is an element of the presentation tree. Object, Category and Editor
// are fixed at construction; Text may be refreshed from the object.
//
// The node borrows Object. Objects never point back at nodes; the owning
// Tree keeps an identity index instead.
type Node struct {
	Text     string
	Category Category
	Object   any
	Filter   *TableFilter
	Editor   *Editor

	// Mirror is the backing collection the children follow index for index.
	// When nil, a tree-capable Object supplies it through TreeChildren.
	Mirror model.Collection

	// Expanded is presentation state only (open/closed folder).
	Expanded bool

	parent   *Node
	children []*Node
	pending  bool
	tree     *Tree
}

// NewNode returns a detached node. Text defaults to the object's title.
func NewNode(text string, cat Category, obj any) *Node {
	if text == "" && obj != nil {
		text = titleOf(obj)
	}
	return &Node{Text: text, Category: cat, Object: obj}
}

func newPlaceholder() *Node {
	return &Node{Text: "(empty)", Category: CategoryEmpty}
}

func titleOf(obj any) string {
	if s, ok := obj.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(obj)
}

func (n *Node) Parent() *Node { return n.parent }

// Children returns the child list. Callers must not modify it.
func (n *Node) Children() []*Node { return n.children }

func (n *Node) Len() int { return len(n.children) }

func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Index is the position of n among its siblings, or -1 for a root.
func (n *Node) Index() int {
	if n.parent == nil {
		return -1
	}
	return slices.Index(n.parent.children, n)
}

func (n *Node) PrevSibling() *Node {
	if n.parent == nil {
		return nil
	}
	return n.parent.Child(n.Index() - 1)
}

func (n *Node) NextSibling() *Node {
	if n.parent == nil {
		return nil
	}
	return n.parent.Child(n.Index() + 1)
}

func (n *Node) Depth() int {
	d := 0
	for p := n.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

func (n *Node) IsPlaceholder() bool { return n.Category == CategoryEmpty && n.Object == nil }

// HasPlaceholder reports whether the single child of n is a placeholder.
func (n *Node) HasPlaceholder() bool {
	return len(n.children) == 1 && n.children[0].IsPlaceholder()
}

// Pending reports whether the children of n still have to be populated.
// A node whose population failed stays pending.
func (n *Node) Pending() bool { return n.pending }

// Expandable reports whether a host should draw n as expandable.
func (n *Node) Expandable() bool { return len(n.children) > 0 || n.pending }

// Tree returns the tree n is attached to, or nil.
func (n *Node) Tree() *Tree { return n.tree }

// TreeObject returns the node's object when it is tree-capable.
func (n *Node) TreeObject() (model.TreeObject, bool) {
	if n == nil {
		return nil, false
	}
	to, ok := n.Object.(model.TreeObject)
	return to, ok
}

// MirroredCollection returns the collection the children of n mirror.
func (n *Node) MirroredCollection() model.Collection {
	if n.Mirror != nil {
		return n.Mirror
	}
	if to, ok := n.Object.(model.TreeObject); ok {
		return to.TreeChildren()
	}
	return nil
}

// UpdateText refreshes Text from the object.
func (n *Node) UpdateText() {
	if n.Object != nil {
		n.Text = titleOf(n.Object)
	}
}

// Walk visits n and its descendants in pre-order until fn returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// All yields n and its descendants in pre-order.
func (n *Node) All() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n.Walk(yield)
	}
}

// FindFirst returns the first node of category cat in the subtree rooted at n,
// n included.
func (n *Node) FindFirst(cat Category) *Node {
	for c := range n.All() {
		if c.Category == cat {
			return c
		}
	}
	return nil
}

// FindClosest returns n or its nearest ancestor of category cat.
func (n *Node) FindClosest(cat Category) *Node {
	for p := n; p != nil; p = p.parent {
		if p.Category == cat {
			return p
		}
	}
	return nil
}

// FindSibling returns the first node of category cat on the level of n.
func (n *Node) FindSibling(cat Category) *Node {
	if n == nil || n.parent == nil {
		return nil
	}
	for _, c := range n.parent.children {
		if c.Category == cat {
			return c
		}
	}
	return nil
}

func (n *Node) String() string { return n.Text }

func (n *Node) add(c *Node) { n.insert(len(n.children), c) }

func (n *Node) insert(i int, c *Node) {
	c.parent = n
	n.children = slices.Insert(n.children, i, c)
	if n.tree != nil {
		n.tree.adopt(c)
	}
}

func (n *Node) removeAt(i int) *Node {
	c := n.children[i]
	n.children = slices.Delete(n.children, i, i+1)
	c.parent = nil
	if n.tree != nil {
		n.tree.release(c)
	}
	return c
}

func (n *Node) clear() {
	for len(n.children) > 0 {
		n.removeAt(len(n.children) - 1)
	}
}

// setPlaceholder replaces the children with a single placeholder and marks n pending.
func (n *Node) setPlaceholder() {
	n.clear()
	n.add(newPlaceholder())
	n.pending = true
}

// dropPlaceholder removes a placeholder child if present.
func (n *Node) dropPlaceholder() {
	if n.HasPlaceholder() {
		n.removeAt(0)
	}
}
