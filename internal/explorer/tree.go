package explorer

import (
	"fmt"
	"strings"
)

// Hooks notify the host about tree events. Nil hooks are skipped.
type Hooks struct {
	// Activated fires after a pending node was populated.
	Activated func(n *Node)
	// Changed fires after the children of parent were structurally edited
	// by the synchronizer, so the host can persist the backing model.
	Changed func(parent *Node)
	// Selected fires when the selection moves.
	Selected func(n *Node)
}

// Tree owns a presentation tree, the object-to-node index and the selection.
//
// A Tree is not safe for concurrent use. The caller serializes all calls,
// typically by driving it from a single UI event loop.
type Tree struct {
	Hooks Hooks

	root     *Node
	index    map[any]*Node
	selected *Node
	activate func(*Node) (bool, error)
}

// NewTree attaches root and indexes every object below it. Objects used as
// node objects must be comparable; pointers are the norm.
func NewTree(root *Node) *Tree {
	t := &Tree{root: root, index: map[any]*Node{}}
	if root != nil {
		root.parent = nil
		t.adopt(root)
	}
	return t
}

func (t *Tree) Root() *Node { return t.root }

// NodeOf resolves the node currently presenting obj.
func (t *Tree) NodeOf(obj any) (*Node, bool) {
	if obj == nil {
		return nil, false
	}
	n, ok := t.index[obj]
	return n, ok
}

func (t *Tree) Selected() *Node { return t.selected }

// SelectedObject returns the object of the selected node, or nil.
func (t *Tree) SelectedObject() any {
	if t.selected == nil {
		return nil
	}
	return t.selected.Object
}

// Select makes n the current selection and returns its object. Selecting a
// node of another tree clears the selection.
func (t *Tree) Select(n *Node) any {
	if n != nil && n.tree != t {
		n = nil
	}
	if n == t.selected {
		return t.SelectedObject()
	}
	t.selected = n
	if t.Hooks.Selected != nil {
		t.Hooks.Selected(n)
	}
	return t.SelectedObject()
}

// UpdateSelectedText refreshes the selected node's text from its object.
func (t *Tree) UpdateSelectedText() {
	if t.selected != nil {
		t.selected.UpdateText()
	}
}

// Activate populates n through the registered expander.
func (t *Tree) Activate(n *Node) (bool, error) {
	if t.activate == nil || n == nil {
		return false, nil
	}
	return t.activate(n)
}

func (t *Tree) adopt(n *Node) {
	n.Walk(func(c *Node) bool {
		c.tree = t
		if c.Object != nil {
			t.index[c.Object] = c
		}
		return true
	})
}

func (t *Tree) release(n *Node) {
	n.Walk(func(c *Node) bool {
		if c.Object != nil && t.index[c.Object] == c {
			delete(t.index, c.Object)
		}
		c.tree = nil
		if c == t.selected {
			t.selected = nil
		}
		return true
	})
}

func (t *Tree) changed(parent *Node) {
	if t.Hooks.Changed != nil {
		t.Hooks.Changed(parent)
	}
}

// Violation describes a broken tree invariant.
type Violation struct {
	Path string
	Msg  string
}

func (v Violation) String() string { return v.Path + ": " + v.Msg }

// Verify checks the placeholder invariant, the mirror invariant, parent links,
// the identity index and where directory entries and applications may sit.
func (t *Tree) Verify() []Violation {
	var out []Violation
	if t.root == nil {
		return nil
	}
	t.root.Walk(func(n *Node) bool {
		report := func(format string, args ...any) {
			out = append(out, Violation{Path: PathOf(n), Msg: fmt.Sprintf(format, args...)})
		}
		for _, c := range n.children {
			if c.parent != n {
				report("child %q has a stale parent link", c.Text)
			}
		}
		if n.Object != nil {
			if got := t.index[n.Object]; got != n {
				report("object not indexed to its node")
			}
		}
		placeholders := 0
		for _, c := range n.children {
			if c.IsPlaceholder() {
				placeholders++
			}
		}
		if placeholders > 0 && len(n.children) != 1 {
			report("placeholder mixed with %d children", len(n.children)-placeholders)
		}
		if placeholders > 0 && !n.pending {
			report("placeholder under a populated node")
		}
		if n.Category.IsFileSystem() {
			if _, ok := n.Object.(*FileEntry); !ok {
				report("directory entry without a path")
			}
			if p := n.parent; p == nil || !(p.Category.IsFileSystem() || p.Category == CategoryViewsGroup || p.Category == CategoryWebApp) {
				report("directory entry outside a listed folder")
			}
		}
		if n.Category.IsSubApplication() && (n.parent == nil || n.parent.Category != CategoryInstance) {
			report("application outside an instance")
		}
		if n.pending {
			return true
		}
		coll := n.MirroredCollection()
		if coll == nil {
			return true
		}
		if coll.Len() != len(n.children) {
			report("mirror length %d, children %d", coll.Len(), len(n.children))
			return true
		}
		for i, c := range n.children {
			if coll.At(i) != c.Object {
				report("child %d is %q, collection holds %s", i, c.Text, titleOf(coll.At(i)))
			}
		}
		return true
	})
	return out
}

// PathSeparator joins node texts in PathOf.
const PathSeparator = " / "

// PathOf renders the texts from the root down to n joined by PathSeparator.
func PathOf(n *Node) string {
	var parts []string
	for p := n; p != nil; p = p.parent {
		parts = append(parts, p.Text)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, PathSeparator)
}
