package explorer

import (
	"fmt"

	"github.com/wcy168/scada-v6/internal/model"
)

// Every structural edit below changes the child list of a node and its
// backing collection at the same index within one call. Calls that find
// nothing to do return false and leave the tree, the collection and the
// selection untouched.

// InsertAsLastChild appends n under parent and obj to the collection parent
// mirrors, then selects n. A pending parent is populated first.
func (t *Tree) InsertAsLastChild(parent, n *Node, obj any) error {
	coll, err := t.insertTarget(parent, n, obj)
	if err != nil {
		return fmt.Errorf("insert as last child: %w", err)
	}
	t.insertAt(parent, coll, parent.Len(), n, obj)
	return nil
}

// InsertAfterSelection inserts n under parent right after the child of
// parent that holds the selection, or at the end when the selection is
// elsewhere.
func (t *Tree) InsertAfterSelection(parent, n *Node, obj any) error {
	coll, err := t.insertTarget(parent, n, obj)
	if err != nil {
		return fmt.Errorf("insert after selection: %w", err)
	}
	t.insertAt(parent, coll, t.InsertIndex(parent), n, obj)
	return nil
}

// InsertAsLastChildList is InsertAsLastChild with a caller supplied
// collection paired with the children of parent.
func (t *Tree) InsertAsLastChildList(parent, n *Node, list model.Collection, obj any) error {
	if err := t.checkInsertList(parent, n, list, obj); err != nil {
		return fmt.Errorf("insert as last child: %w", err)
	}
	t.insertAt(parent, list, parent.Len(), n, obj)
	return nil
}

// InsertAfterSelectionList is InsertAfterSelection with a caller supplied
// collection.
func (t *Tree) InsertAfterSelectionList(parent, n *Node, list model.Collection, obj any) error {
	if err := t.checkInsertList(parent, n, list, obj); err != nil {
		return fmt.Errorf("insert after selection: %w", err)
	}
	t.insertAt(parent, list, t.InsertIndex(parent), n, obj)
	return nil
}

// InsertIndex returns one past the child of parent that is the selection or
// one of its ancestors, or the child count when there is none.
func (t *Tree) InsertIndex(parent *Node) int {
	n := t.selected
	for n != nil && n.parent != parent {
		n = n.parent
	}
	if n == nil {
		return parent.Len()
	}
	return n.Index() + 1
}

// InsertPosition finds where a new node of category cat goes next to the
// closest node of that category around the selection.
func (t *Tree) InsertPosition(cat Category) (parent *Node, index int, ok bool) {
	if t.selected == nil {
		return nil, -1, false
	}
	n := t.selected.FindClosest(cat)
	if n == nil || n.parent == nil {
		return nil, -1, false
	}
	return n.parent, n.Index() + 1, true
}

func (t *Tree) insertTarget(parent, n *Node, obj any) (model.Collection, error) {
	if parent == nil || n == nil || obj == nil {
		return nil, ErrInvalidArgument
	}
	if err := t.checkNewNode(parent, n, obj); err != nil {
		return nil, err
	}
	if parent.pending {
		if t.activate == nil {
			return nil, ErrPending
		}
		if _, err := t.activate(parent); err != nil {
			return nil, err
		}
	}
	coll := parent.MirroredCollection()
	if coll == nil {
		return nil, fmt.Errorf("%q: %w", parent.Text, ErrNoMirror)
	}
	if coll.Len() != parent.Len() {
		return nil, fmt.Errorf("%q: collection has %d items, node has %d children: %w",
			parent.Text, coll.Len(), parent.Len(), ErrInvalidArgument)
	}
	return coll, nil
}

func (t *Tree) checkInsertList(parent, n *Node, list model.Collection, obj any) error {
	if parent == nil || n == nil || obj == nil {
		return ErrInvalidArgument
	}
	if list == nil {
		return ErrNoMirror
	}
	if err := t.checkNewNode(parent, n, obj); err != nil {
		return err
	}
	if parent.pending {
		return ErrPending
	}
	if list.Len() != parent.Len() {
		return ErrInvalidArgument
	}
	return nil
}

func (t *Tree) checkNewNode(parent, n *Node, obj any) error {
	if parent.tree != t {
		return fmt.Errorf("parent %q is not in this tree: %w", parent.Text, ErrInvalidArgument)
	}
	if n.parent != nil || n.tree != nil {
		return fmt.Errorf("node %q is already attached: %w", n.Text, ErrInvalidArgument)
	}
	if n.Object == nil {
		n.Object = obj
		if n.Text == "" {
			n.UpdateText()
		}
	}
	if n.Object != obj {
		return fmt.Errorf("node %q presents another object: %w", n.Text, ErrInvalidArgument)
	}
	return nil
}

func (t *Tree) insertAt(parent *Node, coll model.Collection, i int, n *Node, obj any) {
	if po, ok := parent.TreeObject(); ok {
		if oo, ok := obj.(model.TreeObject); ok {
			oo.SetTreeParent(po)
		}
	}
	parent.insert(i, n)
	coll.Insert(i, obj)
	parent.Expanded = true
	t.Select(n)
	t.changed(parent)
}

// movable returns the collection mirrored by the parent of n when n can be
// repositioned.
func (t *Tree) movable(n *Node) (model.Collection, bool) {
	if n == nil || n.tree != t || n.parent == nil || n.IsPlaceholder() {
		return nil, false
	}
	coll := n.parent.MirroredCollection()
	if coll == nil || coll.Len() != n.parent.Len() {
		return nil, false
	}
	return coll, true
}

func movableList(n *Node, list model.Collection) bool {
	return n != nil && n.parent != nil && list != nil && list.Len() == n.parent.Len()
}

// MoveUp swaps n with its previous sibling. At the top of the group and with
// ThroughSimilarParents, n moves to the end of the previous parent group.
func (t *Tree) MoveUp(n *Node, behavior MoveBehavior) bool {
	coll, ok := t.movable(n)
	if !ok {
		return false
	}
	if i := n.Index(); i > 0 {
		t.reposition(n.parent, coll, i, i-1)
		return true
	}
	if behavior != ThroughSimilarParents {
		return false
	}
	target, tcoll := t.similarParent(n, -1)
	if target == nil {
		return false
	}
	t.promote(n, coll, target, tcoll, target.Len())
	return true
}

// MoveDown swaps n with its next sibling. At the bottom of the group and with
// ThroughSimilarParents, n moves to the start of the next parent group.
func (t *Tree) MoveDown(n *Node, behavior MoveBehavior) bool {
	coll, ok := t.movable(n)
	if !ok {
		return false
	}
	if i := n.Index(); i+1 < n.parent.Len() {
		t.reposition(n.parent, coll, i, i+1)
		return true
	}
	if behavior != ThroughSimilarParents {
		return false
	}
	target, tcoll := t.similarParent(n, +1)
	if target == nil {
		return false
	}
	t.promote(n, coll, target, tcoll, 0)
	return true
}

// MoveUpList moves n up within its group, reordering list alongside.
func (t *Tree) MoveUpList(n *Node, list model.Collection) bool {
	if !movableList(n, list) || n.tree != t {
		return false
	}
	i := n.Index()
	if i <= 0 {
		return false
	}
	t.reposition(n.parent, list, i, i-1)
	return true
}

// MoveDownList moves n down within its group, reordering list alongside.
func (t *Tree) MoveDownList(n *Node, list model.Collection) bool {
	if !movableList(n, list) || n.tree != t {
		return false
	}
	i := n.Index()
	if i+1 >= n.parent.Len() {
		return false
	}
	t.reposition(n.parent, list, i, i+1)
	return true
}

// MoveToIndex repositions n within its group. Out of range targets are ignored.
func (t *Tree) MoveToIndex(n *Node, newIndex int) bool {
	coll, ok := t.movable(n)
	if !ok || newIndex < 0 || newIndex >= n.parent.Len() {
		return false
	}
	t.reposition(n.parent, coll, n.Index(), newIndex)
	return true
}

// CanMoveUp reports whether MoveUp would change anything.
func (t *Tree) CanMoveUp(n *Node, behavior MoveBehavior) bool {
	if _, ok := t.movable(n); !ok {
		return false
	}
	if n.Index() > 0 {
		return true
	}
	if behavior != ThroughSimilarParents {
		return false
	}
	target, _ := t.similarParent(n, -1)
	return target != nil
}

// CanMoveDown reports whether MoveDown would change anything.
func (t *Tree) CanMoveDown(n *Node, behavior MoveBehavior) bool {
	if _, ok := t.movable(n); !ok {
		return false
	}
	if n.Index()+1 < n.parent.Len() {
		return true
	}
	if behavior != ThroughSimilarParents {
		return false
	}
	target, _ := t.similarParent(n, +1)
	return target != nil
}

// Remove detaches n and its object from the parent group. The object itself
// is left alone apart from losing its parent reference.
func (t *Tree) Remove(n *Node) bool {
	coll, ok := t.movable(n)
	if !ok {
		return false
	}
	if oo, ok := n.Object.(model.TreeObject); ok {
		oo.SetTreeParent(nil)
	}
	t.detach(n, coll)
	return true
}

// RemoveList detaches n and the list item at the same index.
func (t *Tree) RemoveList(n *Node, list model.Collection) bool {
	if !movableList(n, list) || n.tree != t {
		return false
	}
	t.detach(n, list)
	return true
}

func (t *Tree) detach(n *Node, coll model.Collection) {
	parent := n.parent
	i := n.Index()
	hadSelection := false
	for s := t.selected; s != nil; s = s.parent {
		if s == n {
			hadSelection = true
			break
		}
	}
	parent.removeAt(i)
	coll.RemoveAt(i)
	if hadSelection {
		next := parent.Child(i)
		if next == nil {
			next = parent.Child(i - 1)
		}
		if next == nil {
			next = parent
		}
		t.Select(next)
	}
	t.changed(parent)
}

func (t *Tree) reposition(parent *Node, coll model.Collection, from, to int) {
	n := parent.removeAt(from)
	parent.insert(to, n)
	obj := coll.At(from)
	coll.RemoveAt(from)
	coll.Insert(to, obj)
	t.Select(n)
	t.changed(parent)
}

// similarParent returns the sibling of the parent of n in direction dir when
// n can be promoted into it: both parents share a category, their objects are
// tree-capable with the same kind, and the target is populated.
func (t *Tree) similarParent(n *Node, dir int) (*Node, model.Collection) {
	if _, ok := n.TreeObject(); !ok {
		return nil, nil
	}
	parent := n.parent
	if parent.parent == nil {
		return nil, nil
	}
	target := parent.parent.Child(parent.Index() + dir)
	if target == nil || target.Category != parent.Category || target.pending {
		return nil, nil
	}
	po, ok := parent.TreeObject()
	if !ok {
		return nil, nil
	}
	to, ok := target.TreeObject()
	if !ok || to.TreeKind() != po.TreeKind() {
		return nil, nil
	}
	tcoll := target.MirroredCollection()
	if tcoll == nil || tcoll.Len() != target.Len() {
		return nil, nil
	}
	return target, tcoll
}

func (t *Tree) promote(n *Node, coll model.Collection, target *Node, tcoll model.Collection, at int) {
	src := n.parent
	i := n.Index()
	obj := coll.At(i)
	src.removeAt(i)
	coll.RemoveAt(i)

	target.insert(at, n)
	tcoll.Insert(at, obj)
	if oo, ok := obj.(model.TreeObject); ok {
		if to, ok := target.TreeObject(); ok {
			oo.SetTreeParent(to)
		}
	}
	target.Expanded = true
	t.Select(n)
	t.changed(src)
	t.changed(target)
}
