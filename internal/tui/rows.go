package tui

import (
	"github.com/wcy168/scada-v6/internal/explorer"
)

// treeRow is one visible line of the explorer.
type treeRow struct {
	node  *explorer.Node
	depth int
}

func (r treeRow) FilterValue() string { return r.node.Text }

// flattenTree lists the visible nodes below root in display order. Children
// of collapsed nodes and placeholders are skipped; the root itself is shown.
func flattenTree(root *explorer.Node) []treeRow {
	if root == nil {
		return nil
	}
	var out []treeRow
	var walk func(n *explorer.Node, depth int)
	walk = func(n *explorer.Node, depth int) {
		out = append(out, treeRow{node: n, depth: depth})
		if !n.Expanded {
			return
		}
		for _, c := range n.Children() {
			if c.IsPlaceholder() {
				continue
			}
			walk(c, depth+1)
		}
	}
	walk(root, 0)
	return out
}

// rowIndex returns the position of n in rows, or -1.
func rowIndex(rows []treeRow, n *explorer.Node) int {
	for i, r := range rows {
		if r.node == n {
			return i
		}
	}
	return -1
}

// revealNode expands every ancestor of n so that it becomes visible.
func revealNode(n *explorer.Node) {
	for p := n.Parent(); p != nil; p = p.Parent() {
		p.Expanded = true
	}
}
