package tui

import (
	"slices"
	"strings"

	"github.com/wcy168/scada-v6/internal/explorer"
	"github.com/wcy168/scada-v6/internal/store"
)

// uiState captures open nodes and the selection by node path.
func (m appModel) uiState() *store.UIState {
	st := &store.UIState{Version: 1, ShowPreview: m.showPreview}
	for n := range m.tree.Root().All() {
		if n.Expanded && n.Expandable() && !n.Pending() {
			st.Expanded = append(st.Expanded, explorer.PathOf(n))
		}
	}
	if sel := m.tree.Selected(); sel != nil {
		st.Selected = explorer.PathOf(sel)
	}
	return st
}

// restoreUIState reopens the saved nodes, shallow ones first so that lazy
// parents are populated before their children are looked up. Paths that no
// longer resolve are skipped.
func (m *appModel) restoreUIState(st *store.UIState) {
	if st == nil {
		return
	}
	m.showPreview = st.ShowPreview
	paths := slices.Clone(st.Expanded)
	slices.SortStableFunc(paths, func(a, b string) int {
		return strings.Count(a, explorer.PathSeparator) - strings.Count(b, explorer.PathSeparator)
	})
	for _, p := range paths {
		if n := m.resolve(p); n != nil {
			if _, err := m.exp.OnActivate(n); err != nil {
				n.Expanded = false
			}
		}
	}
	if n := m.resolve(st.Selected); n != nil {
		revealNode(n)
		m.tree.Select(n)
	}
	m.resize()
	m.refreshRows()
}

// resolve finds the loaded node at path without populating anything.
func (m *appModel) resolve(path string) *explorer.Node {
	parts := strings.Split(path, explorer.PathSeparator)
	n := m.tree.Root()
	if len(parts) == 0 || parts[0] != n.Text {
		return nil
	}
	for _, part := range parts[1:] {
		var next *explorer.Node
		for _, c := range n.Children() {
			if c.Text == part && !c.IsPlaceholder() {
				next = c
				break
			}
		}
		if next == nil {
			return nil
		}
		n = next
	}
	return n
}
