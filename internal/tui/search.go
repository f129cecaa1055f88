package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/wcy168/scada-v6/internal/explorer"
)

const maxSearchMatches = 8

func (m *appModel) beginSearch() tea.Cmd {
	m.modal = modalSearch
	m.input.Reset()
	m.input.Placeholder = "jump to…"
	m.matches = nil
	m.matchIndex = 0
	return m.input.Focus()
}

// searchCandidates lists the loaded nodes by path relative to the root.
// Unloaded subtrees are not searched.
func searchCandidates(root *explorer.Node) ([]*explorer.Node, []string) {
	var nodes []*explorer.Node
	var paths []string
	prefix := root.Text + explorer.PathSeparator
	for n := range root.All() {
		if n == root || n.IsPlaceholder() {
			continue
		}
		nodes = append(nodes, n)
		paths = append(paths, strings.TrimPrefix(explorer.PathOf(n), prefix))
	}
	return nodes, paths
}

// findMatches ranks the loaded nodes against query.
func findMatches(root *explorer.Node, query string) []*explorer.Node {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	nodes, paths := searchCandidates(root)
	var out []*explorer.Node
	for _, match := range fuzzy.Find(query, paths) {
		out = append(out, nodes[match.Index])
		if len(out) == maxSearchMatches {
			break
		}
	}
	return out
}

func (m appModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "ctrl+p":
		if m.matchIndex > 0 {
			m.matchIndex--
		}
		return m, nil
	case "down", "ctrl+n", "tab":
		if m.matchIndex < len(m.matches)-1 {
			m.matchIndex++
		}
		return m, nil
	case "enter":
		if len(m.matches) > 0 {
			n := m.matches[m.matchIndex]
			revealNode(n)
			m.tree.Select(n)
			m.refreshRows()
		}
		m.closeModal()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.matches = findMatches(m.tree.Root(), m.input.Value())
	m.matchIndex = 0
	return m, cmd
}

func (m appModel) renderSearch(width int) string {
	bodyW := modalBodyWidth(width)
	lines := []string{renderInputLine(bodyW, m.input.View()), ""}
	if len(m.matches) == 0 && m.input.Value() != "" {
		lines = append(lines, styleMuted().Render("no loaded node matches"))
	}
	d := newTreeRowDelegate()
	prefix := m.tree.Root().Text + explorer.PathSeparator
	for i, n := range m.matches {
		style := d.normal
		if i == m.matchIndex {
			style = d.selected
		}
		line := strings.TrimPrefix(explorer.PathOf(n), prefix)
		lines = append(lines, fitRow(style.Render(line), bodyW, style))
	}
	lines = append(lines, "", styleMuted().Render("enter: jump   ↑/↓: choose   esc: cancel"))
	return renderModalBox(width, "Jump to node", strings.Join(lines, "\n"))
}
