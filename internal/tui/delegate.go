package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/wcy168/scada-v6/internal/explorer"
)

type treeRowDelegate struct {
	normal   lipgloss.Style
	selected lipgloss.Style
}

func newTreeRowDelegate() treeRowDelegate {
	return treeRowDelegate{
		normal: lipgloss.NewStyle(),
		selected: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
	}
}

func (d treeRowDelegate) Height() int                             { return 1 }
func (d treeRowDelegate) Spacing() int                            { return 0 }
func (d treeRowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d treeRowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	row, ok := item.(treeRow)
	width := m.Width()
	if !ok || width < 4 {
		fmt.Fprint(w, "")
		return
	}
	focused := index == m.Index()

	base := d.normal
	if focused {
		base = d.selected
	}
	lead := base.Render(strings.Repeat("  ", row.depth) + twisty(row.node) + " ")

	// The category accent is its own segment so its reset doesn't wipe the
	// focused row's background.
	label := categoryStyle(row.node.Category)
	if focused {
		label = label.Background(colorSelectedBg).Bold(true)
	}
	out := lead + label.Render(rowLabel(row.node))
	if row.node.Pending() {
		out += base.Render(" " + glyphPending())
	}
	fmt.Fprint(w, fitRow(out, width, base))
}

func twisty(n *explorer.Node) string {
	switch {
	case n.Category == explorer.CategoryDirectory:
		return glyphFolder(n.Expanded)
	case n.Category == explorer.CategoryFile:
		return glyphFile()
	case !n.Expandable():
		return " "
	case n.Expanded:
		return glyphTwistyExpanded()
	default:
		return glyphTwistyCollapsed()
	}
}

func rowLabel(n *explorer.Node) string {
	if tv, ok := n.Object.(*explorer.TableView); ok {
		return fmt.Sprintf("%s (%d)", n.Text, tv.Filter.Count(tv.Table))
	}
	return n.Text
}

func categoryStyle(c explorer.Category) lipgloss.Style {
	st := lipgloss.NewStyle()
	switch c {
	case explorer.CategoryProject, explorer.CategoryBase, explorer.CategoryTableGroup,
		explorer.CategoryViewsGroup, explorer.CategoryInstanceGroup:
		return st.Foreground(colorGroup).Bold(true)
	case explorer.CategoryInstance:
		return st.Foreground(colorInstance)
	case explorer.CategoryCommLine, explorer.CategoryCommDevice:
		return st.Foreground(colorComm)
	case explorer.CategoryTableByFilter:
		return styleMuted()
	}
	return st
}

// fitRow pads or cuts s to width so the highlight covers the whole row.
func fitRow(s string, width int, fill lipgloss.Style) string {
	w := xansi.StringWidth(s)
	switch {
	case w < width:
		return s + fill.Render(strings.Repeat(" ", width-w))
	case w > width:
		return xansi.Cut(s, 0, width)
	}
	return s
}
