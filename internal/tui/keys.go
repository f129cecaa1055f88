package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Expand   key.Binding
	Collapse key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	AddAfter key.Binding
	AddLast  key.Binding
	Remove   key.Binding
	NewFile  key.Binding
	NewDir   key.Binding
	Search   key.Binding
	Refresh  key.Binding
	Preview  key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k", "ctrl+p"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j", "ctrl+n"), key.WithHelp("↓/j", "down")),
		Expand:   key.NewBinding(key.WithKeys("right", "l", "enter"), key.WithHelp("→/enter", "expand")),
		Collapse: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "collapse")),
		MoveUp:   key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up")),
		MoveDown: key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down")),
		AddAfter: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add after")),
		AddLast:  key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "add last")),
		Remove:   key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "remove")),
		NewFile:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new file")),
		NewDir:   key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "new folder")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "jump")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Preview:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preview")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// footerHelp renders the key hints of the main view.
func (k keyMap) footerHelp() string {
	var parts []string
	for _, b := range []key.Binding{
		k.Up, k.Down, k.Expand, k.Collapse, k.MoveUp, k.MoveDown, k.AddAfter, k.AddLast,
		k.Remove, k.NewFile, k.NewDir, k.Search, k.Refresh, k.Preview, k.Quit,
	} {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, "  ")
}
