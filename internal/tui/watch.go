package tui

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wcy168/scada-v6/internal/explorer"
	"github.com/wcy168/scada-v6/internal/watcher"
)

// watchMsg carries directories changed on disk into the update loop; the
// tree is only ever touched from there.
type watchMsg struct {
	dirs []string
}

func waitForWatch(w *watcher.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case ev := <-w.Events():
			return watchMsg{dirs: ev.Dirs}
		case <-w.Done():
			return nil
		}
	}
}

// watchDirs registers the directories the explorer lists: the views and the
// Webstation directory of every instance.
func (m *appModel) watchDirs(w *watcher.Watcher) {
	dirs := []string{m.project.Views.Dir}
	for _, inst := range m.project.Instances.Items() {
		if inst.Web != nil && inst.Web.Enabled {
			dirs = append(dirs, inst.Web.Dir)
		}
	}
	for _, d := range dirs {
		if err := w.AddTree(d); err != nil {
			m.log.WithError(err).WithField("dir", d).Warn("not watching directory")
		}
	}
}

// applyWatch reloads the loaded nodes that list one of dirs. Pending nodes
// pick the change up on first activation.
func (m *appModel) applyWatch(dirs []string) {
	changed := map[string]bool{}
	for _, d := range dirs {
		changed[filepath.Clean(d)] = true
	}
	var targets []*explorer.Node
	for n := range m.tree.Root().All() {
		if d, ok := dirOf(n); ok && !n.Pending() && changed[filepath.Clean(d)] {
			targets = append(targets, n)
		}
	}
	for _, n := range targets {
		// A reload of an ancestor may already have replaced n.
		if n.Tree() == nil {
			continue
		}
		if err := m.reload(n); err != nil {
			m.log.WithError(err).WithField("dir", explorer.PathOf(n)).Warn("reload after change")
		}
	}
	if len(targets) > 0 {
		m.refreshRows()
	}
}
