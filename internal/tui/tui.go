package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/wcy168/scada-v6/internal/model"
	"github.com/wcy168/scada-v6/internal/store"
	"github.com/wcy168/scada-v6/internal/watcher"
)

// Options are the TUI settings resolved by the caller.
type Options struct {
	Glyphs       string
	Watch        bool
	PreviewLines int
	Log          *logrus.Entry
}

// Run shows the explorer for p until the user quits. UI state is restored
// from and saved to the project's state directory.
func Run(ctx context.Context, s store.Store, p *model.Project, opts Options) error {
	applyColorProfilePreference()
	applyThemePreference()
	applyGlyphPreference(opts.Glyphs)

	m := newAppModel(s, p, opts)
	if st, err := s.LoadUIState(); err == nil {
		m.restoreUIState(st)
	} else {
		m.log.WithError(err).Warn("ui state not loaded")
	}
	if opts.Watch {
		w, err := watcher.New(0, m.log)
		if err != nil {
			m.log.WithError(err).Warn("file watching disabled")
		} else {
			defer w.Close()
			m.watchDirs(w)
			m.watch = w
		}
	}

	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if fm, ok := final.(appModel); ok {
		if serr := s.SaveUIState(fm.uiState()); serr != nil {
			m.log.WithError(serr).Warn("ui state not saved")
		}
	}
	return err
}
