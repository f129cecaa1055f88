package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// UIState stores small, user-facing explorer state for restoring the last
// screen on relaunch. It is best effort: callers tolerate missing data.
type UIState struct {
	Version int `json:"version"`

	// Expanded lists node paths (texts joined by " / ") that were open.
	Expanded []string `json:"expanded,omitempty"`

	// Selected is the path of the selected node.
	Selected string `json:"selected,omitempty"`

	ShowPreview bool `json:"showPreview,omitempty"`
}

func (s Store) uiStatePath() string {
	return filepath.Join(s.StateDir(), uiStateFileName)
}

func (s Store) LoadUIState() (*UIState, error) {
	if strings.TrimSpace(s.Dir) == "" {
		return &UIState{Version: 1}, nil
	}
	b, err := afero.ReadFile(s.fs(), s.uiStatePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &UIState{Version: 1}, nil
		}
		return nil, err
	}
	var st UIState
	if err := json.Unmarshal(b, &st); err != nil {
		// Corrupted state is treated as missing.
		s.log().WithError(err).Warn("ignore unreadable ui state")
		return &UIState{Version: 1}, nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	return &st, nil
}

func (s Store) SaveUIState(st *UIState) error {
	if st == nil || strings.TrimSpace(s.Dir) == "" {
		return nil
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	if st.Version == 0 {
		st.Version = 1
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(s.fs(), s.uiStatePath(), b, 0o644)
}
