package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/wcy168/scada-v6/internal/model"
)

const (
	projectFileName = "project.yaml"
	baseFileName    = "base.sqlite"
	stateDirName    = ".scada-admin"
	uiStateFileName = "ui_state.json"
	logFileName     = "admin.log"
)

// Store reads and writes a project directory. The configuration database
// lives in SQLite; everything else goes through Fs.
type Store struct {
	Dir string
	Fs  afero.Fs
	Log *logrus.Entry
}

func New(dir string, log *logrus.Entry) Store {
	if log == nil {
		log = logrus.NewEntry(logrus.New())
	}
	return Store{Dir: dir, Fs: afero.NewOsFs(), Log: log}
}

func (s Store) fs() afero.Fs {
	if s.Fs == nil {
		return afero.NewOsFs()
	}
	return s.Fs
}

func (s Store) log() *logrus.Entry {
	if s.Log == nil {
		return logrus.NewEntry(logrus.New())
	}
	return s.Log
}

// DiscoverDir walks up from start looking for a directory holding project.yaml.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		if st, err := os.Stat(filepath.Join(dir, projectFileName)); err == nil && !st.IsDir() {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// DefaultDir returns the project enclosing the working directory, or the
// working directory itself.
func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return cwd, nil
}

func (s Store) Ensure() error {
	return s.fs().MkdirAll(s.StateDir(), 0o755)
}

func (s Store) ProjectPath() string { return filepath.Join(s.Dir, projectFileName) }
func (s Store) BasePath() string    { return filepath.Join(s.Dir, baseFileName) }
func (s Store) StateDir() string    { return filepath.Join(s.Dir, stateDirName) }
func (s Store) LogPath() string     { return filepath.Join(s.StateDir(), logFileName) }

// Exists reports whether the directory holds a project descriptor.
func (s Store) Exists() bool {
	ok, _ := afero.Exists(s.fs(), s.ProjectPath())
	return ok
}

// NotFoundError reports a directory that is not a project.
type NotFoundError struct {
	Dir string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("no project in %s (run `scada-admin init`)", e.Dir)
}

// Load reads the descriptor and the configuration database.
func (s Store) Load(ctx context.Context) (*model.Project, error) {
	b, err := afero.ReadFile(s.fs(), s.ProjectPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, NotFoundError{Dir: s.Dir}
		}
		return nil, err
	}
	p, err := decodeDescriptor(b, s.Dir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.ProjectPath(), err)
	}
	if err := s.LoadBase(ctx, p.ConfigBase); err != nil {
		return nil, fmt.Errorf("%s: %w", s.BasePath(), err)
	}
	s.log().WithFields(logrus.Fields{
		"project":   p.Name,
		"instances": p.Instances.Len(),
	}).Debug("project loaded")
	return p, nil
}

// Save writes the descriptor and the configuration database.
func (s Store) Save(ctx context.Context, p *model.Project) error {
	if err := s.SaveDescriptor(p); err != nil {
		return err
	}
	return s.SaveBase(ctx, p.ConfigBase)
}

// SaveDescriptor writes project.yaml atomically.
func (s Store) SaveDescriptor(p *model.Project) error {
	if p == nil {
		return errors.New("nil project")
	}
	b, err := encodeDescriptor(p, s.Dir)
	if err != nil {
		return err
	}
	if err := s.fs().MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}
	if err := atomicWriteFile(s.fs(), s.ProjectPath(), b, 0o644); err != nil {
		return fmt.Errorf("%s: %w", s.ProjectPath(), err)
	}
	return nil
}
