package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// New returns a logger writing text records to out at the given level.
// Unknown levels fall back to warn, which keeps the CLI quiet unless
// something goes wrong.
func New(out io.Writer, level string) *logrus.Entry {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = logrus.WarnLevel
	}
	l.SetLevel(lvl)
	return logrus.NewEntry(l)
}

// OpenFile returns a logger appending to path and a func closing the file.
// The TUI logs here so records never land on the alternate screen.
func OpenFile(path, level string) (*logrus.Entry, func() error, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return New(f, level), f.Close, nil
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Entry {
	return New(io.Discard, "panic")
}
