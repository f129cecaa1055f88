package watcher

import (
	"os"
	"path/filepath"
	"slices"
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncer_CoalescesTriggers(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var calls atomic.Int32
	var last atomic.Int32
	for i := 1; i <= 5; i++ {
		i := int32(i)
		d.Trigger(func() {
			calls.Add(1)
			last.Store(i)
		})
	}
	time.Sleep(120 * time.Millisecond)
	if calls.Load() != 1 || last.Load() != 5 {
		t.Fatalf("calls=%d last=%d, want 1 and 5", calls.Load(), last.Load())
	}
}

func TestDebouncer_Cancel(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	d.Cancel()
	time.Sleep(80 * time.Millisecond)
	if calls.Load() != 0 {
		t.Fatalf("cancelled callback ran")
	}
	if NewDebouncer(0).Duration() != DefaultDebounceDuration {
		t.Fatalf("zero duration should use the default")
	}
}

func TestWatcher_ReportsChangedDirectory(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "Station")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	w, err := New(30*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()
	if err := w.AddTree(root); err != nil {
		t.Fatalf("AddTree: %v", err)
	}
	if got := w.Watched(); !slices.Equal(got, []string{root, sub}) {
		t.Fatalf("watched = %v", got)
	}

	if err := os.WriteFile(filepath.Join(sub, "Pumps.sch"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case ev := <-w.Events():
		if !slices.Contains(ev.Dirs, sub) {
			t.Fatalf("event dirs = %v, want %s", ev.Dirs, sub)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no event")
	}
}

func TestWatcher_AddTreeMissingRoot(t *testing.T) {
	w, err := New(0, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()
	if err := w.AddTree(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected error for a missing root")
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestWatcher_DoneAfterClose(t *testing.T) {
	w, err := New(0, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	select {
	case <-w.Done():
	case <-time.After(time.Second):
		t.Fatalf("Done not closed")
	}
}
