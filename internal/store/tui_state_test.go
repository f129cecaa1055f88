package store

import (
	"reflect"
	"testing"

	"github.com/spf13/afero"
)

func TestUIState_SaveLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := New(dir, nil)

	// Missing file => default state.
	st0, err := s.LoadUIState()
	if err != nil {
		t.Fatalf("LoadUIState: %v", err)
	}
	if st0 == nil || st0.Version != 1 {
		t.Fatalf("expected default Version=1; got %#v", st0)
	}

	want := &UIState{
		Version:     1,
		Expanded:    []string{"Demo / Instances", "Demo / Instances / Default"},
		Selected:    "Demo / Instances / Default / Webstation",
		ShowPreview: true,
	}
	if err := s.SaveUIState(want); err != nil {
		t.Fatalf("SaveUIState: %v", err)
	}

	got, err := s.LoadUIState()
	if err != nil {
		t.Fatalf("LoadUIState (after save): %v", err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("roundtrip mismatch:\nwant: %#v\ngot:  %#v", want, got)
	}
}

func TestUIState_CorruptedIsDefault(t *testing.T) {
	t.Parallel()

	s := Store{Dir: "/p", Fs: afero.NewMemMapFs()}
	if err := afero.WriteFile(s.Fs, s.uiStatePath(), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	st, err := s.LoadUIState()
	if err != nil {
		t.Fatalf("LoadUIState: %v", err)
	}
	if st.Version != 1 || len(st.Expanded) != 0 {
		t.Fatalf("expected default state, got %#v", st)
	}
}
