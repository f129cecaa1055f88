package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wcy168/scada-v6/internal/model"
)

func TestDescriptor_RoundTripKeepsOrder(t *testing.T) {
	s := Store{Dir: "/proj", Fs: afero.NewMemMapFs()}
	p := SampleProject("Demo", "/proj")
	p.Instances.Get(0).Comm.Lines.Get(0).Devices.Insert(0, model.NewCommDevice(7, "First"))

	require.NoError(t, s.SaveDescriptor(p))
	b, err := afero.ReadFile(s.Fs, s.ProjectPath())
	require.NoError(t, err)
	assert.Contains(t, string(b), "dir: Instances/Default/ScadaWeb")

	got, err := decodeDescriptor(b, "/proj")
	require.NoError(t, err)
	assert.Equal(t, "Demo", got.Name)
	assert.Equal(t, "/proj/Views", got.Views.Dir)
	require.Equal(t, 2, got.Instances.Len())
	def := got.Instances.Get(0)
	assert.Equal(t, "/proj/Instances/Default/ScadaWeb", def.Web.Dir)
	assert.True(t, def.Comm.Enabled)

	line := def.Comm.Lines.Get(0)
	var names []string
	for _, d := range line.Devices.Items() {
		names = append(names, d.Name)
		assert.Same(t, line, d.Line())
	}
	assert.Equal(t, []string{"First", "Energy Meter", "Pump Controller"}, names)
	assert.Same(t, def.Comm, line.TreeParent())
}

func TestDescriptor_Invalid(t *testing.T) {
	_, err := decodeDescriptor([]byte("name: ''\n"), "/p")
	assert.Error(t, err)

	_, err = decodeDescriptor([]byte("name: x\ninstances:\n  - name: a\n  - name: a\n"), "/p")
	assert.ErrorContains(t, err, "duplicate instance")

	_, err = decodeDescriptor([]byte("name: [unterminated"), "/p")
	assert.Error(t, err)
}

func TestLoad_MissingProject(t *testing.T) {
	s := Store{Dir: "/nowhere", Fs: afero.NewMemMapFs()}
	_, err := s.Load(context.Background())

	var nf NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "/nowhere", nf.Dir)
}

func TestBase_SQLiteRoundTrip(t *testing.T) {
	s := New(t.TempDir(), nil)
	ctx := context.Background()
	src := SampleProject("Demo", s.Dir).ConfigBase

	require.NoError(t, s.SaveBase(ctx, src))

	got := model.NewConfigBase()
	got.Table(model.TableUnit).Rows = []model.Row{{ID: 99, Name: "stale"}}
	require.NoError(t, s.LoadBase(ctx, got))

	for _, t0 := range src.AllTables() {
		assert.Equal(t, t0.Rows, got.Table(t0.Name).Rows, t0.Name)
	}
	in := got.Table(model.TableInCnl).Rows
	require.NotNil(t, in[0].DeviceNum)
	assert.Equal(t, 1, *in[0].DeviceNum)
	assert.Nil(t, in[len(in)-1].DeviceNum)
}

func TestScaffold_ThenLoad(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, nil)
	ctx := context.Background()

	p, err := s.Scaffold("Plant")
	require.NoError(t, err)
	require.NoError(t, s.SaveBase(ctx, p.ConfigBase))

	exists, err := afero.DirExists(s.Fs, filepath.Join(dir, "Views", "Station"))
	require.NoError(t, err)
	assert.True(t, exists)

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Plant", loaded.Name)
	assert.Equal(t, p.Instances.Len(), loaded.Instances.Len())
	assert.Len(t, loaded.ConfigBase.Devices(), 3)

	_, err = s.Scaffold("Again")
	assert.ErrorIs(t, err, ErrProjectExists)

	found, ok := DiscoverDir(filepath.Join(dir, "Views", "Station"))
	require.True(t, ok)
	assert.Equal(t, dir, found)
}

func TestLoad_MemFsTouchesNothingOnDisk(t *testing.T) {
	dir := t.TempDir()
	s := Store{Dir: dir, Fs: afero.NewMemMapFs()}
	ctx := context.Background()

	_, err := s.Scaffold("Demo")
	require.NoError(t, err)

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded.ConfigBase.Devices())

	assert.ErrorIs(t, s.SaveBase(ctx, loaded.ConfigBase), ErrBaseNotOnDisk)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLoad_DoesNotCreateDatabase(t *testing.T) {
	s := New(t.TempDir(), nil)
	require.NoError(t, s.SaveDescriptor(SampleProject("Demo", s.Dir)))

	_, err := s.Load(context.Background())
	require.NoError(t, err)

	_, err = os.Stat(s.BasePath())
	assert.ErrorIs(t, err, os.ErrNotExist)
}
