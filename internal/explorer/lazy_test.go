package explorer

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnActivate_InstancesAndApplications(t *testing.T) {
	f := newFixture(t)
	instances := f.activate(t, LabelInstances)
	require.Equal(t, []string{"Default", "Backup", "Spare"}, texts(instances))
	for _, c := range instances.Children() {
		assert.True(t, c.HasPlaceholder(), c.Text)
	}

	def := f.activate(t, LabelInstances, "Default")
	assert.Equal(t, []string{LabelServer, LabelComm, LabelWeb}, texts(def))
	assert.Zero(t, def.Children()[0].Len(), "server has no lazy content")
	assert.True(t, def.Children()[1].HasPlaceholder())
	assert.True(t, def.Children()[2].HasPlaceholder())

	assert.Equal(t, []string{LabelWeb}, texts(f.activate(t, LabelInstances, "Backup")))
	assert.Empty(t, texts(f.activate(t, LabelInstances, "Spare")))
	requireValid(t, f.tree)
}

func TestOnActivate_Idempotent(t *testing.T) {
	f := newFixture(t)
	instances := f.find(t, LabelInstances)

	populated, err := f.exp.OnActivate(instances)
	require.NoError(t, err)
	require.True(t, populated)
	first := append([]*Node(nil), instances.Children()...)

	populated, err = f.exp.OnActivate(instances)
	require.NoError(t, err)
	assert.False(t, populated)
	assert.Equal(t, first, instances.Children())
}

func TestOnActivate_NeverMixesPlaceholder(t *testing.T) {
	f := newFixture(t)
	f.exp.ExpandAll(f.tree.Root(), -1)

	for n := range f.tree.Root().All() {
		if n.Len() > 1 {
			for _, c := range n.Children() {
				require.False(t, c.IsPlaceholder(), PathOf(n))
			}
		}
		require.False(t, n.HasPlaceholder(), "%s still holds a placeholder", PathOf(n))
	}
	requireValid(t, f.tree)
}

func TestOnActivate_FailedDirectoryRetries(t *testing.T) {
	f := newFixture(t)
	f.activate(t, LabelInstances)
	f.activate(t, LabelInstances, "Default")
	web := f.find(t, LabelInstances, "Default", LabelWeb)

	populated, err := f.exp.OnActivate(web)
	var derr *DirectoryError
	require.ErrorAs(t, err, &derr)
	assert.False(t, populated)
	assert.Zero(t, web.Len())
	assert.True(t, web.Pending())
	requireValid(t, f.tree)

	require.NoError(t, afero.WriteFile(f.fs, "/proj/Instances/Default/ScadaWeb/index.html", nil, 0o644))
	populated, err = f.exp.OnActivate(web)
	require.NoError(t, err)
	assert.True(t, populated)
	assert.Equal(t, []string{"index.html"}, texts(web))
}

func TestOnActivate_CommLines(t *testing.T) {
	f := newFixture(t)
	f.activate(t, LabelInstances)
	f.activate(t, LabelInstances, "Default")
	comm := f.activate(t, LabelInstances, "Default", LabelComm)

	require.Equal(t, []string{"Line 1 - Line A", "Line 2 - Line B"}, texts(comm))
	assert.Equal(t, []string{"[1] Meter", "[2] PLC"}, texts(comm.Children()[0]))
	requireValid(t, f.tree)
}

func TestOnActivate_HooksAndNil(t *testing.T) {
	f := newFixture(t)
	var activated []string
	f.tree.Hooks.Activated = func(n *Node) { activated = append(activated, n.Text) }

	f.activate(t, LabelInstances)
	f.activate(t, LabelInstances)
	assert.Equal(t, []string{LabelInstances}, activated)

	_, err := f.exp.OnActivate(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestExpandAll_DepthLimit(t *testing.T) {
	f := newFixture(t)
	f.exp.ExpandAll(f.tree.Root(), 1)

	assert.False(t, f.find(t, LabelInstances).Pending())
	assert.True(t, f.find(t, LabelInstances, "Default").Pending())
}

func TestReload_ViewsPicksUpNewFiles(t *testing.T) {
	f := newFixture(t)
	views := f.activate(t, LabelViews)
	require.Zero(t, views.Len())

	require.NoError(t, afero.WriteFile(f.fs, "/proj/Views/new.sch", nil, 0o644))
	require.NoError(t, f.exp.Reload(views))
	assert.Equal(t, []string{"new.sch"}, texts(views))
}
