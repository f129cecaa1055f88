package explorer

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wcy168/scada-v6/internal/model"
)

func TestBuildProjectTree_Skeleton(t *testing.T) {
	f := newFixture(t)
	root := f.tree.Root()

	assert.Equal(t, "Demo", root.Text)
	assert.Equal(t, []string{"Configuration Database", LabelViews, LabelInstances}, texts(root))
	assert.Equal(t, []string{LabelPrimaryTables, LabelSecondaryTables}, texts(f.find(t, "Configuration Database")))

	views := f.find(t, LabelViews)
	instances := f.find(t, LabelInstances)
	for _, n := range []*Node{views, instances} {
		assert.True(t, n.Pending(), n.Text)
		assert.True(t, n.HasPlaceholder(), n.Text)
	}
	requireValid(t, f.tree)
}

func TestBuildProjectTree_TableOrder(t *testing.T) {
	f := newFixture(t)

	primary := f.find(t, "Configuration Database", LabelPrimaryTables)
	assert.Equal(t, []string{
		"Objects", "Communication Lines", "Devices", "Input Channels", "Output Channels",
		"Limits", "Views", "Roles", "Role Inheritance", "Object Rights", "Users",
	}, texts(primary))

	secondary := f.find(t, "Configuration Database", LabelSecondaryTables)
	assert.Equal(t, []string{
		"Archives", "Channel Statuses", "Channel Types", "Command Types", "Data Types",
		"Device Types", "Formats", "Quantities", "Scripts", "Units", "View Types",
	}, texts(secondary))

	in := f.find(t, "Configuration Database", LabelPrimaryTables, "Input Channels")
	assert.Equal(t, CategoryChannelTable, in.Category)
	assert.True(t, in.HasPlaceholder())
	objs := f.find(t, "Configuration Database", LabelPrimaryTables, "Objects")
	assert.Equal(t, CategoryTable, objs.Category)
	assert.Zero(t, objs.Len())
}

func TestBuildProjectTree_Deterministic(t *testing.T) {
	p := sampleProject()
	b := NewBuilder(afero.NewMemMapFs(), quietLog())
	first := snapshot(b.BuildProjectTree(p))
	second := snapshot(b.BuildProjectTree(p))
	require.Equal(t, first, second)
}

func TestSecondaryTables_StableForEqualTitles(t *testing.T) {
	cb := model.NewConfigBase()
	cb.Table(model.TableUnit).Title = "Same"
	cb.Table(model.TableCnlType).Title = "Same"
	cb.Table(model.TableArchive).Title = "Zeta"

	var got []string
	for _, tb := range SecondaryTables(cb) {
		if tb.Title == "Same" {
			got = append(got, tb.Name)
		}
	}
	// CnlType is defined before Unit.
	assert.Equal(t, []string{model.TableCnlType, model.TableUnit}, got)
	last := SecondaryTables(cb)[len(SecondaryTables(cb))-1]
	assert.Equal(t, "Zeta", last.Title)
}

func TestFillChannelTableNodes_GroupsByDeviceOrder(t *testing.T) {
	f := newFixture(t)
	in := f.activate(t, "Configuration Database", LabelPrimaryTables, "Input Channels")

	require.Equal(t, []string{"[1] Meter", "[2] PLC", "Unassigned"}, texts(in))
	table := f.project.ConfigBase.Table(model.TableInCnl)
	var counts []int
	for _, c := range in.Children() {
		require.Equal(t, CategoryTableByFilter, c.Category)
		require.NotNil(t, c.Filter)
		counts = append(counts, c.Filter.Count(table))
	}
	assert.Equal(t, []int{2, 1, 1}, counts)
	assert.True(t, in.Children()[2].Filter.Unset())

	// Both channel tables are filled on the first activation of either.
	out := f.find(t, "Configuration Database", LabelPrimaryTables, "Output Channels")
	assert.False(t, out.Pending())
	assert.Equal(t, []string{"[1] Meter", "[2] PLC", "Unassigned"}, texts(out))
	requireValid(t, f.tree)
}

func TestRefreshChannelTables_RebuildsAfterDeviceChange(t *testing.T) {
	f := newFixture(t)
	in := f.activate(t, "Configuration Database", LabelPrimaryTables, "Input Channels")
	old := in.Children()[0]

	devs := f.project.ConfigBase.Table(model.TableDevice)
	devs.Rows = append(devs.Rows, model.Row{ID: 7, Name: "Pump"})
	f.builder.RefreshChannelTables(f.find(t, "Configuration Database"))

	assert.Equal(t, []string{"[1] Meter", "[2] PLC", "[7] Pump", "Unassigned"}, texts(in))
	assert.NotSame(t, old, in.Children()[0])
	_, ok := f.tree.NodeOf(old.Object)
	assert.False(t, ok, "discarded node stays indexed")
	requireValid(t, f.tree)
}

func TestRefreshChannelTables_LeavesPendingTables(t *testing.T) {
	f := newFixture(t)
	f.builder.RefreshChannelTables(f.find(t, "Configuration Database"))

	in := f.find(t, "Configuration Database", LabelPrimaryTables, "Input Channels")
	assert.True(t, in.Pending())
	assert.True(t, in.HasPlaceholder())
}

func TestPopulateDirectory_DirectoriesFirstByName(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, afero.WriteFile(f.fs, "/proj/Views/b.txt", []byte("b"), 0o644))
	require.NoError(t, f.fs.MkdirAll("/proj/Views/A/Deep", 0o755))
	require.NoError(t, afero.WriteFile(f.fs, "/proj/Views/A/inner.sch", nil, 0o644))
	require.NoError(t, afero.WriteFile(f.fs, "/proj/Views/a.txt", []byte("a"), 0o644))

	views := f.activate(t, LabelViews)

	require.Equal(t, []string{"A", "a.txt", "b.txt"}, texts(views))
	dir := views.Children()[0]
	assert.Equal(t, CategoryDirectory, dir.Category)
	assert.Equal(t, []string{"Deep", "inner.sch"}, texts(dir), "sub-directories are listed eagerly")
	assert.False(t, dir.Pending())
	assert.Equal(t, CategoryFile, views.Children()[1].Category)
	requireValid(t, f.tree)
}

func TestPopulateDirectory_MissingDirectory(t *testing.T) {
	f := newFixture(t)
	n := NewNode("x", CategoryDirectory, &FileEntry{Path: "/nope", Dir: true})

	err := f.builder.PopulateDirectory(n, "/nope")

	var derr *DirectoryError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "/nope", derr.Path)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Zero(t, n.Len())
}

func TestInsertDirectoryNode_KeepsLeadingBlock(t *testing.T) {
	f := newFixture(t)
	for _, d := range []string{"/proj/Views/B", "/proj/Views/D"} {
		require.NoError(t, f.fs.MkdirAll(d, 0o755))
	}
	require.NoError(t, afero.WriteFile(f.fs, "/proj/Views/a.txt", nil, 0o644))
	views := f.activate(t, LabelViews)

	require.NoError(t, f.fs.MkdirAll("/proj/Views/C", 0o755))
	n := f.builder.InsertDirectoryNode(views, "/proj/Views/C")
	require.NotNil(t, n)
	assert.Equal(t, []string{"B", "C", "D", "a.txt"}, texts(views))
	assert.Same(t, n, f.tree.Selected())

	f.builder.InsertDirectoryNode(views, "/proj/Views/Z")
	assert.Equal(t, []string{"B", "C", "D", "Z", "a.txt"}, texts(views))
}

func TestInsertFileNode_Placement(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.fs.MkdirAll("/proj/Views/Dir", 0o755))
	for _, name := range []string{"b.txt", "d.txt"} {
		require.NoError(t, afero.WriteFile(f.fs, "/proj/Views/"+name, nil, 0o644))
	}
	views := f.activate(t, LabelViews)

	f.builder.InsertFileNode(views, "/proj/Views/c.txt")
	f.builder.InsertFileNode(views, "/proj/Views/a.txt")
	f.builder.InsertFileNode(views, "/proj/Views/e.txt")
	assert.Equal(t, []string{"Dir", "a.txt", "b.txt", "c.txt", "d.txt", "e.txt"}, texts(views))
	assert.Equal(t, "e.txt", f.tree.Selected().Text)
}

func TestInsertFileNode_StopsAtForeignCategory(t *testing.T) {
	parent := NewNode("p", CategoryWebApp, nil)
	parent.add(NewNode("Dir", CategoryDirectory, nil))
	parent.add(NewNode("m.txt", CategoryFile, nil))
	parent.add(NewNode("Other", CategoryTable, nil))
	parent.add(NewNode("z.txt", CategoryFile, nil))

	assert.Equal(t, 2, FileInsertIndex(parent, "x.txt"))
	assert.Equal(t, 1, FileInsertIndex(parent, "a.txt"))
	assert.Equal(t, 1, DirectoryInsertIndex(parent, "E"))
	assert.Equal(t, 0, DirectoryInsertIndex(parent, "A"))
}

func TestInsertDirectoryNode_PendingParentUntouched(t *testing.T) {
	f := newFixture(t)
	views := f.find(t, LabelViews)

	assert.Nil(t, f.builder.InsertDirectoryNode(views, "/proj/Views/New"))
	assert.True(t, views.HasPlaceholder())
}
