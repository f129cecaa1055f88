package explorer

import (
	"fmt"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/wcy168/scada-v6/internal/model"
)

func intp(v int) *int { return &v }

func sampleProject() *model.Project {
	p := model.NewProject("Demo")
	p.Dir = "/proj"
	p.Views.Dir = "/proj/Views"

	cb := p.ConfigBase
	cb.Table(model.TableDevice).Rows = []model.Row{
		{ID: 1, Name: "Meter"},
		{ID: 2, Name: "PLC"},
	}
	// Row order deliberately differs from device order.
	cb.Table(model.TableInCnl).Rows = []model.Row{
		{ID: 101, Name: "Orphan"},
		{ID: 102, Name: "PLC run", DeviceNum: intp(2)},
		{ID: 103, Name: "Meter kWh", DeviceNum: intp(1)},
		{ID: 104, Name: "Meter kvarh", DeviceNum: intp(1)},
	}
	cb.Table(model.TableOutCnl).Rows = []model.Row{
		{ID: 201, Name: "PLC start", DeviceNum: intp(2)},
	}

	def := model.NewInstance("Default")
	def.Server.Enabled = true
	def.Comm.Enabled = true
	def.Web.Enabled = true
	def.Web.Dir = "/proj/Instances/Default/ScadaWeb"
	lineA := model.NewCommLine(1, "Line A")
	lineA.AddDevice(model.NewCommDevice(1, "Meter"))
	lineA.AddDevice(model.NewCommDevice(2, "PLC"))
	lineB := model.NewCommLine(2, "Line B")
	lineB.AddDevice(model.NewCommDevice(3, "Sensor"))
	def.Comm.AddLine(lineA)
	def.Comm.AddLine(lineB)

	backup := model.NewInstance("Backup")
	backup.Web.Enabled = true

	p.Instances.Append(def)
	p.Instances.Append(backup)
	p.Instances.Append(model.NewInstance("Spare"))
	return p
}

func quietLog() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

type fixture struct {
	project *model.Project
	fs      afero.Fs
	builder *Builder
	tree    *Tree
	exp     *Expander
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/proj/Views", 0o755))
	p := sampleProject()
	b := NewBuilder(fsys, quietLog())
	tree := NewTree(b.BuildProjectTree(p))
	return &fixture{
		project: p,
		fs:      fsys,
		builder: b,
		tree:    tree,
		exp:     NewExpander(tree, b, quietLog()),
	}
}

// find returns the node at the given path of child texts below the root.
func (f *fixture) find(t *testing.T, path ...string) *Node {
	t.Helper()
	n := f.tree.Root()
	for _, name := range path {
		var next *Node
		for _, c := range n.Children() {
			if c.Text == name {
				next = c
				break
			}
		}
		require.NotNilf(t, next, "no child %q under %q", name, n.Text)
		n = next
	}
	return n
}

func (f *fixture) activate(t *testing.T, path ...string) *Node {
	t.Helper()
	n := f.find(t, path...)
	_, err := f.exp.OnActivate(n)
	require.NoError(t, err)
	return n
}

func texts(n *Node) []string {
	out := make([]string, 0, n.Len())
	for _, c := range n.Children() {
		out = append(out, c.Text)
	}
	return out
}

func collTexts(c model.Collection) []string {
	out := make([]string, 0, c.Len())
	for i := 0; i < c.Len(); i++ {
		out = append(out, titleOf(c.At(i)))
	}
	return out
}

// snapshot flattens a subtree into "depth:category:text" lines.
func snapshot(n *Node) []string {
	var out []string
	base := n.Depth()
	n.Walk(func(c *Node) bool {
		out = append(out, fmt.Sprintf("%d:%s:%s", c.Depth()-base, c.Category, c.Text))
		return true
	})
	return out
}

func requireValid(t *testing.T, tree *Tree) {
	t.Helper()
	require.Empty(t, tree.Verify())
}
