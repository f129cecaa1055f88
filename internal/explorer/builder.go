package explorer

import (
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/wcy168/scada-v6/internal/model"
)

// Static group labels.
const (
	LabelPrimaryTables   = "Primary Tables"
	LabelSecondaryTables = "Secondary Tables"
	LabelViews           = "Views"
	LabelInstances       = "Instances"
	LabelServer          = "Server"
	LabelComm            = "Communicator"
	LabelWeb             = "Webstation"
)

// FileEntry is the object behind directory and file nodes.
type FileEntry struct {
	Path string
	Dir  bool
}

func (e *FileEntry) String() string { return filepath.Base(e.Path) }

// Builder materializes the project tree and its lazily populated subtrees.
type Builder struct {
	fs  afero.Fs
	log *logrus.Entry
}

// NewBuilder returns a builder listing directories through fsys. A nil fsys
// means the OS filesystem.
func NewBuilder(fsys afero.Fs, log *logrus.Entry) *Builder {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if log == nil {
		log = logrus.NewEntry(logrus.New())
	}
	return &Builder{fs: fsys, log: log}
}

// Fs returns the filesystem used for directory listings.
func (b *Builder) Fs() afero.Fs { return b.fs }

// BuildProjectTree returns the root of a new project tree. Expensive subtrees
// are left as placeholders. The result is deterministic for a given model.
func (b *Builder) BuildProjectTree(p *model.Project) *Node {
	root := NewNode(p.Name, CategoryProject, p)
	root.Expanded = true
	root.add(b.baseNode(p.ConfigBase))

	views := NewNode(LabelViews, CategoryViewsGroup, p.Views)
	views.Editor = &Editor{Kind: EditorFile, Path: p.Views.Dir}
	views.setPlaceholder()
	root.add(views)

	instances := NewNode(LabelInstances, CategoryInstanceGroup, p.Instances)
	instances.Mirror = p.Instances
	instances.setPlaceholder()
	root.add(instances)
	return root
}

func (b *Builder) baseNode(cb *model.ConfigBase) *Node {
	base := NewNode("", CategoryBase, cb)
	primary := NewNode(LabelPrimaryTables, CategoryTableGroup, nil)
	for _, t := range PrimaryTables(cb) {
		primary.add(b.tableNode(t))
	}
	base.add(primary)

	secondary := NewNode(LabelSecondaryTables, CategoryTableGroup, nil)
	for _, t := range SecondaryTables(cb) {
		secondary.add(b.tableNode(t))
	}
	base.add(secondary)
	return base
}

func (b *Builder) tableNode(t *model.BaseTable) *Node {
	if IsChannelTable(t.Name) {
		n := NewNode(t.Title, CategoryChannelTable, t)
		n.Editor = &Editor{Kind: EditorTable, Table: t.Name}
		n.setPlaceholder()
		return n
	}
	n := NewNode(t.Title, CategoryTable, t)
	n.Editor = &Editor{Kind: EditorTable, Table: t.Name}
	return n
}

// FillChannelTableNodes rebuilds the per-device groups of both channel
// tables from the current device list.
func (b *Builder) FillChannelTableNodes(inNode, outNode *Node, cb *model.ConfigBase) {
	devices := cb.Devices()
	for _, n := range []*Node{inNode, outNode} {
		if n == nil {
			continue
		}
		table, ok := n.Object.(*model.BaseTable)
		if !ok {
			continue
		}
		n.clear()
		for _, f := range DeviceFilters(devices) {
			view := &TableView{Table: table, Filter: f}
			child := NewNode(f.Label, CategoryTableByFilter, view)
			child.Filter = &f
			child.Editor = &Editor{Kind: EditorTable, Table: table.Name, Filter: &f}
			n.add(child)
		}
		n.pending = false
	}
}

// channelTableNodes finds both channel table nodes below the base node.
func channelTableNodes(base *Node) (in, out *Node) {
	for c := range base.All() {
		if c.Category != CategoryChannelTable {
			continue
		}
		switch c.Object.(*model.BaseTable).Name {
		case model.TableInCnl:
			in = c
		case model.TableOutCnl:
			out = c
		}
	}
	return in, out
}

// RefreshChannelTables discards and rebuilds the device groups after the
// device table changed. Tables not populated yet stay pending.
func (b *Builder) RefreshChannelTables(base *Node) {
	cb, ok := base.Object.(*model.ConfigBase)
	if !ok {
		return
	}
	in, out := channelTableNodes(base)
	if in != nil && in.pending {
		in = nil
	}
	if out != nil && out.pending {
		out = nil
	}
	b.FillChannelTableNodes(in, out, cb)
}

// FillInstancesNode creates one pending node per instance of the mirrored
// instance list.
func (b *Builder) FillInstancesNode(n *Node) {
	n.clear()
	coll := n.MirroredCollection()
	if coll == nil {
		n.pending = false
		return
	}
	for i := 0; i < coll.Len(); i++ {
		if inst, ok := coll.At(i).(*model.Instance); ok {
			n.add(NewInstanceNode(inst))
		}
	}
	n.pending = false
}

// NewInstanceNode returns a pending node for inst.
func NewInstanceNode(inst *model.Instance) *Node {
	n := NewNode("", CategoryInstance, inst)
	n.Editor = &Editor{Kind: EditorInstance}
	n.setPlaceholder()
	return n
}

// FillInstanceNode creates nodes for the enabled applications of the
// instance, in the order Server, Communicator, Webstation.
func (b *Builder) FillInstanceNode(n *Node) {
	inst, ok := n.Object.(*model.Instance)
	if !ok {
		return
	}
	n.clear()
	if inst.Server != nil && inst.Server.Enabled {
		s := NewNode(LabelServer, CategoryServerApp, inst.Server)
		s.Editor = &Editor{Kind: EditorApp, Path: inst.Server.Dir}
		n.add(s)
	}
	if inst.Comm != nil && inst.Comm.Enabled {
		c := NewNode(LabelComm, CategoryCommApp, inst.Comm)
		c.Editor = &Editor{Kind: EditorApp, Path: inst.Comm.Dir}
		c.setPlaceholder()
		n.add(c)
	}
	if inst.Web != nil && inst.Web.Enabled {
		w := NewNode(LabelWeb, CategoryWebApp, inst.Web)
		w.Editor = &Editor{Kind: EditorApp, Path: inst.Web.Dir}
		w.setPlaceholder()
		n.add(w)
	}
	n.pending = false
}

// FillCommNode lists the communication lines of the Communicator and the
// devices of each line.
func (b *Builder) FillCommNode(n *Node) {
	app, ok := n.Object.(*model.CommApp)
	if !ok {
		return
	}
	n.clear()
	for _, line := range app.Lines.Items() {
		n.add(NewCommLineNode(line))
	}
	n.pending = false
}

// NewCommLineNode returns a populated node for line and its devices.
func NewCommLineNode(line *model.CommLine) *Node {
	ln := NewNode("", CategoryCommLine, line)
	for _, d := range line.Devices.Items() {
		ln.add(NewNode("", CategoryCommDevice, d))
	}
	return ln
}

// PopulateDirectory replaces the children of n with the content of dir:
// sub-directories first, then files, each ordered by name. Sub-directories
// are populated recursively. When dir cannot be listed n is left childless
// and a *DirectoryError is returned.
func (b *Builder) PopulateDirectory(n *Node, dir string) error {
	n.clear()
	if err := b.fillDirectory(n, dir); err != nil {
		return err
	}
	n.pending = false
	return nil
}

func (b *Builder) fillDirectory(n *Node, dir string) error {
	entries, err := afero.ReadDir(b.fs, dir)
	if err != nil {
		return &DirectoryError{Path: dir, Err: err}
	}
	SortDirEntries(entries)
	for _, e := range entries {
		p := filepath.Join(dir, e.Name())
		if !e.IsDir() {
			n.add(newFileNode(p))
			continue
		}
		dn := newDirectoryNode(p)
		if err := b.fillDirectory(dn, p); err != nil {
			b.log.WithError(err).WithField("dir", p).Warn("skip unreadable directory")
		}
		n.add(dn)
	}
	return nil
}

func newDirectoryNode(path string) *Node {
	n := NewNode("", CategoryDirectory, &FileEntry{Path: path, Dir: true})
	n.Editor = &Editor{Kind: EditorFile, Path: path}
	return n
}

func newFileNode(path string) *Node {
	n := NewNode("", CategoryFile, &FileEntry{Path: path})
	n.Editor = &Editor{Kind: EditorFile, Path: path}
	return n
}

// InsertDirectoryNode places a node for the newly created directory among
// the children of parent and selects it. The directory content is listed.
// Nothing is inserted while parent is still pending; its first activation
// lists the new directory anyway.
func (b *Builder) InsertDirectoryNode(parent *Node, dir string) *Node {
	if parent == nil || parent.pending {
		return nil
	}
	dn := newDirectoryNode(dir)
	if err := b.fillDirectory(dn, dir); err != nil {
		b.log.WithError(err).WithField("dir", dir).Warn("new directory not listed")
	}
	parent.insert(DirectoryInsertIndex(parent, dn.Text), dn)
	if parent.tree != nil {
		parent.tree.Select(dn)
	}
	return dn
}

// InsertFileNode places a node for the newly created file among the children
// of parent and selects it. See InsertDirectoryNode for pending parents.
func (b *Builder) InsertFileNode(parent *Node, file string) *Node {
	if parent == nil || parent.pending {
		return nil
	}
	fn := newFileNode(file)
	parent.insert(FileInsertIndex(parent, fn.Text), fn)
	if parent.tree != nil {
		parent.tree.Select(fn)
	}
	return fn
}
