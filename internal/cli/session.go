package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wcy168/scada-v6/internal/explorer"
	"github.com/wcy168/scada-v6/internal/model"
	"github.com/wcy168/scada-v6/internal/store"
)

// session is one loaded project with its explorer tree. Structural edits
// mark it dirty; commit persists the model.
type session struct {
	store   store.Store
	project *model.Project
	builder *explorer.Builder
	tree    *explorer.Tree
	exp     *explorer.Expander
	dirty   bool
}

func openSession(cmd *cobra.Command, app *App) (*session, error) {
	s, err := projectStore(app)
	if err != nil {
		return nil, err
	}
	p, err := s.Load(cmd.Context())
	if err != nil {
		return nil, err
	}
	b := explorer.NewBuilder(s.Fs, app.Log)
	t := explorer.NewTree(b.BuildProjectTree(p))
	ss := &session{
		store:   s,
		project: p,
		builder: b,
		tree:    t,
		exp:     explorer.NewExpander(t, b, app.Log),
	}
	t.Hooks.Changed = func(*explorer.Node) { ss.dirty = true }
	return ss, nil
}

func (s *session) commit() error {
	if !s.dirty {
		return nil
	}
	if err := s.store.SaveDescriptor(s.project); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

func (s *session) root() *explorer.Node { return s.tree.Root() }

// open activates n and returns it, for chaining lookups.
func (s *session) open(n *explorer.Node) (*explorer.Node, error) {
	if _, err := s.exp.OnActivate(n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *session) instancesNode() (*explorer.Node, error) {
	g := s.root().FindFirst(explorer.CategoryInstanceGroup)
	if g == nil {
		return nil, errNotFound("node", "Instances")
	}
	return s.open(g)
}

func (s *session) instanceNode(name string) (*explorer.Node, error) {
	if _, err := s.instancesNode(); err != nil {
		return nil, err
	}
	inst, ok := s.project.FindInstance(name)
	if !ok {
		return nil, errNotFound("instance", name)
	}
	n, ok := s.tree.NodeOf(inst)
	if !ok {
		return nil, errNotFound("instance node", name)
	}
	return n, nil
}

// commNode returns the opened Communicator node of the instance.
func (s *session) commNode(instance string) (*explorer.Node, *model.CommApp, error) {
	in, err := s.instanceNode(instance)
	if err != nil {
		return nil, nil, err
	}
	if _, err := s.open(in); err != nil {
		return nil, nil, err
	}
	inst := in.Object.(*model.Instance)
	n, ok := s.tree.NodeOf(inst.Comm)
	if !ok {
		return nil, nil, errNotFound("communicator of instance", instance)
	}
	if _, err := s.open(n); err != nil {
		return nil, nil, err
	}
	return n, inst.Comm, nil
}

func (s *session) lineNode(instance, line string) (*explorer.Node, error) {
	_, app, err := s.commNode(instance)
	if err != nil {
		return nil, err
	}
	num, err := strconv.Atoi(line)
	if err != nil {
		return nil, err
	}
	l, ok := app.FindLine(num)
	if !ok {
		return nil, errNotFound("line", line)
	}
	n, _ := s.tree.NodeOf(l)
	return n, nil
}

func (s *session) deviceNode(instance, device string) (*explorer.Node, error) {
	_, app, err := s.commNode(instance)
	if err != nil {
		return nil, err
	}
	num, err := strconv.Atoi(device)
	if err != nil {
		return nil, err
	}
	d, ok := app.FindDevice(num)
	if !ok {
		return nil, errNotFound("device", device)
	}
	n, _ := s.tree.NodeOf(d)
	return n, nil
}

// nodeAt resolves a path of node texts joined by " / ", relative to the
// project node. Nodes along the way are activated.
func (s *session) nodeAt(path string) (*explorer.Node, error) {
	parts := strings.Split(path, explorer.PathSeparator)
	n := s.root()
	if len(parts) > 0 && strings.TrimSpace(parts[0]) == n.Text {
		parts = parts[1:]
	}
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if _, err := s.open(n); err != nil {
			return nil, err
		}
		var next *explorer.Node
		for _, c := range n.Children() {
			if c.Text == part {
				next = c
				break
			}
		}
		if next == nil {
			return nil, errNotFound("node", path)
		}
		n = next
	}
	return n, nil
}
