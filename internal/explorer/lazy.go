package explorer

import (
	"github.com/sirupsen/logrus"

	"github.com/wcy168/scada-v6/internal/model"
)

// Expander populates pending nodes on first activation.
type Expander struct {
	tree    *Tree
	builder *Builder
	log     *logrus.Entry
}

// NewExpander registers an expander on t so that structural edits under a
// pending parent populate it first.
func NewExpander(t *Tree, b *Builder, log *logrus.Entry) *Expander {
	if log == nil {
		log = logrus.NewEntry(logrus.New())
	}
	e := &Expander{tree: t, builder: b, log: log}
	t.activate = e.OnActivate
	return e
}

// OnActivate populates n if it is pending and reports whether it did. Once
// populated, further activations are no-ops. A failed population leaves n
// childless and pending so that the next activation retries.
func (e *Expander) OnActivate(n *Node) (bool, error) {
	if n == nil {
		return false, ErrInvalidArgument
	}
	n.Expanded = true
	if !n.pending {
		return false, nil
	}
	n.dropPlaceholder()

	var err error
	switch n.Category {
	case CategoryChannelTable:
		base := n.FindClosest(CategoryBase)
		if base == nil {
			return false, ErrInvalidArgument
		}
		in, out := channelTableNodes(base)
		e.builder.FillChannelTableNodes(in, out, base.Object.(*model.ConfigBase))
	case CategoryViewsGroup:
		views, _ := n.Object.(*model.ProjectViews)
		if views == nil {
			return false, ErrInvalidArgument
		}
		err = e.builder.PopulateDirectory(n, views.Dir)
	case CategoryWebApp:
		app, _ := n.Object.(*model.App)
		if app == nil {
			return false, ErrInvalidArgument
		}
		err = e.builder.PopulateDirectory(n, app.Dir)
	case CategoryInstanceGroup:
		e.builder.FillInstancesNode(n)
	case CategoryInstance:
		e.builder.FillInstanceNode(n)
	case CategoryCommApp:
		e.builder.FillCommNode(n)
	default:
		n.pending = false
	}
	if err != nil {
		e.log.WithError(err).WithField("node", PathOf(n)).Warn("populate node")
		return false, err
	}
	if e.tree.Hooks.Activated != nil {
		e.tree.Hooks.Activated(n)
	}
	return true, nil
}

// Collapse marks n closed. Children are kept.
func (e *Expander) Collapse(n *Node) {
	if n != nil {
		n.Expanded = false
	}
}

// ExpandAll activates every pending node below n, depth first, and returns
// the errors of nodes that could not be populated.
func (e *Expander) ExpandAll(n *Node, maxDepth int) []error {
	var errs []error
	var visit func(*Node, int)
	visit = func(c *Node, depth int) {
		if maxDepth >= 0 && depth > maxDepth {
			return
		}
		if _, err := e.OnActivate(c); err != nil {
			errs = append(errs, err)
		}
		for _, child := range c.Children() {
			visit(child, depth+1)
		}
	}
	visit(n, 0)
	return errs
}

// Reload discards and repopulates the subtree of n when it was populated
// before. Pending nodes are left for their first activation.
func (e *Expander) Reload(n *Node) error {
	if n == nil || n.pending {
		return nil
	}
	switch n.Category {
	case CategoryChannelTable:
		if base := n.FindClosest(CategoryBase); base != nil {
			e.builder.RefreshChannelTables(base)
		}
		return nil
	case CategoryViewsGroup:
		if views, ok := n.Object.(*model.ProjectViews); ok {
			return e.builder.PopulateDirectory(n, views.Dir)
		}
	case CategoryWebApp:
		if app, ok := n.Object.(*model.App); ok {
			return e.builder.PopulateDirectory(n, app.Dir)
		}
	case CategoryDirectory:
		if fe, ok := n.Object.(*FileEntry); ok {
			return e.builder.PopulateDirectory(n, fe.Path)
		}
	case CategoryInstanceGroup:
		e.builder.FillInstancesNode(n)
	case CategoryCommApp:
		e.builder.FillCommNode(n)
	}
	return nil
}
