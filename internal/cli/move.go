package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/wcy168/scada-v6/internal/explorer"
)

// moveFlags are the position flags shared by the move subcommands.
type moveFlags struct {
	up      bool
	down    bool
	to      int
	through bool
}

func (f *moveFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.up, "up", false, "Move one position up")
	cmd.Flags().BoolVar(&f.down, "down", false, "Move one position down")
	cmd.Flags().IntVar(&f.to, "to", 0, "Move to this position (1-based)")
	cmd.MarkFlagsMutuallyExclusive("up", "down", "to")
	cmd.MarkFlagsOneRequired("up", "down", "to")
}

func (f *moveFlags) behavior() explorer.MoveBehavior {
	if f.through {
		return explorer.ThroughSimilarParents
	}
	return explorer.WithinParent
}

// apply moves n and reports whether the tree changed.
func (f *moveFlags) apply(t *explorer.Tree, n *explorer.Node) (bool, error) {
	switch {
	case f.up:
		return t.MoveUp(n, f.behavior()), nil
	case f.down:
		return t.MoveDown(n, f.behavior()), nil
	case f.to > 0:
		return t.MoveToIndex(n, f.to-1), nil
	}
	return false, errors.New("--to must be a positive position")
}

// runMove applies the flags to n, commits and prints the node's siblings.
func runMove(cmd *cobra.Command, app *App, s *session, n *explorer.Node, f *moveFlags) error {
	moved, err := f.apply(s.tree, n)
	if err != nil {
		return writeErr(cmd, err)
	}
	if !moved {
		return writeErr(cmd, unmovedError{what: n.Text})
	}
	if err := s.commit(); err != nil {
		return writeErr(cmd, err)
	}
	l := listingOf(n.Parent())
	l.Moved = &moved
	return writeOut(cmd, app, l)
}
