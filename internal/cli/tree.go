package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newTreeCmd(app *App) *cobra.Command {
	var (
		expand bool
		depth  int
		path   string
	)

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the project tree",
		Long: strings.TrimSpace(`
Build the explorer tree of the project and print it.

Lazily populated nodes (channel tables, views, instances, applications) are
shown as pending unless --expand is given. --path selects a subtree by node
texts joined with " / ", e.g. "Instances / Default".
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			n := s.root()
			if path != "" {
				if n, err = s.nodeAt(path); err != nil {
					return writeErr(cmd, err)
				}
			}
			if expand {
				for _, err := range s.exp.ExpandAll(n, depth) {
					app.Log.WithError(err).Warn("subtree not populated")
				}
			}
			return writeOut(cmd, app, exportTree(n, depth))
		},
	}

	cmd.Flags().BoolVar(&expand, "expand", false, "Populate pending nodes before printing")
	cmd.Flags().IntVar(&depth, "depth", -1, "Maximum depth to print (-1: unlimited)")
	cmd.Flags().StringVar(&path, "path", "", "Print only the subtree at this node path")
	return cmd
}
