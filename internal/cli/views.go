package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/wcy168/scada-v6/internal/explorer"
)

func newViewsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "views",
		Short: "View directory commands",
	}
	cmd.AddCommand(newViewsEntryCmd(app, "mkdir", "Create a directory under Views", true))
	cmd.AddCommand(newViewsEntryCmd(app, "touch", "Create an empty file under Views", false))
	return cmd
}

func newViewsEntryCmd(app *App, use, short string, dir bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " <relpath>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rel := filepath.Clean(filepath.FromSlash(args[0]))
			if !filepath.IsLocal(rel) {
				return writeErr(cmd, fmt.Errorf("path must stay inside Views: %s", args[0]))
			}
			s, err := openSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			group := s.root().FindFirst(explorer.CategoryViewsGroup)
			if group == nil {
				return writeErr(cmd, errNotFound("node", "Views"))
			}
			if _, err := s.open(group); err != nil {
				return writeErr(cmd, err)
			}

			path := filepath.Join(s.project.Views.Dir, rel)
			parent := directoryNode(group, s.project.Views.Dir, filepath.Dir(path))
			if parent == nil {
				return writeErr(cmd, errNotFound("directory", filepath.Dir(rel)))
			}
			fsys := s.store.Fs
			if ok, _ := afero.Exists(fsys, path); ok {
				return writeErr(cmd, errExists("entry", rel))
			}
			if dir {
				if err := fsys.Mkdir(path, 0o755); err != nil {
					return writeErr(cmd, err)
				}
				s.builder.InsertDirectoryNode(parent, path)
			} else {
				if err := afero.WriteFile(fsys, path, nil, 0o644); err != nil {
					return writeErr(cmd, err)
				}
				s.builder.InsertFileNode(parent, path)
			}
			return writeOut(cmd, app, listingOf(parent))
		},
	}
	return cmd
}

// directoryNode finds the node listing dir inside the views subtree.
func directoryNode(group *explorer.Node, root, dir string) *explorer.Node {
	if filepath.Clean(dir) == filepath.Clean(root) {
		return group
	}
	for n := range group.All() {
		if n.Category != explorer.CategoryDirectory {
			continue
		}
		if fe, ok := n.Object.(*explorer.FileEntry); ok && filepath.Clean(fe.Path) == filepath.Clean(dir) {
			return n
		}
	}
	return nil
}
