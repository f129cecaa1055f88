package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wcy168/scada-v6/internal/store"
)

func newInitCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a sample project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := app.ProjectDir
			if len(args) == 1 {
				dir = args[0]
			}
			if strings.TrimSpace(dir) == "" {
				dir = "."
			}
			abs, err := filepath.Abs(dir)
			if err != nil {
				return writeErr(cmd, err)
			}
			if name == "" {
				name = filepath.Base(abs)
			}

			s := store.New(abs, app.Log)
			p, err := s.Scaffold(name)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.SaveBase(cmd.Context(), p.ConfigBase); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, result{
				Data: map[string]any{
					"dir":       abs,
					"name":      p.Name,
					"instances": p.Instances.Len(),
				},
				text: fmt.Sprintf("created project %q in %s", p.Name, abs),
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name (default: directory name)")
	return cmd
}
