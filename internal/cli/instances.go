package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wcy168/scada-v6/internal/explorer"
	"github.com/wcy168/scada-v6/internal/model"
)

func newInstancesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "instances",
		Short: "Instance commands",
	}
	cmd.AddCommand(newInstancesListCmd(app))
	cmd.AddCommand(newInstancesAddCmd(app))
	cmd.AddCommand(newInstancesMoveCmd(app))
	cmd.AddCommand(newInstancesRemoveCmd(app))
	return cmd
}

type instanceInfo struct {
	Name   string `json:"name"`
	Server bool   `json:"server"`
	Comm   bool   `json:"comm"`
	Web    bool   `json:"web"`
}

type instanceList []instanceInfo

func (l instanceList) WriteText(w io.Writer) error {
	for i, it := range l {
		var apps []string
		for _, a := range []struct {
			on   bool
			name string
		}{{it.Server, "server"}, {it.Comm, "comm"}, {it.Web, "web"}} {
			if a.on {
				apps = append(apps, a.name)
			}
		}
		if _, err := fmt.Fprintf(w, "%d. %s [%s]\n", i+1, it.Name, strings.Join(apps, " ")); err != nil {
			return err
		}
	}
	return nil
}

func instancesOf(p *model.Project) instanceList {
	out := instanceList{}
	for _, inst := range p.Instances.Items() {
		out = append(out, instanceInfo{
			Name:   inst.Name,
			Server: inst.Server != nil && inst.Server.Enabled,
			Comm:   inst.Comm != nil && inst.Comm.Enabled,
			Web:    inst.Web != nil && inst.Web.Enabled,
		})
	}
	return out
}

func newInstancesListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List instances in order",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, instancesOf(s.project))
		},
	}
	return cmd
}

func newInstancesAddCmd(app *App) *cobra.Command {
	var (
		after             string
		server, comm, web bool
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an instance (last, or after another instance)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return writeErr(cmd, fmt.Errorf("instance name is required"))
			}
			s, err := openSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, ok := s.project.FindInstance(name); ok {
				return writeErr(cmd, errExists("instance", name))
			}
			group, err := s.instancesNode()
			if err != nil {
				return writeErr(cmd, err)
			}

			inst := model.NewInstance(name)
			dir := filepath.Join(s.project.Dir, "Instances", name)
			inst.Server.Enabled, inst.Server.Dir = server, filepath.Join(dir, "ScadaServer")
			inst.Comm.Enabled, inst.Comm.Dir = comm, filepath.Join(dir, "ScadaComm")
			inst.Web.Enabled, inst.Web.Dir = web, filepath.Join(dir, "ScadaWeb")
			for _, a := range []struct {
				on  bool
				dir string
			}{{server, inst.Server.Dir}, {comm, inst.Comm.Dir}, {web, inst.Web.Dir}} {
				if !a.on {
					continue
				}
				if err := s.store.Fs.MkdirAll(a.dir, 0o755); err != nil {
					return writeErr(cmd, err)
				}
			}

			n := explorer.NewInstanceNode(inst)
			if after != "" {
				prev, err := s.instanceNode(after)
				if err != nil {
					return writeErr(cmd, err)
				}
				s.tree.Select(prev)
				err = s.tree.InsertAfterSelection(group, n, inst)
				if err != nil {
					return writeErr(cmd, err)
				}
			} else if err := s.tree.InsertAsLastChild(group, n, inst); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.commit(); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, instancesOf(s.project))
		},
	}

	cmd.Flags().StringVar(&after, "after", "", "Insert after this instance")
	cmd.Flags().BoolVar(&server, "server", true, "Enable the Server application")
	cmd.Flags().BoolVar(&comm, "comm", false, "Enable the Communicator application")
	cmd.Flags().BoolVar(&web, "web", false, "Enable the Webstation application")
	return cmd
}

func newInstancesMoveCmd(app *App) *cobra.Command {
	var f moveFlags

	cmd := &cobra.Command{
		Use:   "move <name>",
		Short: "Reorder an instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			n, err := s.instanceNode(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return runMove(cmd, app, s, n, &f)
		},
	}
	f.register(cmd)
	return cmd
}

func newInstancesRemoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove an instance from the project (its directories are kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			n, err := s.instanceNode(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if !s.tree.Remove(n) {
				return writeErr(cmd, fmt.Errorf("cannot remove instance %s", args[0]))
			}
			if err := s.commit(); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, instancesOf(s.project))
		},
	}
	return cmd
}
