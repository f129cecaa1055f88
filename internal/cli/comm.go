package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wcy168/scada-v6/internal/explorer"
	"github.com/wcy168/scada-v6/internal/model"
)

func newLinesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lines",
		Short: "Communication line commands",
	}
	cmd.AddCommand(newLinesListCmd(app))
	cmd.AddCommand(newLinesMoveCmd(app))
	return cmd
}

func newLinesListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <instance>",
		Short: "List the communication lines of an instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			n, _, err := s.commNode(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, exportTree(n, -1))
		},
	}
	return cmd
}

func newLinesMoveCmd(app *App) *cobra.Command {
	var f moveFlags

	cmd := &cobra.Command{
		Use:   "move <instance> <line-num>",
		Short: "Reorder a communication line",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			n, err := s.lineNode(args[0], args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			return runMove(cmd, app, s, n, &f)
		},
	}
	f.register(cmd)
	return cmd
}

func newDevicesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "devices",
		Short: "Communicator device commands",
	}
	cmd.AddCommand(newDevicesAddCmd(app))
	cmd.AddCommand(newDevicesMoveCmd(app))
	cmd.AddCommand(newDevicesRemoveCmd(app))
	return cmd
}

func newDevicesAddCmd(app *App) *cobra.Command {
	var after string

	cmd := &cobra.Command{
		Use:   "add <instance> <line-num> <device-num> <name>",
		Short: "Add a device to a communication line",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			num, err := strconv.Atoi(args[2])
			if err != nil {
				return writeErr(cmd, fmt.Errorf("device number: %w", err))
			}
			name := strings.TrimSpace(args[3])
			s, err := openSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			line, err := s.lineNode(args[0], args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			_, comm, _ := s.commNode(args[0])
			if _, ok := comm.FindDevice(num); ok {
				return writeErr(cmd, errExists("device", args[2]))
			}

			dev := model.NewCommDevice(num, name)
			n := explorer.NewNode("", explorer.CategoryCommDevice, dev)
			if after != "" {
				prev, err := s.deviceNode(args[0], after)
				if err != nil {
					return writeErr(cmd, err)
				}
				s.tree.Select(prev)
				if err := s.tree.InsertAfterSelection(line, n, dev); err != nil {
					return writeErr(cmd, err)
				}
			} else if err := s.tree.InsertAsLastChild(line, n, dev); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.commit(); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, listingOf(line))
		},
	}

	cmd.Flags().StringVar(&after, "after", "", "Insert after this device number (on the same line)")
	return cmd
}

func newDevicesMoveCmd(app *App) *cobra.Command {
	var f moveFlags

	cmd := &cobra.Command{
		Use:   "move <instance> <device-num>",
		Short: "Reorder a device, optionally across communication lines",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			n, err := s.deviceNode(args[0], args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			return runMove(cmd, app, s, n, &f)
		},
	}
	f.register(cmd)
	cmd.Flags().BoolVar(&f.through, "through-lines", false, "At the first/last position, continue into the previous/next line")
	return cmd
}

func newDevicesRemoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <instance> <device-num>",
		Short: "Remove a device from its communication line",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			n, err := s.deviceNode(args[0], args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			line := n.Parent()
			if !s.tree.Remove(n) {
				return writeErr(cmd, fmt.Errorf("cannot remove device %s", args[1]))
			}
			if err := s.commit(); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, listingOf(line))
		},
	}
	return cmd
}
