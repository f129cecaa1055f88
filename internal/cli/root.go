package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wcy168/scada-v6/internal/config"
	"github.com/wcy168/scada-v6/internal/format"
	"github.com/wcy168/scada-v6/internal/logging"
	"github.com/wcy168/scada-v6/internal/store"
	"github.com/wcy168/scada-v6/internal/tui"
)

type App struct {
	ProjectDir string
	ConfigFile string
	Format     string
	Pretty     bool
	LogLevel   string

	Settings config.Settings
	Log      *logrus.Entry
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "scada-admin",
		Short:        "SCADA project explorer (TUI + scriptable commands)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Create a sample project and browse it
  scada-admin init ./demo
  scada-admin --project ./demo

  # Print the fully expanded tree
  scada-admin tree --expand

  # Reorder instances
  scada-admin instances move Standby --up
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive explorer.
			if len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.configure(cmd)
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&app.ProjectDir, "project", "", "Project directory (default: the project enclosing the working directory)")
	flags.StringVar(&app.ConfigFile, "config", envOr("SCADA_CONFIG", ""), "Config file (default: ~/.config/scada-admin/config.yaml)")
	flags.StringVar(&app.Format, "format", "", "Output format (text|json|edn)")
	flags.BoolVar(&app.Pretty, "pretty", false, "Pretty-print json/edn output")
	flags.StringVar(&app.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newTreeCmd(app))
	cmd.AddCommand(newCheckCmd(app))
	cmd.AddCommand(newInstancesCmd(app))
	cmd.AddCommand(newLinesCmd(app))
	cmd.AddCommand(newDevicesCmd(app))
	cmd.AddCommand(newViewsCmd(app))

	return cmd
}

// configure merges the config file, SCADA_* variables and flags. Flags that
// were set explicitly win.
func (app *App) configure(cmd *cobra.Command) error {
	v, err := config.Load(app.ConfigFile)
	if err != nil {
		return writeErr(cmd, fmt.Errorf("config: %w", err))
	}
	root := cmd.Root().PersistentFlags()
	for key, flag := range map[string]string{
		"project_dir": "project",
		"format":      "format",
		"log_level":   "log-level",
	} {
		if f := root.Lookup(flag); f != nil && f.Changed {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}
	app.Settings = config.Resolve(v)
	app.ProjectDir = app.Settings.ProjectDir
	app.Format = app.Settings.Format
	app.LogLevel = app.Settings.LogLevel
	if !format.Valid(app.Format) {
		return writeErr(cmd, fmt.Errorf("unknown format: %s", app.Format))
	}
	app.Log = logging.New(cmd.ErrOrStderr(), app.LogLevel)
	logViperSource(app.Log, v)
	return nil
}

func logViperSource(log *logrus.Entry, v *viper.Viper) {
	if f := v.ConfigFileUsed(); f != "" {
		log.WithField("file", f).Debug("config loaded")
	}
}

// projectStore resolves the project directory: --project, then the
// project_dir setting, then discovery from the working directory.
func projectStore(app *App) (store.Store, error) {
	dir := strings.TrimSpace(app.ProjectDir)
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return store.Store{}, err
		}
		dir = d
	}
	return store.New(dir, app.Log), nil
}

func runTUI(cmd *cobra.Command, app *App) error {
	s, err := projectStore(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	p, err := s.Load(cmd.Context())
	if err != nil {
		return writeErr(cmd, err)
	}
	if err := s.Ensure(); err != nil {
		return writeErr(cmd, err)
	}
	log, closeLog, err := logging.OpenFile(s.LogPath(), app.LogLevel)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer closeLog()
	s.Log = log
	return tui.Run(cmd.Context(), s, p, tui.Options{
		Glyphs:       app.Settings.Glyphs,
		Watch:        app.Settings.Watch,
		PreviewLines: app.Settings.PreviewLines,
		Log:          log,
	})
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.Pretty)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
