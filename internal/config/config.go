package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Settings are the resolved application settings.
type Settings struct {
	ProjectDir string
	LogLevel   string
	Format     string
	Glyphs     string
	Watch      bool
	// PreviewLines caps how much of a file the preview pane renders.
	PreviewLines int
}

const envPrefix = "SCADA"

// Load reads settings from file (explicit path or the default location), the
// SCADA_* environment and defaults. A missing default config file is fine;
// a missing explicit one is not.
func Load(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if dir, err := Dir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("project_dir", "")
	v.SetDefault("log_level", "warn")
	v.SetDefault("format", "text")
	v.SetDefault("tui.glyphs", "unicode")
	v.SetDefault("tui.watch", true)
	v.SetDefault("tui.preview_lines", 200)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	}
	return v, nil
}

// Resolve extracts Settings from v.
func Resolve(v *viper.Viper) Settings {
	return Settings{
		ProjectDir:   v.GetString("project_dir"),
		LogLevel:     v.GetString("log_level"),
		Format:       v.GetString("format"),
		Glyphs:       v.GetString("tui.glyphs"),
		Watch:        v.GetBool("tui.watch"),
		PreviewLines: v.GetInt("tui.preview_lines"),
	}
}

// Dir is the directory holding config.yaml. SCADA_CONFIG_DIR overrides it,
// which keeps tests away from the real home directory.
func Dir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("SCADA_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "scada-admin"), nil
}
