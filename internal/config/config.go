package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/expressapi-labs/express-api/internal/branding"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Keys understood in the config file, as EXPRESSAPI_<KEY> env vars, and as
// flags of the same name.
const (
	KeyView    = "view"
	KeyGit     = "git"
	KeyVerbose = "verbose"
)

// KeyForce names the --force flag. It is not a config key: skipping the
// non-empty destination prompt must be asked for on each run.
const KeyForce = "force"

// Dir returns the path to the config directory (~/.express-api/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.express-api/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// Config resolves generator settings. Precedence: flag, env, file, default.
type Config struct {
	v *viper.Viper
}

// Load reads the config file at path, if present, and enables env lookups.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			return &Config{v: v}, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return &Config{v: v}, nil
}

// BindFlags binds every known key to the flag of the same name in fs.
func (c *Config) BindFlags(fs *pflag.FlagSet) error {
	for _, key := range []string{KeyView, KeyGit, KeyVerbose} {
		f := fs.Lookup(key)
		if f == nil {
			continue
		}
		if err := c.v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag %s: %w", key, err)
		}
	}
	return nil
}

// View returns the configured view engine and whether one was set explicitly.
func (c *Config) View() (string, bool) {
	if !c.v.IsSet(KeyView) {
		return branding.DefaultView(), false
	}
	view := c.v.GetString(KeyView)
	if view == "" {
		return branding.DefaultView(), false
	}
	return view, true
}

// Git reports whether the VCS ignore file should be generated.
func (c *Config) Git() bool { return c.v.GetBool(KeyGit) }

// Verbose reports whether diagnostic logging is enabled.
func (c *Config) Verbose() bool { return c.v.GetBool(KeyVerbose) }
