// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed, so a fork only has to edit one YAML file.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName        string `yaml:"cli_name"`
	DisplayName    string `yaml:"display_name"`
	Description    string `yaml:"description"`
	HomeDir        string `yaml:"home_dir"`
	EnvPrefix      string `yaml:"env_prefix"`
	DefaultAppName string `yaml:"default_app_name"`
	DefaultView    string `yaml:"default_view"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:        "express-api",
			DisplayName:    "Express API Generator",
			Description:    "Scaffold an Express + MongoDB API project",
			HomeDir:        ".express-api",
			EnvPrefix:      "EXPRESSAPI",
			DefaultAppName: "hello-world",
			DefaultView:    "jade",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "express-api").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".express-api").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "EXPRESSAPI").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// DefaultAppName is used when a target directory yields no usable app name.
func DefaultAppName() string { load(); return defaults.DefaultAppName }

// DefaultView is the view engine used when --view is not given.
func DefaultView() string { load(); return defaults.DefaultView }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("view") → "EXPRESSAPI_VIEW".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
