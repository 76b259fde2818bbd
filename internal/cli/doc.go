// Package cli defines the cobra root command of express-api. The command only
// handles flag parsing, configuration and user interaction; generation itself
// lives in internal/scaffold.
package cli
