// Package config resolves generator defaults from ~/.express-api/config.yaml,
// EXPRESSAPI_* environment variables and command-line flags, so users can for
// example pin their preferred view engine once instead of passing --view.
package config
