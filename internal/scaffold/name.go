package scaffold

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/expressapi-labs/express-api/internal/branding"
	"github.com/expressapi-labs/express-api/internal/plog"
)

var (
	invalidNameChars = regexp.MustCompile(`[^a-z0-9.~-]+`)
	edgeNameChars    = regexp.MustCompile(`^[-.]+|[-.]+$`)
)

// SanitizeName turns a directory name into an npm package name. It may
// return an empty string.
func SanitizeName(s string) string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, s)
	if err != nil {
		folded = s
	}

	name := strings.ToLower(folded)
	name = invalidNameChars.ReplaceAllString(name, "-")
	return edgeNameChars.ReplaceAllString(name, "")
}

// AppName derives the app name from the destination path. When nothing
// usable remains it falls back to the default name.
func AppName(dest string) string {
	abs, err := filepath.Abs(dest)
	if err != nil {
		abs = dest
	}
	name := SanitizeName(filepath.Base(abs))
	if name == "" {
		name = branding.DefaultAppName()
		plog.Info("destination yields no usable app name, using default", "dest", dest, "name", name)
	}
	return name
}
