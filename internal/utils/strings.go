package utils

import (
	"regexp"
	"strings"

	"github.com/PolarWolf314/lucid/internal/ui"
)

var projectCodePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,31}$`)

// IsValidProjectCode reports whether code can name a project folder on every
// platform the studio uses: alphanumerics, hyphens and underscores, at most
// 32 characters, not starting with a separator.
func IsValidProjectCode(code string) bool {
	return projectCodePattern.MatchString(code)
}

// CodeKey folds a project code for uniqueness checks. Project folders live
// on case-insensitive shares, so PRJ01 and prj01 collide.
func CodeKey(code string) string {
	return strings.ToUpper(code)
}

// FormatPaths formats a slice of paths into a readable string.
func FormatPaths(paths []string) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, path := range paths {
		b.WriteString("    - ")
		b.WriteString(ui.Path.Sprint(path))
		b.WriteString("\n")
	}
	return b.String()
}
