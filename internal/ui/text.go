package ui

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
)

// Formatter renders one kind of CLI content. With color disabled it falls
// back to plain text decorations.
type Formatter struct {
	color  *color.Color
	prefix string
	suffix string
}

func (f Formatter) Sprint(a ...any) string {
	text := fmt.Sprint(a...)
	if noColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

func (f Formatter) Sprintf(format string, a ...any) string {
	return f.Sprint(fmt.Sprintf(format, a...))
}

// EnsureNewline ensures the string ends with a newline character.
func EnsureNewline(s string) string {
	if len(s) == 0 || s[len(s)-1] != '\n' {
		return s + "\n"
	}
	return s
}

// KeyValues renders a mapping as aligned "key = value" lines sorted by key.
func KeyValues(indent string, values map[string]string) string {
	keys := make([]string, 0, len(values))
	width := 0
	for k := range values {
		keys = append(keys, k)
		if len(k) > width {
			width = len(k)
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(indent)
		b.WriteString(Key.Sprint(k))
		b.WriteString(strings.Repeat(" ", width-len(k)))
		b.WriteString(" = ")
		b.WriteString(values[k])
		b.WriteString("\n")
	}
	return b.String()
}

// noColor honors NO_COLOR (https://no-color.org/) and fatih/color's terminal detection.
func noColor() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return true
	}
	return color.NoColor
}

var (
	// Code formats runnable commands. `backticks` without color.
	Code = Formatter{color.New(color.FgYellow), "`", "`"}

	// Path formats filesystem locations: project roots, tool executables.
	Path = Formatter{color.New(color.FgYellow), "", ""}

	// Key formats setting keys and tool names.
	Key = Formatter{color.New(color.FgMagenta), "", ""}

	Success = Formatter{color.New(color.FgGreen), "", ""}
	Error   = Formatter{color.New(color.FgRed), "", ""}
	Warning = Formatter{color.New(color.FgYellow), "", ""}
	Info    = Formatter{color.New(color.FgCyan), "", ""}

	// Highlight formats user values such as project codes and host names.
	// 'single quotes' without color.
	Highlight = Formatter{color.New(color.FgCyan), "'", "'"}

	// Muted formats secondary text. (parentheses) without color.
	Muted = Formatter{color.New(color.FgHiBlack), "(", ")"}
)
