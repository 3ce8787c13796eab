// Package ui provides semantic text formatting for Lucid CLI output.
//
// Formatters colorize content when the terminal supports it. When NO_COLOR
// is set or the terminal can't render colors, text decorations are used
// instead:
//
//	ui.Code.Sprint("lucid project list")  // `lucid project list`
//	ui.Highlight.Sprint("PRJ01")          // 'PRJ01'
//	ui.Muted.Sprint("deleted")            // (deleted)
//
// KeyValues renders merged settings and resolved tool paths as aligned,
// key-sorted lines so output is stable between runs.
package ui
