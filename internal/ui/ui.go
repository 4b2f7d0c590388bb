// Package ui prints colored status lines and tables for the CLI.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	Brand  = color.New(color.FgHiCyan, color.Bold)
	Subtle = color.New(color.FgHiBlack)
	Warn   = color.New(color.FgYellow)
	Info   = color.New(color.FgCyan)
	Good   = color.New(color.FgGreen)
	Bad    = color.New(color.FgRed)
)

// Step prints a "[*]" progress line
func Step(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", Info.Sprint("[*]"), fmt.Sprintf(format, args...))
}

// Warning prints a "[!]" line
func Warning(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", Warn.Sprint("[!]"), fmt.Sprintf(format, args...))
}

// Fail prints a "[-]" line
func Fail(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", Bad.Sprint("[-]"), fmt.Sprintf(format, args...))
}

// Done prints a "[+]" line
func Done(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", Good.Sprint("[+]"), fmt.Sprintf(format, args...))
}

// Table prints an aligned table with a dim header
func Table(w io.Writer, headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var header, sep strings.Builder
	for i, h := range headers {
		fmt.Fprintf(&header, "  %-*s", widths[i], h)
		sep.WriteString("  " + strings.Repeat("─", widths[i]))
	}
	Subtle.Fprintln(w, header.String())
	Subtle.Fprintln(w, sep.String())

	for _, row := range rows {
		var line strings.Builder
		for i, cell := range row {
			if i < len(widths) {
				fmt.Fprintf(&line, "  %-*s", widths[i], cell)
			}
		}
		fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
	}
}
