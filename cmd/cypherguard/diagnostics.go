package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/neo4j-field/cypher-guard/grammar"
	"github.com/neo4j-field/cypher-guard/validator"
)

var (
	errorKindStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF0000"))

	locationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)
)

// colorEnabled reports whether w is a terminal, the same check
// runner.NewTUIFormatter uses to decide between interactive and plain
// rendering.
func colorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// printParseError renders a *grammar.ParseError as a single diagnostic line.
func printParseError(w io.Writer, pe *grammar.ParseError, color bool) {
	if color {
		fmt.Fprintf(w, "%s: %s %s\n",
			errorKindStyle.Render(string(pe.Kind)),
			pe.Message,
			locationStyle.Render(fmt.Sprintf("(line %d, column %d)", pe.Line, pe.Column)))
		return
	}
	fmt.Fprintln(w, pe.Error())
}

// printValidationErrors renders the errors validate() collected, or a
// success line when the slice is empty.
func printValidationErrors(w io.Writer, errs []validator.ValidationError, color bool) {
	if len(errs) == 0 {
		if color {
			fmt.Fprintln(w, successStyle.Render("no issues found"))
		} else {
			fmt.Fprintln(w, "no issues found")
		}
		return
	}
	for _, e := range errs {
		if color {
			fmt.Fprintf(w, "%s: %s %s\n",
				errorKindStyle.Render(string(e.Kind)),
				e.Message,
				locationStyle.Render(fmt.Sprintf("(line %d, column %d)", e.Line, e.Column)))
			continue
		}
		fmt.Fprintln(w, e.Error())
	}
}
