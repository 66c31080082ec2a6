package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// ErrorLevel represents the severity of a message block
type ErrorLevel int

const (
	ErrorLevelError ErrorLevel = iota
	ErrorLevelWarning
	ErrorLevelInfo
)

// ErrorOptions configures the error message formatting
type ErrorOptions struct {
	Level       ErrorLevel
	Context     string
	Problem     string
	Detail      string
	Suggestions []string
	Hints       []string
	NoColor     bool
}

func (l ErrorLevel) style() (header, body *color.Color, symbol string) {
	switch l {
	case ErrorLevelWarning:
		return color.New(color.FgYellow, color.Bold), color.New(color.FgYellow), "⚠️"
	case ErrorLevelInfo:
		return color.New(color.FgCyan, color.Bold), color.New(color.FgCyan), "ℹ️"
	default:
		return color.New(color.FgRed, color.Bold), color.New(color.FgRed), "❌"
	}
}

// FormatError creates a message block with suggestions and hints
//
// Example output:
//
//	❌ CLASS NOT FOUND: Dgo
//	   The schema has no class named 'Dgo'.
//
//	   Did you mean: Dog?
//
//	   → List classes: schemaprof classes zoo.yaml
func FormatError(opts ErrorOptions) string {
	var b strings.Builder

	headerColor, bodyColor, symbol := opts.Level.style()
	accent := color.New(color.FgYellow)
	hint := color.New(color.FgCyan)
	if opts.NoColor {
		for _, c := range []*color.Color{headerColor, bodyColor, accent, hint} {
			c.DisableColor()
		}
	}

	if opts.Context != "" {
		headerColor.Fprintf(&b, "%s %s: %s\n", symbol, strings.ToUpper(opts.Context), opts.Problem)
	} else {
		headerColor.Fprintf(&b, "%s %s\n", symbol, opts.Problem)
	}

	if opts.Detail != "" {
		for _, line := range strings.Split(strings.TrimRight(opts.Detail, "\n"), "\n") {
			bodyColor.Fprintf(&b, "   %s\n", line)
		}
	}

	if len(opts.Suggestions) > 0 {
		b.WriteString("\n")
		accent.Fprintf(&b, "   Did you mean: %s?\n", strings.Join(opts.Suggestions, ", "))
	}

	if len(opts.Hints) > 0 {
		b.WriteString("\n")
		for _, h := range opts.Hints {
			hint.Fprintf(&b, "   → %s\n", h)
		}
	}

	return b.String()
}

// WriteError writes a formatted error message to the writer
func WriteError(w io.Writer, opts ErrorOptions) {
	fmt.Fprint(w, FormatError(opts))
}

// FormatSuccess creates a success message
func FormatSuccess(message string, noColor bool) string {
	green := color.New(color.FgGreen, color.Bold)
	if noColor {
		green.DisableColor()
	}
	return green.Sprintf("✓ %s", message)
}

// WriteSuccess writes a success message to the writer
func WriteSuccess(w io.Writer, message string, noColor bool) {
	fmt.Fprintln(w, FormatSuccess(message, noColor))
}

// ElementNotFoundError reports a class, slot, type or enum the schema lacks
func ElementNotFoundError(kind, name, schemaFile string, suggestions []string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:       ErrorLevelError,
		Context:     kind + " not found",
		Problem:     name,
		Detail:      fmt.Sprintf("The schema has no %s named '%s'.", kind, name),
		Suggestions: suggestions,
		Hints: []string{
			fmt.Sprintf("List classes: schemaprof classes %s", schemaFile),
		},
		NoColor: noColor,
	})
}

// SchemaFileError reports a schema that could not be read or parsed
func SchemaFileError(path string, err error, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:   ErrorLevelError,
		Context: "schema unreadable",
		Problem: path,
		Detail:  err.Error(),
		Hints: []string{
			fmt.Sprintf("Check the schema: schemaprof lint %s", path),
		},
		NoColor: noColor,
	})
}

// SchemaError reports a schema whose content prevents the command from
// completing, such as a dangling reference or an unbounded recursion.
func SchemaError(context string, err error, schemaFile string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:   ErrorLevelError,
		Context: context,
		Problem: schemaFile,
		Detail:  err.Error(),
		Hints: []string{
			fmt.Sprintf("Check the schema: schemaprof lint %s", schemaFile),
		},
		NoColor: noColor,
	})
}

// ConfigError creates a standardized configuration error
func ConfigError(message string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:   ErrorLevelError,
		Context: "configuration error",
		Problem: message,
		Hints: []string{
			"View config: cat schemaprof.yaml",
			"Get help: schemaprof --help",
		},
		NoColor: noColor,
	})
}

// Warning creates a standardized warning message
func Warning(message string, suggestions []string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:       ErrorLevelWarning,
		Problem:     message,
		Suggestions: suggestions,
		NoColor:     noColor,
	})
}

// Info creates a standardized info message
func Info(message string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:   ErrorLevelInfo,
		Problem: message,
		NoColor: noColor,
	})
}
