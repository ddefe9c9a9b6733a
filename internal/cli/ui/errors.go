package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// ErrorLevel is the severity of a message
type ErrorLevel int

const (
	ErrorLevelError ErrorLevel = iota
	ErrorLevelWarning
	ErrorLevelInfo
)

// ErrorOptions describes a formatted message
type ErrorOptions struct {
	Level        ErrorLevel
	Context      string
	Subject      string
	Problem      string
	Consequence  string
	Suggestions  []string
	HelpCommands []string
	NoColor      bool
}

// FormatError renders a message with its suggestions and help commands:
//
//	✗ PATH NOT FOUND: /Poeple
//	   unresolved path segment: "Poeple" in /Poeple: no entity set, singleton or operation import
//
//	   Did you mean: /People?
//
//	   → List paths: edmoas paths --model trippin.yaml
func FormatError(opts ErrorOptions) string {
	var b strings.Builder

	// Determine colors and symbol based on level
	var head, body *color.Color
	var symbol string
	switch opts.Level {
	case ErrorLevelWarning:
		head, body, symbol = color.New(color.FgYellow, color.Bold), color.New(color.FgYellow), "!"
	case ErrorLevelInfo:
		head, body, symbol = color.New(color.FgCyan, color.Bold), color.New(color.FgCyan), "i"
	default:
		head, body, symbol = color.New(color.FgRed, color.Bold), color.New(color.FgRed), "✗"
	}
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)
	// Disable colors if requested
	if opts.NoColor {
		for _, c := range []*color.Color{head, body, yellow, cyan} {
			c.DisableColor()
		}
	}

	// Header line with context
	if opts.Context != "" {
		title := strings.ToUpper(opts.Context)
		if opts.Subject != "" {
			title += ": " + opts.Subject
		}
		head.Fprintf(&b, "%s %s\n", symbol, title)
		body.Fprintf(&b, "   %s\n", opts.Problem)
	} else {
		head.Fprintf(&b, "%s %s\n", symbol, opts.Problem)
	}

	// Consequence (if provided)
	if opts.Consequence != "" {
		b.WriteString("\n")
		body.Fprintf(&b, "   %s\n", opts.Consequence)
	}

	// Suggestions
	if len(opts.Suggestions) > 0 {
		b.WriteString("\n")
		yellow.Fprintf(&b, "   Did you mean: %s?\n", strings.Join(opts.Suggestions, ", "))
	}

	// Help commands
	if len(opts.HelpCommands) > 0 {
		b.WriteString("\n")
		for _, cmd := range opts.HelpCommands {
			cyan.Fprintf(&b, "   → %s\n", cmd)
		}
	}
	return b.String()
}

// WriteError writes a formatted message to w
func WriteError(w io.Writer, opts ErrorOptions) {
	fmt.Fprint(w, FormatError(opts))
}

// FormatSuccess renders a success line
func FormatSuccess(message string, noColor bool) string {
	green := color.New(color.FgGreen, color.Bold)
	if noColor {
		green.DisableColor()
	}
	return green.Sprintf("✓ %s", message)
}

// WriteSuccess writes a success line to w
func WriteSuccess(w io.Writer, message string, noColor bool) {
	fmt.Fprintln(w, FormatSuccess(message, noColor))
}

// PathNotFoundError reports a request path that does not resolve against
// the model
func PathNotFoundError(raw, problem string, suggestions []string, noColor bool) string {
	return FormatError(ErrorOptions{
		Context:     "path not found",
		Subject:     raw,
		Problem:     problem,
		Suggestions: suggestions,
		HelpCommands: []string{
			"List paths: edmoas paths --model <fixture>",
			"Get help: edmoas inspect --help",
		},
		NoColor: noColor,
	})
}

// ModelError reports a model fixture that cannot be loaded
func ModelError(message string, noColor bool) string {
	return FormatError(ErrorOptions{
		Context:      "model error",
		Problem:      message,
		Consequence:  "No paths were converted.",
		HelpCommands: []string{"Get help: edmoas --help"},
		NoColor:      noColor,
	})
}

// ConfigError reports settings that fail to load or validate
func ConfigError(message string, noColor bool) string {
	return FormatError(ErrorOptions{
		Context: "configuration error",
		Problem: message,
		HelpCommands: []string{
			"Settings keys are snake_case, environment overrides use the EDMOAS_ prefix",
			"Get help: edmoas --help",
		},
		NoColor: noColor,
	})
}

// Warning renders a warning with optional suggestions
func Warning(message string, suggestions []string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:       ErrorLevelWarning,
		Problem:     message,
		Suggestions: suggestions,
		NoColor:     noColor,
	})
}
