// Package output renders command results as tables, JSON or YAML.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Format is an output format selected with -o.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formats lists the accepted -o values.
var Formats = []Format{FormatTable, FormatJSON, FormatYAML}

// ParseFormat parses a -o value. The empty string selects the table format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "table", "":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid output format: %q (valid: table, json, yaml)", s)
	}
}

func (f Format) String() string {
	return string(f)
}

// Printer writes results to out and status messages to errOut, so piping
// JSON or YAML output never mixes in notices.
type Printer struct {
	out    io.Writer
	errOut io.Writer
	format Format
	color  bool
}

// NewPrinter creates a printer. Status messages share out.
func NewPrinter(out io.Writer, format Format, color bool) *Printer {
	return &Printer{out: out, errOut: out, format: format, color: color}
}

// DefaultPrinter prints tables to stdout and notices to stderr.
func DefaultPrinter() *Printer {
	p := NewPrinter(os.Stdout, FormatTable, true)
	p.errOut = os.Stderr
	return p
}

// WithErrWriter returns a copy of p that writes status messages to w.
func (p *Printer) WithErrWriter(w io.Writer) *Printer {
	c := *p
	c.errOut = w
	return &c
}

func (p *Printer) Format() Format     { return p.format }
func (p *Printer) Writer() io.Writer  { return p.out }
func (p *Printer) ColorEnabled() bool { return p.color }

// Print renders data in the configured format. The table format needs a
// TableRenderer and falls back to JSON otherwise.
func (p *Printer) Print(data any) error {
	switch p.format {
	case FormatTable:
		if r, ok := data.(TableRenderer); ok {
			return PrintTable(p.out, r)
		}
		return PrintJSON(p.out, data)
	case FormatJSON:
		return PrintJSON(p.out, data)
	case FormatYAML:
		return PrintYAML(p.out, data)
	default:
		return fmt.Errorf("unknown format: %s", p.format)
	}
}

// Println prints to the result stream.
func (p *Printer) Println(args ...any) {
	_, _ = fmt.Fprintln(p.out, args...)
}

// Printf prints to the result stream.
func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

const (
	ansiRed    = "31"
	ansiGreen  = "32"
	ansiYellow = "33"
	ansiCyan   = "36"
)

func (p *Printer) notice(code, msg string) {
	if p.color {
		_, _ = fmt.Fprintf(p.errOut, "\033[%sm%s\033[0m\n", code, msg)
		return
	}
	_, _ = fmt.Fprintln(p.errOut, msg)
}

func (p *Printer) Success(msg string) { p.notice(ansiGreen, msg) }
func (p *Printer) Error(msg string)   { p.notice(ansiRed, msg) }
func (p *Printer) Warning(msg string) { p.notice(ansiYellow, msg) }
func (p *Printer) Info(msg string)    { p.notice(ansiCyan, msg) }
