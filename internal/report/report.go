// Package report renders check results for the command line.
package report

import (
	"fmt"
	"io"
	"strings"

	j "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/reoring/webmanifest"
)

// Format is a report output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// IsUnknown reports whether f is not one of the supported formats.
func (f Format) IsUnknown() bool {
	switch f {
	case FormatText, FormatJSON, FormatYAML:
		return false
	}
	return true
}

// Result is the outcome of checking one document.
type Result struct {
	File     string
	Issues   webmanifest.Issues
	Warnings webmanifest.Issues
	Err      error
}

// Failed reports whether the document had validation issues.
func (r Result) Failed() bool { return len(r.Issues) > 0 }

type entry struct {
	Path    string `json:"path" yaml:"path"`
	Code    string `json:"code" yaml:"code"`
	Rule    string `json:"rule,omitempty" yaml:"rule,omitempty"`
	Message string `json:"message" yaml:"message"`
	Hint    string `json:"hint,omitempty" yaml:"hint,omitempty"`
}

type fileReport struct {
	File     string  `json:"file" yaml:"file"`
	Valid    bool    `json:"valid" yaml:"valid"`
	Error    string  `json:"error,omitempty" yaml:"error,omitempty"`
	Issues   []entry `json:"issues" yaml:"issues"`
	Warnings []entry `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

func entries(iss webmanifest.Issues, hints bool) []entry {
	out := make([]entry, 0, len(iss))
	for _, it := range iss {
		e := entry{Path: it.Path, Code: it.Code, Rule: it.Rule, Message: it.Message}
		if hints {
			e.Hint = it.Hint
		}
		out = append(out, e)
	}
	return out
}

// Writer renders results in a fixed format.
type Writer struct {
	format Format
	out    io.Writer
	hints  bool
}

// NewWriter returns a Writer. Hints are included when hints is true.
func NewWriter(format Format, out io.Writer, hints bool) *Writer {
	return &Writer{format: format, out: out, hints: hints}
}

// Write renders all results in order.
func (w *Writer) Write(results []Result) error {
	if w.format.IsUnknown() {
		return fmt.Errorf("unknown output format: %q", w.format)
	}
	if w.format == FormatText {
		return w.writeText(results)
	}

	reports := make([]fileReport, 0, len(results))
	for _, r := range results {
		fr := fileReport{
			File:     r.File,
			Valid:    r.Err == nil && !r.Failed(),
			Issues:   entries(r.Issues, w.hints),
			Warnings: entries(r.Warnings, w.hints),
		}
		if r.Err != nil {
			fr.Error = r.Err.Error()
		}
		reports = append(reports, fr)
	}

	if w.format == FormatYAML {
		enc := yaml.NewEncoder(w.out)
		enc.SetIndent(2)
		if err := enc.Encode(reports); err != nil {
			return fmt.Errorf("failed to serialize to yaml: %w", err)
		}
		return enc.Close()
	}
	data, err := j.MarshalIndent(reports, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize to json: %w", err)
	}
	_, err = fmt.Fprintf(w.out, "%s\n", data)
	return err
}

func (w *Writer) writeText(results []Result) error {
	b := &strings.Builder{}
	for _, r := range results {
		switch {
		case r.Err != nil:
			fmt.Fprintf(b, "%s: error: %v\n", r.File, r.Err)
		case !r.Failed():
			fmt.Fprintf(b, "%s: ok\n", r.File)
		}
		for _, it := range r.Warnings {
			fmt.Fprintf(b, "%s: warning: %s: %s\n", r.File, it.Path, it.Message)
		}
		for _, it := range r.Issues {
			fmt.Fprintf(b, "%s: %s: %s", r.File, it.Path, it.Message)
			if w.hints && it.Hint != "" {
				fmt.Fprintf(b, " (%s)", it.Hint)
			}
			b.WriteByte('\n')
		}
	}
	_, err := io.WriteString(w.out, b.String())
	return err
}
