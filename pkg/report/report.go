// Package report renders validation results for people and tools.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Koagonzalo/XcodeGen/pkg/spec"
	"github.com/Koagonzalo/XcodeGen/pkg/validate"
)

// Format selects how violations are rendered.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// ParseFormat accepts the names used on the command line.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON, FormatMarkdown:
		return Format(s), nil
	case "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unknown format %q: must be text, json, or markdown", s)
}

// Summary describes the validated spec for the success line.
type Summary struct {
	Name    string `json:"name"`
	File    string `json:"file,omitempty"`
	Targets int    `json:"targets"`
	Schemes int    `json:"schemes"`
}

// NewSummary describes p as loaded from file. p may be nil when loading
// failed.
func NewSummary(file string, p *spec.Project) Summary {
	sum := Summary{File: file}
	if p != nil {
		sum.Name = p.Name
		sum.Targets = len(p.Targets)
		sum.Schemes = len(p.Schemes)
	}
	return sum
}

// Request configures Check.
type Request struct {
	Options     validate.Options
	ToolVersion string
	Where       string // filter expression, empty keeps everything
}

// Check runs validation on the spec at path and returns its summary with
// the violations that match req.Where.
func Check(path string, req Request) (Summary, []*validate.ValidationError, error) {
	p, errs, err := validate.Run(path, req.ToolVersion, req.Options)
	if err != nil {
		return Summary{}, nil, err
	}
	errs, err = Filter(errs, req.Where)
	if err != nil {
		return Summary{}, nil, err
	}
	return NewSummary(path, p), errs, nil
}

// ErrorCount returns how many of errs are errors rather than warnings.
func ErrorCount(errs []*validate.ValidationError) int {
	n := 0
	for _, e := range errs {
		if e.Severity == "error" {
			n++
		}
	}
	return n
}

type jsonReport struct {
	Summary
	Valid      bool                        `json:"valid"`
	Violations []*validate.ValidationError `json:"violations"`
}

// Render writes errs in the given format. An empty list renders as a
// success message.
func Render(w io.Writer, f Format, sum Summary, errs []*validate.ValidationError) error {
	switch f {
	case FormatJSON:
		if errs == nil {
			errs = []*validate.ValidationError{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(jsonReport{Summary: sum, Valid: !validate.HasErrors(errs), Violations: errs})
	case FormatMarkdown:
		_, err := io.WriteString(w, renderMarkdown(Markdown(sum, errs), w))
		return err
	default:
		_, err := io.WriteString(w, Text(sum, errs))
		return err
	}
}
