package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Koagonzalo/XcodeGen/pkg/validate"
)

const (
	GlyphPassed  = "✓"
	GlyphFailed  = "✗"
	GlyphWarning = "⚠"
)

var (
	colorGreen  = lipgloss.Color("42")
	colorRed    = lipgloss.Color("196")
	colorYellow = lipgloss.Color("214")
	colorDim    = lipgloss.Color("240")
	colorCyan   = lipgloss.Color("51")
)

var (
	passStyle   = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	failStyle   = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(colorYellow)
	kindStyle   = lipgloss.NewStyle().Foreground(colorCyan)
	pathStyle   = lipgloss.NewStyle().Foreground(colorDim)
	headerStyle = lipgloss.NewStyle().Bold(true)
)

// Text renders a numbered, kind-aligned list of violations.
func Text(sum Summary, errs []*validate.ValidationError) string {
	var b strings.Builder
	var errors, warnings []*validate.ValidationError
	for _, e := range errs {
		if e.Severity == "warning" {
			warnings = append(warnings, e)
		} else {
			errors = append(errors, e)
		}
	}

	for _, w := range warnings {
		fmt.Fprintf(&b, "  %s %s\n", warnStyle.Render(GlyphWarning), w.Message)
		if w.Path != "" {
			fmt.Fprintf(&b, "    %s\n", pathStyle.Render("at: "+w.Path))
		}
	}

	if len(errors) == 0 {
		fmt.Fprintf(&b, "%s %s is valid (%d targets, %d schemes)\n",
			passStyle.Render(GlyphPassed), sum.Name, sum.Targets, sum.Schemes)
		return b.String()
	}

	fmt.Fprintf(&b, "%s %s\n\n", failStyle.Render(GlyphFailed),
		headerStyle.Render(fmt.Sprintf("Validation failed: %d error(s)", len(errors))))

	width := 0
	for _, e := range errors {
		if w := runewidth.StringWidth(string(e.Kind)); w > width {
			width = w
		}
	}
	numWidth := len(fmt.Sprint(len(errors)))
	for i, e := range errors {
		kind := runewidth.FillRight(string(e.Kind), width)
		fmt.Fprintf(&b, "  %*d. %s  %s\n", numWidth, i+1, kindStyle.Render(kind), e.Message)
		if e.Path != "" {
			indent := strings.Repeat(" ", numWidth+4+width+2)
			fmt.Fprintf(&b, "%s%s\n", indent, pathStyle.Render("at: "+e.Path))
		}
	}
	return b.String()
}
