package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"

	"github.com/Koagonzalo/XcodeGen/pkg/validate"
)

// Markdown renders violations as a Markdown document grouped by kind.
func Markdown(sum Summary, errs []*validate.ValidationError) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", mdEscape(sum.Name))
	if sum.File != "" {
		fmt.Fprintf(&b, "Spec: `%s`\n\n", sum.File)
	}
	if !validate.HasErrors(errs) {
		fmt.Fprintf(&b, "**Valid**: %d targets, %d schemes.\n", sum.Targets, sum.Schemes)
		return b.String()
	}

	fmt.Fprintf(&b, "**%d violation(s)**\n\n", len(errs))
	var order []validate.Kind
	byKind := map[validate.Kind][]*validate.ValidationError{}
	for _, e := range errs {
		if _, ok := byKind[e.Kind]; !ok {
			order = append(order, e.Kind)
		}
		byKind[e.Kind] = append(byKind[e.Kind], e)
	}
	for _, kind := range order {
		fmt.Fprintf(&b, "## %s\n\n", kind)
		b.WriteString("| Message | Location |\n|---|---|\n")
		for _, e := range byKind[kind] {
			loc := ""
			if e.Path != "" {
				loc = "`" + e.Path + "`"
			}
			fmt.Fprintf(&b, "| %s | %s |\n", mdEscape(e.Message), loc)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func mdEscape(s string) string {
	return strings.NewReplacer("|", `\|`, "\n", " ").Replace(s)
}

// renderMarkdown styles md with glamour when w is a terminal and returns
// the raw Markdown otherwise or if rendering fails.
func renderMarkdown(md string, w io.Writer) string {
	f, ok := w.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return md
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
