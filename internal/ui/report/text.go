package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"undestructure/internal/core/app"
	"undestructure/internal/engine/component"

	"github.com/charmbracelet/lipgloss"
)

// Palette shared by the text report and the live watch view.
var (
	HeaderColor  = lipgloss.Color("#3B82F6")
	WarningColor = lipgloss.Color("#FBBF24")
	GoodColor    = lipgloss.Color("#10B981")
	ErrorColor   = lipgloss.Color("#F87171")
	MutedColor   = lipgloss.Color("#64748B")
)

type styles struct {
	header  lipgloss.Style
	path    lipgloss.Style
	rewrite lipgloss.Style
	plain   lipgloss.Style
	failure lipgloss.Style
	muted   lipgloss.Style
}

// newStyles binds the palette to w so color is only emitted for terminals.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		header:  r.NewStyle().Foreground(HeaderColor).Bold(true),
		path:    r.NewStyle().Bold(true),
		rewrite: r.NewStyle().Foreground(WarningColor).Bold(true),
		plain:   r.NewStyle().Foreground(GoodColor),
		failure: r.NewStyle().Foreground(ErrorColor).Bold(true),
		muted:   r.NewStyle().Foreground(MutedColor).Italic(true),
	}
}

// WriteText renders a human readable report grouped by file.
func WriteText(w io.Writer, rep *app.Report) error {
	s := newStyles(w)
	var b strings.Builder

	b.WriteString(s.header.Render("Component scan"))
	b.WriteString("\n")

	byPath := make(map[string][]int)
	var order []string
	for i, f := range rep.Findings {
		if _, ok := byPath[f.Path]; !ok {
			order = append(order, f.Path)
		}
		byPath[f.Path] = append(byPath[f.Path], i)
	}

	for _, path := range order {
		b.WriteString("\n")
		b.WriteString(s.path.Render(filepath.ToSlash(path)))
		b.WriteString("\n")
		for _, i := range byPath[path] {
			f := rep.Findings[i]
			name := f.Name
			if name == "" {
				name = "(anonymous)"
			}
			loc := fmt.Sprintf("%d:%d", f.Line, f.Column)
			if f.Result == component.ComponentWithDestructuring {
				fmt.Fprintf(&b, "  %-8s %s %s %s\n", loc, s.rewrite.Render("destructured"), name, DescribeProps(f.Props, f.Rest, f.HasDefault))
				continue
			}
			fmt.Fprintf(&b, "  %-8s %s %s\n", loc, s.plain.Render("component"), name)
		}
	}

	if len(rep.FileErrors) > 0 {
		b.WriteString("\n")
		b.WriteString(s.failure.Render("Skipped files"))
		b.WriteString("\n")
		for _, fe := range rep.FileErrors {
			fmt.Fprintf(&b, "  %s: %s\n", filepath.ToSlash(fe.Path), fe.Message)
		}
	}

	b.WriteString("\n")
	summary := fmt.Sprintf("%d files, %d functions, %d components, %d destructured, %d annotated",
		len(rep.Files), rep.Functions, rep.Components, rep.Rewrites, rep.Annotated)
	if len(rep.FileErrors) > 0 {
		summary += fmt.Sprintf(", %d skipped", len(rep.FileErrors))
	}
	b.WriteString(s.muted.Render(summary))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// DescribeProps renders a destructuring pattern summary such as
// `{ a, b, ...rest } = default`.
func DescribeProps(keys []string, rest string, hasDefault bool) string {
	parts := append([]string(nil), keys...)
	if rest != "" {
		parts = append(parts, "..."+rest)
	}
	out := "{ " + strings.Join(parts, ", ") + " }"
	if len(parts) == 0 {
		out = "{}"
	}
	if hasDefault {
		out += " = default"
	}
	return out
}
