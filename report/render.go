package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
)

// WriteText writes the human-readable summary the CLI prints.
func WriteText(w io.Writer, r *Report) error {
	verdict := "READY"
	if !r.Ready() {
		verdict = "NOT READY"
	}
	errors, warnings, infos := r.Counts()
	if _, err := fmt.Fprintf(w, "%s — %s\n", r.FileName, verdict); err != nil {
		return err
	}
	fmt.Fprintf(w, "  PDF %s, %d page(s), %d bytes", r.Version, r.PageCount, r.FileSize)
	if r.Encrypted {
		fmt.Fprint(w, ", encrypted")
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %d error(s), %d warning(s), %d notice(s)\n", errors, warnings, infos)
	for _, issue := range r.Issues {
		loc := "document"
		if issue.Page > 0 {
			loc = fmt.Sprintf("page %d", issue.Page)
		}
		fmt.Fprintf(w, "  [%s] %s/%s: %s\n", issue.Severity, issue.Category, loc, issue.Message)
		if issue.Details != "" {
			fmt.Fprintf(w, "          %s\n", issue.Details)
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

// Markdown renders the report as a Markdown document. Output order follows
// the report's own issue order, so identical reports render identically.
func Markdown(r *Report) string {
	var b strings.Builder
	verdict := "ready for print"
	if !r.Ready() {
		verdict = "not ready for print"
	}
	fmt.Fprintf(&b, "# Preflight report: %s\n\n", r.FileName)
	fmt.Fprintf(&b, "**Verdict:** %s\n\n", verdict)
	fmt.Fprintf(&b, "PDF %s, %d page(s), %d bytes", r.Version, r.PageCount, r.FileSize)
	if r.Encrypted {
		b.WriteString(", encrypted")
	}
	b.WriteString("\n\n")

	if len(r.Fonts) > 0 {
		b.WriteString("## Fonts\n\n")
		for _, font := range r.Fonts {
			state := "embedded"
			if !font.Embedded {
				state = "not embedded"
			}
			fmt.Fprintf(&b, "- %s (%s) — %s\n", font.Name, font.Subtype, state)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Issues\n\n")
	if len(r.Issues) == 0 {
		b.WriteString("No issues found.\n")
		return b.String()
	}
	for _, issue := range r.Issues {
		loc := "document"
		if issue.Page > 0 {
			loc = fmt.Sprintf("page %d", issue.Page)
		}
		fmt.Fprintf(&b, "- **%s** (%s, %s): %s", issue.Severity, issue.Category, loc, issue.Message)
		if issue.Details != "" {
			fmt.Fprintf(&b, " — %s", issue.Details)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// HTML renders the report as an HTML fragment for embedding in preview
// chrome, by converting the Markdown form.
func HTML(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := goldmark.New().Convert([]byte(Markdown(r)), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
