package report_test

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pressproof/preflight/report"
)

func sampleReport() *report.Report {
	return &report.Report{
		FileName:  "brochure.pdf",
		FileSize:  1024,
		Version:   "1.4",
		PageCount: 2,
		Fonts: []report.FontInfo{
			{Name: "Helvetica", Subtype: "Type1", Embedded: true},
			{Name: "CustomSans", Subtype: "TrueType", Embedded: false},
		},
		Issues: []report.Issue{
			{Severity: report.SeverityError, Category: report.CategoryFonts, Message: "Font \"CustomSans\" is not embedded", Page: 1},
			{Severity: report.SeverityWarning, Category: report.CategoryGeometry, Message: "No BleedBox defined", Page: 2},
			{Severity: report.SeverityInfo, Category: report.CategoryDocument, Message: "PDF version 1.4"},
		},
	}
}

func TestWriteTextCarriesVerdictAndIssues(t *testing.T) {
	var buf bytes.Buffer
	if err := report.WriteText(&buf, sampleReport()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "brochure.pdf — NOT READY") {
		t.Errorf("missing verdict line:\n%s", out)
	}
	if !strings.Contains(out, "[error] fonts/page 1") {
		t.Errorf("missing issue line:\n%s", out)
	}
	if !strings.Contains(out, "1 error(s), 1 warning(s), 1 notice(s)") {
		t.Errorf("missing counts line:\n%s", out)
	}
}

func TestMarkdownIsDeterministic(t *testing.T) {
	r := sampleReport()
	if report.Markdown(r) != report.Markdown(r) {
		t.Error("identical reports must render identical Markdown")
	}
}

func TestHTMLListsEveryIssue(t *testing.T) {
	r := sampleReport()
	out, err := report.HTML(r)
	if err != nil {
		t.Fatal(err)
	}
	doc, err := html.Parse(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("render is not parseable HTML: %v", err)
	}

	items := 0
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Li {
			items++
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	// One list item per font plus one per issue.
	want := len(r.Fonts) + len(r.Issues)
	if items != want {
		t.Errorf("HTML has %d list items, want %d:\n%s", items, want, out)
	}
}

func TestHTMLOnCleanReport(t *testing.T) {
	out, err := report.HTML(&report.Report{FileName: "ok.pdf", Version: "1.7", PageCount: 1})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "No issues found.") {
		t.Errorf("clean report should say so:\n%s", out)
	}
}
