package report_test

import (
	"testing"

	"github.com/pressproof/preflight/pdf"
	"github.com/pressproof/preflight/report"
)

func TestReadyDerivedFromErrorsOnly(t *testing.T) {
	r := &report.Report{Issues: []report.Issue{
		{Severity: report.SeverityWarning, Category: report.CategoryGeometry, Message: "w"},
		{Severity: report.SeverityInfo, Category: report.CategoryImages, Message: "i"},
	}}
	if !r.Ready() {
		t.Error("warnings and notices alone must not block readiness")
	}

	r.Issues = append(r.Issues, report.Issue{Severity: report.SeverityError, Category: report.CategoryFonts, Message: "e"})
	if r.Ready() {
		t.Error("a single error must flip the report to not ready")
	}
}

func TestCounts(t *testing.T) {
	r := &report.Report{Issues: []report.Issue{
		{Severity: report.SeverityError},
		{Severity: report.SeverityWarning},
		{Severity: report.SeverityWarning},
		{Severity: report.SeverityInfo},
	}}
	errors, warnings, infos := r.Counts()
	if errors != 1 || warnings != 2 || infos != 1 {
		t.Errorf("Counts = %d/%d/%d", errors, warnings, infos)
	}
}

func TestDocumentChecks(t *testing.T) {
	issues := report.DocumentChecks(true, 0, pdf.Version{Major: 1, Minor: 2})
	if len(issues) != 3 {
		t.Fatalf("expected encryption, empty-document and old-version findings, got %v", issues)
	}
	if issues[0].Severity != report.SeverityWarning || issues[0].Category != report.CategoryDocument {
		t.Errorf("encryption finding = %+v", issues[0])
	}
	if issues[1].Severity != report.SeverityError {
		t.Errorf("zero pages should be an error, got %+v", issues[1])
	}
	if issues[2].Severity != report.SeverityInfo {
		t.Errorf("old version should be informational, got %+v", issues[2])
	}
}

func TestDocumentChecksQuietOnModernDocument(t *testing.T) {
	if issues := report.DocumentChecks(false, 4, pdf.Version{Major: 1, Minor: 7}); len(issues) != 0 {
		t.Errorf("clean document should produce no findings, got %v", issues)
	}
}

func TestDocumentCheckerCustomGate(t *testing.T) {
	c := report.DocumentChecker{OldVersionGate: pdf.Version{Major: 1, Minor: 5}}
	issues := c.Check(false, 1, pdf.Version{Major: 1, Minor: 4})
	if len(issues) != 1 || issues[0].Severity != report.SeverityInfo {
		t.Errorf("1.4 under a 1.5 gate should be one notice, got %v", issues)
	}
}

func TestPageIssues(t *testing.T) {
	r := &report.Report{Issues: []report.Issue{
		{Message: "doc"},
		{Message: "p1", Page: 1},
		{Message: "p2", Page: 2},
		{Message: "p1 again", Page: 1},
	}}
	got := r.PageIssues(1)
	if len(got) != 2 || got[0].Message != "p1" || got[1].Message != "p1 again" {
		t.Errorf("PageIssues(1) = %v", got)
	}
}
