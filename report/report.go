// Package report defines the issue taxonomy and the analysis report that
// every check feeds into.
package report

import (
	"fmt"

	"github.com/pressproof/preflight/pdf"
)

// Severity grades how strongly a finding blocks print production.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Category names the aspect of the document a finding belongs to.
type Category string

const (
	CategoryDocument     Category = "document"
	CategoryGeometry     Category = "geometry"
	CategoryFonts        Category = "fonts"
	CategoryColour       Category = "colour"
	CategoryImages       Category = "images"
	CategoryTransparency Category = "transparency"
)

// Issue is a single finding. Issues are append-only: checks never mutate or
// deduplicate previously recorded findings, so repeated issue types across
// pages are legitimate.
type Issue struct {
	Severity Severity `json:"severity"`
	Category Category `json:"category"`
	Message  string   `json:"message"`
	Page     int      `json:"page,omitempty"` // 1-based; 0 means document-level
	Details  string   `json:"details,omitempty"`
}

// PageBox is an axis-aligned rectangle in document points, normalized so
// that width and height are never negative.
type PageBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// MaxX returns the right edge of the box.
func (b PageBox) MaxX() float64 { return b.X + b.Width }

// MaxY returns the top edge of the box.
func (b PageBox) MaxY() float64 { return b.Y + b.Height }

// PageInfo records the resolved geometry of one page. It is built once
// during the structural pass and read-only afterwards.
type PageInfo struct {
	Number   int      `json:"number"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	MediaBox PageBox  `json:"mediaBox"`
	CropBox  *PageBox `json:"cropBox,omitempty"`
	TrimBox  *PageBox `json:"trimBox,omitempty"`
	BleedBox *PageBox `json:"bleedBox,omitempty"`
}

// FontInfo describes one distinct font. Name carries the subset prefix
// stripped; the (Name, Subtype) pair is the document-wide uniqueness key.
type FontInfo struct {
	Name     string `json:"name"`
	Subtype  string `json:"subtype"`
	Embedded bool   `json:"embedded"`
}

// Report is the terminal artifact of one analysis run. It is replaced
// wholesale when a newer run completes, never patched.
type Report struct {
	FileName  string     `json:"fileName"`
	FileSize  int64      `json:"fileSize"`
	Version   string     `json:"version"`
	PageCount int        `json:"pageCount"`
	Encrypted bool       `json:"encrypted"`
	Title     string     `json:"title,omitempty"`
	Producer  string     `json:"producer,omitempty"`
	Creator   string     `json:"creator,omitempty"`
	Pages     []PageInfo `json:"pages"`
	Fonts     []FontInfo `json:"fonts"`
	Issues    []Issue    `json:"issues"`
}

// Ready reports whether the document passed: no error-severity findings.
// The result is derived on demand, never stored.
func (r *Report) Ready() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return false
		}
	}
	return true
}

// Counts tallies the issues by severity.
func (r *Report) Counts() (errors, warnings, infos int) {
	for _, issue := range r.Issues {
		switch issue.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		case SeverityInfo:
			infos++
		}
	}
	return
}

// PageIssues returns the findings recorded against the given page number.
func (r *Report) PageIssues(number int) []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Page == number {
			out = append(out, issue)
		}
	}
	return out
}

// DocumentChecker produces the document-level findings that close out
// every report: encryption presence, an empty page tree, and a format
// revision old enough to trip up print workflows. The zero value flags
// revisions before 1.3.
type DocumentChecker struct {
	OldVersionGate pdf.Version
}

// DocumentChecks applies the default DocumentChecker.
func DocumentChecks(encrypted bool, pageCount int, version pdf.Version) []Issue {
	return DocumentChecker{}.Check(encrypted, pageCount, version)
}

func (c DocumentChecker) Check(encrypted bool, pageCount int, version pdf.Version) []Issue {
	gate := c.OldVersionGate
	if gate == (pdf.Version{}) {
		gate = pdf.Version{Major: 1, Minor: 3}
	}
	var issues []Issue
	if encrypted {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Category: CategoryDocument,
			Message:  "Document is encrypted; some print workflows refuse protected files",
		})
	}
	if pageCount == 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Category: CategoryDocument,
			Message:  "Document contains no pages",
		})
	}
	if version.Before(gate.Major, gate.Minor) {
		issues = append(issues, Issue{
			Severity: SeverityInfo,
			Category: CategoryDocument,
			Message:  fmt.Sprintf("PDF version %s is older than %s", version, gate),
		})
	}
	return issues
}
