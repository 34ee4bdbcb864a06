// Package transparency detects live transparency on pages: transparency
// groups and graphics states with reduced alpha or soft masks.
package transparency

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pressproof/preflight/pdf"
	"github.com/pressproof/preflight/report"
)

// DefaultGate is the first format revision in which transparency is
// defined. Documents declaring an older version but using transparency
// carry content their own header says cannot exist.
var DefaultGate = pdf.Version{Major: 1, Minor: 4}

// Checker classifies transparency usage. The zero value gates on the
// default 1.4 revision.
type Checker struct {
	Gate pdf.Version
}

// Page inspects one page's rendering group and ExtGState resources. The
// group check and the graphics-state check are independent; a single page
// can yield both issue kinds.
func (c Checker) Page(r pdf.Resolver, page pdf.Dict, number int, version pdf.Version) []report.Issue {
	gate := c.Gate
	if gate == (pdf.Version{}) {
		gate = DefaultGate
	}
	severity := report.SeverityInfo
	if version.Before(gate.Major, gate.Minor) {
		severity = report.SeverityError
	}

	var issues []report.Issue

	if group, ok := pdf.DictEntry(r, page, "Group"); ok {
		if s, _ := pdf.NameEntry(r, group, "S"); s == "Transparency" {
			issues = append(issues, report.Issue{
				Severity: severity,
				Category: report.CategoryTransparency,
				Message:  "Page declares a transparency group",
				Page:     number,
			})
		}
	}

	resources, ok := pdf.DictEntry(r, page, "Resources")
	if !ok {
		return issues
	}
	states, ok := pdf.DictEntry(r, resources, "ExtGState")
	if !ok {
		return issues
	}

	names := make([]string, 0, len(states))
	for name := range states {
		names = append(names, string(name))
	}
	sort.Strings(names)

	for _, name := range names {
		gs, ok := pdf.DictEntry(r, states, pdf.Name(name))
		if !ok {
			continue
		}
		if reasons := transparentReasons(r, gs); len(reasons) > 0 {
			issues = append(issues, report.Issue{
				Severity: severity,
				Category: report.CategoryTransparency,
				Message:  fmt.Sprintf("Graphics state %q uses transparency", name),
				Page:     number,
				Details:  strings.Join(reasons, ", "),
			})
		}
	}

	return issues
}

// transparentReasons lists what makes a graphics state transparent: fill
// or stroke alpha below one, or a soft mask that is not explicitly None.
func transparentReasons(r pdf.Resolver, gs pdf.Dict) []string {
	var reasons []string
	if ca, ok := pdf.NumberEntry(r, gs, "ca"); ok && ca < 1 {
		reasons = append(reasons, fmt.Sprintf("fill alpha %g", ca))
	}
	if ca, ok := pdf.NumberEntry(r, gs, "CA"); ok && ca < 1 {
		reasons = append(reasons, fmt.Sprintf("stroke alpha %g", ca))
	}
	if mask := pdf.Entry(r, gs, "SMask"); mask != nil {
		if name, isName := mask.(pdf.Name); !isName || name != "None" {
			reasons = append(reasons, "soft mask")
		}
	}
	return reasons
}
