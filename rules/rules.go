// Package rules runs user-supplied checks after the built-in analysis,
// appending their findings to the report.
package rules

import (
	"context"
	"fmt"

	"github.com/pressproof/preflight/pdf"
	"github.com/pressproof/preflight/report"
)

// Context is what a check works against: the loaded document and the
// report assembled so far. Checks append findings through RegisterIssue
// and must treat everything else as read-only.
type Context struct {
	Doc    pdf.Document
	Report *report.Report
}

// RegisterIssue appends a finding. Unknown severities fall back to info
// and unknown categories to document, so a sloppy rule still lands its
// message instead of being dropped.
func (c *Context) RegisterIssue(severity, category, message string, page int) {
	sev := report.Severity(severity)
	switch sev {
	case report.SeverityError, report.SeverityWarning, report.SeverityInfo:
	default:
		sev = report.SeverityInfo
	}
	cat := report.Category(category)
	switch cat {
	case report.CategoryDocument, report.CategoryGeometry, report.CategoryFonts,
		report.CategoryColour, report.CategoryImages, report.CategoryTransparency:
	default:
		cat = report.CategoryDocument
	}
	c.Report.Issues = append(c.Report.Issues, report.Issue{
		Severity: sev,
		Category: cat,
		Message:  message,
		Page:     page,
	})
}

// Check is one custom rule.
type Check interface {
	Name() string
	Apply(ctx context.Context, rc *Context) error
}

// Registry holds checks and runs them in registration order.
type Registry struct {
	checks []Check
}

func (r *Registry) Register(c Check) {
	r.checks = append(r.checks, c)
}

// Run applies every check. A failing check never fails the run: its error
// becomes a warning finding and the remaining checks still execute, the
// same policy the orchestrator applies to content-phase faults.
func (r *Registry) Run(ctx context.Context, rc *Context) {
	for _, check := range r.checks {
		if err := ctx.Err(); err != nil {
			return
		}
		if err := r.apply(ctx, check, rc); err != nil {
			rc.Report.Issues = append(rc.Report.Issues, report.Issue{
				Severity: report.SeverityWarning,
				Category: report.CategoryDocument,
				Message:  fmt.Sprintf("Custom check %q failed", check.Name()),
				Details:  err.Error(),
			})
		}
	}
}

func (r *Registry) apply(ctx context.Context, check Check, rc *Context) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return check.Apply(ctx, rc)
}

// Func adapts a plain function into a Check.
type Func struct {
	CheckName string
	Fn        func(ctx context.Context, rc *Context) error
}

func (f Func) Name() string { return f.CheckName }

func (f Func) Apply(ctx context.Context, rc *Context) error { return f.Fn(ctx, rc) }
