// Package preflight analyses parsed documents for print-production
// hazards: missing bleed and trim geometry, unembedded fonts, transparency
// in incompatible versions, mixed colour spaces and encryption anomalies.
//
// Analysis runs in two phases. The structural phase walks the object graph
// for geometry, fonts, transparency and document-level checks; a failure
// here is fatal. The content phase scans decoded operator lists for colour
// and image usage; a failure here only degrades the report. The engine
// never modifies the document.
package preflight

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/pressproof/preflight/boxes"
	"github.com/pressproof/preflight/content"
	"github.com/pressproof/preflight/fonts"
	"github.com/pressproof/preflight/observability"
	"github.com/pressproof/preflight/pdf"
	"github.com/pressproof/preflight/profile"
	"github.com/pressproof/preflight/report"
	"github.com/pressproof/preflight/rules"
	"github.com/pressproof/preflight/transparency"
)

// Engine orchestrates analysis runs. Load must be set; everything else is
// optional. Starting a new run cancels the one in flight, and only the
// newest run may commit its report, so a stale analysis can never
// overwrite a fresher file's results.
type Engine struct {
	// Load turns raw bytes into a document handle. Loader failures must
	// already be classified (*Error); anything else counts as a parse
	// failure. The container package provides the production loader.
	Load func(data []byte) (pdf.Document, error)

	// ListerFor supplies the operator-list collaborator for a document.
	// When nil, documents implementing content.Lister are used directly
	// and the content phase degrades for all others.
	ListerFor func(doc pdf.Document) content.Lister

	// RendererFor supplies the run-scoped render session. Optional; the
	// session is released when the run resolves, whichever way.
	RendererFor func(doc pdf.Document) content.Renderer

	Profile *profile.Profile
	Rules   *rules.Registry
	Logger  observability.Logger

	mu      sync.Mutex
	current *Run
	latest  *report.Report
}

// Analyse starts an asynchronous run over the given bytes. Any run still
// in flight is cancelled first.
func (e *Engine) Analyse(ctx context.Context, data []byte, fileName string) *Run {
	if ctx == nil {
		ctx = context.Background()
	}
	r := newRun(ctx)

	e.mu.Lock()
	if e.current != nil {
		e.current.cancel()
	}
	e.current = r
	e.mu.Unlock()

	go e.run(r, data, fileName)
	return r
}

// Report returns the report of the most recent run that completed without
// being superseded, or nil when none has.
func (e *Engine) Report() *report.Report {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.latest
}

func (e *Engine) logger() observability.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return observability.NopLogger{}
}

func (e *Engine) profile() *profile.Profile {
	if e.Profile != nil {
		return e.Profile
	}
	return profile.Default()
}

func (e *Engine) run(r *Run, data []byte, fileName string) {
	log := e.logger().With(observability.String("file", fileName))
	log.Info("analysis started", observability.Int("bytes", len(data)))

	rep, err := e.structuralPhase(r, data, fileName, log)
	if err != nil {
		log.Error("structural analysis failed", observability.Error("error", err))
		r.finish(nil, err)
		return
	}

	doc := rep.doc
	e.contentPhase(r, doc, rep.report, log)

	if e.Rules != nil {
		e.Rules.Run(r.ctx, &rules.Context{Doc: doc, Report: rep.report})
	}

	if r.ctx.Err() != nil {
		log.Debug("run cancelled before commit")
		r.finish(nil, r.ctx.Err())
		return
	}

	e.mu.Lock()
	if e.current == r {
		e.latest = rep.report
	}
	e.mu.Unlock()

	errs, warnings, _ := rep.report.Counts()
	log.Info("analysis complete",
		observability.Int("pages", rep.report.PageCount),
		observability.Int("errors", errs),
		observability.Int("warnings", warnings),
		observability.Bool("ready", rep.report.Ready()))
	r.finish(rep.report, nil)
}

// structuralResult pairs the assembled report with the document handle the
// content phase keeps reading from.
type structuralResult struct {
	doc    pdf.Document
	report *report.Report
}

func (e *Engine) structuralPhase(r *Run, data []byte, fileName string, log observability.Logger) (res *structuralResult, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			res, err = nil, &Error{Kind: KindInternal, Message: fmt.Sprintf("structural analysis panic: %v", rec)}
		}
	}()

	r.setState(StateAnalysingStructural)
	r.emit(Event{Kind: EventPhaseStarted, Phase: StateAnalysingStructural})

	if e.Load == nil {
		return nil, &Error{Kind: KindInternal, Message: "no document loader configured"}
	}
	doc, err := e.Load(data)
	if err != nil {
		var classified *Error
		if errors.As(err, &classified) {
			return nil, classified
		}
		return nil, ParseError(err)
	}
	if err := r.ctx.Err(); err != nil {
		return nil, err
	}

	prof := e.profile()
	geometry := boxes.Checker{
		MinBleedMargin: prof.MinBleedMarginPt,
		SizeTolerance:  prof.PageSizeTolerancePt,
	}
	transp := transparency.Checker{Gate: prof.TransparencyVersion()}
	inventory := fonts.NewInventory()
	if prof.ProbeEmbeddedFonts {
		inventory.Probe = fonts.ParseProbe
	}

	version := doc.Version()
	info := doc.Info()
	rep := &report.Report{
		FileName:  fileName,
		FileSize:  int64(len(data)),
		Version:   version.String(),
		PageCount: doc.NumPages(),
		Encrypted: doc.Encrypted(),
		Title:     info.Title,
		Producer:  info.Producer,
		Creator:   info.Creator,
	}

	var first *report.PageInfo
	for n := 1; n <= rep.PageCount; n++ {
		if err := r.ctx.Err(); err != nil {
			return nil, err
		}
		page, ok := doc.Page(n)
		if !ok {
			continue
		}

		pageInfo, geoIssues := geometry.Page(doc, page, n, first)
		rep.Pages = append(rep.Pages, pageInfo)
		if first == nil {
			firstCopy := pageInfo
			first = &firstCopy
		}
		appendIssues(rep, prof, geoIssues)

		fontMark := len(inventory.Issues)
		inventory.Page(doc, page, n)
		appendIssues(rep, prof, inventory.Issues[fontMark:])

		appendIssues(rep, prof, transp.Page(doc, page, n, version))
		r.emit(Event{Kind: EventPageDone, Page: n})
	}
	rep.Fonts = inventory.Fonts

	checker := report.DocumentChecker{OldVersionGate: prof.OldVersion()}
	appendIssues(rep, prof, checker.Check(rep.Encrypted, rep.PageCount, version))

	log.Debug("structural phase complete",
		observability.Int("pages", rep.PageCount),
		observability.Int("fonts", len(rep.Fonts)))
	return &structuralResult{doc: doc, report: rep}, nil
}

// contentPhase scans operator lists page by page. It never fails the run:
// any fault collapses into a single document warning on the structural
// report, because geometry and font findings are too valuable to discard
// over a failed rasterizer.
func (e *Engine) contentPhase(r *Run, doc pdf.Document, rep *report.Report, log observability.Logger) {
	r.setState(StateAnalysingContent)
	r.emit(Event{Kind: EventPhaseStarted, Phase: StateAnalysingContent})

	if e.RendererFor != nil {
		if session := e.RendererFor(doc); session != nil {
			defer session.Close()
		}
	}

	issues, err := e.scanContent(r, doc, rep)
	if err != nil {
		if r.ctx.Err() != nil {
			return
		}
		log.Warn("content analysis unavailable", observability.Error("error", err))
		appendIssues(rep, e.profile(), []report.Issue{{
			Severity: report.SeverityWarning,
			Category: report.CategoryDocument,
			Message:  "Content analysis unavailable; colour and image findings were skipped",
			Details:  err.Error(),
		}})
		return
	}
	appendIssues(rep, e.profile(), issues)
}

func (e *Engine) scanContent(r *Run, doc pdf.Document, rep *report.Report) (issues []report.Issue, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			issues, err = nil, ContentError(fmt.Errorf("content scan panic: %v", rec))
		}
	}()

	lister := e.listerFor(doc)
	if lister == nil {
		return nil, ContentError(errors.New("no content-stream collaborator available"))
	}

	for n := 1; n <= rep.PageCount; n++ {
		if err := r.ctx.Err(); err != nil {
			return nil, err
		}
		ops, err := lister.OperatorList(n)
		if err != nil {
			return nil, ContentError(fmt.Errorf("page %d: %w", n, err))
		}
		page, _ := doc.Page(n)
		issues = append(issues, content.ScanPage(doc, page, ops, n)...)
		r.emit(Event{Kind: EventPageDone, Page: n})
	}
	return issues, nil
}

func (e *Engine) listerFor(doc pdf.Document) content.Lister {
	if e.ListerFor != nil {
		return e.ListerFor(doc)
	}
	if lister, ok := doc.(content.Lister); ok {
		return lister
	}
	return nil
}

func appendIssues(rep *report.Report, prof *profile.Profile, issues []report.Issue) {
	for _, issue := range issues {
		if prof.Ignores(issue.Category) {
			continue
		}
		rep.Issues = append(rep.Issues, issue)
	}
}
