// Package boxes resolves page-geometry boxes and checks bleed and trim
// setup against print requirements.
package boxes

import (
	"fmt"
	"math"

	"github.com/pressproof/preflight/pdf"
	"github.com/pressproof/preflight/report"
)

const (
	// DefaultMinBleedMargin is the smallest acceptable bleed margin in
	// points, roughly 3mm.
	DefaultMinBleedMargin = 8.5

	// DefaultSizeTolerance is the page-size comparison tolerance in points.
	DefaultSizeTolerance = 1.0

	// MillimetresPerPoint converts PostScript points to millimetres.
	MillimetresPerPoint = 0.352778
)

// fallback is the US-Letter box substituted when a box array is unusable.
var fallback = report.PageBox{X: 0, Y: 0, Width: 612, Height: 792}

// Checker carries the geometry thresholds. The zero value applies the
// defaults above.
type Checker struct {
	MinBleedMargin float64
	SizeTolerance  float64
}

// Page resolves one page's boxes and returns its geometry together with
// any geometry findings. first is the already-resolved page-1 geometry
// used for the size-consistency comparison; it is nil while resolving
// page 1 itself.
func (c Checker) Page(r pdf.Resolver, page pdf.Dict, number int, first *report.PageInfo) (report.PageInfo, []report.Issue) {
	media, ok := Normalize(r, boxArray(r, page, "MediaBox"))
	if !ok {
		media = fallback
	}
	info := report.PageInfo{
		Number:   number,
		Width:    media.Width,
		Height:   media.Height,
		MediaBox: media,
		CropBox:  optional(r, page, "CropBox"),
		TrimBox:  optional(r, page, "TrimBox"),
		BleedBox: optional(r, page, "BleedBox"),
	}

	var issues []report.Issue
	minMargin := c.MinBleedMargin
	if minMargin == 0 {
		minMargin = DefaultMinBleedMargin
	}

	switch {
	case info.TrimBox != nil && info.BleedBox != nil:
		if margin := minBleedMargin(*info.TrimBox, *info.BleedBox); margin < minMargin {
			issues = append(issues, report.Issue{
				Severity: report.SeverityWarning,
				Category: report.CategoryGeometry,
				Message: fmt.Sprintf("Bleed margin is %.2fpt (%.2fmm); at least %.2fpt (%.2fmm) is required",
					margin, margin*MillimetresPerPoint, minMargin, minMargin*MillimetresPerPoint),
				Page: number,
			})
		}
	case info.BleedBox == nil:
		issues = append(issues, report.Issue{
			Severity: report.SeverityWarning,
			Category: report.CategoryGeometry,
			Message:  "No BleedBox defined; edge artwork may be cut off without bleed",
			Page:     number,
		})
	}
	if info.TrimBox == nil {
		issues = append(issues, report.Issue{
			Severity: report.SeverityInfo,
			Category: report.CategoryGeometry,
			Message:  "No TrimBox defined; treating the MediaBox as the finished page size",
			Page:     number,
		})
	}

	if first != nil {
		tol := c.SizeTolerance
		if tol == 0 {
			tol = DefaultSizeTolerance
		}
		if math.Abs(info.Width-first.Width) > tol || math.Abs(info.Height-first.Height) > tol {
			issues = append(issues, report.Issue{
				Severity: report.SeverityWarning,
				Category: report.CategoryGeometry,
				Message: fmt.Sprintf("Page size %.1fx%.1fpt differs from page 1 (%.1fx%.1fpt)",
					info.Width, info.Height, first.Width, first.Height),
				Page: number,
			})
		}
	}

	return info, issues
}

// Normalize turns a raw four-number corner array into a PageBox. Corner
// order and axis direction may be inverted in the source; the result never
// has negative width or height. Entries that do not resolve to a number
// count as zero. Arrays with fewer than four entries are unusable.
func Normalize(r pdf.Resolver, arr pdf.Array) (report.PageBox, bool) {
	if len(arr) < 4 {
		return report.PageBox{}, false
	}
	x1 := numeric(r, arr[0])
	y1 := numeric(r, arr[1])
	x2 := numeric(r, arr[2])
	y2 := numeric(r, arr[3])
	return report.PageBox{
		X:      math.Min(x1, x2),
		Y:      math.Min(y1, y2),
		Width:  math.Abs(x2 - x1),
		Height: math.Abs(y2 - y1),
	}, true
}

// numeric coerces a box-array entry to a number. References resolve first;
// anything non-numeric, including dangling references, reads as zero.
func numeric(r pdf.Resolver, obj pdf.Object) float64 {
	switch v := r.Resolve(obj).(type) {
	case pdf.Integer:
		return float64(v)
	case pdf.Real:
		return float64(v)
	default:
		return 0
	}
}

// optional resolves a box that pages may omit. Absent entries, explicit
// nulls and dangling references read as nil; a present but unusable array
// still produces the fallback box rather than failing the page.
func optional(r pdf.Resolver, page pdf.Dict, key pdf.Name) *report.PageBox {
	v := pdf.Entry(r, page, key)
	if v == nil {
		return nil
	}
	arr, _ := v.(pdf.Array)
	box, ok := Normalize(r, arr)
	if !ok {
		box = fallback
	}
	return &box
}

func boxArray(r pdf.Resolver, page pdf.Dict, key pdf.Name) pdf.Array {
	arr, _ := pdf.ArrayEntry(r, page, key)
	return arr
}

// minBleedMargin computes the smallest distance between the trim edge and
// the bleed edge on any side.
func minBleedMargin(trim, bleed report.PageBox) float64 {
	left := trim.X - bleed.X
	bottom := trim.Y - bleed.Y
	right := bleed.MaxX() - trim.MaxX()
	top := bleed.MaxY() - trim.MaxY()
	return math.Min(math.Min(left, bottom), math.Min(right, top))
}
