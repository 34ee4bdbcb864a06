package boxes_test

import (
	"strings"
	"testing"

	"github.com/pressproof/preflight/boxes"
	"github.com/pressproof/preflight/pdf"
	"github.com/pressproof/preflight/report"
)

func box(x1, y1, x2, y2 float64) pdf.Array {
	return pdf.Array{pdf.Real(x1), pdf.Real(y1), pdf.Real(x2), pdf.Real(y2)}
}

func intBox(x1, y1, x2, y2 int64) pdf.Array {
	return pdf.Array{pdf.Integer(x1), pdf.Integer(y1), pdf.Integer(x2), pdf.Integer(y2)}
}

func TestNormalizeInvertedCorners(t *testing.T) {
	table := pdf.Objects{}

	got, ok := boxes.Normalize(table, box(612, 792, 0, 0))
	if !ok {
		t.Fatal("Normalize rejected a four-number array")
	}
	want := report.PageBox{X: 0, Y: 0, Width: 612, Height: 792}
	if got != want {
		t.Errorf("Normalize inverted corners = %+v, want %+v", got, want)
	}
}

func TestNormalizeCoercesJunkEntriesToZero(t *testing.T) {
	table := pdf.Objects{} // reference target intentionally missing

	got, ok := boxes.Normalize(table, pdf.Array{
		pdf.Ref(99, 0), pdf.Name("NaN"), pdf.Integer(300), pdf.Integer(400),
	})
	if !ok {
		t.Fatal("Normalize rejected an array with coercible entries")
	}
	want := report.PageBox{X: 0, Y: 0, Width: 300, Height: 400}
	if got != want {
		t.Errorf("Normalize with junk entries = %+v, want %+v", got, want)
	}
}

func TestNormalizeResolvesNumericReferences(t *testing.T) {
	table := pdf.Objects{pdf.Ref(7, 0): pdf.Real(100)}

	got, ok := boxes.Normalize(table, pdf.Array{
		pdf.Ref(7, 0), pdf.Integer(0), pdf.Integer(400), pdf.Integer(500),
	})
	if !ok || got.X != 100 {
		t.Fatalf("Normalize should resolve reference entries, got %+v ok=%v", got, ok)
	}
}

func TestShortArrayFallsBackToLetter(t *testing.T) {
	table := pdf.Objects{}
	page := pdf.Dict{"MediaBox": pdf.Array{pdf.Integer(0), pdf.Integer(0)}}

	info, _ := boxes.Checker{}.Page(table, page, 1, nil)
	if info.Width != 612 || info.Height != 792 {
		t.Errorf("short MediaBox should fall back to 612x792, got %gx%g", info.Width, info.Height)
	}
}

func TestBoxPermutations(t *testing.T) {
	trim := box(20, 20, 592, 772)
	bleed := box(10, 10, 602, 782)

	cases := []struct {
		name         string
		page         pdf.Dict
		wantWarnings int
		wantInfos    int
	}{
		{
			name:         "trim and bleed with generous margin",
			page:         pdf.Dict{"MediaBox": box(0, 0, 612, 792), "TrimBox": trim, "BleedBox": bleed},
			wantWarnings: 0,
			wantInfos:    0,
		},
		{
			name:         "bleed missing",
			page:         pdf.Dict{"MediaBox": box(0, 0, 612, 792), "TrimBox": trim},
			wantWarnings: 1,
			wantInfos:    0,
		},
		{
			name:         "trim missing",
			page:         pdf.Dict{"MediaBox": box(0, 0, 612, 792), "BleedBox": bleed},
			wantWarnings: 0,
			wantInfos:    1,
		},
		{
			name:         "both missing",
			page:         pdf.Dict{"MediaBox": box(0, 0, 612, 792)},
			wantWarnings: 1,
			wantInfos:    1,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, issues := boxes.Checker{}.Page(pdf.Objects{}, c.page, 1, nil)
			var warnings, infos int
			for _, issue := range issues {
				if issue.Category != report.CategoryGeometry {
					t.Errorf("unexpected category %s", issue.Category)
				}
				switch issue.Severity {
				case report.SeverityWarning:
					warnings++
				case report.SeverityInfo:
					infos++
				}
			}
			if warnings != c.wantWarnings || infos != c.wantInfos {
				t.Errorf("got %d warnings %d infos, want %d and %d", warnings, infos, c.wantWarnings, c.wantInfos)
			}
		})
	}
}

func TestBleedMarginBoundary(t *testing.T) {
	// Margin of exactly 8.5pt on every side: no warning.
	page := pdf.Dict{
		"MediaBox": box(0, 0, 612, 792),
		"TrimBox":  box(10, 10, 602, 782),
		"BleedBox": box(1.5, 1.5, 610.5, 790.5),
	}
	_, issues := boxes.Checker{}.Page(pdf.Objects{}, page, 1, nil)
	if len(issues) != 0 {
		t.Fatalf("margin of exactly 8.5pt should pass, got %v", issues)
	}

	// Shave one edge to 8.49pt: one warning.
	page["BleedBox"] = box(1.51, 1.5, 610.5, 790.5)
	_, issues = boxes.Checker{}.Page(pdf.Objects{}, page, 1, nil)
	if len(issues) != 1 {
		t.Fatalf("margin of 8.49pt should warn once, got %v", issues)
	}
	issue := issues[0]
	if issue.Severity != report.SeverityWarning || issue.Category != report.CategoryGeometry {
		t.Errorf("wrong classification: %+v", issue)
	}
	if !strings.Contains(issue.Message, "pt") || !strings.Contains(issue.Message, "mm") {
		t.Errorf("margin message should carry points and millimetres, got %q", issue.Message)
	}
}

func TestPageSizeConsistency(t *testing.T) {
	table := pdf.Objects{}
	checker := boxes.Checker{}

	first, _ := checker.Page(table, pdf.Dict{
		"MediaBox": intBox(0, 0, 612, 792),
		"TrimBox":  intBox(0, 0, 612, 792),
		"BleedBox": intBox(-10, -10, 622, 802),
	}, 1, nil)

	// Within the 1pt tolerance: silent.
	_, issues := checker.Page(table, pdf.Dict{
		"MediaBox": box(0, 0, 612.8, 792),
		"TrimBox":  intBox(0, 0, 612, 792),
		"BleedBox": intBox(-10, -10, 622, 802),
	}, 2, &first)
	if len(issues) != 0 {
		t.Fatalf("0.8pt size drift should stay within tolerance, got %v", issues)
	}

	// A5 page in a letter document: warn and name both sizes.
	_, issues = checker.Page(table, pdf.Dict{
		"MediaBox": intBox(0, 0, 420, 595),
		"TrimBox":  intBox(0, 0, 420, 595),
		"BleedBox": intBox(-10, -10, 430, 605),
	}, 3, &first)
	if len(issues) != 1 {
		t.Fatalf("mismatched page size should warn, got %v", issues)
	}
	msg := issues[0].Message
	if !strings.Contains(msg, "420") || !strings.Contains(msg, "612") {
		t.Errorf("size warning should name both sizes, got %q", msg)
	}
	if issues[0].Page != 3 {
		t.Errorf("size warning attributed to page %d, want 3", issues[0].Page)
	}
}

func TestMissingMediaBoxDefaultsToLetter(t *testing.T) {
	info, _ := boxes.Checker{}.Page(pdf.Objects{}, pdf.Dict{}, 1, nil)
	if info.MediaBox.Width != 612 || info.MediaBox.Height != 792 {
		t.Errorf("missing MediaBox = %+v, want letter fallback", info.MediaBox)
	}
	if info.CropBox != nil || info.TrimBox != nil || info.BleedBox != nil {
		t.Error("absent optional boxes must stay nil")
	}
}
