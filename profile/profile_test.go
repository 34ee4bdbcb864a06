package profile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pressproof/preflight/pdf"
	"github.com/pressproof/preflight/profile"
	"github.com/pressproof/preflight/report"
)

func TestDefaultMatchesSpecifiedThresholds(t *testing.T) {
	p := profile.Default()
	if p.MinBleedMarginPt != 8.5 {
		t.Errorf("bleed margin = %g", p.MinBleedMarginPt)
	}
	if p.PageSizeTolerancePt != 1.0 {
		t.Errorf("size tolerance = %g", p.PageSizeTolerancePt)
	}
	if v := p.TransparencyVersion(); v != (pdf.Version{Major: 1, Minor: 4}) {
		t.Errorf("transparency gate = %s", v)
	}
	if v := p.OldVersion(); v != (pdf.Version{Major: 1, Minor: 3}) {
		t.Errorf("old-version gate = %s", v)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("default profile should validate: %v", err)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strict.yaml")
	data := "min_bleed_margin_pt: 14.2\nignore_categories: [images]\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := profile.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if p.MinBleedMarginPt != 14.2 {
		t.Errorf("override lost: %g", p.MinBleedMarginPt)
	}
	if p.PageSizeTolerancePt != 1.0 {
		t.Errorf("unset field should keep its default, got %g", p.PageSizeTolerancePt)
	}
	if !p.Ignores(report.CategoryImages) || p.Ignores(report.CategoryFonts) {
		t.Errorf("ignore list misapplied: %v", p.IgnoreCategories)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"negative margin": "min_bleed_margin_pt: -1\n",
		"bad gate":        "transparency_gate: soon\n",
		"bad category":    "ignore_categories: [bleed]\n",
	}
	for name, data := range cases {
		path := filepath.Join(t.TempDir(), "p.yaml")
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := profile.Load(path); err == nil {
			t.Errorf("%s: expected a validation error", name)
		}
	}
}
