// Package profile holds the tunable thresholds and toggles of an analysis
// run, loadable from a YAML file.
package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pressproof/preflight/pdf"
	"github.com/pressproof/preflight/report"
)

// Profile configures the checks. Zero-valued fields fall back to the
// defaults, so an empty profile behaves exactly like Default().
type Profile struct {
	// MinBleedMarginPt is the smallest acceptable bleed margin in points.
	MinBleedMarginPt float64 `yaml:"min_bleed_margin_pt"`

	// PageSizeTolerancePt is the slack allowed when comparing page sizes
	// against page 1.
	PageSizeTolerancePt float64 `yaml:"page_size_tolerance_pt"`

	// TransparencyGate is the format revision from which transparency is
	// legal, as "major.minor".
	TransparencyGate string `yaml:"transparency_gate"`

	// OldVersionGate is the revision below which a document is flagged as
	// dated, as "major.minor".
	OldVersionGate string `yaml:"old_version_gate"`

	// ProbeEmbeddedFonts enables parsing embedded font programs to catch
	// unreadable payloads.
	ProbeEmbeddedFonts bool `yaml:"probe_embedded_fonts"`

	// IgnoreCategories drops findings of the named categories from the
	// final report.
	IgnoreCategories []string `yaml:"ignore_categories"`
}

// Default returns the thresholds the checks were specified with: an 8.5pt
// bleed margin, 1pt size tolerance, transparency from 1.4 and the dated
// notice below 1.3.
func Default() *Profile {
	return &Profile{
		MinBleedMarginPt:    8.5,
		PageSizeTolerancePt: 1.0,
		TransparencyGate:    "1.4",
		OldVersionGate:      "1.3",
	}
}

// Load reads a YAML profile and merges it over the defaults.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	p := Default()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate rejects values the checks cannot work with.
func (p *Profile) Validate() error {
	if p.MinBleedMarginPt < 0 {
		return fmt.Errorf("min_bleed_margin_pt must not be negative, got %g", p.MinBleedMarginPt)
	}
	if p.PageSizeTolerancePt < 0 {
		return fmt.Errorf("page_size_tolerance_pt must not be negative, got %g", p.PageSizeTolerancePt)
	}
	if p.TransparencyGate != "" {
		if _, ok := pdf.ParseVersion(p.TransparencyGate); !ok {
			return fmt.Errorf("transparency_gate %q is not a version", p.TransparencyGate)
		}
	}
	if p.OldVersionGate != "" {
		if _, ok := pdf.ParseVersion(p.OldVersionGate); !ok {
			return fmt.Errorf("old_version_gate %q is not a version", p.OldVersionGate)
		}
	}
	for _, cat := range p.IgnoreCategories {
		switch report.Category(cat) {
		case report.CategoryDocument, report.CategoryGeometry, report.CategoryFonts,
			report.CategoryColour, report.CategoryImages, report.CategoryTransparency:
		default:
			return fmt.Errorf("unknown issue category %q", cat)
		}
	}
	return nil
}

// TransparencyVersion returns the parsed transparency gate.
func (p *Profile) TransparencyVersion() pdf.Version {
	if v, ok := pdf.ParseVersion(p.TransparencyGate); ok {
		return v
	}
	return pdf.Version{Major: 1, Minor: 4}
}

// OldVersion returns the parsed dated-document gate.
func (p *Profile) OldVersion() pdf.Version {
	if v, ok := pdf.ParseVersion(p.OldVersionGate); ok {
		return v
	}
	return pdf.Version{Major: 1, Minor: 3}
}

// Ignores reports whether findings of the category are suppressed.
func (p *Profile) Ignores(cat report.Category) bool {
	for _, ignored := range p.IgnoreCategories {
		if report.Category(ignored) == cat {
			return true
		}
	}
	return false
}
