// Package fonts builds the deduplicated, embedding-annotated font
// inventory for a document.
package fonts

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/pressproof/preflight/pdf"
	"github.com/pressproof/preflight/report"
)

// subsetTag matches the subset marker producers prepend to partial fonts:
// exactly six uppercase letters and a plus sign.
var subsetTag = regexp.MustCompile(`^[A-Z]{6}\+`)

// StripSubsetTag removes a leading subset marker from a font name.
func StripSubsetTag(name string) string {
	return subsetTag.ReplaceAllString(name, "")
}

// standard14 holds the base fonts every conforming viewer ships, which are
// treated as available without embedding.
var standard14 = map[string]bool{
	"Courier":               true,
	"Courier-Bold":          true,
	"Courier-Oblique":       true,
	"Courier-BoldOblique":   true,
	"Helvetica":             true,
	"Helvetica-Bold":        true,
	"Helvetica-Oblique":     true,
	"Helvetica-BoldOblique": true,
	"Times-Roman":           true,
	"Times-Bold":            true,
	"Times-Italic":          true,
	"Times-BoldItalic":      true,
	"Symbol":                true,
	"ZapfDingbats":          true,
}

// IsStandard reports whether name is one of the fourteen standard base
// fonts. The name must already have its subset tag stripped.
func IsStandard(name string) bool { return standard14[name] }

type fontKey struct {
	name    string
	subtype string
}

// Inventory accumulates distinct fonts across pages. The uniqueness key is
// (cleaned name, subtype); the first occurrence wins, so embedding
// conclusions are stable even when later pages repeat a font.
type Inventory struct {
	Fonts  []report.FontInfo
	Issues []report.Issue

	Probe ProbeFunc // optional deep check on embedded font programs

	seen map[fontKey]bool
}

func NewInventory() *Inventory {
	return &Inventory{seen: make(map[fontKey]bool)}
}

// Page walks one page's font resources, recording fonts not seen on
// earlier pages together with their findings.
func (inv *Inventory) Page(r pdf.Resolver, page pdf.Dict, number int) {
	resources, ok := pdf.DictEntry(r, page, "Resources")
	if !ok {
		return
	}
	fontRes, ok := pdf.DictEntry(r, resources, "Font")
	if !ok {
		return
	}

	// Resource names sort so repeated runs list fonts in a stable order.
	names := make([]string, 0, len(fontRes))
	for name := range fontRes {
		names = append(names, string(name))
	}
	sort.Strings(names)

	for _, resName := range names {
		font, ok := pdf.DictEntry(r, fontRes, pdf.Name(resName))
		if !ok {
			continue
		}
		inv.add(r, font, resName, number)
	}
}

func (inv *Inventory) add(r pdf.Resolver, font pdf.Dict, resName string, page int) {
	subtype, _ := pdf.NameEntry(r, font, "Subtype")
	base, _ := pdf.NameEntry(r, font, "BaseFont")
	name := StripSubsetTag(string(base))
	if name == "" {
		// Type 3 fonts often carry no BaseFont; fall back to the
		// resource name so the inventory entry stays addressable.
		name = resName
	}

	key := fontKey{name: name, subtype: string(subtype)}
	if inv.seen[key] {
		return
	}
	inv.seen[key] = true

	embedded := isEmbedded(r, font, name, subtype)
	inv.Fonts = append(inv.Fonts, report.FontInfo{
		Name:     name,
		Subtype:  string(subtype),
		Embedded: embedded,
	})

	if !embedded {
		inv.Issues = append(inv.Issues, report.Issue{
			Severity: report.SeverityError,
			Category: report.CategoryFonts,
			Message:  fmt.Sprintf("Font %q is not embedded", name),
			Page:     page,
			Details:  "text may reflow or substitute on the output device",
		})
	}
	if subtype == "Type3" {
		inv.Issues = append(inv.Issues, report.Issue{
			Severity: report.SeverityWarning,
			Category: report.CategoryFonts,
			Message:  fmt.Sprintf("Font %q is a Type 3 font", name),
			Page:     page,
			Details:  "Type 3 glyph procedures can render differently across RIPs",
		})
	}

	if inv.Probe != nil && embedded {
		inv.Issues = append(inv.Issues, inv.Probe(r, font, name, page)...)
	}
}

// isEmbedded applies the embedding decision in order: a descriptor with a
// font-file slot, then the standard-14 exemption, then composite-font
// descendants.
func isEmbedded(r pdf.Resolver, font pdf.Dict, cleanName string, subtype pdf.Name) bool {
	if desc, ok := pdf.DictEntry(r, font, "FontDescriptor"); ok && hasFontFile(r, desc) {
		return true
	}
	if IsStandard(cleanName) {
		return true
	}
	if subtype == "Type0" {
		descendants, _ := pdf.ArrayEntry(r, font, "DescendantFonts")
		for _, item := range descendants {
			// One reference hop to the CID font.
			cid, ok := r.Resolve(item).(pdf.Dict)
			if !ok {
				continue
			}
			if desc, ok := pdf.DictEntry(r, cid, "FontDescriptor"); ok && hasFontFile(r, desc) {
				return true
			}
		}
	}
	return false
}

// hasFontFile reports whether the descriptor holds any of the three
// embedded-program slots. A slot that resolves to nothing does not count.
func hasFontFile(r pdf.Resolver, desc pdf.Dict) bool {
	for _, slot := range []pdf.Name{"FontFile", "FontFile2", "FontFile3"} {
		if pdf.Entry(r, desc, slot) != nil {
			return true
		}
	}
	return false
}
