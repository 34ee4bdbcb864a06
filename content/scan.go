package content

import (
	"fmt"
	"strings"

	"github.com/pressproof/preflight/pdf"
	"github.com/pressproof/preflight/report"
)

// ScanPage runs the single linear pass over one page's operator list:
// image paints are counted and colour-space selections recorded, then the
// findings are classified. page is the page dictionary, used to resolve
// XObject names and named colour spaces one hop through the resources;
// it may be nil when the caller has no document handle.
func ScanPage(r pdf.Resolver, page pdf.Dict, ops []Op, number int) []report.Issue {
	images := 0
	spaces := map[string]bool{}

	for _, op := range ops {
		switch op.Name {
		case "BI":
			images++
		case "Do":
			if name, ok := lastName(op.Operands); ok && isImageXObject(r, page, name) {
				images++
			}
		case "cs", "CS":
			if name, ok := lastName(op.Operands); ok {
				spaces[resolveSpaceName(r, page, string(name))] = true
			}
		case "rg", "RG":
			spaces["DeviceRGB"] = true
		case "k", "K":
			spaces["DeviceCMYK"] = true
		case "g", "G":
			spaces["DeviceGray"] = true
		}
	}

	var issues []report.Issue
	hasRGB := anySpace(spaces, "RGB")
	hasCMYK := anySpace(spaces, "CMYK")
	if hasRGB {
		issues = append(issues, report.Issue{
			Severity: report.SeverityWarning,
			Category: report.CategoryColour,
			Message:  "RGB colour detected; colours may shift under CMYK conversion",
			Page:     number,
		})
	}
	if hasRGB && hasCMYK {
		issues = append(issues, report.Issue{
			Severity: report.SeverityWarning,
			Category: report.CategoryColour,
			Message:  "Page mixes RGB and CMYK colour spaces",
			Page:     number,
		})
	}
	if images > 0 {
		issues = append(issues, report.Issue{
			Severity: report.SeverityInfo,
			Category: report.CategoryImages,
			Message:  fmt.Sprintf("Page places %d image(s)", images),
			Page:     number,
		})
	}
	return issues
}

// lastName returns the trailing name operand, the position both Do and
// cs/CS keep their argument in.
func lastName(operands []Operand) (Name, bool) {
	if len(operands) == 0 {
		return "", false
	}
	name, ok := operands[len(operands)-1].(Name)
	return name, ok
}

// isImageXObject reports whether the named XObject resource is an image.
// Without a page dictionary the paint cannot be classified and does not
// count; form XObjects are not descended into.
func isImageXObject(r pdf.Resolver, page pdf.Dict, name Name) bool {
	if page == nil {
		return false
	}
	resources, ok := pdf.DictEntry(r, page, "Resources")
	if !ok {
		return false
	}
	xobjects, ok := pdf.DictEntry(r, resources, "XObject")
	if !ok {
		return false
	}
	xo, ok := pdf.DictEntry(r, xobjects, pdf.Name(name))
	if !ok {
		return false
	}
	subtype, _ := pdf.NameEntry(r, xo, "Subtype")
	return subtype == "Image"
}

// resolveSpaceName maps a cs/CS operand to a recordable colour-space name.
// Device names pass through; anything else is looked up in the page's
// ColorSpace resources, where an array's first element names the family.
func resolveSpaceName(r pdf.Resolver, page pdf.Dict, name string) string {
	switch name {
	case "DeviceRGB", "DeviceCMYK", "DeviceGray", "Pattern":
		return name
	}
	if page == nil {
		return name
	}
	resources, ok := pdf.DictEntry(r, page, "Resources")
	if !ok {
		return name
	}
	csRes, ok := pdf.DictEntry(r, resources, "ColorSpace")
	if !ok {
		return name
	}
	switch v := pdf.Entry(r, csRes, pdf.Name(name)).(type) {
	case pdf.Name:
		return string(v)
	case pdf.Array:
		if len(v) > 0 {
			if family, ok := r.Resolve(v[0]).(pdf.Name); ok {
				return string(family)
			}
		}
	}
	return name
}

// anySpace reports whether a recorded colour-space name belongs to the
// given family. Matching is by substring, so CalRGB counts as RGB usage.
func anySpace(spaces map[string]bool, family string) bool {
	for name := range spaces {
		if strings.Contains(name, family) {
			return true
		}
	}
	return false
}
