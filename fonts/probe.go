package fonts

import (
	"bytes"
	"fmt"

	gofont "github.com/go-text/typesetting/font"

	"github.com/pressproof/preflight/pdf"
	"github.com/pressproof/preflight/report"
)

// ProbeFunc inspects a font that was already classified as embedded and
// reports additional findings. Probes never change the embedding decision.
type ProbeFunc func(r pdf.Resolver, font pdf.Dict, name string, page int) []report.Issue

// ParseProbe checks that an embedded TrueType or OpenType program actually
// parses. Loaders that do not retain stream payloads leave nothing to
// probe, which is fine: the probe stays silent on empty data.
func ParseProbe(r pdf.Resolver, font pdf.Dict, name string, page int) []report.Issue {
	data := fontProgram(r, font)
	if len(data) == 0 {
		return nil
	}
	if _, err := gofont.ParseTTF(bytes.NewReader(data)); err != nil {
		return []report.Issue{{
			Severity: report.SeverityWarning,
			Category: report.CategoryFonts,
			Message:  fmt.Sprintf("Embedded font program for %q could not be parsed", name),
			Page:     page,
			Details:  err.Error(),
		}}
	}
	return nil
}

// fontProgram returns the sfnt payload of the font, following composite
// fonts one hop down to their descendant.
func fontProgram(r pdf.Resolver, font pdf.Dict) []byte {
	if data := descriptorProgram(r, font); data != nil {
		return data
	}
	descendants, _ := pdf.ArrayEntry(r, font, "DescendantFonts")
	for _, item := range descendants {
		if cid, ok := r.Resolve(item).(pdf.Dict); ok {
			if data := descriptorProgram(r, cid); data != nil {
				return data
			}
		}
	}
	return nil
}

func descriptorProgram(r pdf.Resolver, font pdf.Dict) []byte {
	desc, ok := pdf.DictEntry(r, font, "FontDescriptor")
	if !ok {
		return nil
	}
	// FontFile holds a Type 1 program, which the sfnt parser does not
	// read; only the TrueType and OpenType slots are probed.
	for _, slot := range []pdf.Name{"FontFile2", "FontFile3"} {
		if s, ok := pdf.StreamEntry(r, desc, slot); ok && len(s.Raw) > 0 {
			return s.Raw
		}
	}
	return nil
}
