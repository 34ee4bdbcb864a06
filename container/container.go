// Package container loads document bytes through pdfcpu and exposes the
// result as the object graph the analysis engine reads. It is the only
// package that imports pdfcpu.
package container

import (
	"bytes"
	"io"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/pressproof/preflight"
	"github.com/pressproof/preflight/content"
	"github.com/pressproof/preflight/pdf"
)

// Document is a loaded file. It implements pdf.Document for the
// structural checks and content.Lister for the operator scan.
type Document struct {
	ctx       *model.Context
	objects   pdf.Objects
	trailer   pdf.Dict
	pages     []pdf.Dict
	version   pdf.Version
	encrypted bool
	info      pdf.Info
}

// Load parses the container bytes. Failures come back classified:
// unreadable encryption as preflight.ErrEncrypted, everything else as
// preflight.ErrParse.
func Load(data []byte) (pdf.Document, error) {
	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return nil, Classify(err)
	}

	d := &Document{
		ctx:       ctx,
		objects:   pdf.Objects{},
		encrypted: ctx.Encrypt != nil,
	}
	for objNr, entry := range ctx.Table {
		if entry == nil || entry.Free {
			continue
		}
		if obj := convert(entry.Object); obj != nil {
			d.objects[pdf.Ref(objNr, 0)] = obj
		}
	}

	d.trailer = pdf.Dict{}
	if ctx.Root != nil {
		d.trailer["Root"] = convert(*ctx.Root)
	}
	if ctx.Info != nil {
		d.trailer["Info"] = convert(*ctx.Info)
	}
	if ctx.Encrypt != nil {
		d.trailer["Encrypt"] = convert(*ctx.Encrypt)
	}

	d.version = docVersion(ctx)
	d.info = docInfo(d)
	// The page list is resolved once; PageInfo immutability rests on it.
	d.pages = pdf.CollectPages(d, d.trailer)
	return d, nil
}

func (d *Document) Resolve(obj pdf.Object) pdf.Object { return d.objects.Resolve(obj) }

func (d *Document) NumPages() int {
	if n := len(d.pages); n > 0 {
		return n
	}
	return d.ctx.PageCount
}

func (d *Document) Page(number int) (pdf.Dict, bool) {
	if number < 1 || number > len(d.pages) {
		return nil, false
	}
	return d.pages[number-1], true
}

func (d *Document) Trailer() pdf.Dict    { return d.trailer }
func (d *Document) Encrypted() bool      { return d.encrypted }
func (d *Document) Version() pdf.Version { return d.version }
func (d *Document) Info() pdf.Info       { return d.info }

// OperatorList decodes a page's content streams into an operator list,
// satisfying the engine's content.Lister collaborator.
func (d *Document) OperatorList(page int) ([]content.Op, error) {
	r, err := pdfcpu.ExtractPageContent(d.ctx, page)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return content.Tokenize(data), nil
}

// Classify maps a pdfcpu load failure onto the engine's error taxonomy.
func Classify(err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "password") || strings.Contains(msg, "encrypt") || strings.Contains(msg, "decrypt") {
		return preflight.EncryptedError(err)
	}
	return preflight.ParseError(err)
}

func docVersion(ctx *model.Context) pdf.Version {
	// The catalog's Version entry overrides the header when present.
	v := ctx.HeaderVersion
	if ctx.RootVersion != nil {
		v = ctx.RootVersion
	}
	if v == nil {
		return pdf.Version{Major: 1, Minor: 7}
	}
	if parsed, ok := pdf.ParseVersion(v.String()); ok {
		return parsed
	}
	return pdf.Version{Major: 1, Minor: 7}
}

func docInfo(d *Document) pdf.Info {
	dict, ok := pdf.DictEntry(d, d.trailer, "Info")
	if !ok {
		return pdf.Info{}
	}
	var info pdf.Info
	info.Title, _ = pdf.TextEntry(d, dict, "Title")
	info.Author, _ = pdf.TextEntry(d, dict, "Author")
	info.Creator, _ = pdf.TextEntry(d, dict, "Creator")
	info.Producer, _ = pdf.TextEntry(d, dict, "Producer")
	return info
}

// convert maps a pdfcpu object onto the engine's object vocabulary.
// Unhandled kinds read as absent rather than failing the load.
func convert(obj types.Object) pdf.Object {
	switch o := obj.(type) {
	case types.Dict:
		return convertDict(o)
	case types.Array:
		out := make(pdf.Array, len(o))
		for i, item := range o {
			out[i] = convert(item)
		}
		return out
	case types.StreamDict:
		return &pdf.Stream{Dict: convertDict(o.Dict), Raw: streamPayload(o)}
	case *types.StreamDict:
		return &pdf.Stream{Dict: convertDict(o.Dict), Raw: streamPayload(*o)}
	case types.Name:
		return pdf.Name(o.Value())
	case types.StringLiteral:
		return pdf.String(o.Value())
	case types.HexLiteral:
		return pdf.String(o.Value())
	case types.Integer:
		return pdf.Integer(o.Value())
	case types.Float:
		return pdf.Real(o.Value())
	case types.Boolean:
		return pdf.Boolean(o.Value())
	case types.IndirectRef:
		return pdf.Ref(o.ObjectNumber.Value(), o.GenerationNumber.Value())
	case *types.IndirectRef:
		return pdf.Ref(o.ObjectNumber.Value(), o.GenerationNumber.Value())
	default:
		return nil
	}
}

func convertDict(d types.Dict) pdf.Dict {
	out := pdf.Dict{}
	for key, value := range d {
		out[pdf.Name(key)] = convert(value)
	}
	return out
}

// streamPayload prefers decoded content; checks that only read the stream
// dictionary still work when decoding was skipped.
func streamPayload(sd types.StreamDict) []byte {
	if len(sd.Content) > 0 {
		return sd.Content
	}
	return sd.Raw
}
