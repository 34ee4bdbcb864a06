package container

import (
	"errors"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/pressproof/preflight"
	"github.com/pressproof/preflight/pdf"
)

func TestConvertScalars(t *testing.T) {
	if got := convert(types.Integer(42)); got != pdf.Integer(42) {
		t.Errorf("integer = %v", got)
	}
	if got := convert(types.Float(1.5)); got != pdf.Real(1.5) {
		t.Errorf("float = %v", got)
	}
	if got := convert(types.Name("DeviceRGB")); got != pdf.Name("DeviceRGB") {
		t.Errorf("name = %v", got)
	}
	if got := convert(types.Boolean(true)); got != pdf.Boolean(true) {
		t.Errorf("boolean = %v", got)
	}
	ref := types.IndirectRef{ObjectNumber: 7, GenerationNumber: 0}
	if got := convert(ref); got != pdf.Ref(7, 0) {
		t.Errorf("reference = %v", got)
	}
}

func TestConvertNestedDict(t *testing.T) {
	src := types.Dict{
		"Type":     types.Name("Page"),
		"MediaBox": types.Array{types.Integer(0), types.Integer(0), types.Integer(612), types.Integer(792)},
		"Parent":   types.IndirectRef{ObjectNumber: 2, GenerationNumber: 0},
	}

	got, ok := convert(src).(pdf.Dict)
	if !ok {
		t.Fatalf("convert(dict) = %T", convert(src))
	}
	if got["Type"] != pdf.Name("Page") {
		t.Errorf("Type = %v", got["Type"])
	}
	box, ok := got["MediaBox"].(pdf.Array)
	if !ok || len(box) != 4 || box[2] != pdf.Integer(612) {
		t.Errorf("MediaBox = %v", got["MediaBox"])
	}
	if got["Parent"] != pdf.Ref(2, 0) {
		t.Errorf("Parent = %v", got["Parent"])
	}
}

func TestConvertStringLiteral(t *testing.T) {
	got, ok := convert(types.StringLiteral("Acme Layout 2.1")).(pdf.String)
	if !ok || string(got) != "Acme Layout 2.1" {
		t.Errorf("string literal = %v", got)
	}
}

func TestClassifySplitsEncryptionFromParse(t *testing.T) {
	err := Classify(errors.New("pdfcpu: please provide the correct password"))
	if !errors.Is(err, preflight.ErrEncrypted) {
		t.Errorf("password failure = %v, want encrypted", err)
	}

	err = Classify(errors.New("pdfcpu: no xref section found"))
	if !errors.Is(err, preflight.ErrParse) {
		t.Errorf("structure failure = %v, want parse", err)
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	_, err := Load([]byte("this is not a pdf"))
	if err == nil {
		t.Fatal("garbage bytes must not load")
	}
	if !errors.Is(err, preflight.ErrParse) {
		t.Errorf("err = %v, want parse classification", err)
	}
}
