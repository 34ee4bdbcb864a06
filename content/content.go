// Package content models decoded content-stream operator lists and scans
// them for colour-space and image usage.
package content

import "image"

// Operand is a decoded operator argument: Number, Name or String. The
// closed set lets call sites switch exhaustively instead of testing
// runtime types.
type Operand interface {
	isOperand()
}

// Number is a numeric operand.
type Number float64

func (Number) isOperand() {}

// Name is a name operand, stored without the leading slash.
type Name string

func (Name) isOperand() {}

// String is a string operand with its raw bytes.
type String []byte

func (String) isOperand() {}

// Op is one decoded operation: the operator code and the operands that
// preceded it in the stream.
type Op struct {
	Name     string
	Operands []Operand
}

// Lister produces the decoded operator list for a page. Implementations
// wrap a content-stream interpreter; page numbering is 1-based.
type Lister interface {
	OperatorList(page int) ([]Op, error)
}

// Renderer rasterizes pages for preview display. A Renderer is scoped to
// one analysis run and must be closed when the run ends, whichever way it
// ends.
type Renderer interface {
	Render(page int, scale float64) (image.Image, error)
	Close() error
}
