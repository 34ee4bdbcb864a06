package content

import (
	"bytes"
	"strconv"
)

// Tokenize decodes raw content-stream bytes into an operator list. It is a
// fallback for callers without their own interpreter: operands accumulate
// until an operator token commits them. Inline image data between ID and
// EI is skipped, with the BI operator kept so image counting still sees
// the paint. Malformed trailing operands are dropped rather than reported;
// the scanner only needs the operations that did complete.
func Tokenize(data []byte) []Op {
	t := tokenizer{data: data}
	var ops []Op
	var operands []Operand
	for {
		tok, kind := t.next()
		if kind == tokEOF {
			return ops
		}
		switch kind {
		case tokNumber:
			n, _ := strconv.ParseFloat(tok, 64)
			operands = append(operands, Number(n))
		case tokName:
			operands = append(operands, Name(tok))
		case tokString:
			operands = append(operands, String(tok))
		case tokDelim:
			// Array and dictionary markers carry no information the
			// scanner uses; their contents still arrive as operands.
		case tokOperator:
			ops = append(ops, Op{Name: tok, Operands: operands})
			operands = nil
			if tok == "ID" {
				t.skipInlineImage()
			}
		}
	}
}

type tokKind int

const (
	tokEOF tokKind = iota
	tokNumber
	tokName
	tokString
	tokDelim
	tokOperator
)

type tokenizer struct {
	data []byte
	pos  int
}

func (t *tokenizer) next() (string, tokKind) {
	t.skipSpace()
	if t.pos >= len(t.data) {
		return "", tokEOF
	}
	c := t.data[t.pos]
	switch {
	case c == '%':
		t.skipComment()
		return t.next()
	case c == '/':
		t.pos++
		start := t.pos
		for t.pos < len(t.data) && !isDelim(t.data[t.pos]) && !isSpace(t.data[t.pos]) {
			t.pos++
		}
		return string(t.data[start:t.pos]), tokName
	case c == '(':
		return t.literalString(), tokString
	case c == '<':
		if t.pos+1 < len(t.data) && t.data[t.pos+1] == '<' {
			t.pos += 2
			return "<<", tokDelim
		}
		return t.hexString(), tokString
	case c == '>':
		if t.pos+1 < len(t.data) && t.data[t.pos+1] == '>' {
			t.pos += 2
			return ">>", tokDelim
		}
		t.pos++
		return ">", tokDelim
	case c == '[' || c == ']' || c == '{' || c == '}':
		t.pos++
		return string(c), tokDelim
	case c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9'):
		start := t.pos
		t.pos++
		for t.pos < len(t.data) && (t.data[t.pos] == '.' || (t.data[t.pos] >= '0' && t.data[t.pos] <= '9')) {
			t.pos++
		}
		return string(t.data[start:t.pos]), tokNumber
	default:
		start := t.pos
		for t.pos < len(t.data) && !isDelim(t.data[t.pos]) && !isSpace(t.data[t.pos]) {
			t.pos++
		}
		if t.pos == start {
			// Unrecognized delimiter byte; skip it.
			t.pos++
			return t.next()
		}
		return string(t.data[start:t.pos]), tokOperator
	}
}

// literalString reads a (...) string, honouring nested parentheses and
// backslash escapes. Escape sequences stay unexpanded; the scanner never
// interprets string contents.
func (t *tokenizer) literalString() string {
	t.pos++ // opening parenthesis
	start := t.pos
	depth := 1
	for t.pos < len(t.data) {
		switch t.data[t.pos] {
		case '\\':
			t.pos++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				s := string(t.data[start:t.pos])
				t.pos++
				return s
			}
		}
		t.pos++
	}
	return string(t.data[start:])
}

func (t *tokenizer) hexString() string {
	t.pos++ // opening angle bracket
	start := t.pos
	for t.pos < len(t.data) && t.data[t.pos] != '>' {
		t.pos++
	}
	s := string(t.data[start:t.pos])
	if t.pos < len(t.data) {
		t.pos++
	}
	return s
}

// skipInlineImage advances past inline image data to the EI marker.
func (t *tokenizer) skipInlineImage() {
	for t.pos < len(t.data) {
		i := bytes.Index(t.data[t.pos:], []byte("EI"))
		if i < 0 {
			t.pos = len(t.data)
			return
		}
		end := t.pos + i
		// EI must stand alone, not occur inside the image bytes.
		if (end == 0 || isSpace(t.data[end-1])) &&
			(end+2 >= len(t.data) || isSpace(t.data[end+2]) || isDelim(t.data[end+2])) {
			t.pos = end + 2
			return
		}
		t.pos = end + 2
	}
}

func (t *tokenizer) skipSpace() {
	for t.pos < len(t.data) && isSpace(t.data[t.pos]) {
		t.pos++
	}
}

func (t *tokenizer) skipComment() {
	for t.pos < len(t.data) && t.data[t.pos] != '\n' && t.data[t.pos] != '\r' {
		t.pos++
	}
}

func isSpace(c byte) bool {
	switch c {
	case 0, '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

func isDelim(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}
