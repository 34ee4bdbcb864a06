// Package pdf defines the object-graph vocabulary shared by document
// loaders and the analysis checks.
package pdf

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Object is implemented by the value kinds a document graph can hold:
// Null, Boolean, Integer, Real, Name, String, Array, Dict, Reference and
// *Stream. A nil Object means the value is absent.
type Object interface {
	// String renders the object in document syntax, for issue text and logs.
	String() string
}

// Null is the explicit null object. Accessors treat it like an absent value.
type Null struct{}

func (Null) String() string { return "null" }

// Boolean is a true/false value.
type Boolean bool

func (b Boolean) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Integer is a whole-number value.
type Integer int64

func (i Integer) String() string { return strconv.FormatInt(int64(i), 10) }

// Real is a fractional-number value.
type Real float64

func (r Real) String() string { return strconv.FormatFloat(float64(r), 'f', -1, 64) }

// Name is an identifier such as /Type or /DeviceRGB, stored without the slash.
type Name string

func (n Name) String() string { return "/" + string(n) }

// String holds raw string bytes. Text encoding depends on the context the
// string appears in; callers that need display text convert best-effort.
type String []byte

func (s String) String() string { return "(" + string(s) + ")" }

// Array is an ordered sequence of objects.
type Array []Object

func (a Array) String() string {
	parts := make([]string, len(a))
	for i, item := range a {
		if item == nil {
			parts[i] = "null"
			continue
		}
		parts[i] = item.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Dict maps names to objects.
type Dict map[Name]Object

func (d Dict) String() string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString("<<")
	for _, k := range keys {
		v := d[Name(k)]
		b.WriteString("/" + k + " ")
		if v == nil {
			b.WriteString("null")
		} else {
			b.WriteString(v.String())
		}
	}
	b.WriteString(">>")
	return b.String()
}

// Reference points at an indirect object.
type Reference struct {
	Num int
	Gen int
}

func (r Reference) String() string { return fmt.Sprintf("%d %d R", r.Num, r.Gen) }

// Ref is shorthand for building a Reference.
func Ref(num, gen int) Reference { return Reference{Num: num, Gen: gen} }

// Stream couples a dictionary with a byte payload. Raw holds whatever the
// loader chose to keep; structural checks only ever look at the dictionary.
type Stream struct {
	Dict Dict
	Raw  []byte
}

func (s *Stream) String() string { return fmt.Sprintf("stream(%d bytes)", len(s.Raw)) }
