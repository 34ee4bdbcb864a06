package pdf

// Resolver maps indirect references onto their target objects. Resolve
// returns its argument unchanged when it is not a Reference, and nil when
// a reference has no target or the chain exceeds the indirection bound.
type Resolver interface {
	Resolve(obj Object) Object
}

// maxIndirections bounds reference chains. Well-formed documents resolve in
// one hop; the bound turns reference cycles into absent values.
const maxIndirections = 16

// Deref follows obj through get until it is no longer a Reference.
func Deref(get func(Reference) (Object, bool), obj Object) Object {
	for i := 0; i < maxIndirections; i++ {
		ref, ok := obj.(Reference)
		if !ok {
			return obj
		}
		obj, ok = get(ref)
		if !ok {
			return nil
		}
	}
	return nil
}

// Objects is an object table that resolves references against itself.
type Objects map[Reference]Object

func (t Objects) Resolve(obj Object) Object {
	return Deref(func(ref Reference) (Object, bool) {
		o, ok := t[ref]
		return o, ok
	}, obj)
}

// Entry resolves the value stored under key. Absent keys, dangling
// references and explicit nulls all come back as nil.
func Entry(r Resolver, d Dict, key Name) Object {
	if d == nil {
		return nil
	}
	obj, ok := d[key]
	if !ok {
		return nil
	}
	obj = r.Resolve(obj)
	if _, isNull := obj.(Null); isNull {
		return nil
	}
	return obj
}

// DictEntry resolves the dictionary stored under key. A stream value
// contributes its dictionary.
func DictEntry(r Resolver, d Dict, key Name) (Dict, bool) {
	switch v := Entry(r, d, key).(type) {
	case Dict:
		return v, true
	case *Stream:
		return v.Dict, true
	}
	return nil, false
}

// ArrayEntry resolves the array stored under key.
func ArrayEntry(r Resolver, d Dict, key Name) (Array, bool) {
	if a, ok := Entry(r, d, key).(Array); ok {
		return a, true
	}
	return nil, false
}

// NameEntry resolves the name stored under key.
func NameEntry(r Resolver, d Dict, key Name) (Name, bool) {
	if n, ok := Entry(r, d, key).(Name); ok {
		return n, true
	}
	return "", false
}

// IntEntry resolves the integer stored under key.
func IntEntry(r Resolver, d Dict, key Name) (int64, bool) {
	if i, ok := Entry(r, d, key).(Integer); ok {
		return int64(i), true
	}
	return 0, false
}

// NumberEntry resolves the numeric value stored under key, accepting both
// integer and real notation.
func NumberEntry(r Resolver, d Dict, key Name) (float64, bool) {
	switch v := Entry(r, d, key).(type) {
	case Integer:
		return float64(v), true
	case Real:
		return float64(v), true
	}
	return 0, false
}

// BoolEntry resolves the boolean stored under key.
func BoolEntry(r Resolver, d Dict, key Name) (bool, bool) {
	if b, ok := Entry(r, d, key).(Boolean); ok {
		return bool(b), true
	}
	return false, false
}

// TextEntry resolves the string stored under key as display text.
func TextEntry(r Resolver, d Dict, key Name) (string, bool) {
	if s, ok := Entry(r, d, key).(String); ok {
		return string(s), true
	}
	return "", false
}

// StreamEntry resolves the stream stored under key.
func StreamEntry(r Resolver, d Dict, key Name) (*Stream, bool) {
	if s, ok := Entry(r, d, key).(*Stream); ok {
		return s, true
	}
	return nil, false
}
