package pdf

// Info carries the common document information fields. Absent fields stay
// empty; they never become findings on their own.
type Info struct {
	Title    string
	Author   string
	Creator  string
	Producer string
}

// Document is the handle the analysis engine reads a loaded file through.
// Page numbering is 1-based.
type Document interface {
	Resolver
	NumPages() int
	Page(number int) (Dict, bool)
	Trailer() Dict
	Encrypted() bool
	Version() Version
	Info() Info
}

// inheritable lists the page-tree attributes a page may take from its
// ancestors.
var inheritable = []Name{"Resources", "MediaBox", "CropBox", "Rotate"}

// CollectPages walks the page tree under the trailer's Root and returns the
// page dictionaries in document order. Attributes a page inherits from its
// ancestors are merged into the returned copies, so callers read each page
// dictionary as self-contained.
func CollectPages(r Resolver, trailer Dict) []Dict {
	catalog, ok := DictEntry(r, trailer, "Root")
	if !ok {
		return nil
	}
	var pages []Dict
	seen := make(map[Reference]bool)
	walkPageTree(r, Entry(r, catalog, "Pages"), nil, seen, 0, &pages)
	return pages
}

// maxTreeDepth bounds page-tree recursion; real trees are a handful of
// levels deep and anything beyond this is a malformed or cyclic tree.
const maxTreeDepth = 64

func walkPageTree(r Resolver, node Object, inherited Dict, seen map[Reference]bool, depth int, pages *[]Dict) {
	if depth > maxTreeDepth {
		return
	}
	if ref, ok := node.(Reference); ok {
		if seen[ref] {
			return
		}
		seen[ref] = true
	}
	dict, ok := r.Resolve(node).(Dict)
	if !ok {
		return
	}
	typ, _ := NameEntry(r, dict, "Type")
	switch typ {
	case "Pages":
		next := mergeInheritable(inherited, dict)
		kids, _ := ArrayEntry(r, dict, "Kids")
		for _, kid := range kids {
			walkPageTree(r, kid, next, seen, depth+1, pages)
		}
	case "Page":
		*pages = append(*pages, applyInheritable(inherited, dict))
	default:
		// Some producers omit the node type; treat anything holding
		// content as a page.
		if _, ok := dict["Contents"]; ok {
			*pages = append(*pages, applyInheritable(inherited, dict))
		}
	}
}

func mergeInheritable(inherited, node Dict) Dict {
	carries := false
	for _, key := range inheritable {
		if _, ok := node[key]; ok {
			carries = true
			break
		}
	}
	if !carries {
		return inherited
	}
	next := Dict{}
	for k, v := range inherited {
		next[k] = v
	}
	for _, key := range inheritable {
		if v, ok := node[key]; ok {
			next[key] = v
		}
	}
	return next
}

func applyInheritable(inherited, page Dict) Dict {
	merged := Dict{}
	for k, v := range page {
		merged[k] = v
	}
	for _, key := range inheritable {
		if _, ok := merged[key]; ok {
			continue
		}
		if v, ok := inherited[key]; ok {
			merged[key] = v
		}
	}
	return merged
}
