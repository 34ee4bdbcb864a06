package pdf

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a document format revision such as 1.4 or 2.0.
type Version struct {
	Major int
	Minor int
}

func (v Version) String() string { return fmt.Sprintf("%d.%d", v.Major, v.Minor) }

// Before reports whether v predates the given revision.
func (v Version) Before(major, minor int) bool {
	if v.Major != major {
		return v.Major < major
	}
	return v.Minor < minor
}

// ParseVersion reads a "major.minor" revision string, tolerating a leading
// "%PDF-" header prefix and surrounding whitespace.
func ParseVersion(s string) (Version, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "%PDF-")
	major, minor, ok := strings.Cut(s, ".")
	if !ok {
		return Version{}, false
	}
	maj, err := strconv.Atoi(major)
	if err != nil || maj < 0 {
		return Version{}, false
	}
	min, err := strconv.Atoi(strings.TrimSpace(minor))
	if err != nil || min < 0 {
		return Version{}, false
	}
	return Version{Major: maj, Minor: min}, true
}
