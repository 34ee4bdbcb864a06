package preflight

import "fmt"

// Kind classifies analysis failures.
type Kind string

const (
	// KindParse means the container bytes are not a valid document.
	// Fatal; no report is produced.
	KindParse Kind = "parse"

	// KindEncrypted means a security handler blocks structural access.
	// Fatal; no report is produced.
	KindEncrypted Kind = "encrypted"

	// KindContent means the content phase failed. Non-fatal: the run
	// degrades to a structural-only report plus one warning finding.
	KindContent Kind = "content"

	// KindInternal covers unexpected faults outside the content phase.
	KindInternal Kind = "internal"
)

// Error is a classified analysis failure. errors.Is matches on Kind
// through the exported sentinels below.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind) + " error"
	}
	if e.Cause != nil {
		return fmt.Sprintf("preflight: %s: %v", msg, e.Cause)
	}
	return "preflight: " + msg
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches any *Error of the same kind, so
// errors.Is(err, preflight.ErrEncrypted) works regardless of cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Kind sentinels for errors.Is.
var (
	ErrParse     = &Error{Kind: KindParse, Message: "document could not be parsed"}
	ErrEncrypted = &Error{Kind: KindEncrypted, Message: "document encryption prevents analysis"}
	ErrContent   = &Error{Kind: KindContent, Message: "content analysis unavailable"}
)

// ParseError wraps a container failure.
func ParseError(cause error) *Error {
	return &Error{Kind: KindParse, Message: "document could not be parsed", Cause: cause}
}

// EncryptedError wraps an unreadable-encryption failure.
func EncryptedError(cause error) *Error {
	return &Error{Kind: KindEncrypted, Message: "document encryption prevents analysis", Cause: cause}
}

// ContentError wraps a content-phase failure.
func ContentError(cause error) *Error {
	return &Error{Kind: KindContent, Message: "content analysis unavailable", Cause: cause}
}
