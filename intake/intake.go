// Package intake validates incoming files before they reach the analysis
// engine. It is a thin guard, not part of the engine itself.
package intake

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultMaxSize caps accepted files at 256 MB.
const DefaultMaxSize = 256 * 1024 * 1024

// headerWindow is how far into the file the %PDF- marker may sit. Some
// producers prepend junk bytes; viewers tolerate up to 1KB of it.
const headerWindow = 1024

// Error reports why a file was rejected at intake.
type Error struct {
	Reason string
}

func (e *Error) Error() string { return "intake: " + e.Reason }

// Sniff checks that data looks like a PDF the engine should even attempt:
// the magic bytes are present, the size is within bound, and the declared
// file name does not contradict the content. maxSize <= 0 applies
// DefaultMaxSize.
func Sniff(data []byte, name string, maxSize int64) error {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if int64(len(data)) > maxSize {
		return &Error{Reason: fmt.Sprintf("file is %d bytes, limit is %d", len(data), maxSize)}
	}
	if len(data) == 0 {
		return &Error{Reason: "file is empty"}
	}

	window := data
	if len(window) > headerWindow {
		window = window[:headerWindow]
	}
	if !bytes.Contains(window, []byte("%PDF-")) {
		return &Error{Reason: "no %PDF- marker found"}
	}

	if ext := strings.ToLower(filepath.Ext(name)); ext != "" && ext != ".pdf" {
		return &Error{Reason: fmt.Sprintf("file name %q declares %s but the content is PDF", name, ext)}
	}
	return nil
}
