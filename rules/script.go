package rules

import (
	"context"

	"github.com/dop251/goja"
)

// Script is a custom check written in JavaScript. The script sees a
// read-only `document` object (fileName, pageCount, version, encrypted,
// fonts) and appends findings through
// registerIssue(severity, category, message, page?).
type Script struct {
	name   string
	source string
}

func NewScript(name, source string) *Script {
	return &Script{name: name, source: source}
}

func (s *Script) Name() string { return s.name }

func (s *Script) Apply(ctx context.Context, rc *Context) error {
	vm := goja.New()

	fonts := make([]map[string]interface{}, 0, len(rc.Report.Fonts))
	for _, font := range rc.Report.Fonts {
		fonts = append(fonts, map[string]interface{}{
			"name":     font.Name,
			"subtype":  font.Subtype,
			"embedded": font.Embedded,
		})
	}
	if err := vm.Set("document", map[string]interface{}{
		"fileName":  rc.Report.FileName,
		"pageCount": rc.Report.PageCount,
		"version":   rc.Report.Version,
		"encrypted": rc.Report.Encrypted,
		"fonts":     fonts,
	}); err != nil {
		return err
	}
	if err := vm.Set("registerIssue", func(call goja.FunctionCall) goja.Value {
		severity, category, message := "", "", ""
		page := 0
		if len(call.Arguments) > 0 {
			severity = call.Arguments[0].String()
		}
		if len(call.Arguments) > 1 {
			category = call.Arguments[1].String()
		}
		if len(call.Arguments) > 2 {
			message = call.Arguments[2].String()
		}
		if len(call.Arguments) > 3 {
			page = int(call.Arguments[3].ToInteger())
		}
		rc.RegisterIssue(severity, category, message, page)
		return goja.Undefined()
	}); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	done := make(chan struct{})
	defer close(done)
	defer vm.ClearInterrupt()
	go func() {
		select {
		case <-ctx.Done():
			vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()

	_, err := vm.RunString(s.source)
	if err != nil {
		if interrupted, ok := err.(*goja.InterruptedError); ok {
			if cause := interrupted.Unwrap(); cause != nil {
				return cause
			}
			return context.Canceled
		}
		return err
	}
	return nil
}
