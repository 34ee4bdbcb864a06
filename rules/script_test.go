package rules_test

import (
	"context"
	"testing"
	"time"

	"github.com/pressproof/preflight/report"
	"github.com/pressproof/preflight/rules"
)

func TestScriptRegistersIssue(t *testing.T) {
	script := rules.NewScript("page-limit", `
		if (document.pageCount > 1) {
			registerIssue("warning", "document", "More pages than the press order allows", 0);
		}
	`)

	rc := newContext()
	script.Apply(context.Background(), rc)
	if len(rc.Report.Issues) != 1 {
		t.Fatalf("issues = %v", rc.Report.Issues)
	}
	issue := rc.Report.Issues[0]
	if issue.Severity != report.SeverityWarning || issue.Category != report.CategoryDocument {
		t.Errorf("issue = %+v", issue)
	}
}

func TestScriptSeesFonts(t *testing.T) {
	script := rules.NewScript("font-audit", `
		for (var i = 0; i < document.fonts.length; i++) {
			registerIssue("info", "fonts", "saw " + document.fonts[i].name, 0);
		}
	`)

	rc := newContext()
	if err := script.Apply(context.Background(), rc); err != nil {
		t.Fatal(err)
	}
	if len(rc.Report.Issues) != 1 || rc.Report.Issues[0].Message != "saw Helvetica" {
		t.Errorf("issues = %v", rc.Report.Issues)
	}
}

func TestThrowingScriptDegradesViaRegistry(t *testing.T) {
	var reg rules.Registry
	reg.Register(rules.NewScript("bad", `throw new Error("nope");`))

	rc := newContext()
	reg.Run(context.Background(), rc)
	if len(rc.Report.Issues) != 1 || rc.Report.Issues[0].Severity != report.SeverityWarning {
		t.Errorf("throwing script should become one warning, got %v", rc.Report.Issues)
	}
}

func TestScriptInterruptsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	script := rules.NewScript("spin", `while (true) {}`)
	err := script.Apply(ctx, newContext())
	if err == nil {
		t.Fatal("endless script should be interrupted")
	}
}
