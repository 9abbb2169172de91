package parser

import "testing"

func TestErrorsOfferInsertFixes(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		insert string
		at     uint32
	}{
		{"missing semicolon", "fn f() -> i32 { ret 1 }", ";", 21},
		{"unclosed group", "fn f() -> i32 { ret (1 + 2; }", ")", 26},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := parseFull(t, tt.src)
			if len(p.result.Errors) != 1 {
				t.Fatalf("errors = %d, want 1\n%s", len(p.result.Errors), diagnosticsSummary(p.bag))
			}
			fixes := p.result.Errors[0].Fixes
			if len(fixes) != 1 || len(fixes[0].Edits) != 1 {
				t.Fatalf("fixes = %+v", fixes)
			}
			edit := fixes[0].Edits[0]
			if edit.NewText != tt.insert || edit.Span.Start != tt.at || edit.Span.End != tt.at {
				t.Fatalf("edit = %+v, want insert %q at %d", edit, tt.insert, tt.at)
			}
			if fixes[0].Title != "insert '"+tt.insert+"'" {
				t.Fatalf("title = %q", fixes[0].Title)
			}

			items := p.bag.Items()
			if len(items) != 1 || len(items[0].Fixes) != 1 {
				t.Fatalf("fix not forwarded to the reporter: %+v", items)
			}
		})
	}
}

func TestErrorsWithoutFixes(t *testing.T) {
	p := parseFull(t, "fn f(a: i32 b: i32) {}")
	if len(p.result.Errors) != 1 || len(p.result.Errors[0].Fixes) != 0 {
		t.Fatalf("unexpected fixes: %+v", p.result.Errors)
	}
}
