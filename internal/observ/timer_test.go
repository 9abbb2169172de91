package observ

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimerPhases(t *testing.T) {
	tm := NewTimer()
	done := tm.Track("parse")
	done("3 items")
	idx := tm.Begin("sema")
	tm.End(idx, "")
	tm.End(99, "ignored")

	phases := tm.Phases()
	if len(phases) != 2 || phases[0].Name != "parse" || phases[0].Note != "3 items" {
		t.Fatalf("unexpected phases %+v", phases)
	}
	sum := tm.Summary()
	for _, want := range []string{"timings:", "parse", "// 3 items", "total"} {
		if !strings.Contains(sum, want) {
			t.Fatalf("summary lacks %q:\n%s", want, sum)
		}
	}
}

func TestTimerMergeConcurrent(t *testing.T) {
	total := NewTimer()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := NewTimer()
			local.Add("lex", time.Millisecond)
			local.Add("parse", 2*time.Millisecond)
			total.Merge(local)
		}()
	}
	wg.Wait()

	report := total.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("want 2 merged phases, got %+v", report.Phases)
	}
	if report.Phases[0].Count != 8 || report.Phases[1].Count != 8 {
		t.Fatalf("counts %+v", report.Phases)
	}
	if report.TotalMS < 24 {
		t.Fatalf("total %.3f ms", report.TotalMS)
	}
}
