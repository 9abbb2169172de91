package driver

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"rill/internal/diag"
	"rill/internal/source"
)

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

func (s *recordingSink) count(status Status) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, e := range s.events {
		if e.Status == status {
			n++
		}
	}
	return n
}

func writeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"a.rl":        goodSource,
		"b.rl":        "fn f() -> i32 { ret x; }\n",
		"nested/c.rl": "fn g() -> i32 { }\n",
		"notes.txt":   "not a source file",
	}
	for name, body := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestListSources(t *testing.T) {
	dir := writeProject(t)
	files, err := ListSources(dir)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a.rl"),
		filepath.Join(dir, "b.rl"),
		filepath.Join(dir, "nested", "c.rl"),
	}
	if len(files) != len(want) {
		t.Fatalf("files = %v", files)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Fatalf("files[%d] = %s, want %s", i, files[i], want[i])
		}
	}
}

func TestDiagnoseDir(t *testing.T) {
	dir := writeProject(t)
	sink := &recordingSink{}
	fs, results, err := DiagnoseDir(context.Background(), dir, DirOptions{Jobs: 2, Sink: sink})
	if err != nil {
		t.Fatalf("diagnose: %v", err)
	}
	if fs.Len() != 3 || len(results) != 3 {
		t.Fatalf("files = %d, results = %d", fs.Len(), len(results))
	}

	wantCodes := [][]string{nil, {"SEM3005"}, {"SEM3013"}}
	for i, res := range results {
		got := codes(res.Bag)
		if len(got) != len(wantCodes[i]) {
			t.Fatalf("%s: codes = %v, want %v", res.Path, got, wantCodes[i])
		}
		for j := range got {
			if got[j] != wantCodes[i][j] {
				t.Fatalf("%s: codes = %v, want %v", res.Path, got, wantCodes[i])
			}
		}
		for _, d := range res.Bag.Items() {
			if d.Primary.File != res.FileID {
				t.Fatalf("%s: diagnostic points at file %d, want %d", res.Path, d.Primary.File, res.FileID)
			}
		}
	}
	if len(results[0].IR) == 0 {
		t.Fatalf("expected lowered IR for a.rl")
	}

	if n := sink.count(StatusQueued); n != 3 {
		t.Fatalf("queued events = %d", n)
	}
	if n := sink.count(StatusWorking); n != 3 {
		t.Fatalf("working events = %d", n)
	}
	// c.rl только предупреждает
	if done, failed := sink.count(StatusDone), sink.count(StatusError); done != 2 || failed != 1 {
		t.Fatalf("done = %d, error = %d", done, failed)
	}
}

func TestDiagnoseDirEmpty(t *testing.T) {
	fs, results, err := DiagnoseDir(context.Background(), t.TempDir(), DirOptions{})
	if err != nil {
		t.Fatalf("diagnose: %v", err)
	}
	if fs == nil || len(results) != 0 {
		t.Fatalf("expected empty run, got %d results", len(results))
	}
}

func TestParseDirStopsAfterParse(t *testing.T) {
	dir := writeProject(t)
	_, results, err := ParseDir(context.Background(), dir, DirOptions{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	for _, res := range results {
		if res.Builder == nil {
			t.Fatalf("%s: no AST", res.Path)
		}
		if res.Bag.Len() != 0 || len(res.IR) != 0 {
			t.Fatalf("%s: ran past parse", res.Path)
		}
	}
}

func TestDiagnoseDirCache(t *testing.T) {
	dir := writeProject(t)
	cache, err := NewDiskCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("cache: %v", err)
	}
	opts := DirOptions{Cache: cache}

	_, first, err := DiagnoseDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	sink := &recordingSink{}
	opts.Sink = sink
	_, second, err := DiagnoseDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if n := sink.count(StatusCached); n != 3 {
		t.Fatalf("cached events = %d, want 3", n)
	}
	for i := range first {
		if first[i].Cached || !second[i].Cached {
			t.Fatalf("%s: cached flags %v/%v", first[i].Path, first[i].Cached, second[i].Cached)
		}
		a, b := first[i].Bag.Items(), second[i].Bag.Items()
		if len(a) != len(b) {
			t.Fatalf("%s: %d vs %d diagnostics", first[i].Path, len(a), len(b))
		}
		for j := range a {
			if a[j].Code != b[j].Code || a[j].Message != b[j].Message || a[j].Primary != b[j].Primary {
				t.Fatalf("%s: diagnostic %d differs: %+v vs %+v", first[i].Path, j, a[j], b[j])
			}
		}
	}

	// другой набор флагов, другой ключ
	opts.WarningsAsErrors = true
	sink.events = nil
	_, third, err := DiagnoseDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatalf("third run: %v", err)
	}
	if sink.count(StatusCached) != 0 {
		t.Fatalf("flag change must miss the cache")
	}
	if !third[2].Bag.HasErrors() {
		t.Fatalf("warning not promoted")
	}
}

func TestDiskCacheRemapsFileIDs(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatalf("cache: %v", err)
	}
	file := &source.File{ID: 7, Path: "x.rl"}
	file.Hash[0] = 1
	d := diag.NewError(diag.SemaDuplicateSymbol, source.Span{File: 2, Start: 3, End: 4}, "dup").
		WithNote(source.Span{File: 2, Start: 0, End: 1}, "previous")
	key := KeyFor(file, Options{})
	if err := cache.Put(key, &DiskPayload{Path: file.Path, Hash: file.Hash, Diagnostics: []diag.Diagnostic{d}}); err != nil {
		t.Fatalf("put: %v", err)
	}

	res, ok := DirOptions{Cache: cache}.cached(file)
	if !ok {
		t.Fatalf("expected cache hit")
	}
	got := res.Bag.Items()[0]
	if got.Primary.File != 7 || got.Notes[0].Span.File != 7 {
		t.Fatalf("spans not remapped: %+v", got)
	}
	if got.Primary.Start != 3 || got.Notes[0].Msg != "previous" {
		t.Fatalf("payload mangled: %+v", got)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if _, ok := (DirOptions{Cache: cache}).cached(file); ok {
		t.Fatalf("hit after DropAll")
	}
}

func TestDiskCacheMissingEntry(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatalf("cache: %v", err)
	}
	var p DiskPayload
	ok, err := cache.Get(Digest{1}, &p)
	if ok || err != nil {
		t.Fatalf("Get on empty cache = %v, %v", ok, err)
	}
}
