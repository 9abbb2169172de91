package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

// languageSeeds cover every construct plus the recovery paths of the parser.
var languageSeeds = []string{
	"",
	"fn main() {}",
	"fn add(a: i32, b: i32) -> i32 { ret a + b * (2 - a) % 3; }",
	"fn ext(p: Point) -> Point;",
	"fn f() -> i32 { ret g(1, h(), 2); }",
	"fn f(a: i32",
	"fn f(a: i32, a: i32) { }",
	"fn f() -> i32 { ret 1 }\nfn g() {}",
	"fn f() -> i32 { ret (1 + 2; }",
	"ret ret fn fn ( ) -> ;",
	"// comment only\n",
	"fn f() { ret 99999999999999999999; }",
	"fn f() { ret 12ab; }",
}

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.rl файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".rl" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
