package format

import (
	"bytes"
	"errors"
	"slices"

	"rill/internal/ast"
	"rill/internal/diag"
	"rill/internal/parser"
	"rill/internal/source"
	"rill/internal/symbols"
)

type Options struct {
	IndentWidth int
	UseTabs     bool
}

func (o Options) withDefaults() Options {
	if o.IndentWidth <= 0 {
		o.IndentWidth = 4
	}
	return o
}

var (
	ErrNilFile    = errors.New("format: nil source file")
	ErrNilBuilder = errors.New("format: nil builder")
	ErrNoAST      = errors.New("format: missing ast file")
)

type printer struct {
	builder *ast.Builder
	file    *ast.File
	writer  *Writer
	opt     Options
}

// FormatFile renders fid in canonical layout. The AST must come from sf and be
// free of syntax errors: dropped declarations would otherwise vanish or be
// copied as stray text.
func FormatFile(sf *source.File, b *ast.Builder, fid ast.FileID, opt Options) ([]byte, error) {
	if sf == nil {
		return nil, ErrNilFile
	}
	if b == nil {
		return nil, ErrNilBuilder
	}
	if !fid.IsValid() {
		return nil, ErrNoAST
	}
	file := b.Files.Get(fid)
	if file == nil {
		return nil, ErrNoAST
	}

	opt = opt.withDefaults()
	pr := printer{
		builder: b,
		file:    file,
		writer:  NewWriter(sf, opt),
		opt:     opt,
	}
	pr.printFile()
	return finish(pr.writer.Bytes()), nil
}

func (p *printer) printFile() {
	content := p.writer.sf.Content
	prev := 0
	for i, itemID := range p.file.Items {
		item := p.builder.Items.Get(itemID)
		if item == nil {
			continue
		}
		start := clampToContent(int(item.Span.Start), len(content))
		end := max(clampToContent(int(item.Span.End), len(content)), start)
		p.printGap(prev, start, i == 0)
		if bytes.Contains(content[start:end], []byte("//")) {
			// комментарий внутри объявления: оставляем как есть
			p.writer.CopyRange(start, end)
		} else {
			p.printItem(itemID, item)
		}
		prev = end
	}
	if tail := content[prev:]; hasComment(tail) {
		p.writer.CopyRange(prev, len(content))
	}
}

// printGap emits the text between two declarations. Whitespace collapses to a
// single blank line; anything with a comment is kept verbatim.
func (p *printer) printGap(start, end int, first bool) {
	gap := p.writer.sf.Content[start:end]
	if first {
		gap = bytes.TrimLeft(gap, " \t\n")
	}
	if hasComment(gap) {
		p.writer.WriteString(string(collapseBlankLines(gap)))
		return
	}
	if first {
		return
	}
	p.writer.Newline()
	p.writer.WriteString("\n")
}

func (p *printer) printItem(id ast.ItemID, item *ast.Item) {
	switch item.Kind {
	case ast.ItemFn:
		if fn, ok := p.builder.Items.Fn(id); ok && fn != nil {
			p.printFnItem(fn)
			return
		}
	}
	// fallback copy
	p.writer.CopySpan(item.Span)
}

func hasComment(b []byte) bool {
	return bytes.Contains(b, []byte("//"))
}

// finish trims trailing blanks and ends non-empty output with exactly one newline.
func finish(out []byte) []byte {
	out = bytes.TrimRight(TrimTrailingSpace(out), "\n")
	if len(out) == 0 {
		return out
	}
	return append(out, '\n')
}

// CheckRoundTrip formats sf, re-parses the result and checks that the
// declarations survived in order and that formatting is a fixpoint.
func CheckRoundTrip(sf *source.File, opt Options) (ok bool, msg string) {
	origBuilder, origFileID, failed := parseOnce(sf)
	if failed {
		return false, "fmt-check: initial parse has errors"
	}

	formatted, err := FormatFile(sf, origBuilder, origFileID, opt)
	if err != nil {
		return false, "fmt-check: formatter failed: " + err.Error()
	}

	fs2 := source.NewFileSetWithBase("")
	rebuilt := fs2.Get(fs2.AddVirtual(sf.Path, formatted))
	newBuilder, newFileID, failed := parseOnce(rebuilt)
	if failed {
		return false, "fmt-check: reparse failed"
	}

	if !slices.Equal(topNames(origBuilder, origFileID), topNames(newBuilder, newFileID)) {
		return false, "fmt-check: declarations differ after round-trip"
	}

	again, err := FormatFile(rebuilt, newBuilder, newFileID, opt)
	if err != nil || !bytes.Equal(again, formatted) {
		return false, "fmt-check: formatting is not idempotent"
	}
	return true, "fmt-check: OK"
}

func parseOnce(sf *source.File) (*ast.Builder, ast.FileID, bool) {
	bag := diag.NewBag(16)
	builder := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(sf, symbols.NewContext(), builder, parser.Options{
		Reporter: &diag.BagReporter{Bag: bag},
	})
	return builder, res.File, bag.HasErrors() || len(res.Errors) > 0
}

func topNames(b *ast.Builder, fid ast.FileID) []string {
	file := b.Files.Get(fid)
	if file == nil {
		return nil
	}
	names := make([]string, 0, len(file.Items))
	for _, id := range file.Items {
		names = append(names, b.Name(b.Items.Name(id)))
	}
	return names
}
