package format

import (
	"bytes"

	"rill/internal/source"
)

// Writer accumulates formatted output and provides helpers for copying source
// fragments and emitting canonical whitespace.
type Writer struct {
	sf          *source.File
	opt         Options
	buf         []byte
	indentLevel int
	atLineStart bool
}

// NewWriter creates a new formatting writer.
func NewWriter(sf *source.File, opt Options) *Writer {
	return &Writer{
		sf:  sf,
		opt: opt.withDefaults(),
		buf: make([]byte, 0, len(sf.Content)),
	}
}

// Bytes returns the accumulated formatted output.
func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) writeIndent() {
	if !w.atLineStart {
		return
	}
	if w.opt.UseTabs {
		for range w.indentLevel {
			w.buf = append(w.buf, '\t')
		}
	} else {
		for range w.indentLevel * w.opt.IndentWidth {
			w.buf = append(w.buf, ' ')
		}
	}
	w.atLineStart = false
}

// WriteString writes s, indenting first when at the start of a line.
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	w.writeIndent()
	w.buf = append(w.buf, s...)
	w.atLineStart = s[len(s)-1] == '\n'
}

// Newline writes a newline if the output doesn't already end with one.
func (w *Writer) Newline() {
	if len(w.buf) > 0 && w.buf[len(w.buf)-1] != '\n' {
		w.buf = append(w.buf, '\n')
	}
	w.atLineStart = true
}

func (w *Writer) IndentPush() { w.indentLevel++ }

func (w *Writer) IndentPop() {
	if w.indentLevel > 0 {
		w.indentLevel--
	}
}

// CopyRange copies source bytes [start, end) verbatim.
func (w *Writer) CopyRange(start, end int) {
	start = clampToContent(start, len(w.sf.Content))
	end = clampToContent(end, len(w.sf.Content))
	if start >= end {
		return
	}
	chunk := w.sf.Content[start:end]
	w.buf = append(w.buf, chunk...)
	w.atLineStart = chunk[len(chunk)-1] == '\n'
}

// CopySpan copies a span of this writer's file verbatim.
func (w *Writer) CopySpan(sp source.Span) {
	if sp.File != w.sf.ID {
		return
	}
	w.CopyRange(int(sp.Start), int(sp.End))
}

// TrimTrailingSpace drops spaces and tabs before every newline and at the end.
func TrimTrailingSpace(b []byte) []byte {
	lines := bytes.Split(b, []byte{'\n'})
	for i, line := range lines {
		lines[i] = bytes.TrimRight(line, " \t")
	}
	return bytes.Join(lines, []byte{'\n'})
}

// collapseBlankLines keeps at most one empty line between non-empty ones.
func collapseBlankLines(b []byte) []byte {
	out := make([]byte, 0, len(b))
	newlines := 0
	for _, c := range b {
		if c == '\n' {
			newlines++
			if newlines > 2 {
				continue
			}
		} else if c != ' ' && c != '\t' {
			newlines = 0
		}
		out = append(out, c)
	}
	return out
}

func clampToContent(pos, length int) int {
	if pos < 0 {
		return 0
	}
	if pos > length {
		return length
	}
	return pos
}
