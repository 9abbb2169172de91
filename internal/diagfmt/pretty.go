package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"rill/internal/diag"
	"rill/internal/source"
)

type palette struct {
	err, warn, info, note, caret, gutter, bold *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		note:   mk(color.FgBlue),
		caret:  mk(color.FgGreen, color.Bold),
		gutter: mk(color.FgBlue),
		bold:   mk(color.Bold),
	}
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждого diag печатает
//
//	<path>:<line>:<col>: <sev> <CODE>: <message>
//
// затем строку исходника с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
// Ожидается bag.Sort() заранее.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		fmt.Fprintf(w, "%s: %s %s\n",
			pal.bold.Sprint(location(d.Primary, fs, opts.PathMode)),
			pal.severity(d.Severity).Sprintf("%s %s:", d.Severity.Label(), d.Code.ID()),
			d.Message)
		writeSnippet(w, fs, d.Primary, pal)

		if opts.ShowNotes {
			for _, n := range d.Notes {
				fmt.Fprintf(w, "  %s %s: %s\n", pal.note.Sprint("note:"), location(n.Span, fs, opts.PathMode), n.Msg)
			}
		}
		if opts.ShowFixes {
			for _, fix := range d.Fixes {
				fmt.Fprintf(w, "  %s %s\n", pal.note.Sprint("fix:"), fix.Title)
				for _, edit := range fix.Edits {
					fmt.Fprintf(w, "    %s: replace with %q\n", location(edit.Span, fs, opts.PathMode), edit.NewText)
				}
			}
		}
	}
}

// writeSnippet prints the first line of span with a caret underline.
func writeSnippet(w io.Writer, fs *source.FileSet, span source.Span, pal palette) {
	if fs == nil || int(span.File) >= fs.Len() {
		return
	}
	f := fs.Get(span.File)
	start, end := fs.Resolve(span)
	line := f.GetLine(start.Line)

	lineNo := fmt.Sprintf("%d", start.Line)
	pad := strings.Repeat(" ", len(lineNo))
	fmt.Fprintf(w, " %s %s %s\n", pal.gutter.Sprint(lineNo), pal.gutter.Sprint("|"), line)

	startCol := int(start.Col) - 1
	startCol = min(max(startCol, 0), len(line))
	endCol := len(line)
	if end.Line == start.Line {
		endCol = min(max(int(end.Col)-1, startCol), len(line))
	}

	prefix := visualPrefix(line[:startCol])
	width := runewidth.StringWidth(line[startCol:endCol])
	underline := "^"
	if width > 1 {
		underline += strings.Repeat("~", width-1)
	}
	fmt.Fprintf(w, " %s %s %s%s\n", pad, pal.gutter.Sprint("|"), prefix, pal.caret.Sprint(underline))
}

// visualPrefix keeps tabs and replaces everything else by spaces of the same display width.
func visualPrefix(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}
