package diagfmt

import (
	"fmt"
	"io"
	"iter"

	"rill/internal/ir"
)

// FormatIR prints instructions, indenting function bodies.
func FormatIR(w io.Writer, seq iter.Seq[ir.Instr]) error {
	first := true
	for in := range seq {
		indent := "  "
		if in.Op == ir.OpFunc {
			indent = ""
			if !first {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
		}
		first = false
		if _, err := fmt.Fprintf(w, "%s%s\n", indent, in); err != nil {
			return err
		}
	}
	return nil
}
