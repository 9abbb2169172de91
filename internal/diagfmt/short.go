package diagfmt

import (
	"fmt"
	"io"

	"rill/internal/diag"
	"rill/internal/source"
)

// FormatShort writes one line per diagnostic: path:line:col: severity CODE: message.
func FormatShort(w io.Writer, bag *diag.Bag, fs *source.FileSet, mode PathMode) error {
	for _, d := range bag.Items() {
		if _, err := fmt.Fprintf(w, "%s: %s %s: %s\n",
			location(d.Primary, fs, mode), d.Severity.Label(), d.Code.ID(), d.Message); err != nil {
			return err
		}
	}
	return nil
}
