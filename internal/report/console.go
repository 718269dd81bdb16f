// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/get-papers-list/pkg/types"
)

// WriteConsole writes one labeled block per record.
func WriteConsole(w io.Writer, rs types.ResultSet) error {
	if len(rs) == 0 {
		_, err := fmt.Fprintln(w, "No papers with company-affiliated authors found.")
		return err
	}

	width := 0
	for _, c := range Columns {
		if len(c) > width {
			width = len(c)
		}
	}

	separator := strings.Repeat("-", 80)
	for i, r := range rs {
		if _, err := fmt.Fprintf(w, "Paper %d of %d\n", i+1, len(rs)); err != nil {
			return err
		}
		for j, v := range ToRow(r).Fields() {
			if _, err := fmt.Fprintf(w, "  %-*s  %s\n", width+1, Columns[j]+":", v); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, separator); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\n%d papers\n", len(rs))
	return err
}
