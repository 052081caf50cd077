package renderer

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ncampa/cartera"
)

// ConditionalBlock lets you fully write a block and decide at the end to
// print it or not. If the block function returns true, the content is
// printed to w, otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}

// pctCell formats a nullable percentage for a table cell. A nil value
// renders as n/a: no percentage exists, which is not the same as 0%.
func pctCell(p *cartera.Percent) string {
	if p == nil {
		return "n/a"
	}
	return p.SignedString()
}

// floatCell formats a nullable statistic for a table cell.
func floatCell(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", *v*100)
}

// dualCells formats the two sides of a dual amount as adjacent cells.
func dualCells(d cartera.Dual) string {
	return fmt.Sprintf("%s | %s", d.Local, d.Counter)
}

// signedDualCells is dualCells with explicit signs, for delta columns.
func signedDualCells(d cartera.Dual) string {
	return fmt.Sprintf("%s | %s", d.Local.SignedString(), d.Counter.SignedString())
}
