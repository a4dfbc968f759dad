package plugin

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
)

const (
	statsTitle = "Test Statistics"
	statsWidth = 40
	labelWidth = 30
)

// CollectStats counts the testcase elements below root and the failure,
// error and skipped elements directly under them.
func CollectStats(root *etree.Element) Results {
	results := Results{}
	for _, testcase := range testCases(root) {
		results.Total++
		results.Failures += len(testcase.SelectElements(tagFailure))
		results.Errors += len(testcase.SelectElements(tagError))
		results.Skipped += len(testcase.SelectElements(tagSkipped))
	}
	return results
}

// WriteStats renders results as the fixed-width statistics block.
func WriteStats(w io.Writer, results Results) error {
	var b strings.Builder
	b.WriteString("\n" + center(statsTitle, statsWidth, "=") + "\n\n")

	rows := []struct {
		label string
		value int
	}{
		{"Total tests", results.Total},
		{"Failed", results.Failures},
		{"Skipped", results.Skipped},
		{"Errors", results.Errors},
	}
	for _, row := range rows {
		fmt.Fprintf(&b, "%s%*d\n", padRight(row.label, labelWidth, "."), statsWidth-labelWidth, row.value)
	}

	b.WriteString("\n" + strings.Repeat("=", statsWidth) + "\n\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// center pads s with fill on both sides up to width. An odd margin puts the
// extra character on the right unless both margin and width are odd.
func center(s string, width int, fill string) string {
	margin := width - len(s)
	if margin <= 0 {
		return s
	}
	left := margin/2 + (margin & width & 1)
	return strings.Repeat(fill, left) + s + strings.Repeat(fill, margin-left)
}

func padRight(s string, width int, fill string) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(fill, width-len(s))
}
