package plugin

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestCollectStats(t *testing.T) {
	tests := []struct {
		name     string
		filePath string
		expected Results
	}{
		{
			name:     "Sample",
			filePath: "../testdata/sample.xml",
			expected: Results{Total: 4, Failures: 1, Errors: 1, Skipped: 0},
		},
		{
			name:     "NestedSuites",
			filePath: "../testdata/nested.xml",
			expected: Results{Total: 6, Failures: 1, Errors: 0, Skipped: 2},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := LoadReport(tc.filePath)
			require.NoError(t, err)

			if diff := cmp.Diff(tc.expected, CollectStats(doc.Root())); diff != "" {
				t.Errorf("CollectStats() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCollectStatsCountsDirectChildrenOnly(t *testing.T) {
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(`
		<testsuite>
			<testcase name="a">
				<failure/>
				<failure/>
				<system-out><failure/></system-out>
			</testcase>
			<testcase name="b"><error/><skipped/></testcase>
			<failure/>
		</testsuite>`))

	expected := Results{Total: 2, Failures: 2, Errors: 1, Skipped: 1}
	if diff := cmp.Diff(expected, CollectStats(doc.Root())); diff != "" {
		t.Errorf("CollectStats() mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectStatsLargeReport(t *testing.T) {
	const numTestCases = 10000

	var b strings.Builder
	b.WriteString("<testsuites><testsuite name=\"LargeSuite\">")
	for i := 0; i < numTestCases; i++ {
		if i%10 == 0 {
			fmt.Fprintf(&b, `<testcase classname="Large" name="test-%d"><skipped/></testcase>`, i)
			continue
		}
		fmt.Fprintf(&b, `<testcase classname="Large" name="test-%d"/>`, i)
	}
	b.WriteString("</testsuite></testsuites>")

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(b.String()))

	expected := Results{Total: numTestCases, Skipped: numTestCases / 10}
	if diff := cmp.Diff(expected, CollectStats(doc.Root())); diff != "" {
		t.Errorf("CollectStats() mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteStatsGolden(t *testing.T) {
	tests := []struct {
		name    string
		results Results
		golden  string
	}{
		{
			name:    "Sample",
			results: Results{Total: 4, Failures: 1, Errors: 1},
			golden:  "sample.golden",
		},
		{
			name:    "Nested",
			results: Results{Total: 6, Failures: 1, Skipped: 2},
			golden:  "nested.golden",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			want, err := os.ReadFile(filepath.Join("..", "testdata", tc.golden))
			require.NoError(t, err)

			var buf bytes.Buffer
			if err := WriteStats(&buf, tc.results); err != nil {
				t.Fatalf("WriteStats() unexpected error: %v", err)
			}
			if diff := cmp.Diff(string(want), buf.String()); diff != "" {
				t.Errorf("WriteStats() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWriteStatsLineWidths(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteStats(&buf, Results{Total: 123456, Failures: 7}))

	for _, line := range strings.Split(buf.String(), "\n") {
		if line != "" && len(line) != statsWidth {
			t.Errorf("line %q has width %d, want %d", line, len(line), statsWidth)
		}
	}
	if !strings.Contains(buf.String(), "Total tests..................."+"    123456\n") {
		t.Errorf("total line not right aligned:\n%s", buf.String())
	}
}

func TestCenter(t *testing.T) {
	tests := []struct {
		s     string
		width int
		want  string
	}{
		{"Test Statistics", 40, "============Test Statistics============="},
		{"ab", 5, "==ab="},
		{"abc", 6, "=abc=="},
		{"a", 4, "=a=="},
		{"abc", 5, "=abc="},
		{"too long", 3, "too long"},
	}

	for _, tc := range tests {
		if got := center(tc.s, tc.width, "="); got != tc.want {
			t.Errorf("center(%q, %d) = %q, want %q", tc.s, tc.width, got, tc.want)
		}
	}
}
