package plugin

// JUnit element and attribute names the plugin reads or rewrites.
const (
	tagTestCase = "testcase"
	tagFailure  = "failure"
	tagError    = "error"
	tagSkipped  = "skipped"

	attrClassname = "classname"
	attrName      = "name"
)

// Threshold modes.
const (
	ThresholdModeAbsolute   = 1
	ThresholdModePercentage = 2
)

// Results holds the aggregate counts of a JUnit report.
type Results struct {
	Total    int
	Failures int
	Errors   int
	Skipped  int
}
