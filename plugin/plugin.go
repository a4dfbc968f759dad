package plugin

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	optionHelp = "-h"
	optionJoin = "-j"
)

// ErrInvalidArgs is returned for command lines the plugin cannot act on.
var ErrInvalidArgs = errors.New("invalid arguments")

const usage = `
    usage:
        drone-junit [options] <xml_file>

    options:
        -h      Shows this help message and exits.
        -j      Updates each test case in the xml file as follows:
                If a testcase element has both a classname and a name attribute,
                the name attribute is replaced by the classname value and the
                name value joined with a . (dot) character.
                NOTE: Once -j has been applied to a file, applying it again has
                no further effect on that file.

    Without -j the statistics of the report are printed and the file is left
    untouched.

    example:
        drone-junit -j tests.xml   # joins classname and name attributes in tests.xml
        drone-junit tests.xml      # prints total, failed, skipped and errored test counts
`

// Args represents the plugin's configurable arguments.
type Args struct {
	FailedFails   int    `envconfig:"PLUGIN_FAILED_FAILS"`
	FailedErrors  int    `envconfig:"PLUGIN_FAILED_ERRORS"`
	FailedSkips   int    `envconfig:"PLUGIN_FAILED_SKIPS"`
	ThresholdMode int    `envconfig:"PLUGIN_THRESHOLD_MODE" default:"1"`
	Level         string `envconfig:"PLUGIN_LOG_LEVEL" default:"warn"`

	// Set from the command line.
	ReportFile string `ignored:"true"`
	JoinNames  bool   `ignored:"true"`
}

// ValidateInputs ensures the user inputs meet the plugin requirements.
func ValidateInputs(args Args) error {
	if args.ReportFile == "" {
		return errors.Wrap(ErrInvalidArgs, "missing required parameter: the JUnit XML report file")
	}
	if args.FailedFails < 0 || args.FailedErrors < 0 || args.FailedSkips < 0 {
		return errors.New("threshold values must be non-negative. Check the configured values for failed, errored and skipped tests")
	}
	if args.ThresholdMode != ThresholdModeAbsolute && args.ThresholdMode != ThresholdModePercentage {
		return errors.New("invalid ThresholdMode value. It must be 1 (absolute) or 2 (percentage). Check the configuration")
	}
	return nil
}

// Run parses the command line, executes the selected mode and returns the
// process exit code.
func Run(ctx context.Context, argv []string, args Args, stdout, stderr io.Writer) int {
	if len(argv) == 0 || contains(argv, optionHelp) {
		fmt.Fprint(stdout, usage)
		return 0
	}

	file, join, err := parseCommandLine(argv)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprint(stderr, usage)
		return 1
	}
	args.ReportFile = file
	args.JoinNames = join

	if err := ValidateInputs(args); err != nil {
		logrus.WithError(err).Debug("Invalid plugin configuration")
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if err := Exec(ctx, args, stdout); err != nil {
		writeError(stderr, err)
		return 1
	}
	return 0
}

// Exec loads the report and either joins test names and saves the file, or
// prints the report statistics.
func Exec(ctx context.Context, args Args, stdout io.Writer) error {
	doc, err := LoadReport(args.ReportFile)
	if err != nil {
		return err
	}

	if args.JoinNames {
		updated := NormalizeReport(doc)
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := SaveReport(doc, args.ReportFile); err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{
			"File":    args.ReportFile,
			"Updated": updated,
		}).Info("Test names updated")
		fmt.Fprintf(stdout, "XML file updated and saved: %s\n", args.ReportFile)
		return nil
	}

	results := CollectStats(doc.Root())
	if err := WriteStats(stdout, results); err != nil {
		return errors.Wrap(err, "failed to write statistics")
	}

	if err := validateThresholds(results, args); err != nil {
		logger := logrus.WithFields(logrus.Fields{
			"Total Tests": results.Total,
			"Failures":    results.Failures,
			"Errors":      results.Errors,
			"Skipped":     results.Skipped,
		})
		logger.Info(err.Error())
		return err
	}
	return nil
}

// parseCommandLine returns the report path, which is always the last
// argument, and whether -j was given.
func parseCommandLine(argv []string) (string, bool, error) {
	file := argv[len(argv)-1]
	if strings.HasPrefix(file, "-") {
		return "", false, errors.Wrap(ErrInvalidArgs, "missing xml_file argument")
	}

	join := false
	for _, arg := range argv[:len(argv)-1] {
		switch {
		case arg == optionJoin:
			join = true
		case strings.HasPrefix(arg, "-"):
			return "", false, errors.Wrapf(ErrInvalidArgs, "unknown option %s", arg)
		default:
			return "", false, errors.Wrapf(ErrInvalidArgs, "unexpected argument %s", arg)
		}
	}
	return file, join, nil
}

func writeError(w io.Writer, err error) {
	var reportErr *ReportError
	if !errors.As(err, &reportErr) {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}

	switch reportErr.Kind {
	case ErrFileNotFound:
		fmt.Fprintf(w, "Error: The file %s doesn't exist. Please check path and file name\n", reportErr.File)
	default:
		fmt.Fprintf(w, "Error: xml file %s could not be parsed\nError: %v\n", reportErr.File, reportErr.Err)
		fmt.Fprintf(w, "Hint: ensure that the file %s is a properly formatted xml file\n", reportErr.File)
	}
}

func contains(argv []string, option string) bool {
	for _, arg := range argv {
		if arg == option {
			return true
		}
	}
	return false
}
