package plugin

import (
	"fmt"

	"github.com/pkg/errors"
)

// validateThresholds checks the configured thresholds against the results.
// A zero threshold is disabled.
func validateThresholds(results Results, args Args) error {
	switch args.ThresholdMode {
	case ThresholdModeAbsolute:
		if err := validateAbsoluteThresholds(results, args); err != nil {
			return errors.Wrap(err, "absolute threshold validation failed")
		}
	case ThresholdModePercentage:
		if err := validatePercentageThresholds(results, args); err != nil {
			return errors.Wrap(err, "percentage threshold validation failed")
		}
	default:
		return fmt.Errorf("invalid ThresholdMode: %d, expected 1 (absolute) or 2 (percentage)", args.ThresholdMode)
	}
	return nil
}

func validateAbsoluteThresholds(results Results, args Args) error {
	if args.FailedFails > 0 && results.Failures > args.FailedFails {
		return fmt.Errorf("number of failed tests (%d) exceeded the failure threshold (%d)", results.Failures, args.FailedFails)
	}
	if args.FailedErrors > 0 && results.Errors > args.FailedErrors {
		return fmt.Errorf("number of errored tests (%d) exceeded the error threshold (%d)", results.Errors, args.FailedErrors)
	}
	if args.FailedSkips > 0 && results.Skipped > args.FailedSkips {
		return fmt.Errorf("number of skipped tests (%d) exceeded the skip threshold (%d)", results.Skipped, args.FailedSkips)
	}
	return nil
}

func validatePercentageThresholds(results Results, args Args) error {
	if results.Total == 0 {
		return nil
	}

	rate := func(n int) float64 {
		return float64(n) / float64(results.Total) * 100
	}

	if args.FailedFails > 0 && rate(results.Failures) > float64(args.FailedFails) {
		return fmt.Errorf("failure rate (%.2f%%) exceeded the threshold (%.2f%%)", rate(results.Failures), float64(args.FailedFails))
	}
	if args.FailedErrors > 0 && rate(results.Errors) > float64(args.FailedErrors) {
		return fmt.Errorf("error rate (%.2f%%) exceeded the threshold (%.2f%%)", rate(results.Errors), float64(args.FailedErrors))
	}
	if args.FailedSkips > 0 && rate(results.Skipped) > float64(args.FailedSkips) {
		return fmt.Errorf("skip rate (%.2f%%) exceeded the threshold (%.2f%%)", rate(results.Skipped), float64(args.FailedSkips))
	}
	return nil
}
