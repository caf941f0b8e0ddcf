package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lumen/internal/driver"
)

// rootFlags are the resolved persistent flags shared by all subcommands.
type rootFlags struct {
	colorMode string
	quiet     bool
	jobs      int
	maxErrors uint
	verbosity driver.Verbosity
}

func readRootFlags(cmd *cobra.Command) (rootFlags, error) {
	flags := cmd.Root().PersistentFlags()

	colorMode, err := flags.GetString("color")
	if err != nil {
		return rootFlags{}, err
	}
	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return rootFlags{}, err
	}
	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return rootFlags{}, err
	}
	maxErrors, err := flags.GetUint("max-errors")
	if err != nil {
		return rootFlags{}, err
	}
	if maxErrors == 0 {
		return rootFlags{}, fmt.Errorf("--max-errors must be greater than 0")
	}
	verbosityValue, err := flags.GetString("verbosity")
	if err != nil {
		return rootFlags{}, err
	}
	verbosity, err := parseVerbosity(verbosityValue)
	if err != nil {
		return rootFlags{}, err
	}

	return rootFlags{
		colorMode: colorMode,
		quiet:     quiet,
		jobs:      jobs,
		maxErrors: maxErrors,
		verbosity: verbosity,
	}, nil
}

func parseVerbosity(s string) (driver.Verbosity, error) {
	switch s {
	case "off", "":
		return driver.VerbosityNone, nil
	case "trace":
		return driver.VerbosityTrace, nil
	case "debug":
		return driver.VerbosityDebug, nil
	default:
		return driver.VerbosityNone, fmt.Errorf("invalid verbosity: %q (expected: off|trace|debug)", s)
	}
}

// resolveThreads maps the --jobs flag to a pool size. Zero keeps the driver
// single-threaded; a negative value asks for the suggested pool size.
func resolveThreads(jobs int) uint {
	switch {
	case jobs < 0:
		return driver.OptimalNumThreads()
	case jobs == 0:
		return 0
	default:
		return uint(jobs)
	}
}
