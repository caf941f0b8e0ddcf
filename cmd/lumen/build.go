package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"lumen/internal/diagfmt"
	"lumen/internal/driver"
	"lumen/internal/pipeline"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [file-or-glob...]",
	Short: "Load and tokenize lumen sources",
	Long: `Build runs the driver pipeline over the given files: load them from
disk, then tokenize them. Arguments may be plain paths or doublestar globs
such as 'src/**/*.lum'; with no arguments, '**/*.lum' is used.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	flags, err := readRootFlags(cmd)
	if err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}

	paths, err := expandArgs(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no input files")
	}

	threads := resolveThreads(flags.jobs)
	maxErrors := flags.maxErrors

	// A lumen.toml provides defaults; explicit flags win.
	manifest, manifestFound, err := loadProjectManifest(".")
	if err != nil {
		return err
	}
	if manifestFound {
		if !cmd.Root().PersistentFlags().Changed("jobs") && manifest.Config.Build.Threads > 0 {
			threads = uint(manifest.Config.Build.Threads)
		}
		if !cmd.Root().PersistentFlags().Changed("max-errors") && manifest.Config.Build.MaxErrors > 0 {
			maxErrors = manifest.Config.Build.MaxErrors
		}
	}

	showUI := false
	switch uiValue {
	case "on":
		showUI = true
	case "auto":
		showUI = !flags.quiet && isTerminal(os.Stdout)
	}

	colored := useColor(flags.colorMode, os.Stderr)
	cfg := driver.Config{
		NumThreads:   threads,
		MaxNumErrors: maxErrors,
		Callback:     diagfmt.NewCallback(os.Stderr, colored),
		Verbosity:    flags.verbosity,
	}

	var d *driver.Driver
	runStages := func(sink pipeline.Sink) error {
		cfg.Progress = sink
		d = driver.New(cfg)

		if d.IsMultiThreaded() {
			d.StartWorkers()
			defer d.Close()
		}

		d.LoadFiles(paths...)
		if d.IsMultiThreaded() {
			d.WaitForAllTasks()
		}
		if d.HasHitFailCondition() {
			return fmt.Errorf("stopped after %d errors", d.NumErrors())
		}

		d.TokenizeLoadedFiles()
		if d.IsMultiThreaded() {
			d.WaitForAllTasks()
		}
		if d.HasHitFailCondition() {
			return fmt.Errorf("stopped after %d errors", d.NumErrors())
		}
		return nil
	}

	if showUI {
		err = runStagesWithUI("building", paths, runStages)
	} else {
		err = runStages(nil)
	}
	if err != nil {
		return err
	}

	if d.NumErrors() > 0 {
		return fmt.Errorf("build finished with %d errors", d.NumErrors())
	}

	if !flags.quiet {
		totalTokens := 0
		for _, src := range d.SourceManager().Sources() {
			totalTokens += src.Tokens().Len()
		}
		fmt.Printf("tokenized %d files (%d tokens)\n", d.SourceManager().Len(), totalTokens)
	}
	return nil
}

// expandArgs resolves file arguments, expanding doublestar patterns. Plain
// paths keep their argument order, each pattern's matches are sorted, and
// duplicates are dropped, so single-threaded runs assign deterministic
// source IDs.
func expandArgs(args []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{"**/*.lum"}
	}

	seen := make(map[string]bool)
	var out []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[{") {
			add(arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		sort.Strings(matches)
		for _, m := range matches {
			add(m)
		}
	}
	return out, nil
}
