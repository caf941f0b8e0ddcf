package main

import (
	"bytes"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"lumen/internal/diagfmt"
	"lumen/internal/driver"
	"lumen/internal/source"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.lum...",
	Short: "Tokenize lumen source files",
	Long:  `Tokenize breaks lumen source files down into their constituent tokens`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
}

type tokenizeOutput struct {
	tokens bytes.Buffer
	diags  bytes.Buffer
	failed bool
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json", "msgpack":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	flags, err := readRootFlags(cmd)
	if err != nil {
		return err
	}

	jobs := flags.jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if jobs > len(args) {
		jobs = len(args)
	}

	// Each file gets its own single-threaded driver; the fan-out across
	// files happens here. Output is buffered per file and printed in
	// argument order.
	outputs := make([]tokenizeOutput, len(args))

	var g errgroup.Group
	g.SetLimit(jobs)
	for i, path := range args {
		g.Go(func() error {
			tokenizeOne(path, format, flags, &outputs[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	anyFailed := false
	for i := range outputs {
		if outputs[i].diags.Len() > 0 {
			if _, err := outputs[i].diags.WriteTo(os.Stderr); err != nil {
				return err
			}
		}
		if _, err := outputs[i].tokens.WriteTo(os.Stdout); err != nil {
			return err
		}
		if outputs[i].failed {
			anyFailed = true
		}
	}
	if anyFailed {
		return fmt.Errorf("tokenization failed")
	}
	return nil
}

func tokenizeOne(path, format string, flags rootFlags, out *tokenizeOutput) {
	colored := useColor(flags.colorMode, os.Stderr)
	d := driver.New(driver.Config{
		MaxNumErrors: flags.maxErrors,
		Callback:     diagfmt.NewCallback(&out.diags, colored),
		Verbosity:    flags.verbosity,
	})

	d.LoadFiles(path)
	if d.SourceManager().Len() == 0 {
		out.failed = true
		return
	}

	d.TokenizeLoadedFiles()
	if d.HasHitFailCondition() {
		out.failed = true
		return
	}

	src := d.SourceManager().Get(source.ID(0))
	var err error
	switch format {
	case "pretty":
		err = diagfmt.FormatTokensPretty(&out.tokens, src)
	case "json":
		err = diagfmt.FormatTokensJSON(&out.tokens, src)
	case "msgpack":
		err = diagfmt.FormatTokensMsgpack(&out.tokens, src)
	}
	if err != nil {
		fmt.Fprintf(&out.diags, "failed to format tokens for %s: %v\n", path, err)
		out.failed = true
	}
	if d.NumErrors() > 0 {
		out.failed = true
	}
}
