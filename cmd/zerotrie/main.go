// Zerotrie builds, inspects and benchmarks zero-copy trie container files.
//
// Usage:
//
//	zerotrie gen -n 5000 > locales.tsv
//	zerotrie build -kind ascii -o out locales.tsv
//	zerotrie get out/locales.ztrie en-GB
//	zerotrie verify out/locales.ztrie
//	zerotrie bench -n 100000 -kind phf
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/urfave/cli/v3"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "zerotrie",
		Usage:     "build and query zero-copy trie files",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "enable debug tracing",
			},
		},
		Before: setupTracing,
		Commands: []*cli.Command{
			buildCommand(),
			getCommand(),
			dumpCommand(),
			verifyCommand(),
			statsCommand(),
			genCommand(),
			benchCommand(),
		},
	}
}

func setupTracing(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))
	level := tracing.LevelError
	if cmd.Bool("verbose") {
		level = tracing.LevelDebug
	}
	tracing.Select("zerotrie").SetTraceLevel(level)
	return ctx, nil
}

func kindFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "kind",
		Usage: "trie kind: ascii or phf",
		Value: "ascii",
		Action: func(_ context.Context, _ *cli.Command, s string) error {
			if s != "ascii" && s != "phf" {
				return fmt.Errorf("unsupported kind %q - must be one of: ascii, phf", s)
			}
			return nil
		},
	}
}
