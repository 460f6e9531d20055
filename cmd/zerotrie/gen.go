package main

import (
	"context"
	"fmt"
	"time"

	"github.com/tamirms/zerotrie"
	"github.com/tamirms/zerotrie/internal/keygen"
	"github.com/urfave/cli/v3"
)

func sizeFlags() []cli.Flag {
	return []cli.Flag{
		kindFlag(),
		&cli.IntFlag{
			Name:    "n",
			Aliases: []string{"keys"},
			Usage:   "number of keys",
			Value:   10_000,
		},
		&cli.IntFlag{
			Name:  "seed",
			Usage: "key generator seed",
			Value: 1,
		},
	}
}

// syntheticEntries generates keys for kind; phf tries get UTF-8 keys. Values
// are key ranks.
func syntheticEntries(cmd *cli.Command) (zerotrie.Kind, []zerotrie.Entry, error) {
	kind, err := zerotrie.ParseKind(cmd.String("kind"))
	if err != nil {
		return 0, nil, err
	}
	n := cmd.Int("n")
	if n < 0 {
		return 0, nil, fmt.Errorf("negative key count %d", n)
	}
	seed := uint32(cmd.Int("seed"))
	var keys [][]byte
	if kind == zerotrie.KindPerfectHash {
		keys = keygen.UTF8(n, seed)
	} else {
		keys = keygen.ASCII(n, seed)
	}
	entries := make([]zerotrie.Entry, len(keys))
	for i, k := range keys {
		entries[i] = zerotrie.Entry{Key: k, Value: uint64(i)}
	}
	return kind, entries, nil
}

func genCommand() *cli.Command {
	return &cli.Command{
		Name:  "gen",
		Usage: "write a synthetic tab-separated key set to stdout",
		Flags: sizeFlags(),
		Action: func(_ context.Context, cmd *cli.Command) error {
			_, entries, err := syntheticEntries(cmd)
			if err != nil {
				return err
			}
			return zerotrie.WriteEntries(cmd.Root().Writer, entries)
		},
	}
}

func benchCommand() *cli.Command {
	return &cli.Command{
		Name:  "bench",
		Usage: "measure build time, size and lookup throughput on synthetic keys",
		Flags: sizeFlags(),
		Action: func(_ context.Context, cmd *cli.Command) error {
			kind, entries, err := syntheticEntries(cmd)
			if err != nil {
				return err
			}
			w := cmd.Root().Writer

			start := time.Now()
			t, err := zerotrie.Build(kind, entries)
			if err != nil {
				return err
			}
			buildTime := time.Since(start)

			start = time.Now()
			for _, e := range entries {
				if v, ok := t.Get(e.Key); !ok || v != e.Value {
					return fmt.Errorf("lookup mismatch for %q", e.Key)
				}
			}
			lookupTime := time.Since(start)

			perEntry := 0.0
			if len(entries) > 0 {
				perEntry = float64(t.ByteLen()) / float64(len(entries))
			}
			fmt.Fprintf(w, "kind:        %s\n", kind)
			fmt.Fprintf(w, "entries:     %d\n", len(entries))
			fmt.Fprintf(w, "bytes:       %d (%.2f per entry)\n", t.ByteLen(), perEntry)
			fmt.Fprintf(w, "build:       %v\n", buildTime)
			if len(entries) > 0 {
				fmt.Fprintf(w, "lookup:      %v per key\n", lookupTime/time.Duration(len(entries)))
			}
			return nil
		},
	}
}
