package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tamirms/zerotrie"
	"github.com/urfave/cli/v3"
)

const fileExt = ".ztrie"

func buildCommand() *cli.Command {
	return &cli.Command{
		Name:      "build",
		Usage:     "build trie files from tab-separated key/value files",
		ArgsUsage: "FILE...",
		Flags: []cli.Flag{
			kindFlag(),
			&cli.StringFlag{
				Name:      "out",
				Aliases:   []string{"o"},
				Usage:     "output directory (default: next to each input)",
				TakesFile: true,
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "number of tries built concurrently",
				Value: 4,
			},
		},
		Action: runBuild,
	}
}

func runBuild(ctx context.Context, cmd *cli.Command) error {
	inputs := cmd.Args().Slice()
	if len(inputs) == 0 {
		return errors.New("build: no input files")
	}
	kind, err := zerotrie.ParseKind(cmd.String("kind"))
	if err != nil {
		return err
	}

	sets := make([][]zerotrie.Entry, len(inputs))
	for i, in := range inputs {
		if sets[i], err = zerotrie.ReadEntriesFile(in); err != nil {
			return err
		}
	}
	tries, err := zerotrie.BuildParallel(ctx, kind, sets, cmd.Int("workers"))
	if err != nil {
		return err
	}

	for i, in := range inputs {
		out := outputPath(in, cmd.String("out"))
		if err := zerotrie.WriteFile(out, kind, tries[i].Bytes(), uint64(len(sets[i]))); err != nil {
			return err
		}
		fmt.Fprintf(cmd.Root().Writer, "%s: %d entries, %d bytes\n", out, len(sets[i]), tries[i].ByteLen())
	}
	return nil
}

func outputPath(input, dir string) string {
	name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + fileExt
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, name)
}

func getCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "look up keys in a trie file",
		ArgsUsage: "FILE KEY...",
		Action: func(_ context.Context, cmd *cli.Command) error {
			args := cmd.Args().Slice()
			if len(args) < 2 {
				return errors.New("get: need a file and at least one key")
			}
			return withTrie(args[0], func(t zerotrie.Reader) error {
				missing := 0
				for _, key := range args[1:] {
					if v, ok := t.GetString(key); ok {
						fmt.Fprintf(cmd.Root().Writer, "%s\t%d\n", key, v)
					} else {
						fmt.Fprintf(cmd.Root().Writer, "%s\t<absent>\n", key)
						missing++
					}
				}
				if missing > 0 {
					return fmt.Errorf("get: %d of %d keys absent", missing, len(args)-1)
				}
				return nil
			})
		},
	}
}

func dumpCommand() *cli.Command {
	return &cli.Command{
		Name:      "dump",
		Usage:     "print every entry of a trie file, sorted by key",
		ArgsUsage: "FILE",
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return errors.New("dump: need exactly one file")
			}
			return withTrie(cmd.Args().First(), func(t zerotrie.Reader) error {
				entries := t.Entries()
				if t.Kind() == zerotrie.KindPerfectHash {
					slices.SortFunc(entries, func(a, b zerotrie.Entry) int {
						return bytes.Compare(a.Key, b.Key)
					})
				}
				return zerotrie.WriteEntries(cmd.Root().Writer, entries)
			})
		},
	}
}

func verifyCommand() *cli.Command {
	return &cli.Command{
		Name:      "verify",
		Usage:     "check trie file checksums and structure",
		ArgsUsage: "FILE...",
		Action: func(_ context.Context, cmd *cli.Command) error {
			var errs []error
			for _, path := range cmd.Args().Slice() {
				f, err := zerotrie.Open(path)
				if err == nil {
					err = errors.Join(f.Verify(), f.Close())
				}
				if err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", path, err))
					fmt.Fprintf(cmd.Root().Writer, "%s: FAIL\n", path)
					continue
				}
				fmt.Fprintf(cmd.Root().Writer, "%s: ok\n", path)
			}
			return errors.Join(errs...)
		},
	}
}

func statsCommand() *cli.Command {
	return &cli.Command{
		Name:      "stats",
		Usage:     "print size statistics of trie files",
		ArgsUsage: "FILE...",
		Action: func(_ context.Context, cmd *cli.Command) error {
			for _, path := range cmd.Args().Slice() {
				st, err := zerotrie.GetStats(path)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				fmt.Fprintf(cmd.Root().Writer, "%s: kind=%s entries=%d trie=%dB file=%dB bytes/entry=%.2f\n",
					path, st.Kind, st.NumEntries, st.TrieBytes, st.FileBytes, st.BytesPerEntry)
			}
			return nil
		},
	}
}

// withTrie opens path, verifies it and calls fn with its trie.
func withTrie(path string, fn func(zerotrie.Reader) error) error {
	f, err := zerotrie.Open(path)
	if err != nil {
		return err
	}
	if err := f.Verify(); err != nil {
		return errors.Join(fmt.Errorf("%s: %w", path, err), f.Close())
	}
	t, err := f.Trie()
	if err != nil {
		return errors.Join(err, f.Close())
	}
	return errors.Join(fn(t), f.Close())
}
