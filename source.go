package zerotrie

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	streamerrors "github.com/tamirms/zerotrie/errors"
)

// maxLineSize bounds one line of entry input.
const maxLineSize = 1 << 20

// ReadEntries reads tab-separated "key<TAB>value" lines. Values are decimal
// uint64. Empty lines and lines starting with '#' are skipped. The key is
// everything before the last tab, so keys may contain tabs. The result is
// sorted and checked for duplicates.
func ReadEntries(r io.Reader) ([]Entry, error) {
	var entries []Entry
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	line := 0
	for sc.Scan() {
		line++
		text := bytes.TrimSuffix(sc.Bytes(), []byte{'\r'})
		if len(text) == 0 || text[0] == '#' {
			continue
		}
		tab := bytes.LastIndexByte(text, '\t')
		if tab < 0 {
			return nil, fmt.Errorf("%w: line %d: missing tab", streamerrors.ErrMalformedInput, line)
		}
		value, err := parseValue(text[tab+1:])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		entries = append(entries, Entry{Key: bytes.Clone(text[:tab]), Value: value})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read entries: %w", err)
	}
	if err := SortEntries(entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func parseValue(field []byte) (uint64, error) {
	s := string(bytes.TrimSpace(field))
	v, err := strconv.ParseUint(s, 10, 64)
	if err == nil {
		return v, nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("%w: %s", streamerrors.ErrValueOutOfRange, s)
	}
	if _, ierr := strconv.ParseInt(s, 10, 64); ierr == nil || errors.Is(ierr, strconv.ErrRange) {
		// Negative numbers parse as signed but not as unsigned.
		return 0, fmt.Errorf("%w: %s", streamerrors.ErrValueOutOfRange, s)
	}
	return 0, fmt.Errorf("%w: value %q", streamerrors.ErrMalformedInput, s)
}

// ReadEntriesFile reads entries from the file at path.
func ReadEntriesFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open entries: %w", err)
	}
	defer f.Close()
	fadviseSequential(int(f.Fd()), 0, 0)
	entries, err := ReadEntries(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// WriteEntries writes entries in the format read by ReadEntries. Keys that
// would not read back, those starting with '#' or containing a newline, fail
// with ErrMalformedInput before anything is written.
func WriteEntries(w io.Writer, entries []Entry) error {
	for i, e := range entries {
		if err := checkWritableKey(e.Key); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}
	bw := bufio.NewWriter(w)
	var num [20]byte
	for _, e := range entries {
		bw.Write(e.Key)
		bw.WriteByte('\t')
		bw.Write(strconv.AppendUint(num[:0], e.Value, 10))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func checkWritableKey(key []byte) error {
	switch {
	case len(key) > 0 && key[0] == '#':
		return fmt.Errorf("%w: key %q reads back as a comment", streamerrors.ErrMalformedInput, key)
	case bytes.IndexByte(key, '\n') >= 0:
		return fmt.Errorf("%w: key %q contains a newline", streamerrors.ErrMalformedInput, key)
	}
	return nil
}
