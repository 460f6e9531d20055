package zerotrie

import "github.com/tamirms/zerotrie/internal/varint"

// Cursor walks a SimpleASCII trie one key byte at a time. It is useful when
// the key is produced incrementally, or to find the longest stored prefix of
// an input:
//
//	c := trie.Cursor()
//	for _, b := range input {
//	    c.Step(b)
//	    if v, ok := c.PeekValue(); ok {
//	        best = v
//	    }
//	    if c.IsEmpty() {
//	        break
//	    }
//	}
//
// A Cursor is a small value; copying it forks the walk.
type Cursor struct {
	trie []byte
}

// ProbeResult describes one child of the node under a cursor.
type ProbeResult struct {
	// Byte is the key byte leading to the child.
	Byte byte
	// Total is the number of children at this node.
	Total int
}

// Step advances the cursor by one key byte. If no stored key continues with
// b, the cursor becomes empty.
func (c *Cursor) Step(b byte) {
	for len(c.trie) > 0 {
		lead := c.trie[0]
		rest := c.trie[1:]

		switch kindOf(lead) {
		case nodeLiteral:
			if lead == b {
				c.trie = rest
				return
			}
			c.trie = nil
			return

		case nodeValue:
			_, after, ok := varint.Read(lead, rest, varint.Meta3)
			if !ok {
				c.trie = nil
				return
			}
			c.trie = after

		case nodeSpan:
			// SimpleASCII tries never contain spans.
			c.trie = nil
			return

		case nodeBranch:
			c.trie = c.stepBranch(lead, rest, b)
			return
		}
	}
}

func (c *Cursor) stepBranch(lead byte, rest []byte, b byte) []byte {
	x, rest, ok := varint.Read(lead, rest, varint.Meta2)
	if !ok {
		return nil
	}
	n, w := splitBranchHeader(x)
	i, tables, ok := selectChild(rest, n, b, false)
	if !ok {
		return nil
	}
	child, ok := branchChild(tables, i, n, w)
	if !ok {
		return nil
	}
	return child
}

// PeekValue returns the value of the key spelled so far, without moving.
func (c *Cursor) PeekValue() (uint64, bool) {
	if len(c.trie) == 0 || kindOf(c.trie[0]) != nodeValue {
		return 0, false
	}
	v, _, ok := varint.Read(c.trie[0], c.trie[1:], varint.Meta3)
	return v, ok
}

// TakeValue returns the value of the key spelled so far and moves past it,
// so a second call reports false.
func (c *Cursor) TakeValue() (uint64, bool) {
	if len(c.trie) == 0 || kindOf(c.trie[0]) != nodeValue {
		return 0, false
	}
	v, rest, ok := varint.Read(c.trie[0], c.trie[1:], varint.Meta3)
	if !ok {
		c.trie = nil
		return 0, false
	}
	c.trie = rest
	return v, true
}

// Probe steps into the i-th child of the current node, in ascending byte
// order, and reports which byte it took. It returns false and empties the
// cursor when there is no i-th child. Probing 0, 1, 2... on copies of a
// cursor enumerates the possible next bytes.
func (c *Cursor) Probe(i int) (ProbeResult, bool) {
	for len(c.trie) > 0 {
		lead := c.trie[0]
		rest := c.trie[1:]

		switch kindOf(lead) {
		case nodeLiteral:
			if i != 0 {
				c.trie = nil
				return ProbeResult{}, false
			}
			c.trie = rest
			return ProbeResult{Byte: lead, Total: 1}, true

		case nodeValue:
			_, after, ok := varint.Read(lead, rest, varint.Meta3)
			if !ok {
				c.trie = nil
				return ProbeResult{}, false
			}
			c.trie = after

		case nodeBranch:
			r, child, ok := probeBranch(lead, rest, i)
			c.trie = child
			return r, ok

		default:
			c.trie = nil
			return ProbeResult{}, false
		}
	}
	return ProbeResult{}, false
}

func probeBranch(lead byte, rest []byte, i int) (ProbeResult, []byte, bool) {
	x, rest, ok := varint.Read(lead, rest, varint.Meta2)
	if !ok {
		return ProbeResult{}, nil, false
	}
	n, w := splitBranchHeader(x)
	if i < 0 || i >= n || len(rest) < n {
		return ProbeResult{}, nil, false
	}
	child, ok := branchChild(rest[n:], i, n, w)
	if !ok {
		return ProbeResult{}, nil, false
	}
	return ProbeResult{Byte: rest[i], Total: n}, child, true
}

// IsEmpty reports whether no stored key has the bytes stepped so far as a
// prefix.
func (c *Cursor) IsEmpty() bool {
	return len(c.trie) == 0
}

// Write steps through every byte of p. It never fails.
func (c *Cursor) Write(p []byte) (int, error) {
	for _, b := range p {
		c.Step(b)
	}
	return len(p), nil
}

// WriteString steps through every byte of s. It never fails.
func (c *Cursor) WriteString(s string) (int, error) {
	for i := 0; i < len(s); i++ {
		c.Step(s[i])
	}
	return len(s), nil
}
