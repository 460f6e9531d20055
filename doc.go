// Package zerotrie implements zero-copy byte tries: ordered maps from byte
// strings to uint64 values, serialized as one immutable buffer that is read
// in place. There is no deserialization step; lookups walk the buffer with a
// cursor and never allocate.
//
// Two flavours share the same node grammar:
//
//   - SimpleASCII: keys are ASCII, every branch is a sorted byte array, and
//     iteration returns keys in sorted order.
//   - PerfectHash: keys are arbitrary bytes, non-ASCII runs are stored as
//     spans, and branches with 16 or more children dispatch through a perfect
//     hash. Iteration order is unspecified.
//
// # Basic Usage
//
// Building a trie:
//
//	entries := zerotrie.FromMap(map[string]uint64{"en": 0, "en-GB": 1, "fr": 2})
//	trie, err := zerotrie.BuildSimpleASCII(entries)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	v, ok := trie.GetString("en-GB") // 1, true
//
// Embedding pre-built bytes:
//
//	var localeTrie = zerotrie.SimpleASCIIFromBytes([]byte{0x65, 0x6E, 0x80})
//
// Loading untrusted bytes:
//
//	trie, err := zerotrie.ParsePerfectHash(buf) // validates every offset
//
// # Node Grammar
//
// The lead byte of each node selects its type:
//
//	0xxxxxxx  literal byte to match
//	100cvvvv  value (varint, see internal/varint)
//	101cvvvv  span: varint length, then that many raw bytes
//	11cvvvvv  branch: varint header (child count, offset width), search
//	          data, offset tables, children
//
// # Package Structure
//
//   - Public API: trie.go (SimpleASCII, PerfectHash), kind.go (Kind, Reader)
//   - Reading: node.go, reader.go, branch.go, iter.go, cursor.go
//   - Building: builder.go, builder_static.go, builder_parallel.go,
//     builder_options.go, entry.go, source.go
//   - Validation: validate.go
//   - Container files: header.go, file.go, file_writer.go
//   - Algorithms: internal/varint, internal/phf, internal/bits
//   - Platform: fallocate_*.go, prefault_*.go, fadvise_*.go
package zerotrie
