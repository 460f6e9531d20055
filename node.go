package zerotrie

// Lead byte tags. Literal bytes have the high bit clear.
const (
	tagValue  = 0b1000_0000 // 100cvvvv
	tagSpan   = 0b1010_0000 // 101cvvvv
	tagBranch = 0b1100_0000 // 11cvvvvv
)

type nodeKind uint8

const (
	nodeLiteral nodeKind = iota
	nodeValue
	nodeSpan
	nodeBranch
)

func kindOf(lead byte) nodeKind {
	switch {
	case lead < tagValue:
		return nodeLiteral
	case lead < tagSpan:
		return nodeValue
	case lead < tagBranch:
		return nodeSpan
	default:
		return nodeBranch
	}
}

// Branch header layout, stored as a Meta2 varint:
//
//	bits 0-7   child count n (0 means 256)
//	bits 8-9   offset width w (offsets use w+1 bytes)
const (
	branchCountMask = 0xff
	branchWidthMax  = 3
	branchHeaderMax = 1<<10 - 1
)

func splitBranchHeader(x uint64) (n, w int) {
	n = int(x & branchCountMask)
	if n == 0 {
		n = 256
	}
	w = int(x>>8) & branchWidthMax
	return n, w
}

func branchHeader(n, w int) uint64 {
	return uint64(n&branchCountMask) | uint64(w)<<8
}
