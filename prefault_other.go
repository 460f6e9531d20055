//go:build !linux

package zerotrie

// prefaultRegion is a no-op outside Linux.
func prefaultRegion(data []byte) {}

// adviseWillNeed is a no-op outside Linux.
func adviseWillNeed(data []byte) {}
