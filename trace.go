package zerotrie

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'zerotrie'
func tracer() tracing.Trace {
	return tracing.Select("zerotrie")
}
