package zerotrie

import "github.com/tamirms/zerotrie/internal/phf"

// BuildOption is a functional option for configuring builds.
type BuildOption func(*buildConfig)

type buildConfig struct {
	phfAttempts   int // first-level parameters tried per hashed branch
	maxByteLen    int // 0 means only the format limit applies
	unsortedInput bool
}

func defaultBuildConfig() *buildConfig {
	return &buildConfig{
		phfAttempts: phf.DefaultAttempts,
	}
}

func newBuildConfig(opts []BuildOption) *buildConfig {
	cfg := defaultBuildConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithPHFAttempts sets how many first-level hash parameters are tried for
// each hashed branch before the build fails with ErrPerfectHashUnsolvable.
// Values are clamped to [0, 256]; the default is 256.
func WithPHFAttempts(n int) BuildOption {
	return func(c *buildConfig) {
		c.phfAttempts = n
	}
}

// WithMaxByteLen fails the build with ErrCapacityExceeded if the serialized
// trie would be longer than n bytes. Zero disables the check.
func WithMaxByteLen(n int) BuildOption {
	return func(c *buildConfig) {
		c.maxByteLen = n
	}
}

// WithUnsortedInput lets a file Builder accept keys in any order. Keys are
// buffered and sorted in Finish; duplicates are still rejected there.
func WithUnsortedInput() BuildOption {
	return func(c *buildConfig) {
		c.unsortedInput = true
	}
}
