package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments can share
// one backend without colliding:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "sketchcoach:staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// AnalysisKey generates a prefixed key for analysis results.
func (k *ScopedKeyer) AnalysisKey(opts AnalysisKeyOpts) string {
	return k.prefix + k.inner.AnalysisKey(opts)
}
