// Package domainset holds the in-memory disposable domain set used by the
// filter. Membership is always an exact, case-sensitive string match.
package domainset

// Set answers membership queries through a verdict cache, then a Bloom
// prefilter, then the authoritative exact map. It is built once per run and
// is not safe for concurrent use.
type Set struct {
	exact map[string]struct{}
	bloom BloomFilter
	cache VerdictCache

	lookups      uint64
	bloomRejects uint64
}

// Options configures optional accelerators. A nil Factory disables the
// Bloom prefilter; a nil Cache disables verdict caching.
type Options struct {
	Factory BloomFactory
	FPRate  float64
	Cache   VerdictCache
}

// New builds a Set from the store's entries. Entries are inserted literally,
// blank entries included; duplicates collapse.
func New(domains []string, opts Options) *Set {
	s := &Set{
		exact: make(map[string]struct{}, len(domains)),
		cache: opts.Cache,
	}
	for _, d := range domains {
		s.exact[d] = struct{}{}
	}
	if opts.Factory != nil {
		bf := opts.Factory.New(uint64(len(s.exact)), opts.FPRate)
		for d := range s.exact {
			bf.Add([]byte(d))
		}
		s.bloom = bf
	}
	return s
}

// Contains reports whether name is in the set.
func (s *Set) Contains(name string) bool {
	s.lookups++

	// 1) cached verdict
	if s.cache != nil {
		if v, ok := s.cache.Get(name); ok {
			return v
		}
	}

	// 2) definite Bloom negative
	if s.bloom != nil && !s.bloom.MightContain([]byte(name)) {
		s.bloomRejects++
		s.remember(name, false)
		return false
	}

	// 3) authoritative map
	_, ok := s.exact[name]
	s.remember(name, ok)
	return ok
}

func (s *Set) remember(name string, v bool) {
	if s.cache != nil {
		s.cache.Put(name, v)
	}
}

// Len returns the number of unique domains.
func (s *Set) Len() int { return len(s.exact) }

// Stats returns a snapshot of the set's counters.
func (s *Set) Stats() Stats {
	st := Stats{
		Domains:      len(s.exact),
		Lookups:      s.lookups,
		BloomRejects: s.bloomRejects,
	}
	if s.cache != nil {
		st.Cache = s.cache.Stats()
	}
	return st
}
