package domainset

// CacheStats reports lightweight cache metrics.
type CacheStats struct {
	Capacity  int    // configured capacity (0 for disabled cache)
	Size      int    // current number of entries
	Hits      uint64 // total cache hits since construction
	Misses    uint64 // total cache misses since construction
	Evictions uint64 // total evictions since construction
}

// Stats reports set-level counters for one run.
type Stats struct {
	Domains      int    // unique domains in the set
	Lookups      uint64 // Contains calls
	BloomRejects uint64 // lookups answered by a definite Bloom negative
	Cache        CacheStats
}
