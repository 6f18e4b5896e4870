package domainset

// BloomSizer computes Bloom filter parameters from capacity (n) and target FP rate (p).
// It returns m (number of bits) and k (number of hash functions).
type BloomSizer interface {
	Size(n uint64, p float64) (m uint64, k uint8)
}

// BloomFilter is the minimal interface the set needs from Bloom filters.
type BloomFilter interface {
	Add(key []byte)
	MightContain(key []byte) bool
}

// BloomFactory builds BloomFilters sized for a dataset.
type BloomFactory interface {
	New(capacity uint64, fpRate float64) BloomFilter
}

// VerdictCache caches membership verdicts by candidate domain with basic metrics.
type VerdictCache interface {
	Get(name string) (disposable bool, ok bool)
	Put(name string, disposable bool)
	Len() int
	Purge()
	Stats() CacheStats
}
