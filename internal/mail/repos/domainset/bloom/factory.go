package bloom

import (
	bitsbloom "github.com/bits-and-blooms/bloom/v3"

	"github.com/haukened/dispofilter/internal/mail/repos/domainset"
)

// DefaultFPRate is used when a factory is asked for an out-of-range rate.
const DefaultFPRate = 0.01

// factory implements domainset.BloomFactory on top of a BloomSizer.
type factory struct {
	sizer domainset.BloomSizer
}

// NewFactory returns a BloomFactory that sizes filters from capacity and FP rate.
func NewFactory() domainset.BloomFactory { return factory{sizer: NewSizer()} }

// New constructs a BloomFilter sized for the given capacity and target
// false-positive rate.
func (f factory) New(capacity uint64, fpRate float64) domainset.BloomFilter {
	m, k := f.sizer.Size(capacity, fpRate)
	return &filter{bf: bitsbloom.New(uint(m), uint(k))}
}
