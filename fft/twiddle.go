package fft

import (
	"math"
	"sync"
	"sync/atomic"
)

// Omega returns the root of unity e^(i*2*pi*index/period).
func Omega(period, index int) complex128 {
	arg := 2 * math.Pi * float64(index) / float64(period)
	return complex(math.Cos(arg), math.Sin(arg))
}

type twiddleKey struct {
	period, index int
}

// TwiddleCache memoises Omega on the exact (period, index) pair. It is shared
// by every column worker of a run. A nil cache computes Omega directly.
type TwiddleCache struct {
	values sync.Map // twiddleKey -> complex128
	size   atomic.Int64
	hits   atomic.Int64
}

// NewTwiddleCache returns an empty cache.
func NewTwiddleCache() *TwiddleCache {
	return &TwiddleCache{}
}

// Omega returns the cached value for (period, index), computing it on a miss.
func (c *TwiddleCache) Omega(period, index int) complex128 {
	if c == nil {
		return Omega(period, index)
	}
	key := twiddleKey{period, index}
	if v, ok := c.values.Load(key); ok {
		c.hits.Add(1)
		return v.(complex128)
	}
	v, loaded := c.values.LoadOrStore(key, Omega(period, index))
	if loaded {
		c.hits.Add(1)
	} else {
		c.size.Add(1)
	}
	return v.(complex128)
}

// Len is the number of distinct pairs stored.
func (c *TwiddleCache) Len() int {
	if c == nil {
		return 0
	}
	return int(c.size.Load())
}

// Hits is the number of lookups answered from the cache.
func (c *TwiddleCache) Hits() int64 {
	if c == nil {
		return 0
	}
	return c.hits.Load()
}
