package textprep

import (
	"regexp"
)

// DefaultCacheCapacity is the number of compiled patterns a cache holds
// before it is emptied.
const DefaultCacheCapacity = 50

// PatternCache maps pattern sources to compiled regular expressions.
//
// Eviction is all or nothing: once an insertion pushes the size past the
// capacity, every entry is dropped and later lookups compile again. The cache
// is not safe for concurrent use; guard it with a mutex when sharing a
// Preparer between goroutines.
type PatternCache struct {
	capacity int
	entries  map[string]*regexp.Regexp
	metrics  *Metrics
}

// NewPatternCache returns an empty cache. A capacity below one falls back to
// DefaultCacheCapacity.
func NewPatternCache(capacity int) *PatternCache {
	if capacity < 1 {
		capacity = DefaultCacheCapacity
	}
	return &PatternCache{
		capacity: capacity,
		entries:  make(map[string]*regexp.Regexp),
	}
}

var defaultCache = NewPatternCache(DefaultCacheCapacity)

// GetOrCompile returns the compiled form of source, compiling and storing it
// on a miss.
func (c *PatternCache) GetOrCompile(source string) (*regexp.Regexp, error) {
	if re, ok := c.entries[source]; ok {
		c.metrics.cacheHit()
		return re, nil
	}
	c.metrics.cacheMiss()

	re, err := regexp.Compile(source)
	if err != nil {
		return nil, err
	}
	c.entries[source] = re

	if len(c.entries) > c.capacity {
		c.Reset()
		c.metrics.cacheReset()
	}
	return re, nil
}

// MustGetOrCompile is like GetOrCompile but panics on an invalid source.
func (c *PatternCache) MustGetOrCompile(source string) *regexp.Regexp {
	re, err := c.GetOrCompile(source)
	if err != nil {
		panic("textprep: compiling " + source + ": " + err.Error())
	}
	return re
}

// Instrument makes the cache report hits, misses and resets to m.
func (c *PatternCache) Instrument(m *Metrics) {
	c.metrics = m
}

// Len returns the number of cached patterns.
func (c *PatternCache) Len() int {
	return len(c.entries)
}

// Capacity returns the size above which the cache empties itself.
func (c *PatternCache) Capacity() int {
	return c.capacity
}

// Reset drops every cached pattern.
func (c *PatternCache) Reset() {
	c.entries = make(map[string]*regexp.Regexp)
}
