// Package seeded provides a small reproducible number stream keyed by a
// string. The recurrence is a linear congruential step with the constants
// 9301, 49297 and modulus 233280; integer arithmetic only.
package seeded

import "unicode/utf16"

const (
	multiplier = 9301
	increment  = 49297
	modulus    = 233280
)

// Source is the stream state. It is a plain value: copying a Source forks
// the stream.
type Source struct {
	state int64
}

// Seed derives the initial state from key with a 32-bit rolling hash over
// its UTF-16 code units.
func Seed(key string) Source {
	var h int32
	for _, c := range utf16.Encode([]rune(key)) {
		h = h*31 + int32(c)
	}
	s := int64(h)
	if s < 0 {
		s = -s
	}
	return Source{state: s}
}

// State exposes the raw state, mostly for tests.
func (s Source) State() int64 { return s.state }

// Next returns a number in [0,1) and the advanced source.
func (s Source) Next() (float64, Source) {
	n := (s.state*multiplier + increment) % modulus
	return float64(n) / modulus, Source{state: n}
}

// Float64 advances s in place and returns the next number.
func (s *Source) Float64() float64 {
	v, next := s.Next()
	*s = next
	return v
}

// Intn returns floor(r*n) + offset for the next number r.
func (s *Source) Intn(n, offset int) int {
	return int(s.Float64()*float64(n)) + offset
}
