package clock

import "time"

// Clock abstracts time retrieval so wall-clock dependent logic (status
// derivation, journal timestamps) stays deterministic under test.
type Clock interface {
	Now() time.Time
}

// System reads the real wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always returns the same instant. Useful for tests.
type Fixed struct{ t time.Time }

func NewFixed(t time.Time) Fixed { return Fixed{t: t} }

func (f Fixed) Now() time.Time { return f.t }
