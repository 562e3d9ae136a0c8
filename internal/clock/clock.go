package clock

import "time"

// Clock abstracts wall-clock time so expiry and past-time predicates
// can be driven deterministically in tests.
type Clock interface {
	Now() time.Time
}

type Real struct{}

func (Real) Now() time.Time {
	return time.Now()
}
