package clock

import "time"

// Clock is the time source for credential expiry checks
type Clock interface {
	Now() time.Time
}

// System reads the wall clock
type System struct{}

// New returns the wall clock
func New() System {
	return System{}
}

func (System) Now() time.Time {
	return time.Now()
}

// Expired reports whether exp has been reached on c. A zero exp never expires.
func Expired(c Clock, exp time.Time) bool {
	return !exp.IsZero() && !c.Now().Before(exp)
}
