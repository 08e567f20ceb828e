package service

import "time"

// Clock supplies "now" so the daily rollup's notion of today is injectable
// in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func SystemClock() Clock { return systemClock{} }

// FixedClock always returns the same instant.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }

// DateKey formats t as the UTC calendar-date key used by the daily rollup.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
