package store

import "time"

// Option customizes a store.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the clock used for createdAt/updatedAt.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// timestamp normalizes to UTC microseconds, the finest precision Postgres keeps.
func timestamp(now func() time.Time) time.Time {
	return now().UTC().Truncate(time.Microsecond)
}
