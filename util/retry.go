package util

import (
	"context"
	"time"

	"github.com/cenkalti/backoff"
)

// Retrier is a wrapper around "github.com/cenkalti/backoff".ExponentialBackOff
type Retrier struct {
	InitialInterval     time.Duration
	MaxInterval         time.Duration
	Multiplier          float64
	RandomizationFactor float64
	MaxElapsedTime      time.Duration
	// Total number of attempts, including the first. Values < 1 mean one attempt.
	MaxTries    int
	ShouldRetry func(err error) bool
	Notify      func(err error, d time.Duration)
}

// NewRetrier creates a new Retrier instance using default values.
func NewRetrier() *Retrier {
	return &Retrier{
		InitialInterval:     time.Millisecond * 100,
		MaxInterval:         time.Second * 5,
		Multiplier:          2,
		RandomizationFactor: 0.5,
		MaxElapsedTime:      time.Minute,
		MaxTries:            3,
	}
}

// Retry calls f until it does not return an error, ShouldRetry rejects the
// error, the tries are used up or the context is canceled. It returns the
// last error of f.
func (r *Retrier) Retry(ctx context.Context, f func() error) error {
	b := backoff.WithContext(r.backOff(), ctx)
	return backoff.RetryNotify(func() error { return r.checkErr(f()) }, b, r.notify)
}

func (r *Retrier) notify(err error, d time.Duration) {
	if r.Notify != nil {
		r.Notify(err, d)
	}
}

func (r *Retrier) checkErr(err error) error {
	switch {
	case err != nil && r.ShouldRetry != nil && !r.ShouldRetry(err):
		return &backoff.PermanentError{Err: err}
	default:
		return err
	}
}

func (r *Retrier) backOff() backoff.BackOff {
	b := &backoff.ExponentialBackOff{
		InitialInterval:     r.InitialInterval,
		MaxInterval:         r.MaxInterval,
		Multiplier:          r.Multiplier,
		RandomizationFactor: r.RandomizationFactor,
		MaxElapsedTime:      r.MaxElapsedTime,
		Clock:               backoff.SystemClock,
	}
	b.Reset()

	max := r.MaxTries - 1
	if max < 0 {
		max = 0
	}
	return backoff.WithMaxRetries(b, uint64(max))
}
