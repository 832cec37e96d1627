package blobstore

import (
	"context"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// RateLimitConfig holds limits for a RateLimitedStore. Zero fields are
// unlimited.
type RateLimitConfig struct {
	// OpsPerSec is the sustained number of store operations per second.
	OpsPerSec float64

	// BytesPerSec is the sustained Put/Get throughput.
	BytesPerSec int

	// MaxConcurrent bounds the number of operations in flight.
	MaxConcurrent int64
}

// RateLimitedStore throttles calls to an underlying Store.
type RateLimitedStore struct {
	inner Store

	ops   *rate.Limiter       // nil if unlimited
	bytes *rate.Limiter       // nil if unlimited
	sem   *semaphore.Weighted // nil if unlimited
}

var _ Store = (*RateLimitedStore)(nil)

// NewRateLimitedStore wraps inner with the given limits.
func NewRateLimitedStore(inner Store, cfg RateLimitConfig) *RateLimitedStore {
	s := &RateLimitedStore{inner: inner}

	if cfg.OpsPerSec > 0 {
		burst := int(cfg.OpsPerSec)
		if burst < 1 {
			burst = 1
		}
		s.ops = rate.NewLimiter(rate.Limit(cfg.OpsPerSec), burst)
	}
	if cfg.BytesPerSec > 0 {
		s.bytes = rate.NewLimiter(rate.Limit(cfg.BytesPerSec), cfg.BytesPerSec)
	}
	if cfg.MaxConcurrent > 0 {
		s.sem = semaphore.NewWeighted(cfg.MaxConcurrent)
	}
	return s
}

func (s *RateLimitedStore) acquire(ctx context.Context) (func(), error) {
	if s.ops != nil {
		if err := s.ops.Wait(ctx); err != nil {
			return nil, err
		}
	}
	if s.sem == nil {
		return func() {}, nil
	}
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	return func() { s.sem.Release(1) }, nil
}

// waitBytes charges n bytes against the throughput limit, in chunks no
// larger than the burst.
func (s *RateLimitedStore) waitBytes(ctx context.Context, n int) error {
	if s.bytes == nil {
		return nil
	}
	burst := s.bytes.Burst()
	for n > 0 {
		chunk := min(n, burst)
		if err := s.bytes.WaitN(ctx, chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

// Put implements Store.
func (s *RateLimitedStore) Put(ctx context.Context, name string, data []byte) error {
	release, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	if err := s.waitBytes(ctx, len(data)); err != nil {
		return err
	}
	return s.inner.Put(ctx, name, data)
}

// Get implements Store. The bytes are charged after the read, since the
// size is not known up front.
func (s *RateLimitedStore) Get(ctx context.Context, name string) ([]byte, error) {
	release, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	data, err := s.inner.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := s.waitBytes(ctx, len(data)); err != nil {
		return nil, err
	}
	return data, nil
}

// Delete implements Store.
func (s *RateLimitedStore) Delete(ctx context.Context, name string) error {
	release, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()
	return s.inner.Delete(ctx, name)
}

// List implements Store.
func (s *RateLimitedStore) List(ctx context.Context, prefix string) ([]string, error) {
	release, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()
	return s.inner.List(ctx, prefix)
}
