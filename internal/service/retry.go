package service

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/orgdrive/orgdrive/internal/apperr"
)

// RetryPolicy bounds the local retry applied to transient store failures.
// Only StoreUnavailable is retried; policy denials, validation failures and
// not-found results surface immediately.
type RetryPolicy struct {
	MaxAttempts uint64
	Base        time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, Base: 100 * time.Millisecond}
}

func (p RetryPolicy) do(ctx context.Context, fn func() error) error {
	if p.MaxAttempts == 0 {
		return fn()
	}
	backoff := retry.WithMaxRetries(p.MaxAttempts, retry.NewExponential(p.Base))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn()
		if errors.Is(err, apperr.ErrStoreUnavailable) {
			return retry.RetryableError(err)
		}
		return err
	})
}
