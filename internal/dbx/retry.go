package dbx

import (
	"context"
	"database/sql"
	"time"

	"github.com/sethvargo/go-retry"
)

// RetryPolicy bounds how often WithTxRetry re-runs a transaction that hit a
// transient conflict.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration

	// OnRetry, when set, is called before every new attempt.
	OnRetry func(attempt int, err error)
}

const maxRetryDelay = 2 * time.Second

func (p RetryPolicy) backoff() retry.Backoff {
	base := p.BaseDelay
	if base <= 0 {
		base = 10 * time.Millisecond
	}
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	b := retry.NewExponential(base)
	b = retry.WithJitterPercent(20, b)
	b = retry.WithCappedDuration(maxRetryDelay, b)
	return retry.WithMaxRetries(uint64(attempts-1), b)
}

// WithTxRetry runs fn inside WithTx and starts over with a new transaction
// whenever the attempt fails with a transient error (see IsTransient), up to
// p.MaxAttempts attempts in total. Non-transient errors are returned at once.
//
// fn may run more than once, so it must not have side effects outside tx.
func WithTxRetry(ctx context.Context, db *sql.DB, opts *sql.TxOptions, p RetryPolicy, fn func(ctx context.Context, tx DBTX) error) error {
	attempt := 0

	return retry.Do(ctx, p.backoff(), func(ctx context.Context) error {
		attempt++

		err := WithTx(ctx, db, opts, fn)
		if err == nil {
			return nil
		}
		if IsTransient(err) {
			if p.OnRetry != nil && attempt < max(p.MaxAttempts, 1) {
				p.OnRetry(attempt, err)
			}
			return retry.RetryableError(err)
		}
		return err
	})
}
