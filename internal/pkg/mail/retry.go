package mail

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"
)

// Retry wraps a Mail implementation with bounded exponential backoff. A send
// is attempted up to maxAttempts times total; the delay doubles after each
// failure starting from baseDelay, with no jitter. The last provider error is
// returned unchanged when every attempt fails.
type Retry struct {
	next        Mail
	baseDelay   time.Duration
	maxAttempts uint64
}

// NewRetry decorates next with retry behavior. Attempts below 1 becomes 1,
// and a zero baseDelay defaults to one second.
func NewRetry(next Mail, maxAttempts uint64, baseDelay time.Duration) *Retry {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if baseDelay <= 0 {
		baseDelay = time.Second
	}

	return &Retry{
		next:        next,
		baseDelay:   baseDelay,
		maxAttempts: maxAttempts,
	}
}

// Send delivers the message, retrying transient provider failures.
func (r *Retry) Send(ctx context.Context, msg Message) (string, error) {
	backoff := retry.WithMaxRetries(r.maxAttempts-1, retry.NewExponential(r.baseDelay))

	var id string
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var sendErr error
		id, sendErr = r.next.Send(ctx, msg)
		if sendErr != nil {
			return retry.RetryableError(sendErr)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return id, nil
}

// Close closes the underlying provider.
func (r *Retry) Close() error {
	return r.next.Close()
}
