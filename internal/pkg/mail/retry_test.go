package mail

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyMailer struct {
	calls     int
	failFirst int
	err       error
}

func (f *flakyMailer) Send(context.Context, Message) (string, error) {
	f.calls++
	if f.calls <= f.failFirst {
		return "", f.err
	}
	return "msg-123", nil
}

func (f *flakyMailer) Close() error { return nil }

func TestRetrySucceedsAfterTransientFailures(t *testing.T) {
	next := &flakyMailer{failFirst: 2, err: errors.New("connection reset")}
	r := NewRetry(next, 3, time.Millisecond)

	id, err := r.Send(context.Background(), Message{To: []string{"a@b.co"}})
	require.NoError(t, err)
	assert.Equal(t, "msg-123", id)
	assert.Equal(t, 3, next.calls)
}

func TestRetryExhaustsAndReturnsLastError(t *testing.T) {
	provider := errors.New("550 mailbox unavailable")
	next := &flakyMailer{failFirst: 10, err: provider}
	r := NewRetry(next, 3, time.Millisecond)

	id, err := r.Send(context.Background(), Message{To: []string{"a@b.co"}})
	assert.Empty(t, id)
	require.Error(t, err)
	assert.ErrorIs(t, err, provider)
	assert.Equal(t, 3, next.calls)
}

func TestRetryBackoffDoubles(t *testing.T) {
	next := &flakyMailer{failFirst: 2, err: errors.New("timeout")}
	base := 20 * time.Millisecond
	r := NewRetry(next, 3, base)

	start := time.Now()
	_, err := r.Send(context.Background(), Message{})
	require.NoError(t, err)

	// Waits base then 2*base between attempts.
	assert.GreaterOrEqual(t, time.Since(start), 3*base)
}

func TestRetryMinimumOneAttempt(t *testing.T) {
	next := &flakyMailer{failFirst: 0}
	r := NewRetry(next, 0, 0)

	_, err := r.Send(context.Background(), Message{})
	require.NoError(t, err)
	assert.Equal(t, 1, next.calls)
}
