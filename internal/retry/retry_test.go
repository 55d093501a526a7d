package retry

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyOperation fails with err for the first failures invocations.
type flakyOperation struct {
	invocations int
	failures    int
	err         error
}

func (o *flakyOperation) run(context.Context) error {
	o.invocations++
	if o.invocations <= o.failures {
		return o.err
	}
	return nil
}

func lockedErr() error {
	return &fs.PathError{Op: "open", Path: "Main.st", Err: lockErrnos[0]}
}

func fastBackoff(maxAttempts int) *ExponentialBackoff {
	return NewExponentialBackoff(maxAttempts, WithInitialDelay(time.Millisecond), WithJitter(0))
}

func TestFileLockClassifier(t *testing.T) {
	c := NewFileLockClassifier()

	assert.True(t, c.IsTransient(lockedErr()))
	assert.True(t, c.IsTransient(fmt.Errorf("failed to write: %w", lockedErr())))
	assert.False(t, c.IsTransient(nil))
	assert.False(t, c.IsTransient(errors.New("disk on fire")))
	assert.False(t, c.IsTransient(&fs.PathError{Op: "open", Path: "x", Err: fs.ErrNotExist}))
	assert.False(t, c.IsTransient(&fs.PathError{Op: "open", Path: "x", Err: syscall.ENOENT}))
}

func TestExponentialBackoff_NextDelay(t *testing.T) {
	b := NewExponentialBackoff(5, WithInitialDelay(100*time.Millisecond), WithMaxDelay(time.Second), WithJitter(0))

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 100 * time.Millisecond},
		{1, 200 * time.Millisecond},
		{2, 400 * time.Millisecond},
		{3, 800 * time.Millisecond},
		{4, time.Second},
		{10, time.Second},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, b.NextDelay(tt.attempt), "attempt %d", tt.attempt)
	}
	assert.Equal(t, 5, b.MaxAttempts())
}

func TestExponentialBackoff_Jitter(t *testing.T) {
	high := NewExponentialBackoff(1, WithInitialDelay(100*time.Millisecond), WithJitterFunc(func() float64 { return 1.0 }))
	low := NewExponentialBackoff(1, WithInitialDelay(100*time.Millisecond), WithJitterFunc(func() float64 { return 0.0 }))

	assert.Equal(t, 110*time.Millisecond, high.NextDelay(0))
	assert.Equal(t, 90*time.Millisecond, low.NextDelay(0))
}

func TestExecutor_SuccessAfterRetries(t *testing.T) {
	op := &flakyOperation{failures: 2, err: lockedErr()}
	var retries []int

	err := NewExecutor(NewFileLockClassifier(), fastBackoff(3)).
		WithOnRetry(func(attempt int, _ error, _ time.Duration) { retries = append(retries, attempt) }).
		Execute(context.Background(), op.run)

	require.NoError(t, err)
	assert.Equal(t, 3, op.invocations)
	assert.Equal(t, []int{0, 1}, retries)
}

func TestExecutor_GivesUp(t *testing.T) {
	op := &flakyOperation{failures: 10, err: lockedErr()}

	err := NewExecutor(NewFileLockClassifier(), fastBackoff(2)).Execute(context.Background(), op.run)

	assert.ErrorIs(t, err, lockErrnos[0])
	assert.Equal(t, 3, op.invocations, "first try plus two retries")
}

func TestExecutor_FatalErrorNotRetried(t *testing.T) {
	boom := errors.New("read-only filesystem")
	op := &flakyOperation{failures: 10, err: boom}

	err := NewExecutor(NewFileLockClassifier(), fastBackoff(5)).Execute(context.Background(), op.run)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, op.invocations)
}

func TestExecutor_NoRetry(t *testing.T) {
	op := &flakyOperation{failures: 1, err: lockedErr()}

	err := NoRetry().Execute(context.Background(), op.run)

	assert.Error(t, err)
	assert.Equal(t, 1, op.invocations)
}

func TestExecutor_ContextCancelledDuringWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	op := &flakyOperation{failures: 10, err: lockedErr()}

	err := NewExecutor(NewFileLockClassifier(), NewExponentialBackoff(5, WithInitialDelay(time.Hour), WithJitter(0))).
		WithOnRetry(func(int, error, time.Duration) { cancel() }).
		Execute(ctx, op.run)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, op.invocations)
}

func TestNewExecutor_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { NewExecutor(nil, fastBackoff(1)) })
	assert.Panics(t, func() { NewExecutor(NewFileLockClassifier(), nil) })
}
