package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func noBackoff(int) time.Duration { return 0 }

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := Do(context.Background(), 4, noBackoff, func() error {
		calls++
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_RetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := Do(context.Background(), 4, noBackoff, func() error {
		calls++
		if calls < 3 {
			return errors.New("temporary failure")
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_ExhaustsAllAttempts(t *testing.T) {
	calls := 0
	failure := errors.New("delivery failed")
	err := Do(context.Background(), 4, noBackoff, func() error {
		calls++
		return failure
	})

	assert.Error(t, err)
	assert.ErrorIs(t, err, failure)
	assert.Equal(t, 4, calls)
}

func TestDo_PermanentStopsImmediately(t *testing.T) {
	calls := 0
	validationErr := errors.New("invalid payload")
	err := Do(context.Background(), 4, noBackoff, func() error {
		calls++
		return Permanent(validationErr)
	})

	assert.Equal(t, validationErr, err)
	assert.Equal(t, 1, calls)
}

func TestDo_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Do(ctx, 4, Linear(time.Second), func() error {
		calls++
		return errors.New("temporary failure")
	})

	// Первая попытка выполняется без паузы, отмена срабатывает перед второй.
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestLinear(t *testing.T) {
	backoff := Linear(time.Second)
	assert.Equal(t, time.Second, backoff(1))
	assert.Equal(t, 3*time.Second, backoff(3))
}

func TestPermanent_Nil(t *testing.T) {
	assert.NoError(t, Permanent(nil))
}
