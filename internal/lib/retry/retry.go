// Package retry реализует повтор операции с ограниченным числом попыток
// и настраиваемой задержкой между ними.
//
// Повторяются только временные ошибки: ошибка, обернутая в Permanent,
// останавливает повтор немедленно и возвращается вызывающему.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// BackoffFunc возвращает задержку перед попыткой с номером attempt (нумерация с 1).
type BackoffFunc func(attempt int) time.Duration

// Linear возвращает линейно растущую задержку: attempt × step.
func Linear(step time.Duration) BackoffFunc {
	return func(attempt int) time.Duration {
		return time.Duration(attempt) * step
	}
}

// permanentError помечает ошибку как неповторяемую.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }

func (e *permanentError) Unwrap() error { return e.err }

// Permanent оборачивает ошибку так, что Do прекращает попытки
// и возвращает исходную ошибку без повтора.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Do выполняет fn до maxAttempts раз. Перед повторной попыткой n выдерживается
// пауза backoff(n). Ошибка, помеченная Permanent, возвращается сразу.
//
// После исчерпания попыток возвращается последняя ошибка, обернутая
// с количеством сделанных попыток.
func Do(ctx context.Context, maxAttempts int, backoff BackoffFunc, fn func() error) error {
	const op = "retry.Do"
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-time.After(backoff(attempt - 1)):
			case <-ctx.Done():
				return fmt.Errorf("%s: %w", op, ctx.Err())
			}
		}

		err := fn()
		if err == nil {
			return nil
		}

		var perm *permanentError
		if errors.As(err, &perm) {
			return perm.err
		}
		lastErr = err
	}
	return fmt.Errorf("%s: all %d attempts failed: %w", op, maxAttempts, lastErr)
}
