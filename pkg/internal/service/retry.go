package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	nlog "github.com/yeisme/docvault/pkg/log"
	"github.com/yeisme/docvault/pkg/internal/types"
)

// classifyDBError 将 GORM 错误映射为业务错误分类.
// 记录不存在不可重试；其余数据库错误视为临时故障.
func classifyDBError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.ErrNotFound
	}

	if isDomainError(err) {
		return err
	}

	return errors.Join(types.ErrTransient, err)
}

// isDomainError 判断错误是否已属于业务分类.
func isDomainError(err error) bool {
	return errors.Is(err, types.ErrInvalidInput) ||
		errors.Is(err, types.ErrForbidden) ||
		errors.Is(err, types.ErrNotFound) ||
		errors.Is(err, types.ErrUnauthorized) ||
		errors.Is(err, types.ErrTransient) ||
		errors.Is(err, types.ErrInconsistent)
}

// readWithRetries 执行只读操作，临时故障时线性退避重试.
// 返回 (结果, 实际尝试次数, 错误)；变更操作绝不经过此路径.
func readWithRetries[T any](ctx context.Context, s *VaultService, op string, fn func() (T, error)) (T, int, error) {
	var (
		zero     T
		lastErr  error
		attempts int
	)

	maxAttempts := 1 + s.cfg.ReadRetries
	backoff := s.cfg.GetRetryBackoff()

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		attempts = attempt

		if err := ctx.Err(); err != nil {
			return zero, attempts, errors.Join(types.ErrTransient, err)
		}

		value, err := fn()
		if err == nil {
			return value, attempts, nil
		}

		lastErr = classifyDBError(err)
		if !errors.Is(lastErr, types.ErrTransient) {
			return zero, attempts, lastErr
		}

		if attempt < maxAttempts {
			// 线性退避：backoff, 2*backoff, ...
			wait := time.Duration(attempt) * backoff
			nlog.Logger().Warn().
				Err(err).
				Str("op", op).
				Int("attempt", attempt).
				Dur("backoff", wait).
				Msg("transient read failure, retrying")
			s.sleep(wait)
		}
	}

	return zero, attempts, lastErr
}
