package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/site_ledger_app/internal/apperrors"
	"github.com/SscSPs/site_ledger_app/internal/core/domain"
	"github.com/SscSPs/site_ledger_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	clock func() time.Time
}

// Option configures the shared parts of a service.
type Option func(*BaseService)

// WithClock overrides the time source used for timestamps and entry dates.
func WithClock(clock func() time.Time) Option {
	return func(s *BaseService) {
		s.clock = clock
	}
}

func newBaseService(opts []Option) BaseService {
	base := BaseService{clock: time.Now}
	for _, opt := range opts {
		opt(&base)
	}
	return base
}

// Now returns the current time from the configured clock.
func (s *BaseService) Now() time.Time {
	if s.clock == nil {
		return time.Now()
	}
	return s.clock()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// RequireRole fails with apperrors.ErrForbidden unless the actor holds one of roles.
func (s *BaseService) RequireRole(ctx context.Context, actor domain.Actor, action string, roles ...domain.Role) error {
	for _, role := range roles {
		if actor.Role == role {
			return nil
		}
	}
	err := fmt.Errorf("%w: role %q may not %s", apperrors.ErrForbidden, actor.Role, action)
	s.LogError(ctx, err, "Actor not allowed",
		slog.String("user_id", actor.UserID),
		slog.String("action", action))
	return err
}
