package services

import (
	"context"
	"log/slog"

	"github.com/finsight/backend/internal/apperrors"
	"github.com/finsight/backend/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		// Return a default logger if not found in context
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// AuthorizeOwner verifies that the requesting user owns the resource. All
// resources in this application are single-owner, so ownership is the only
// authorization rule services need.
func (s *BaseService) AuthorizeOwner(ctx context.Context, resourceOwnerID, requestingUserID string) error {
	if resourceOwnerID != requestingUserID {
		s.LogDebug(ctx, "Ownership check failed",
			slog.String("owner_id", resourceOwnerID),
			slog.String("requesting_user_id", requestingUserID))
		return apperrors.ErrForbidden
	}
	return nil
}
