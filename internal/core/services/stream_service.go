package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finsight/backend/internal/core/domain"
	portsrepo "github.com/finsight/backend/internal/core/ports/repositories"
	portssvc "github.com/finsight/backend/internal/core/ports/services"
	"github.com/finsight/backend/internal/dto"
	"github.com/google/uuid"
)

// streamService implements the StreamSvcFacade interface
type streamService struct {
	BaseService
	streamRepo portsrepo.StreamRepositoryFacade
}

// NewStreamService creates a new stream service
func NewStreamService(repo portsrepo.StreamRepositoryFacade) portssvc.StreamSvcFacade {
	return &streamService{streamRepo: repo}
}

// Ensure streamService implements the StreamSvcFacade interface
var _ portssvc.StreamSvcFacade = (*streamService)(nil)

func (s *streamService) CreateStream(ctx context.Context, req dto.CreateStreamRequest, userID string) (*domain.CashFlowStream, error) {
	now := time.Now()

	stream := domain.CashFlowStream{
		StreamID:    uuid.NewString(),
		UserID:      userID,
		Name:        req.Name,
		Kind:        req.Kind,
		Amount:      req.Amount,
		Frequency:   req.Frequency,
		ActiveFrom:  req.ActiveFrom,
		ActiveUntil: req.ActiveUntil,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := stream.Validate(); err != nil {
		s.LogDebug(ctx, "Stream validation failed", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.streamRepo.SaveStream(ctx, stream); err != nil {
		s.LogError(ctx, err, "Failed to save stream", slog.String("stream_id", stream.StreamID))
		return nil, fmt.Errorf("failed to create stream: %w", err)
	}

	s.LogInfo(ctx, "Stream created",
		slog.String("stream_id", stream.StreamID),
		slog.String("kind", string(stream.Kind)))
	return &stream, nil
}

func (s *streamService) GetStreamByID(ctx context.Context, streamID string, userID string) (*domain.CashFlowStream, error) {
	stream, err := s.streamRepo.FindStreamByID(ctx, streamID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeOwner(ctx, stream.UserID, userID); err != nil {
		return nil, err
	}
	return stream, nil
}

func (s *streamService) ListStreams(ctx context.Context, userID string, limit int, nextToken *string, includeInactive bool) ([]domain.CashFlowStream, *string, error) {
	streams, next, err := s.streamRepo.ListStreamsByUser(ctx, userID, limit, nextToken, includeInactive)
	if err != nil {
		s.LogError(ctx, err, "Failed to list streams", slog.String("user_id", userID))
		return nil, nil, fmt.Errorf("failed to list streams: %w", err)
	}
	return streams, next, nil
}

func (s *streamService) UpdateStream(ctx context.Context, streamID string, req dto.UpdateStreamRequest, userID string) (*domain.CashFlowStream, error) {
	stream, err := s.streamRepo.FindStreamByID(ctx, streamID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeOwner(ctx, stream.UserID, userID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		stream.Name = *req.Name
	}
	if req.Amount != nil {
		stream.Amount = *req.Amount
	}
	if req.ActiveUntil != nil {
		stream.ActiveUntil = req.ActiveUntil
	}
	stream.LastUpdatedAt = time.Now()
	stream.LastUpdatedBy = userID

	if err := stream.Validate(); err != nil {
		return nil, err
	}

	if err := s.streamRepo.UpdateStream(ctx, *stream); err != nil {
		s.LogError(ctx, err, "Failed to update stream", slog.String("stream_id", streamID))
		return nil, fmt.Errorf("failed to update stream: %w", err)
	}
	return stream, nil
}

func (s *streamService) DeactivateStream(ctx context.Context, streamID string, userID string) error {
	stream, err := s.streamRepo.FindStreamByID(ctx, streamID)
	if err != nil {
		return err
	}
	if err := s.AuthorizeOwner(ctx, stream.UserID, userID); err != nil {
		return err
	}

	if err := s.streamRepo.DeactivateStream(ctx, streamID, userID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate stream", slog.String("stream_id", streamID))
		return fmt.Errorf("failed to deactivate stream: %w", err)
	}

	s.LogInfo(ctx, "Stream deactivated", slog.String("stream_id", streamID))
	return nil
}
