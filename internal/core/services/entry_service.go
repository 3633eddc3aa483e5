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

// entryService implements the EntrySvcFacade interface
type entryService struct {
	BaseService
	entryRepo portsrepo.EntryRepositoryFacade
}

// NewEntryService creates a new one-time entry service
func NewEntryService(repo portsrepo.EntryRepositoryFacade) portssvc.EntrySvcFacade {
	return &entryService{entryRepo: repo}
}

// Ensure entryService implements the EntrySvcFacade interface
var _ portssvc.EntrySvcFacade = (*entryService)(nil)

func (s *entryService) CreateEntry(ctx context.Context, req dto.CreateEntryRequest, userID string) (*domain.OneTimeEntry, error) {
	now := time.Now()

	entry := domain.OneTimeEntry{
		EntryID:  uuid.NewString(),
		UserID:   userID,
		Kind:     req.Kind,
		Amount:   req.Amount,
		Date:     req.Date,
		Category: req.Category,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := entry.Validate(); err != nil {
		s.LogDebug(ctx, "Entry validation failed", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.entryRepo.SaveEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save entry", slog.String("entry_id", entry.EntryID))
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}

	s.LogInfo(ctx, "Entry created",
		slog.String("entry_id", entry.EntryID),
		slog.String("kind", string(entry.Kind)))
	return &entry, nil
}

func (s *entryService) GetEntryByID(ctx context.Context, entryID string, userID string) (*domain.OneTimeEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeOwner(ctx, entry.UserID, userID); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *entryService) ListEntries(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.OneTimeEntry, *string, error) {
	entries, next, err := s.entryRepo.ListEntriesByUser(ctx, userID, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entries", slog.String("user_id", userID))
		return nil, nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, next, nil
}

func (s *entryService) DeleteEntry(ctx context.Context, entryID string, userID string) error {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return err
	}
	if err := s.AuthorizeOwner(ctx, entry.UserID, userID); err != nil {
		return err
	}

	if err := s.entryRepo.DeleteEntry(ctx, entryID); err != nil {
		s.LogError(ctx, err, "Failed to delete entry", slog.String("entry_id", entryID))
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	s.LogInfo(ctx, "Entry deleted", slog.String("entry_id", entryID))
	return nil
}
