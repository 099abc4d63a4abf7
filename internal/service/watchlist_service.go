package service

import (
	"context"
	"log/slog"

	"cinelist/internal/middleware"
	"cinelist/internal/models"
	"cinelist/internal/observability"
	"cinelist/internal/repository"
	"cinelist/internal/validation"
)

// WatchlistService applies request validation and mutation accounting on top
// of the owner-filtered watchlist store.
type WatchlistService struct {
	repo repository.WatchlistRepository
}

func NewWatchlistService(repo repository.WatchlistRepository) *WatchlistService {
	return &WatchlistService{repo: repo}
}

func recordMutation(ctx context.Context, operation, watchlistID string) {
	middleware.WatchlistMutations.WithLabelValues(operation).Inc()
	middleware.Logger.InfoContext(ctx, "watchlist mutated",
		slog.String("operation", operation),
		slog.String("watchlist_id", watchlistID),
	)
}

func (s *WatchlistService) Create(ctx context.Context, ownerID uint, in validation.WatchlistRequest) (*models.Watchlist, error) {
	ctx, span := observability.StartSpan(ctx, "WatchlistService", "Create")
	defer span.End()

	if err := validation.Struct(&in); err != nil {
		return nil, err
	}

	w := &models.Watchlist{
		OwnerID:     ownerID,
		Name:        in.Name,
		Description: in.Description,
	}
	if err := s.repo.Create(ctx, w); err != nil {
		return nil, err
	}
	recordMutation(ctx, "create", w.ID)
	return w, nil
}

func (s *WatchlistService) List(ctx context.Context, ownerID uint) ([]models.Watchlist, error) {
	ctx, span := observability.StartSpan(ctx, "WatchlistService", "List")
	defer span.End()

	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *WatchlistService) Get(ctx context.Context, ownerID uint, id string) (*models.Watchlist, error) {
	ctx, span := observability.StartSpan(ctx, "WatchlistService", "Get")
	defer span.End()

	return s.repo.GetForOwner(ctx, id, ownerID)
}

// Update replaces name and description. An omitted description clears it.
func (s *WatchlistService) Update(ctx context.Context, ownerID uint, id string, in validation.WatchlistRequest) (*models.Watchlist, error) {
	ctx, span := observability.StartSpan(ctx, "WatchlistService", "Update")
	defer span.End()

	if err := validation.Struct(&in); err != nil {
		return nil, err
	}

	w, err := s.repo.UpdateForOwner(ctx, id, ownerID, in.Name, in.Description)
	if err != nil {
		return nil, err
	}
	recordMutation(ctx, "update", id)
	return w, nil
}

func (s *WatchlistService) Delete(ctx context.Context, ownerID uint, id string) error {
	ctx, span := observability.StartSpan(ctx, "WatchlistService", "Delete")
	defer span.End()

	if err := s.repo.DeleteForOwner(ctx, id, ownerID); err != nil {
		return err
	}
	recordMutation(ctx, "delete", id)
	return nil
}

func (s *WatchlistService) AddItem(ctx context.Context, ownerID uint, id string, in validation.AddItemRequest) (*models.WatchlistItem, error) {
	ctx, span := observability.StartSpan(ctx, "WatchlistService", "AddItem")
	defer span.End()

	if err := validation.Struct(&in); err != nil {
		return nil, err
	}

	item := in.Item()
	if err := s.repo.AddItem(ctx, id, ownerID, item); err != nil {
		return nil, err
	}
	recordMutation(ctx, "add_item", id)
	return item, nil
}

func (s *WatchlistService) UpdateItem(ctx context.Context, ownerID uint, id, itemID string, in validation.UpdateItemRequest) (*models.WatchlistItem, error) {
	ctx, span := observability.StartSpan(ctx, "WatchlistService", "UpdateItem")
	defer span.End()

	if err := validation.Struct(&in); err != nil {
		return nil, err
	}

	item, err := s.repo.UpdateItem(ctx, id, itemID, ownerID, in.Patch())
	if err != nil {
		return nil, err
	}
	recordMutation(ctx, "update_item", id)
	return item, nil
}

func (s *WatchlistService) RemoveItem(ctx context.Context, ownerID uint, id, itemID string) error {
	ctx, span := observability.StartSpan(ctx, "WatchlistService", "RemoveItem")
	defer span.End()

	if err := s.repo.RemoveItem(ctx, id, itemID, ownerID); err != nil {
		return err
	}
	recordMutation(ctx, "remove_item", id)
	return nil
}
