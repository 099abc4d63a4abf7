package repository

import (
	"context"
	"errors"

	"cinelist/internal/database"
	"cinelist/internal/models"

	"gorm.io/gorm"
)

// WatchlistRepository persists watchlists and their items. Every method takes
// the acting owner and filters by it in the query itself, so ids owned by
// someone else behave exactly like ids that do not exist.
type WatchlistRepository interface {
	Create(ctx context.Context, w *models.Watchlist) error
	ListByOwner(ctx context.Context, ownerID uint) ([]models.Watchlist, error)
	GetForOwner(ctx context.Context, id string, ownerID uint) (*models.Watchlist, error)
	UpdateForOwner(ctx context.Context, id string, ownerID uint, name, description string) (*models.Watchlist, error)
	DeleteForOwner(ctx context.Context, id string, ownerID uint) error
	AddItem(ctx context.Context, watchlistID string, ownerID uint, item *models.WatchlistItem) error
	UpdateItem(ctx context.Context, watchlistID, itemID string, ownerID uint, patch models.ItemPatch) (*models.WatchlistItem, error)
	RemoveItem(ctx context.Context, watchlistID, itemID string, ownerID uint) error
}

type watchlistRepository struct {
	db *gorm.DB
}

// NewWatchlistRepository returns a new WatchlistRepository implementation.
func NewWatchlistRepository(db *gorm.DB) WatchlistRepository {
	return &watchlistRepository{db: db}
}

func itemsByAddedAt(db *gorm.DB) *gorm.DB {
	return db.Order("added_at ASC").Order("id ASC")
}

func (r *watchlistRepository) Create(ctx context.Context, w *models.Watchlist) error {
	if err := r.db.WithContext(ctx).Omit("Items").Create(w).Error; err != nil {
		return models.NewInternalError(err)
	}
	w.Items = []models.WatchlistItem{}
	return nil
}

func (r *watchlistRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.Watchlist, error) {
	lists := []models.Watchlist{}
	err := r.db.WithContext(ctx).
		Preload("Items", itemsByAddedAt).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").Order("id ASC").
		Find(&lists).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return lists, nil
}

func (r *watchlistRepository) GetForOwner(ctx context.Context, id string, ownerID uint) (*models.Watchlist, error) {
	return r.load(r.db.WithContext(ctx), id, ownerID)
}

func (r *watchlistRepository) load(db *gorm.DB, id string, ownerID uint) (*models.Watchlist, error) {
	var w models.Watchlist
	err := db.Preload("Items", itemsByAddedAt).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&w).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Watchlist")
		}
		return nil, models.NewInternalError(err)
	}
	return &w, nil
}

func (r *watchlistRepository) UpdateForOwner(ctx context.Context, id string, ownerID uint, name, description string) (*models.Watchlist, error) {
	var updated *models.Watchlist
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Watchlist{}).
			Where("id = ? AND owner_id = ?", id, ownerID).
			Updates(map[string]interface{}{
				"name":        name,
				"description": description,
				"updated_at":  tx.NowFunc(),
			})
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Watchlist")
		}
		w, err := r.load(tx, id, ownerID)
		if err != nil {
			return err
		}
		updated = w
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *watchlistRepository) DeleteForOwner(ctx context.Context, id string, ownerID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned := tx.Model(&models.Watchlist{}).Select("id").Where("id = ? AND owner_id = ?", id, ownerID)
		if err := tx.Where("watchlist_id IN (?)", owned).Delete(&models.WatchlistItem{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		res := tx.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.Watchlist{})
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Watchlist")
		}
		return nil
	})
}

// touch bumps updated_at on an owned watchlist. The conditional update is also
// the ownership check for item mutations.
func touch(tx *gorm.DB, id string, ownerID uint) error {
	res := tx.Model(&models.Watchlist{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		UpdateColumn("updated_at", tx.NowFunc())
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Watchlist")
	}
	return nil
}

func (r *watchlistRepository) AddItem(ctx context.Context, watchlistID string, ownerID uint, item *models.WatchlistItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := touch(tx, watchlistID, ownerID); err != nil {
			return err
		}

		item.WatchlistID = watchlistID
		item.AddedAt = tx.NowFunc()
		if item.Status == "" {
			item.Status = models.ItemStatusPlanToWatch
		}

		if err := tx.Create(item).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return models.NewConflictError("Item already exists")
			}
			return models.NewInternalError(err)
		}
		return nil
	})
}

func (r *watchlistRepository) UpdateItem(ctx context.Context, watchlistID, itemID string, ownerID uint, patch models.ItemPatch) (*models.WatchlistItem, error) {
	var item models.WatchlistItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := touch(tx, watchlistID, ownerID); err != nil {
			return err
		}

		changes := map[string]interface{}{}
		if patch.Status != nil {
			changes["status"] = *patch.Status
		}
		if patch.Rating != nil {
			changes["rating"] = *patch.Rating
		}
		if patch.PersonalNotes != nil {
			changes["personal_notes"] = *patch.PersonalNotes
		}
		if len(changes) == 0 {
			return models.NewValidationError("No fields to update")
		}

		res := tx.Model(&models.WatchlistItem{}).
			Where("id = ? AND watchlist_id = ?", itemID, watchlistID).
			Updates(changes)
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Item")
		}

		if err := tx.Where("id = ?", itemID).First(&item).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *watchlistRepository) RemoveItem(ctx context.Context, watchlistID, itemID string, ownerID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := touch(tx, watchlistID, ownerID); err != nil {
			return err
		}
		res := tx.Where("id = ? AND watchlist_id = ?", itemID, watchlistID).Delete(&models.WatchlistItem{})
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Item")
		}
		return nil
	})
}
