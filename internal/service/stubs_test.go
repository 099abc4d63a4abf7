package service

import (
	"context"
	"errors"
	"testing"

	"cinelist/internal/models"

	"github.com/stretchr/testify/require"
)

type userRepoStub struct {
	getByIDFn              func(context.Context, uint) (*models.User, error)
	getByEmailFn           func(context.Context, string) (*models.User, error)
	getByUsernameFn        func(context.Context, string) (*models.User, error)
	createFn               func(context.Context, *models.User) error
	updateProfilePictureFn func(context.Context, uint, string) (*models.User, error)

	getByIDCalls int
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	s.getByIDCalls++
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) UpdateProfilePicture(ctx context.Context, id uint, url string) (*models.User, error) {
	return s.updateProfilePictureFn(ctx, id, url)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:    func(context.Context, string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:        func(context.Context, *models.User) error { return nil },
		updateProfilePictureFn: func(_ context.Context, id uint, url string) (*models.User, error) {
			return &models.User{ID: id, ProfilePicture: url}, nil
		},
	}
}

type watchlistRepoStub struct {
	createFn         func(context.Context, *models.Watchlist) error
	listByOwnerFn    func(context.Context, uint) ([]models.Watchlist, error)
	getForOwnerFn    func(context.Context, string, uint) (*models.Watchlist, error)
	updateForOwnerFn func(context.Context, string, uint, string, string) (*models.Watchlist, error)
	deleteForOwnerFn func(context.Context, string, uint) error
	addItemFn        func(context.Context, string, uint, *models.WatchlistItem) error
	updateItemFn     func(context.Context, string, string, uint, models.ItemPatch) (*models.WatchlistItem, error)
	removeItemFn     func(context.Context, string, string, uint) error
}

func (s *watchlistRepoStub) Create(ctx context.Context, w *models.Watchlist) error {
	return s.createFn(ctx, w)
}
func (s *watchlistRepoStub) ListByOwner(ctx context.Context, ownerID uint) ([]models.Watchlist, error) {
	return s.listByOwnerFn(ctx, ownerID)
}
func (s *watchlistRepoStub) GetForOwner(ctx context.Context, id string, ownerID uint) (*models.Watchlist, error) {
	return s.getForOwnerFn(ctx, id, ownerID)
}
func (s *watchlistRepoStub) UpdateForOwner(ctx context.Context, id string, ownerID uint, name, description string) (*models.Watchlist, error) {
	return s.updateForOwnerFn(ctx, id, ownerID, name, description)
}
func (s *watchlistRepoStub) DeleteForOwner(ctx context.Context, id string, ownerID uint) error {
	return s.deleteForOwnerFn(ctx, id, ownerID)
}
func (s *watchlistRepoStub) AddItem(ctx context.Context, watchlistID string, ownerID uint, item *models.WatchlistItem) error {
	return s.addItemFn(ctx, watchlistID, ownerID, item)
}
func (s *watchlistRepoStub) UpdateItem(ctx context.Context, watchlistID, itemID string, ownerID uint, patch models.ItemPatch) (*models.WatchlistItem, error) {
	return s.updateItemFn(ctx, watchlistID, itemID, ownerID, patch)
}
func (s *watchlistRepoStub) RemoveItem(ctx context.Context, watchlistID, itemID string, ownerID uint) error {
	return s.removeItemFn(ctx, watchlistID, itemID, ownerID)
}

func failOnCall(t *testing.T) *watchlistRepoStub {
	fail := func() { t.Helper(); t.Fatal("repository must not be called") }
	return &watchlistRepoStub{
		createFn:      func(context.Context, *models.Watchlist) error { fail(); return nil },
		listByOwnerFn: func(context.Context, uint) ([]models.Watchlist, error) { fail(); return nil, nil },
		getForOwnerFn: func(context.Context, string, uint) (*models.Watchlist, error) { fail(); return nil, nil },
		updateForOwnerFn: func(context.Context, string, uint, string, string) (*models.Watchlist, error) {
			fail()
			return nil, nil
		},
		deleteForOwnerFn: func(context.Context, string, uint) error { fail(); return nil },
		addItemFn:        func(context.Context, string, uint, *models.WatchlistItem) error { fail(); return nil },
		updateItemFn: func(context.Context, string, string, uint, models.ItemPatch) (*models.WatchlistItem, error) {
			fail()
			return nil, nil
		},
		removeItemFn: func(context.Context, string, string, uint) error { fail(); return nil },
	}
}

func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected app error, got %#v", err)
	require.Equal(t, code, appErr.Code)
}
