// Package seed creates demo users and watchlists for local development.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"cinelist/internal/auth"
	"cinelist/internal/middleware"
	"cinelist/internal/models"
	"cinelist/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// DefaultPassword is the password of every seeded user.
const DefaultPassword = "password123"

var itemStatuses = []string{
	string(models.ItemStatusPlanToWatch),
	string(models.ItemStatusWatching),
	string(models.ItemStatusWatched),
}

// Seeder writes demo data through the same repositories the API uses.
type Seeder struct {
	db         *gorm.DB
	users      repository.UserRepository
	watchlists repository.WatchlistRepository
	faker      *gofakeit.Faker
}

// NewSeeder creates a seeder bound to db.
func NewSeeder(db *gorm.DB) *Seeder {
	return NewSeederWithFaker(db, gofakeit.New(0))
}

// NewSeederWithFaker uses faker for generated values, so a seeded faker
// yields reproducible data.
func NewSeederWithFaker(db *gorm.DB, faker *gofakeit.Faker) *Seeder {
	return &Seeder{
		db:         db,
		users:      repository.NewUserRepository(db),
		watchlists: repository.NewWatchlistRepository(db),
		faker:      faker,
	}
}

// ClearAll deletes every item, watchlist and user.
func (s *Seeder) ClearAll() error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{"watchlist_items", "watchlists", "users"} {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		return nil
	})
}

// SeedUsers creates n users sharing DefaultPassword.
func (s *Seeder) SeedUsers(n int) ([]*models.User, error) {
	ctx := context.Background()

	hash, err := auth.HashPassword(DefaultPassword)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		// The suffix keeps generated names unique across runs.
		suffix := strconv.Itoa(i) + s.faker.DigitN(4)
		user := &models.User{
			Username:       s.faker.Username() + suffix,
			Email:          fmt.Sprintf("demo%s@%s", suffix, s.faker.DomainName()),
			Password:       hash,
			ProfilePicture: fmt.Sprintf("https://i.pravatar.cc/300?u=%s", s.faker.UUID()),
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("create user %d: %w", i, err)
		}
		users = append(users, user)
	}

	middleware.Logger.Info("seeded users", slog.Int("count", len(users)))
	return users, nil
}

// SeedWatchlists gives every user lists watchlists of items titles each.
func (s *Seeder) SeedWatchlists(users []*models.User, lists, items int) error {
	ctx := context.Background()

	created := 0
	for _, user := range users {
		for l := 0; l < lists; l++ {
			w := &models.Watchlist{
				OwnerID:     user.ID,
				Name:        s.faker.MovieGenre() + " night",
				Description: s.faker.Sentence(8),
			}
			if err := s.watchlists.Create(ctx, w); err != nil {
				return fmt.Errorf("create watchlist: %w", err)
			}

			for i := 0; i < items; i++ {
				if err := s.addItem(ctx, w.ID, user.ID, i); err != nil {
					return err
				}
			}
			created++
		}
	}

	middleware.Logger.Info("seeded watchlists", slog.Int("count", created))
	return nil
}

func (s *Seeder) addItem(ctx context.Context, watchlistID string, ownerID uint, i int) error {
	mediaType := models.MediaTypeMovie
	if s.faker.Bool() {
		mediaType = models.MediaTypeTV
	}
	item := &models.WatchlistItem{
		// Distinct per list so the unique index never trips.
		MovieID:     strconv.Itoa(i*100000 + s.faker.Number(1, 99999)),
		Title:       s.faker.MovieName(),
		MediaType:   mediaType,
		PosterPath:  "/" + s.faker.LetterN(16) + ".jpg",
		ReleaseDate: s.faker.Date().Format("2006-01-02"),
	}
	if err := s.watchlists.AddItem(ctx, watchlistID, ownerID, item); err != nil {
		return fmt.Errorf("add item: %w", err)
	}

	status := models.ItemStatus(s.faker.RandomString(itemStatuses))
	patch := models.ItemPatch{Status: &status}
	if status == models.ItemStatusWatched {
		rating := s.faker.Number(models.MinRating, models.MaxRating)
		notes := s.faker.Sentence(6)
		patch.Rating = &rating
		patch.PersonalNotes = &notes
	}
	if _, err := s.watchlists.UpdateItem(ctx, watchlistID, item.ID, ownerID, patch); err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}
