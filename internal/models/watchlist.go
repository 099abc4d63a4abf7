package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MediaType is the catalog kind of a watchlist item.
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
)

// ItemStatus tracks a user's progress on a watchlist item. Any value may
// change to any other.
type ItemStatus string

const (
	ItemStatusWatched     ItemStatus = "watched"
	ItemStatusWatching    ItemStatus = "watching"
	ItemStatusPlanToWatch ItemStatus = "plan_to_watch"
)

// Rating bounds for WatchlistItem.Rating.
const (
	MinRating = 1
	MaxRating = 5
)

// Watchlist is a named collection of catalog items owned by one user.
type Watchlist struct {
	ID          string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	OwnerID     uint            `gorm:"not null;index" json:"ownerId"`
	Owner       *User           `gorm:"foreignKey:OwnerID" json:"-"`
	Name        string          `gorm:"not null;size:200" json:"name"`
	Description string          `gorm:"size:2000" json:"description"`
	Items       []WatchlistItem `gorm:"foreignKey:WatchlistID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// BeforeCreate assigns the server-generated id.
func (w *Watchlist) BeforeCreate(_ *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}

// AfterFind keeps "items" serialized as an array for empty watchlists.
func (w *Watchlist) AfterFind(_ *gorm.DB) error {
	if w.Items == nil {
		w.Items = []WatchlistItem{}
	}
	return nil
}

// WatchlistItem is an entry inside a watchlist. (WatchlistID, MovieID, MediaType)
// is unique.
type WatchlistItem struct {
	ID            string     `gorm:"primaryKey;type:varchar(36)" json:"id"`
	WatchlistID   string     `gorm:"not null;type:varchar(36);uniqueIndex:idx_watchlist_items_unique,priority:1" json:"-"`
	MovieID       string     `gorm:"not null;size:64;uniqueIndex:idx_watchlist_items_unique,priority:2" json:"movieId"`
	MediaType     MediaType  `gorm:"not null;size:16;uniqueIndex:idx_watchlist_items_unique,priority:3" json:"mediaType"`
	Title         string     `gorm:"not null;size:500" json:"title"`
	PosterPath    string     `gorm:"size:500" json:"posterPath,omitempty"`
	ReleaseDate   string     `gorm:"size:32" json:"releaseDate,omitempty"`
	AddedAt       time.Time  `gorm:"not null;index" json:"addedAt"`
	Status        ItemStatus `gorm:"not null;size:32;default:plan_to_watch" json:"status"`
	Rating        *int       `json:"rating,omitempty"`
	PersonalNotes string     `gorm:"size:5000" json:"personalNotes,omitempty"`
}

// BeforeCreate assigns the sub-id and the default status.
func (i *WatchlistItem) BeforeCreate(_ *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Status == "" {
		i.Status = ItemStatusPlanToWatch
	}
	return nil
}

// ValidMediaType reports whether m is a supported catalog kind.
func ValidMediaType(m MediaType) bool {
	return m == MediaTypeMovie || m == MediaTypeTV
}

// ValidItemStatus reports whether s is one of the three statuses.
func ValidItemStatus(s ItemStatus) bool {
	switch s {
	case ItemStatusWatched, ItemStatusWatching, ItemStatusPlanToWatch:
		return true
	}
	return false
}

// ItemPatch is a partial update of the mutable item fields. Nil fields are
// left unchanged.
type ItemPatch struct {
	Status        *ItemStatus
	Rating        *int
	PersonalNotes *string
}

// Empty reports whether the patch changes nothing.
func (p ItemPatch) Empty() bool {
	return p.Status == nil && p.Rating == nil && p.PersonalNotes == nil
}
