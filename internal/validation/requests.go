package validation

import (
	"strings"

	"cinelist/internal/models"
)

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=72"`
}

// Normalize trims the username and trims and lower-cases the email.
func (r *RegisterRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = NormalizeEmail(r.Email)
	if strings.TrimSpace(r.Password) == "" {
		r.Password = ""
	}
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Email = NormalizeEmail(r.Email)
}

// NormalizeEmail is the canonical stored form of an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// WatchlistRequest is the body of watchlist create and update.
type WatchlistRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

func (r *WatchlistRequest) Normalize() {
	r.Name = Sanitize(r.Name)
	r.Description = Sanitize(r.Description)
}

// AddItemRequest is the body of POST /api/watchlist/:id/add-item.
type AddItemRequest struct {
	MovieID     string `json:"movieId" validate:"required,max=64"`
	Title       string `json:"title" validate:"required,max=500"`
	MediaType   string `json:"mediaType" validate:"required,oneof=movie tv"`
	PosterPath  string `json:"posterPath" validate:"max=500"`
	ReleaseDate string `json:"releaseDate" validate:"max=32"`
}

func (r *AddItemRequest) Normalize() {
	r.MovieID = strings.TrimSpace(r.MovieID)
	r.Title = Sanitize(r.Title)
	r.MediaType = strings.TrimSpace(r.MediaType)
	r.PosterPath = strings.TrimSpace(r.PosterPath)
	r.ReleaseDate = strings.TrimSpace(r.ReleaseDate)
}

// Item builds the new item. Server-assigned fields are left to the store.
func (r *AddItemRequest) Item() *models.WatchlistItem {
	return &models.WatchlistItem{
		MovieID:     r.MovieID,
		Title:       r.Title,
		MediaType:   models.MediaType(r.MediaType),
		PosterPath:  r.PosterPath,
		ReleaseDate: r.ReleaseDate,
	}
}

// UpdateItemRequest is the body of PUT /api/watchlist/:id/items/:itemId.
// Absent fields are left unchanged.
type UpdateItemRequest struct {
	Status        *string `json:"status" validate:"omitempty,oneof=watched watching plan_to_watch"`
	Rating        *int    `json:"rating"`
	PersonalNotes *string `json:"personalNotes" validate:"omitempty,max=5000"`
}

func (r *UpdateItemRequest) Normalize() {
	if r.Status != nil {
		s := strings.TrimSpace(*r.Status)
		r.Status = &s
	}
	sanitizePtr(r.PersonalNotes)
}

func (r *UpdateItemRequest) check() error {
	if r.Status == nil && r.Rating == nil && r.PersonalNotes == nil {
		return models.NewValidationError("At least one of status, rating or personalNotes is required")
	}
	if r.Status != nil && *r.Status == "" {
		return models.NewValidationError("status must be one of: watched, watching, plan_to_watch")
	}
	if r.Rating != nil && (*r.Rating < models.MinRating || *r.Rating > models.MaxRating) {
		return models.NewValidationError("rating must be between 1 and 5")
	}
	return nil
}

// Patch converts the request into the store's partial update.
func (r *UpdateItemRequest) Patch() models.ItemPatch {
	p := models.ItemPatch{Rating: r.Rating, PersonalNotes: r.PersonalNotes}
	if r.Status != nil {
		s := models.ItemStatus(*r.Status)
		p.Status = &s
	}
	return p
}

// ProfilePictureRequest is the body of PUT /api/user/profile/picture.
type ProfilePictureRequest struct {
	NewProfilePicture string `json:"newProfilePicture" validate:"required,max=2048,http_url"`
}

func (r *ProfilePictureRequest) Normalize() {
	r.NewProfilePicture = strings.TrimSpace(r.NewProfilePicture)
}
