package service

import (
	"context"

	"cinelist/internal/models"
	"cinelist/internal/repository"
	"cinelist/internal/validation"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) UpdateProfilePicture(ctx context.Context, userID uint, in validation.ProfilePictureRequest) (*models.User, error) {
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}
	return s.userRepo.UpdateProfilePicture(ctx, userID, in.NewProfilePicture)
}
