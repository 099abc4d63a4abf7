package server

import (
	"cinelist/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GetMe handles GET /api/user/me
// @Summary Current user
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} models.ErrorResponse
// @Router /user/me [get]
func (s *Server) GetMe(c *fiber.Ctx) error {
	return c.JSON(currentUser(c))
}

// UpdateProfilePicture handles PUT /api/user/profile/picture
// @Summary Update profile picture
// @Tags user
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body validation.ProfilePictureRequest true "New picture URL"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /user/profile/picture [put]
func (s *Server) UpdateProfilePicture(c *fiber.Ctx) error {
	var req validation.ProfilePictureRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := s.userService.UpdateProfilePicture(ctx, currentUserID(c), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(user)
}
