package server

import (
	"net/http"
	"testing"

	"cinelist/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateProfilePicture(t *testing.T) {
	api := newTestAPI(t, nil)
	token := api.register("alice", "alice@example.com", "secret123")

	var user models.User
	status, raw := api.do(http.MethodPut, "/api/user/profile/picture", token, fiber.Map{
		"newProfilePicture": "https://img.example.com/alice.png",
	}, &user)
	require.Equal(t, http.StatusOK, status, raw)
	assert.Equal(t, "https://img.example.com/alice.png", user.ProfilePicture)
	assert.NotContains(t, raw, "password")

	var me models.User
	status, _ = api.do(http.MethodGet, "/api/user/me", token, nil, &me)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "https://img.example.com/alice.png", me.ProfilePicture)
}

func TestUpdateProfilePicture_Validation(t *testing.T) {
	api := newTestAPI(t, nil)
	token := api.register("alice", "alice@example.com", "secret123")

	for _, value := range []string{"", "   ", "not a url", "ftp://example.com/a.png", "javascript:alert(1)"} {
		t.Run(value, func(t *testing.T) {
			status, raw := api.do(http.MethodPut, "/api/user/profile/picture", token, fiber.Map{
				"newProfilePicture": value,
			}, nil)
			assert.Equal(t, http.StatusBadRequest, status, raw)
			assert.Equal(t, models.CodeValidation, decodeError(t, raw).Code)
		})
	}
}

func TestUpdateProfilePicture_RequiresAuth(t *testing.T) {
	api := newTestAPI(t, nil)

	status, _ := api.do(http.MethodPut, "/api/user/profile/picture", "", fiber.Map{
		"newProfilePicture": "https://img.example.com/x.png",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}
