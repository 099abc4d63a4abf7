package server

import (
	"time"

	"cinelist/internal/service"
	"cinelist/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const tokenCookieName = "token"

// setTokenCookie hands the session token to browser clients as an http-only
// cookie that lives exactly as long as the token.
func (s *Server) setTokenCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     tokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   s.authService.TokenTTL(),
		Expires:  time.Now().Add(time.Duration(s.authService.TokenTTL()) * time.Second),
		HTTPOnly: true,
		Secure:   s.config.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func authResponse(res *service.AuthResult) fiber.Map {
	return fiber.Map{
		"token": res.Token,
		"user":  res.User.Sanitized(),
	}
}

// Register handles POST /api/auth/register
// @Summary Register
// @Description Create an account and sign in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body validation.RegisterRequest true "Registration request"
// @Success 201 {object} object{token=string,user=models.AuthUser}
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/register [post]
func (s *Server) Register(c *fiber.Ctx) error {
	var req validation.RegisterRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	res, err := s.authService.Register(ctx, req)
	if err != nil {
		return respondError(c, err)
	}

	s.setTokenCookie(c, res.Token)
	return c.Status(fiber.StatusCreated).JSON(authResponse(res))
}

// Login handles POST /api/auth/login
// @Summary Login
// @Description Authenticate with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body validation.LoginRequest true "Login credentials"
// @Success 200 {object} object{token=string,user=models.AuthUser}
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /auth/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req validation.LoginRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	res, err := s.authService.Login(ctx, req)
	if err != nil {
		return respondError(c, err)
	}

	s.setTokenCookie(c, res.Token)
	return c.JSON(authResponse(res))
}

// Logout handles POST /api/auth/logout
// @Summary Logout
// @Description Clear the auth cookie and revoke the presented token
// @Tags auth
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /auth/logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	token := bearerToken(c)
	if token == "" {
		token = c.Cookies(tokenCookieName)
	}

	ctx, cancel := requestContext(c)
	defer cancel()
	s.authService.Logout(ctx, token)

	c.Cookie(&fiber.Cookie{
		Name:     tokenCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   s.config.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// CSRFToken handles GET /api/csrf-token
// @Summary CSRF token
// @Description Issue the token to echo in the X-Csrf-Token header
// @Tags auth
// @Produce json
// @Success 200 {object} object{csrfToken=string}
// @Router /csrf-token [get]
func (s *Server) CSRFToken(c *fiber.Ctx) error {
	token, _ := c.Locals(csrfContextKey).(string)
	return c.JSON(fiber.Map{"csrfToken": token})
}
