// Package service contains business logic between HTTP handlers and repositories.
package service

import (
	"context"
	"errors"
	"log/slog"

	"cinelist/internal/auth"
	"cinelist/internal/cache"
	"cinelist/internal/middleware"
	"cinelist/internal/models"
	"cinelist/internal/observability"
	"cinelist/internal/repository"
	"cinelist/internal/validation"
)

// Messages returned by Authenticate. They never say why a token failed.
const (
	MsgNoToken      = "Not authorized, no token"
	MsgInvalidToken = "Token is not valid"
	MsgUserNotFound = "User not found"
)

// AuthResult is what register and login hand back to the client.
type AuthResult struct {
	Token  string
	Claims *auth.Claims
	User   *models.User
}

type AuthService struct {
	users       repository.UserRepository
	tokens      *auth.TokenManager
	revocations *cache.RevocationStore
}

// NewAuthService wires the credential store, token manager and revocation
// list. A nil or client-less revocation store disables logout revocation.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenManager, revocations *cache.RevocationStore) *AuthService {
	return &AuthService{users: users, tokens: tokens, revocations: revocations}
}

func recordAuth(event, outcome string) {
	middleware.AuthEvents.WithLabelValues(event, outcome).Inc()
}

// Register creates an account and signs the new user in.
func (s *AuthService) Register(ctx context.Context, in validation.RegisterRequest) (*AuthResult, error) {
	ctx, span := observability.StartSpan(ctx, "AuthService", "Register")
	defer span.End()

	if err := validation.Struct(&in); err != nil {
		recordAuth("register", "invalid")
		return nil, err
	}

	existing, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		recordAuth("register", "conflict")
		return nil, models.NewConflictError("User already exists")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if models.HasCode(err, models.CodeConflict) {
			recordAuth("register", "conflict")
		}
		return nil, err
	}

	token, claims, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	recordAuth("register", "success")
	middleware.Logger.InfoContext(ctx, "user registered", slog.Any("user_id", user.ID))
	return &AuthResult{Token: token, Claims: claims, User: user}, nil
}

// Login checks credentials. Every failure logs the attempted email with line
// breaks removed.
func (s *AuthService) Login(ctx context.Context, in validation.LoginRequest) (*AuthResult, error) {
	ctx, span := observability.StartSpan(ctx, "AuthService", "Login")
	defer span.End()

	fail := func(reason string, err error) (*AuthResult, error) {
		recordAuth("login", reason)
		middleware.Logger.WarnContext(ctx, "login failed",
			slog.String("email", middleware.SanitizeLogValue(in.Email)),
			slog.String("reason", reason),
		)
		return nil, err
	}

	if err := validation.Struct(&in); err != nil {
		return fail("invalid", err)
	}

	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return fail("error", err)
	}
	if user == nil {
		return fail("user_not_found", models.NewUserNotFoundError())
	}

	if err := auth.CheckPassword(user.Password, in.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return fail("bad_password", models.NewInvalidCredentialsError())
		}
		return fail("error", models.NewInternalError(err))
	}

	token, claims, err := s.tokens.Issue(user.ID)
	if err != nil {
		return fail("error", models.NewInternalError(err))
	}

	recordAuth("login", "success")
	return &AuthResult{Token: token, Claims: claims, User: user}, nil
}

// Logout revokes tokenString until its natural expiry when revocation is
// enabled. Invalid tokens and Redis failures never fail the logout.
func (s *AuthService) Logout(ctx context.Context, tokenString string) {
	defer recordAuth("logout", "success")

	if tokenString == "" || !s.revocations.Enabled() {
		return
	}
	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		return
	}
	if err := s.revocations.Revoke(ctx, claims.ID, s.tokens.Remaining(claims)); err != nil {
		middleware.Logger.ErrorContext(ctx, "failed to revoke token", slog.String("error", err.Error()))
	}
}

// Authenticate resolves a bearer token to its user with exactly one store
// lookup. Failures are UNAUTHORIZED app errors except store failures.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	if tokenString == "" {
		recordAuth("protect", "no_token")
		return nil, models.NewUnauthorizedError(MsgNoToken)
	}

	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		recordAuth("protect", "invalid_token")
		middleware.Logger.InfoContext(ctx, "token verification failed", slog.String("error", err.Error()))
		return nil, models.NewUnauthorizedError(MsgInvalidToken)
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "revocation check failed, allowing token", slog.String("error", err.Error()))
	}
	if revoked {
		recordAuth("protect", "revoked")
		return nil, models.NewUnauthorizedError(MsgInvalidToken)
	}

	userID, err := claims.UserID()
	if err != nil {
		recordAuth("protect", "invalid_token")
		return nil, models.NewUnauthorizedError(MsgInvalidToken)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if models.HasCode(err, models.CodeNotFound) {
			recordAuth("protect", "user_not_found")
			return nil, models.NewUnauthorizedError(MsgUserNotFound)
		}
		return nil, err
	}

	recordAuth("protect", "success")
	return user, nil
}

// TokenTTL is the lifetime of issued tokens, used for the auth cookie.
func (s *AuthService) TokenTTL() int {
	return int(s.tokens.TTL().Seconds())
}
