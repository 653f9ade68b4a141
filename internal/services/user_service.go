package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/baharkarakas/projectify-backend/internal/apperr"
	"github.com/baharkarakas/projectify-backend/internal/auth"
	"github.com/baharkarakas/projectify-backend/internal/models"
	repo "github.com/baharkarakas/projectify-backend/internal/repository"
)

const (
	msgCredentialsRequired = "Username and password are required"
	msgUsernameTaken       = "Username already exists"
	msgInvalidLogin        = "Invalid username or password"
	msgInvalidRefresh      = "Invalid refresh token"
)

type UserService struct {
	r   repo.Users
	tm  *auth.TokenManager
	log *slog.Logger
}

func NewUserService(r repo.Users, tm *auth.TokenManager, log *slog.Logger) *UserService {
	if log == nil {
		log = slog.Default()
	}
	return &UserService{r: r, tm: tm, log: log}
}

func (s *UserService) Register(ctx context.Context, username, password string) (models.User, error) {
	u := models.User{Username: strings.TrimSpace(username)}
	if u.Username == "" || password == "" {
		return models.User{}, apperr.BadRequest(msgCredentialsRequired)
	}
	if err := u.Validate(); err != nil {
		return models.User{}, apperr.BadRequest(err.Error())
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, apperr.Internal("could not hash password", err)
	}
	u.PasswordHash = hash

	created, err := s.r.Create(ctx, u)
	if errors.Is(err, repo.ErrDuplicate) {
		return models.User{}, apperr.Conflict(msgUsernameTaken)
	}
	if err != nil {
		return models.User{}, apperr.Internal(msgDatabaseError, err)
	}
	s.log.InfoContext(ctx, "user created", "user_id", created.ID)
	return created, nil
}

// Login checks the credentials and issues a token pair. Unknown users and
// wrong passwords get the same error.
func (s *UserService) Login(ctx context.Context, username, password string) (auth.Pair, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return auth.Pair{}, apperr.BadRequest(msgCredentialsRequired)
	}
	u, err := s.r.GetByUsername(ctx, username)
	if errors.Is(err, repo.ErrNotFound) {
		return auth.Pair{}, apperr.Unauthorized(msgInvalidLogin)
	}
	if err != nil {
		return auth.Pair{}, apperr.Internal(msgDatabaseError, err)
	}
	if err := auth.VerifyPassword(password, u.PasswordHash); err != nil {
		return auth.Pair{}, apperr.Unauthorized(msgInvalidLogin)
	}
	return s.issue(u.ID)
}

// Refresh exchanges a refresh token for a new pair, provided its user still
// exists.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (auth.Pair, error) {
	claims, err := s.tm.ParseRefresh(refreshToken)
	if err != nil {
		return auth.Pair{}, apperr.Unauthorized(msgInvalidRefresh)
	}
	u, err := s.r.GetByID(ctx, claims.UserID)
	if errors.Is(err, repo.ErrNotFound) {
		return auth.Pair{}, apperr.Unauthorized(msgInvalidRefresh)
	}
	if err != nil {
		return auth.Pair{}, apperr.Internal(msgDatabaseError, err)
	}
	return s.issue(u.ID)
}

func (s *UserService) issue(userID string) (auth.Pair, error) {
	pair, err := s.tm.GeneratePair(userID)
	if err != nil {
		return auth.Pair{}, apperr.Internal("could not sign token", err)
	}
	return pair, nil
}
