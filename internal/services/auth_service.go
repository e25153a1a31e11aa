package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/devconnect/api/internal/models"
	"github.com/devconnect/api/internal/repository"
	"github.com/devconnect/api/internal/token"
	appErr "github.com/devconnect/api/pkg/errors"
	"github.com/devconnect/api/pkg/logger"
	"github.com/devconnect/api/pkg/utils"
)

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	CurrentUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

type authService struct {
	users  repository.UserRepository
	issuer token.Issuer
}

func NewAuthService(users repository.UserRepository, issuer token.Issuer) AuthService {
	return &authService{users: users, issuer: issuer}
}

var _ AuthService = (*authService)(nil)

// Register creates an account, derives its gravatar from the email, and
// returns a freshly issued token.
func (s *authService) Register(ctx context.Context, name, email, password string) (string, error) {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if exists {
		return "", appErr.New(appErr.CodeConflict, "User already exists")
	}

	ph, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", appErr.Wrap(err, appErr.CodeInternal, "hash password failed")
	}

	u := models.User{
		Name:         name,
		Email:        email,
		Avatar:       utils.GravatarURL(email),
		PasswordHash: string(ph),
	}
	if err := s.users.Create(ctx, &u); err != nil {
		return "", err
	}

	logger.L().Info("user registered", zap.String("user_id", u.ID.String()))
	return s.issuer.Issue(u.ID.String())
}

// Login verifies credentials and issues a token. The failure message is the
// same whether the email is unknown or the password wrong.
func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	var u models.User
	if err := s.users.GetByEmail(ctx, email, &u); err != nil {
		return "", appErr.New(appErr.CodeUnauthorized, "Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", appErr.New(appErr.CodeUnauthorized, "Invalid credentials")
	}
	return s.issuer.Issue(u.ID.String())
}

func (s *authService) CurrentUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var u models.User
	if err := s.users.GetByID(ctx, userID, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
