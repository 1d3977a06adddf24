package auth

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/unq-dapp-grupoM/futbol-api/internal/models"
	"github.com/unq-dapp-grupoM/futbol-api/pkg/errors"
)

// UserStore is the persistence surface the authentication service needs.
// The database repository satisfies it.
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
}

// Service implements registration and login against the local user store
// and issues bearer tokens on successful authentication.
type Service struct {
	store  UserStore
	codec  *Codec
	logger *zap.Logger
}

// NewService creates the authentication service.
func NewService(store UserStore, codec *Codec, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		codec:  codec,
		logger: logger,
	}
}

// Register validates and persists a new account with the default USER role.
// Validation failures surface verbatim as 400 responses.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (string, error) {
	email := NormalizeEmail(req.Email)

	if err := ValidateEmail(email); err != nil {
		return "", err
	}

	existing, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		s.logger.Error("Failed to look up user during registration", zap.String("email", email), zap.Error(err))
		return "", errors.Wrap(err, errors.ErrInternalServer)
	}
	if existing != nil {
		return "", errors.ErrDuplicateUser
	}

	if err := ValidatePassword(req.Password); err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternalServer)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		s.logger.Error("Failed to persist user", zap.String("email", email), zap.Error(err))
		return "", errors.Wrap(err, errors.ErrInternalServer)
	}

	s.logger.Info("Registered new user", zap.String("email", email))
	return "Successfully registered!", nil
}

// Authenticate verifies credentials against the stored bcrypt hash and
// returns a signed token for the persisted identity. Wrong passwords map to
// 403 at the boundary, never 401.
func (s *Service) Authenticate(ctx context.Context, req models.AuthenticationRequest) (string, error) {
	email := NormalizeEmail(req.Email)

	if err := ValidateEmail(email); err != nil {
		return "", err
	}
	if err := ValidatePassword(req.Password); err != nil {
		return "", err
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		s.logger.Error("Failed to look up user during login", zap.String("email", email), zap.Error(err))
		return "", errors.Wrap(err, errors.ErrInternalServer)
	}
	if user == nil {
		return "", errors.WithMessage(errors.ErrInvalidCredentialFormat,
			"User with the provided email is not registered.")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Bad credentials", zap.String("email", email))
		return "", errors.ErrBadCredentials
	}

	token, err := s.codec.Issue(user.Email, map[string]any{"role": string(user.Role)})
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternalServer)
	}
	return token, nil
}

// ResolveSubject re-fetches the persisted identity behind a token subject.
// A nil user means the subject is unknown and the token must not grant access.
func (s *Service) ResolveSubject(ctx context.Context, subject string) (*models.User, error) {
	return s.store.GetUserByEmail(ctx, subject)
}
