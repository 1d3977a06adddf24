package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/unq-dapp-grupoM/futbol-api/internal/auth"
	"github.com/unq-dapp-grupoM/futbol-api/internal/models"
	"github.com/unq-dapp-grupoM/futbol-api/pkg/errors"
)

// MockUserStore is a mock implementation of auth.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func newTestService(store auth.UserStore) *auth.Service {
	codec := auth.NewCodec(testSecret, time.Hour)
	return auth.NewService(store, codec, zap.NewNop())
}

func TestRegister(t *testing.T) {
	store := new(MockUserStore)
	store.On("GetUserByEmail", mock.Anything, "a@b.com").Return(nil, nil)
	store.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "a@b.com" && u.Role == models.RoleUser
	})).Return(nil)

	svc := newTestService(store)

	message, err := svc.Register(context.Background(), models.RegisterRequest{
		Email:    "  A@B.com ",
		Password: "pass123",
	})
	require.NoError(t, err)
	assert.Equal(t, "Successfully registered!", message)

	store.AssertExpectations(t)
}

func TestRegisterStoresBcryptHash(t *testing.T) {
	var created *models.User
	store := new(MockUserStore)
	store.On("GetUserByEmail", mock.Anything, "a@b.com").Return(nil, nil)
	store.On("CreateUser", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*models.User)
	}).Return(nil)

	svc := newTestService(store)

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Email:    "a@b.com",
		Password: "pass123",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotEqual(t, "pass123", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("pass123")))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := new(MockUserStore)
	store.On("GetUserByEmail", mock.Anything, "a@b.com").Return(&models.User{Email: "a@b.com"}, nil)

	svc := newTestService(store)

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Email:    "a@b.com",
		Password: "pass123",
	})

	var serviceErr *errors.ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, 400, serviceErr.Status)
	assert.Equal(t, "The email is already registered.", serviceErr.Message)
	store.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestRegisterRejectsBadPassword(t *testing.T) {
	store := new(MockUserStore)
	store.On("GetUserByEmail", mock.Anything, "a@b.com").Return(nil, nil)

	svc := newTestService(store)

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Email:    "a@b.com",
		Password: "password",
	})

	var serviceErr *errors.ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, "Password must be at least 6 characters long and contain at least one digit.", serviceErr.Message)
}

func TestAuthenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("pass123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	store := new(MockUserStore)
	store.On("GetUserByEmail", mock.Anything, "a@b.com").Return(&models.User{
		ID:           7,
		Email:        "a@b.com",
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}, nil)

	codec := auth.NewCodec(testSecret, time.Hour)
	svc := auth.NewService(store, codec, zap.NewNop())

	// Mixed-case login resolves the same stored identity.
	token, err := svc.Authenticate(context.Background(), models.AuthenticationRequest{
		Email:    "A@B.COM",
		Password: "pass123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := codec.ExtractSubject(token)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", subject)
	assert.True(t, codec.IsValid(token, "a@b.com"))
}

func TestAuthenticateWrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("pass123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	store := new(MockUserStore)
	store.On("GetUserByEmail", mock.Anything, "a@b.com").Return(&models.User{
		Email:        "a@b.com",
		PasswordHash: string(hash),
	}, nil)

	svc := newTestService(store)

	_, err = svc.Authenticate(context.Background(), models.AuthenticationRequest{
		Email:    "a@b.com",
		Password: "wrong12",
	})

	var serviceErr *errors.ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, 403, serviceErr.Status)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	store := new(MockUserStore)
	store.On("GetUserByEmail", mock.Anything, "ghost@b.com").Return(nil, nil)

	svc := newTestService(store)

	_, err := svc.Authenticate(context.Background(), models.AuthenticationRequest{
		Email:    "ghost@b.com",
		Password: "pass123",
	})

	var serviceErr *errors.ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, 400, serviceErr.Status)
	assert.Equal(t, "User with the provided email is not registered.", serviceErr.Message)
}
