package auth

import (
	"context"
	"testing"

	"github.com/Domenick1991/railbooking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, username, passwordHash string) error {
	args := m.Called(ctx, username, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) GetPasswordHash(ctx context.Context, username string) (string, error) {
	args := m.Called(ctx, username)
	return args.String(0), args.Error(1)
}

type memorySessions struct {
	sessions map[string]string
}

func newMemorySessions() *memorySessions {
	return &memorySessions{sessions: make(map[string]string)}
}

func (s *memorySessions) PutSession(ctx context.Context, token, username string) error {
	s.sessions[token] = username
	return nil
}

func (s *memorySessions) GetSession(ctx context.Context, token string) (string, error) {
	return s.sessions[token], nil
}

func (s *memorySessions) DeleteSession(ctx context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}

func TestAuthService_Register(t *testing.T) {
	mockUsers := &MockUserRepository{}
	service := NewAuthService(mockUsers, newMemorySessions())

	ctx := context.Background()
	mockUsers.On("Create", ctx, "alice", mock.AnythingOfType("string")).Return(nil).Once()

	require.NoError(t, service.Register(ctx, "alice", "s3cret"))
	mockUsers.AssertExpectations(t)
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	mockUsers := &MockUserRepository{}
	service := NewAuthService(mockUsers, newMemorySessions())

	ctx := context.Background()
	mockUsers.On("Create", ctx, "alice", mock.AnythingOfType("string")).Return(domain.ErrDuplicateKey).Once()

	err := service.Register(ctx, "alice", "s3cret")
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	service := NewAuthService(&MockUserRepository{}, newMemorySessions())

	assert.ErrorIs(t, service.Register(context.Background(), "", "pw"), domain.ErrInvalidRequest)
	assert.ErrorIs(t, service.Register(context.Background(), "alice", ""), domain.ErrInvalidRequest)
}

func TestAuthService_LoginAndResolve(t *testing.T) {
	mockUsers := &MockUserRepository{}
	sessions := newMemorySessions()
	service := NewAuthService(mockUsers, sessions)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	ctx := context.Background()
	mockUsers.On("GetPasswordHash", ctx, "alice").Return(string(hash), nil)

	token, err := service.Login(ctx, "alice", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	username, err := service.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)

	require.NoError(t, service.Logout(ctx, token))
	_, err = service.Resolve(ctx, token)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	mockUsers := &MockUserRepository{}
	service := NewAuthService(mockUsers, newMemorySessions())

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	ctx := context.Background()
	mockUsers.On("GetPasswordHash", ctx, "alice").Return(string(hash), nil).Once()

	_, err = service.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	mockUsers := &MockUserRepository{}
	service := NewAuthService(mockUsers, newMemorySessions())

	ctx := context.Background()
	mockUsers.On("GetPasswordHash", ctx, "ghost").Return("", domain.ErrNotFound).Once()

	_, err := service.Login(ctx, "ghost", "pw")
	// unknown user and bad password are indistinguishable to the caller
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}
