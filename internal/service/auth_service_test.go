package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"prepdeck/internal/config"
	"prepdeck/internal/domain"
	"prepdeck/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			SecretKey:       "testsecretkeydontuseinproduction32bytes!",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
		},
		Auth: config.AuthConfig{
			MaxFailedAttempts: 3,
			LockDuration:      2 * time.Hour,
		},
	}
}

func TestNewAuthService_RequiresSecretKey(t *testing.T) {
	cfg := testAuthConfig()
	cfg.JWT.SecretKey = ""

	_, err := NewAuthService(new(MockUserRepository), cfg)
	require.Error(t, err)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetByEmail", mock.Anything, "taken@example.com").Return(&domain.User{ID: "user-1"}, nil)

	authService, err := NewAuthService(userRepo, testAuthConfig())
	require.NoError(t, err)

	_, err = authService.Register(context.Background(), dto.RegisterRequest{
		Name:     "Someone",
		Email:    "taken@example.com",
		Password: "password123",
	})
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeInvalidInput, domainErr.Code)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Register_IssuesAndPersistsTokens(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, nil)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	var savedUser *domain.User
	userRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) { savedUser = args.Get(1).(*domain.User) }).
		Return(nil)

	authService, err := NewAuthService(userRepo, testAuthConfig())
	require.NoError(t, err)

	tokens, err := authService.Register(context.Background(), dto.RegisterRequest{
		Name:     "New User",
		Email:    "new@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	// The rotated refresh token must be stored for later revocation checks.
	require.NotNil(t, savedUser)
	assert.Equal(t, tokens.RefreshToken, savedUser.RefreshToken)
	userRepo.AssertExpectations(t)
}

func TestAuthService_Login_WrongPasswordCountsAttempt(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &domain.User{ID: "user-1", Email: "a@example.com", PasswordHash: string(hash)}

	userRepo := new(MockUserRepository)
	userRepo.On("GetByEmail", mock.Anything, "a@example.com").Return(user, nil)
	userRepo.On("Update", mock.Anything, user).Return(nil)

	authService, err := NewAuthService(userRepo, testAuthConfig())
	require.NoError(t, err)

	_, err = authService.Login(context.Background(), dto.LoginRequest{Email: "a@example.com", Password: "wrong"})
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeUnauthorized, domainErr.Code)
	assert.Equal(t, 1, user.FailedAttempts)
	assert.Nil(t, user.LockUntil)
}

func TestAuthService_Login_LocksAfterMaxFailedAttempts(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &domain.User{ID: "user-1", Email: "a@example.com", PasswordHash: string(hash), FailedAttempts: 2}

	userRepo := new(MockUserRepository)
	userRepo.On("GetByEmail", mock.Anything, "a@example.com").Return(user, nil)
	userRepo.On("Update", mock.Anything, user).Return(nil)

	authService, err := NewAuthService(userRepo, testAuthConfig())
	require.NoError(t, err)

	_, err = authService.Login(context.Background(), dto.LoginRequest{Email: "a@example.com", Password: "wrong"})
	require.Error(t, err)

	require.NotNil(t, user.LockUntil)
	assert.True(t, user.LockUntil.After(time.Now()))
	// The counter resets so the lock window starts clean.
	assert.Equal(t, 0, user.FailedAttempts)
}

func TestAuthService_Login_LockedAccountRejectedEvenWithCorrectPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)

	lockUntil := time.Now().Add(time.Hour)
	user := &domain.User{ID: "user-1", Email: "a@example.com", PasswordHash: string(hash), LockUntil: &lockUntil}

	userRepo := new(MockUserRepository)
	userRepo.On("GetByEmail", mock.Anything, "a@example.com").Return(user, nil)

	authService, err := NewAuthService(userRepo, testAuthConfig())
	require.NoError(t, err)

	_, err = authService.Login(context.Background(), dto.LoginRequest{Email: "a@example.com", Password: "correct-password"})
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeAccountLocked, domainErr.Code)
}

func TestAuthService_Login_GoogleOnlyAccountHasNoPassword(t *testing.T) {
	user := &domain.User{ID: "user-1", Email: "a@example.com", GoogleID: "google-123"}

	userRepo := new(MockUserRepository)
	userRepo.On("GetByEmail", mock.Anything, "a@example.com").Return(user, nil)

	authService, err := NewAuthService(userRepo, testAuthConfig())
	require.NoError(t, err)

	_, err = authService.Login(context.Background(), dto.LoginRequest{Email: "a@example.com", Password: "anything"})
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeUnauthorized, domainErr.Code)
}

func TestAuthService_Login_SuccessClearsLockoutCounters(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &domain.User{ID: "user-1", Email: "a@example.com", PasswordHash: string(hash), FailedAttempts: 2}

	userRepo := new(MockUserRepository)
	userRepo.On("GetByEmail", mock.Anything, "a@example.com").Return(user, nil)
	userRepo.On("Update", mock.Anything, user).Return(nil)

	authService, err := NewAuthService(userRepo, testAuthConfig())
	require.NoError(t, err)

	tokens, err := authService.Login(context.Background(), dto.LoginRequest{Email: "a@example.com", Password: "correct-password"})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.Equal(t, 0, user.FailedAttempts)
	assert.Nil(t, user.LockUntil)
	assert.Equal(t, tokens.RefreshToken, user.RefreshToken)
}

func TestAuthService_RefreshToken_RotatesPair(t *testing.T) {
	userRepo := new(MockUserRepository)

	authService, err := NewAuthService(userRepo, testAuthConfig())
	require.NoError(t, err)
	impl := authService.(*authServiceImpl)

	refreshToken, err := impl.CreateJWT("user-1", time.Hour, "refresh")
	require.NoError(t, err)

	user := &domain.User{ID: "user-1", RefreshToken: refreshToken}
	userRepo.On("GetByID", mock.Anything, "user-1").Return(user, nil)
	userRepo.On("Update", mock.Anything, user).Return(nil)

	tokens, err := authService.RefreshToken(context.Background(), refreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEqual(t, refreshToken, user.RefreshToken)
	assert.Equal(t, tokens.RefreshToken, user.RefreshToken)
}

func TestAuthService_RefreshToken_RevokedTokenRejected(t *testing.T) {
	userRepo := new(MockUserRepository)

	authService, err := NewAuthService(userRepo, testAuthConfig())
	require.NoError(t, err)
	impl := authService.(*authServiceImpl)

	oldToken, err := impl.CreateJWT("user-1", time.Hour, "refresh")
	require.NoError(t, err)

	// The stored token differs, so the presented one was already rotated out.
	user := &domain.User{ID: "user-1", RefreshToken: "a-newer-token"}
	userRepo.On("GetByID", mock.Anything, "user-1").Return(user, nil)

	_, err = authService.RefreshToken(context.Background(), oldToken)
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeUnauthorized, domainErr.Code)
	userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAuthService_RefreshToken_AccessTokenRejected(t *testing.T) {
	authService, err := NewAuthService(new(MockUserRepository), testAuthConfig())
	require.NoError(t, err)
	impl := authService.(*authServiceImpl)

	accessToken, err := impl.CreateJWT("user-1", time.Hour, "access")
	require.NoError(t, err)

	_, err = authService.RefreshToken(context.Background(), accessToken)
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeUnauthorized, domainErr.Code)
}

func TestAuthService_ValidateJWT_RoundTrip(t *testing.T) {
	authService, err := NewAuthService(new(MockUserRepository), testAuthConfig())
	require.NoError(t, err)
	impl := authService.(*authServiceImpl)

	token, err := impl.CreateJWT("user-1", time.Hour, "access")
	require.NoError(t, err)

	claims, err := authService.ValidateJWT(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "access", claims.TokenType)
}

func TestAuthService_ValidateJWT_ExpiredToken(t *testing.T) {
	authService, err := NewAuthService(new(MockUserRepository), testAuthConfig())
	require.NoError(t, err)
	impl := authService.(*authServiceImpl)

	token, err := impl.CreateJWT("user-1", -time.Minute, "access")
	require.NoError(t, err)

	_, err = authService.ValidateJWT(context.Background(), token)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidJWTToken)
}

func TestAuthService_HandleGoogleCallback_StateMismatch(t *testing.T) {
	authService, err := NewAuthService(new(MockUserRepository), testAuthConfig())
	require.NoError(t, err)

	_, err = authService.HandleGoogleCallback(context.Background(), "code", "state-a", "state-b")
	assert.ErrorIs(t, err, ErrInvalidAuthState)
}
