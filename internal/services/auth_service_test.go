package services_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"saalisloki/internal/models"
	"saalisloki/internal/repositories"
	"saalisloki/internal/services"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetAll() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

const testJWTSecret = "test_jwt_secret"

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, 0)

	user := &models.User{
		Username:  "testuser",
		Email:     "test@example.com",
		Password:  "password123",
		Privilege: models.PrivilegeFull,
	}

	mockRepo.On("GetByUsername", user.Username).Return(nil, fmt.Errorf("user testuser: %w", repositories.ErrNotFound)).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	err := authService.RegisterUser(user)
	assert.NoError(t, err)
	// The stored password must be a bcrypt hash of the original, never
	// the raw value.
	assert.NotEqual(t, "password123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	mockRepo.AssertExpectations(t)

	// Username already taken
	mockRepo.On("GetByUsername", user.Username).Return(&models.User{ID: "1"}, nil).Once()
	err = authService.RegisterUser(user)
	assert.ErrorIs(t, err, services.ErrUsernameTaken)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterUser_LookupFailure(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, 0)

	// A store failure during the uniqueness check must not be read as
	// "username free".
	mockRepo.On("GetByUsername", "testuser").Return(nil, errors.New("connection refused")).Once()

	err := authService.RegisterUser(&models.User{
		Username: "testuser",
		Email:    "test@example.com",
		Password: "password123",
	})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, services.ErrUsernameTaken)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterUser_DuplicateOnCreate(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, 0)

	// A concurrent registration can slip past the pre-check and only
	// surface as a duplicate-key error from the store's unique index.
	mockRepo.On("GetByUsername", "testuser").Return(nil, fmt.Errorf("user testuser: %w", repositories.ErrNotFound)).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(fmt.Errorf("user testuser: %w", repositories.ErrDuplicate)).Once()

	err := authService.RegisterUser(&models.User{
		Username: "testuser",
		Email:    "test@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, services.ErrUsernameTaken)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, 0)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:        "user-123",
		Username:  "testuser",
		Email:     "test@example.com",
		Password:  string(hashedPassword),
		Privilege: models.PrivilegeFull,
	}

	// Successful login
	mockRepo.On("GetByUsername", user.Username).Return(user, nil).Once()
	token, loggedIn, err := authService.LoginUser("testuser", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.Privilege, loggedIn.Privilege)

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, user.ID, claims["id"])
	assert.Equal(t, user.Username, claims["username"])
	mockRepo.AssertExpectations(t)

	// Wrong password
	mockRepo.On("GetByUsername", user.Username).Return(user, nil).Once()
	_, _, err = authService.LoginUser("testuser", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)

	// Missing user yields the same generic error
	mockRepo.On("GetByUsername", "nobody").Return(nil, fmt.Errorf("user nobody: %w", repositories.ErrNotFound)).Once()
	_, _, err = authService.LoginUser("nobody", "password123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	authService := services.NewAuthService(new(MockUserRepository), testJWTSecret, 0)

	token, err := authService.IssueToken("testuser", "user-123")
	assert.NoError(t, err)

	claims, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "testuser", claims.Username)
	assert.Equal(t, "user-123", claims.ID)
}

func TestAuthService_ValidateToken_Expired(t *testing.T) {
	expiredService := services.NewAuthService(new(MockUserRepository), testJWTSecret, 0)
	// Issue with a service whose TTL is in the past.
	shortLived := services.NewAuthService(new(MockUserRepository), testJWTSecret, -time.Hour)

	token, err := shortLived.IssueToken("testuser", "user-123")
	assert.NoError(t, err)

	_, err = expiredService.ValidateToken(token)
	assert.ErrorIs(t, err, services.ErrExpiredToken)
}

func TestAuthService_ValidateToken_Invalid(t *testing.T) {
	authService := services.NewAuthService(new(MockUserRepository), testJWTSecret, 0)

	// Garbage
	_, err := authService.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	// Wrong signing key
	other := services.NewAuthService(new(MockUserRepository), "other_secret", 0)
	token, err := other.IssueToken("testuser", "user-123")
	assert.NoError(t, err)
	_, err = authService.ValidateToken(token)
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	// Valid signature but no id claim
	noID := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": "testuser",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := noID.SignedString([]byte(testJWTSecret))
	assert.NoError(t, err)
	_, err = authService.ValidateToken(signed)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestAuthService_ListUsers(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, 0)

	mockRepo.On("GetAll").Return([]models.User{
		{ID: "1", Username: "a", Password: "hash-a", Privilege: models.PrivilegeFull},
		{ID: "2", Username: "b", Password: "hash-b", Privilege: 2},
	}, nil).Once()

	users, err := authService.ListUsers()
	assert.NoError(t, err)
	assert.Len(t, users, 2)
	for _, u := range users {
		assert.Empty(t, u.Password)
	}
	mockRepo.AssertExpectations(t)
}
