package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/kheti-ai/kheti/internal/domain"
	"github.com/kheti-ai/kheti/internal/security"
)

func newAuthService(users *MockUserRepository) *AuthService {
	jwtManager := security.NewJWTManager("test-secret-key-with-32-chars!!", 15*time.Minute, 7*24*time.Hour)
	return NewAuthService(users, jwtManager)
}

func TestRegisterSuccess(t *testing.T) {
	users := new(MockUserRepository)
	svc := newAuthService(users)

	users.On("EmailExists", mock.Anything, "farmer@example.com").Return(false, nil)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "farmer@example.com" && u.Name == "Farmer" && u.PasswordHash != "secret-password"
	})).Return(nil)

	user, err := svc.Register(context.Background(), domain.UserCreate{
		Email:    "farmer@example.com",
		Password: "secret-password",
		Name:     "Farmer",
	})
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.ID)
	users.AssertExpectations(t)
}

func TestRegisterEmailTaken(t *testing.T) {
	users := new(MockUserRepository)
	svc := newAuthService(users)

	users.On("EmailExists", mock.Anything, "taken@example.com").Return(true, nil)

	_, err := svc.Register(context.Background(), domain.UserCreate{
		Email:    "taken@example.com",
		Password: "secret-password",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLoginSuccess(t *testing.T) {
	users := new(MockUserRepository)
	svc := newAuthService(users)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret-password"), bcrypt.MinCost)
	assert.NoError(t, err)

	userID := uuid.New()
	users.On("GetByEmail", mock.Anything, "farmer@example.com").Return(&domain.User{
		ID:           userID,
		Email:        "farmer@example.com",
		PasswordHash: string(hash),
	}, nil)

	pair, err := svc.Login(context.Background(), domain.UserLogin{
		Email:    "farmer@example.com",
		Password: "secret-password",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64((15 * time.Minute).Seconds()), pair.ExpiresIn)
}

func TestLoginWrongPassword(t *testing.T) {
	users := new(MockUserRepository)
	svc := newAuthService(users)

	hash, _ := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.MinCost)
	users.On("GetByEmail", mock.Anything, "farmer@example.com").Return(&domain.User{
		Email:        "farmer@example.com",
		PasswordHash: string(hash),
	}, nil)

	_, err := svc.Login(context.Background(), domain.UserLogin{
		Email:    "farmer@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRoundTrip(t *testing.T) {
	users := new(MockUserRepository)
	svc := newAuthService(users)

	userID := uuid.New()
	jwtManager := security.NewJWTManager("test-secret-key-with-32-chars!!", 15*time.Minute, 7*24*time.Hour)
	refreshToken, err := jwtManager.GenerateRefreshToken(userID)
	assert.NoError(t, err)

	users.On("GetByID", mock.Anything, userID).Return(&domain.User{
		ID:    userID,
		Email: "farmer@example.com",
	}, nil)

	pair, err := svc.Refresh(context.Background(), refreshToken)
	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
}

func TestRefreshInvalidToken(t *testing.T) {
	users := new(MockUserRepository)
	svc := newAuthService(users)

	_, err := svc.Refresh(context.Background(), "garbage")
	assert.Error(t, err)
}
