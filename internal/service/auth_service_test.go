package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"counsellor/internal/auth"
	apperrors "counsellor/internal/errors"
	"counsellor/internal/model"
)

func TestAuthService_Signup(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		fullName      string
		setupMock     func(*MockUserRepository, *MockProfileRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name:     "successful signup",
			email:    "test@example.com",
			password: "password123",
			fullName: "Test User",
			setupMock: func(mUser *MockUserRepository, mProfile *MockProfileRepository, mToken *MockTokenStore) {
				mUser.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, gorm.ErrRecordNotFound)
				mUser.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil).Run(func(args mock.Arguments) {
					args.Get(1).(*model.User).ID = 1
				})
				mProfile.On("Create", mock.Anything, mock.AnythingOfType("*model.Profile")).Return(nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, uint(1), "test@example.com", mock.Anything).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "email already registered",
			email:    "existing@example.com",
			password: "password123",
			fullName: "Existing User",
			setupMock: func(mUser *MockUserRepository, mProfile *MockProfileRepository, mToken *MockTokenStore) {
				mUser.On("FindByEmail", mock.Anything, "existing@example.com").Return(&model.User{Email: "existing@example.com"}, nil)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
		{
			name:     "concurrent signup loses the race",
			email:    "race@example.com",
			password: "password123",
			fullName: "Race User",
			setupMock: func(mUser *MockUserRepository, mProfile *MockProfileRepository, mToken *MockTokenStore) {
				mUser.On("FindByEmail", mock.Anything, "race@example.com").Return(nil, gorm.ErrRecordNotFound)
				mUser.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(MockUserRepository)
			mockProfileRepo := new(MockProfileRepository)
			mockTokenStore := new(MockTokenStore)
			tt.setupMock(mockUserRepo, mockProfileRepo, mockTokenStore)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockUserRepo, mockProfileRepo, jwtService, mockTokenStore)

			accessToken, refreshToken, user, err := service.Signup(context.Background(), tt.email, tt.password, tt.fullName)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)
				assert.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
				assert.Equal(t, tt.fullName, user.FullName)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, tt.password, user.PasswordHash)
				assert.Equal(t, model.StageBuildingProfile, user.CurrentStage)
			}

			mockUserRepo.AssertExpectations(t)
			mockProfileRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "test@example.com",
			password: "password123",
			setupMock: func(mUser *MockUserRepository, mToken *MockTokenStore) {
				mUser.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{
					ID:           1,
					Email:        "test@example.com",
					PasswordHash: string(hashedPassword),
				}, nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, uint(1), "test@example.com", mock.Anything).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "unknown email",
			email:    "notfound@example.com",
			password: "password123",
			setupMock: func(mUser *MockUserRepository, mToken *MockTokenStore) {
				mUser.On("FindByEmail", mock.Anything, "notfound@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "test@example.com",
			password: "wrong-password",
			setupMock: func(mUser *MockUserRepository, mToken *MockTokenStore) {
				mUser.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{
					ID:           1,
					Email:        "test@example.com",
					PasswordHash: string(hashedPassword),
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(MockUserRepository)
			mockProfileRepo := new(MockProfileRepository)
			mockTokenStore := new(MockTokenStore)
			tt.setupMock(mockUserRepo, mockTokenStore)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockUserRepo, mockProfileRepo, jwtService, mockTokenStore)

			accessToken, refreshToken, user, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, accessToken)
				assert.Empty(t, refreshToken)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)
				assert.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
			}

			mockUserRepo.AssertExpectations(t)
			mockTokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_Me(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockProfileRepo := new(MockProfileRepository)
	mockTokenStore := new(MockTokenStore)

	mockUserRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, Email: "test@example.com"}, nil)
	mockUserRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	jwtService := auth.NewJWTService("test-secret")
	service := NewAuthService(mockUserRepo, mockProfileRepo, jwtService, mockTokenStore)

	user, err := service.Me(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, "test@example.com", user.Email)

	user, err = service.Me(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.Nil(t, user)
}
