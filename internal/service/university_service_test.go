package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "counsellor/internal/errors"
	"counsellor/internal/model"
	"counsellor/internal/repository"
)

func newUniversityServiceForTest() (UniversityService, *MockUniversityRepository, *MockProfileRepository, *MockShortlistRepository, *MockTaskRepository, *MockUserRepository) {
	mockUniversityRepo := new(MockUniversityRepository)
	mockProfileRepo := new(MockProfileRepository)
	mockShortlistRepo := new(MockShortlistRepository)
	mockTaskRepo := new(MockTaskRepository)
	mockUserRepo := new(MockUserRepository)
	service := NewUniversityService(mockUniversityRepo, mockProfileRepo, mockShortlistRepo, mockTaskRepo, mockUserRepo, nil)
	return service, mockUniversityRepo, mockProfileRepo, mockShortlistRepo, mockTaskRepo, mockUserRepo
}

func TestUniversityService_Recommendations_RequiresOnboarding(t *testing.T) {
	service, _, _, _, _, mockUserRepo := newUniversityServiceForTest()

	mockUserRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, OnboardingCompleted: false}, nil)

	universities, err := service.Recommendations(context.Background(), 1)
	assert.ErrorIs(t, err, apperrors.ErrOnboardingRequired)
	assert.Nil(t, universities)
	mockUserRepo.AssertExpectations(t)
}

func TestUniversityService_Recommendations_FiltersByProfile(t *testing.T) {
	service, mockUniversityRepo, mockProfileRepo, _, _, mockUserRepo := newUniversityServiceForTest()

	mockUserRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, OnboardingCompleted: true}, nil)
	mockProfileRepo.On("FindByUserID", mock.Anything, uint(1)).Return(&model.Profile{
		UserID:             1,
		BudgetMax:          decimal.NewFromInt(30000),
		PreferredCountries: `["Canada"]`,
	}, nil)

	// The budget filter carries a 20% buffer and preferred countries pass
	// through to the query.
	mockUniversityRepo.On("List", mock.Anything, mock.MatchedBy(func(f repository.UniversityFilter) bool {
		return f.BudgetMax.Equal(decimal.NewFromInt(36000)) && len(f.Countries) == 1 && f.Countries[0] == "Canada"
	})).Return([]model.University{
		{ID: 4, Name: "University of Toronto", Country: "Canada", TuitionMin: decimal.NewFromInt(32000), TuitionMax: decimal.NewFromInt(40000), AcceptanceRate: 43},
	}, nil)

	universities, err := service.Recommendations(context.Background(), 1)
	assert.NoError(t, err)
	assert.Len(t, universities, 1)
	assert.Equal(t, "University of Toronto", universities[0].Name)
	assert.NotZero(t, universities[0].FitScore)
	mockUniversityRepo.AssertExpectations(t)
}

func TestUniversityService_AddToShortlist(t *testing.T) {
	t.Run("adds a new entry and advances the stage", func(t *testing.T) {
		service, mockUniversityRepo, mockProfileRepo, mockShortlistRepo, _, mockUserRepo := newUniversityServiceForTest()

		university := &model.University{ID: 7, Name: "ETH Zurich", AcceptanceRate: 27}
		mockUniversityRepo.On("FindByID", mock.Anything, uint(7)).Return(university, nil)
		mockShortlistRepo.On("FindByUserAndUniversity", mock.Anything, uint(1), uint(7)).Return(nil, gorm.ErrRecordNotFound)
		mockProfileRepo.On("FindByUserID", mock.Anything, uint(1)).Return(nil, gorm.ErrRecordNotFound)
		mockShortlistRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.ShortlistEntry")).Return(nil)
		mockUserRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, CurrentStage: model.StageDiscoveringUniversities}, nil)
		mockUserRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.CurrentStage == model.StageFinalizingUniversities
		})).Return(nil)

		entry, err := service.AddToShortlist(context.Background(), 1, 7, "", "looks great")
		assert.NoError(t, err)
		assert.Equal(t, uint(7), entry.UniversityID)
		assert.Equal(t, model.ApplicationShortlisted, entry.ApplicationStatus)
		assert.NotEmpty(t, entry.Category)
		assert.Equal(t, "looks great", entry.Notes)
		mockShortlistRepo.AssertExpectations(t)
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("re-adding returns the existing entry", func(t *testing.T) {
		service, mockUniversityRepo, _, mockShortlistRepo, _, _ := newUniversityServiceForTest()

		mockUniversityRepo.On("FindByID", mock.Anything, uint(7)).Return(&model.University{ID: 7}, nil)
		existing := &model.ShortlistEntry{ID: 3, UserID: 1, UniversityID: 7, Category: "target"}
		mockShortlistRepo.On("FindByUserAndUniversity", mock.Anything, uint(1), uint(7)).Return(existing, nil)

		entry, err := service.AddToShortlist(context.Background(), 1, 7, "dream", "")
		assert.NoError(t, err)
		assert.Equal(t, existing, entry)
		mockShortlistRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown university", func(t *testing.T) {
		service, mockUniversityRepo, _, _, _, _ := newUniversityServiceForTest()

		mockUniversityRepo.On("FindByID", mock.Anything, uint(999)).Return(nil, gorm.ErrRecordNotFound)

		entry, err := service.AddToShortlist(context.Background(), 1, 999, "", "")
		assert.ErrorIs(t, err, apperrors.ErrUniversityNotFound)
		assert.Nil(t, entry)
	})
}

func TestUniversityService_RemoveFromShortlist(t *testing.T) {
	t.Run("locked entry cannot be removed", func(t *testing.T) {
		service, _, _, mockShortlistRepo, _, _ := newUniversityServiceForTest()

		mockShortlistRepo.On("FindByUserAndUniversity", mock.Anything, uint(1), uint(7)).Return(&model.ShortlistEntry{
			UserID: 1, UniversityID: 7, IsLocked: true,
		}, nil)

		err := service.RemoveFromShortlist(context.Background(), 1, 7)
		assert.ErrorIs(t, err, apperrors.ErrShortlistLocked)
		mockShortlistRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("never shortlisted", func(t *testing.T) {
		service, _, _, mockShortlistRepo, _, _ := newUniversityServiceForTest()

		mockShortlistRepo.On("FindByUserAndUniversity", mock.Anything, uint(1), uint(7)).Return(nil, gorm.ErrRecordNotFound)

		err := service.RemoveFromShortlist(context.Background(), 1, 7)
		assert.ErrorIs(t, err, apperrors.ErrNotShortlisted)
	})

	t.Run("removes an unlocked entry", func(t *testing.T) {
		service, _, _, mockShortlistRepo, _, _ := newUniversityServiceForTest()

		entry := &model.ShortlistEntry{UserID: 1, UniversityID: 7}
		mockShortlistRepo.On("FindByUserAndUniversity", mock.Anything, uint(1), uint(7)).Return(entry, nil)
		mockShortlistRepo.On("Delete", mock.Anything, entry).Return(nil)

		err := service.RemoveFromShortlist(context.Background(), 1, 7)
		assert.NoError(t, err)
		mockShortlistRepo.AssertExpectations(t)
	})
}

func TestUniversityService_Lock(t *testing.T) {
	t.Run("first lock advances stage and seeds application tasks", func(t *testing.T) {
		service, _, _, mockShortlistRepo, mockTaskRepo, mockUserRepo := newUniversityServiceForTest()

		entry := &model.ShortlistEntry{
			UserID:       1,
			UniversityID: 7,
			University:   model.University{ID: 7, Name: "ETH Zurich", ApplicationDeadline: "December 15"},
		}
		mockShortlistRepo.On("FindByUserAndUniversity", mock.Anything, uint(1), uint(7)).Return(entry, nil)
		mockShortlistRepo.On("Update", mock.Anything, mock.MatchedBy(func(e *model.ShortlistEntry) bool {
			return e.IsLocked && e.LockedAt != nil
		})).Return(nil)
		mockUserRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, CurrentStage: model.StageFinalizingUniversities}, nil)
		mockUserRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.CurrentStage == model.StagePreparingApplications
		})).Return(nil)
		mockTaskRepo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(tasks []model.Task) bool {
			return len(tasks) == 4 && tasks[0].UserID == uint(1) && *tasks[0].UniversityID == uint(7)
		})).Return(nil)

		locked, err := service.Lock(context.Background(), 1, 7)
		assert.NoError(t, err)
		assert.True(t, locked.IsLocked)
		assert.NotNil(t, locked.LockedAt)
		mockTaskRepo.AssertExpectations(t)
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("locking an already locked entry is a no-op", func(t *testing.T) {
		service, _, _, mockShortlistRepo, mockTaskRepo, _ := newUniversityServiceForTest()

		mockShortlistRepo.On("FindByUserAndUniversity", mock.Anything, uint(1), uint(7)).Return(&model.ShortlistEntry{
			UserID: 1, UniversityID: 7, IsLocked: true,
		}, nil)

		locked, err := service.Lock(context.Background(), 1, 7)
		assert.NoError(t, err)
		assert.True(t, locked.IsLocked)
		mockShortlistRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		mockTaskRepo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
	})

	t.Run("locking a university that was never shortlisted", func(t *testing.T) {
		service, _, _, mockShortlistRepo, _, _ := newUniversityServiceForTest()

		mockShortlistRepo.On("FindByUserAndUniversity", mock.Anything, uint(1), uint(42)).Return(nil, gorm.ErrRecordNotFound)

		locked, err := service.Lock(context.Background(), 1, 42)
		assert.ErrorIs(t, err, apperrors.ErrNotShortlisted)
		assert.Nil(t, locked)
	})
}

func TestUniversityService_Unlock(t *testing.T) {
	t.Run("clears the lock", func(t *testing.T) {
		service, _, _, mockShortlistRepo, _, _ := newUniversityServiceForTest()

		lockedAt := time.Now()
		mockShortlistRepo.On("FindByUserAndUniversity", mock.Anything, uint(1), uint(7)).Return(&model.ShortlistEntry{
			UserID: 1, UniversityID: 7, IsLocked: true, LockedAt: &lockedAt,
		}, nil)
		mockShortlistRepo.On("Update", mock.Anything, mock.MatchedBy(func(e *model.ShortlistEntry) bool {
			return !e.IsLocked && e.LockedAt == nil
		})).Return(nil)

		entry, err := service.Unlock(context.Background(), 1, 7)
		assert.NoError(t, err)
		assert.False(t, entry.IsLocked)
		mockShortlistRepo.AssertExpectations(t)
	})

	t.Run("unlocking an unlocked entry is a no-op", func(t *testing.T) {
		service, _, _, mockShortlistRepo, _, _ := newUniversityServiceForTest()

		mockShortlistRepo.On("FindByUserAndUniversity", mock.Anything, uint(1), uint(7)).Return(&model.ShortlistEntry{
			UserID: 1, UniversityID: 7,
		}, nil)

		entry, err := service.Unlock(context.Background(), 1, 7)
		assert.NoError(t, err)
		assert.False(t, entry.IsLocked)
		mockShortlistRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestUniversityService_UpdateApplicationStatus(t *testing.T) {
	service, _, _, mockShortlistRepo, _, _ := newUniversityServiceForTest()

	mockShortlistRepo.On("FindByUserAndUniversity", mock.Anything, uint(1), uint(7)).Return(&model.ShortlistEntry{
		UserID: 1, UniversityID: 7, ApplicationStatus: model.ApplicationShortlisted,
	}, nil)
	mockShortlistRepo.On("Update", mock.Anything, mock.MatchedBy(func(e *model.ShortlistEntry) bool {
		return e.ApplicationStatus == model.ApplicationSubmitted
	})).Return(nil)

	entry, err := service.UpdateApplicationStatus(context.Background(), 1, 7, model.ApplicationSubmitted)
	assert.NoError(t, err)
	assert.Equal(t, model.ApplicationSubmitted, entry.ApplicationStatus)
	mockShortlistRepo.AssertExpectations(t)
}
