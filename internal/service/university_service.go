package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"counsellor/internal/cache"
	apperrors "counsellor/internal/errors"
	"counsellor/internal/model"
	"counsellor/internal/repository"
)

const (
	catalogCacheKey = "universities:catalog"
	catalogCacheTTL = 5 * time.Minute
)

// budgetBuffer widens the recommendation budget filter by 20%.
var budgetBuffer = decimal.NewFromFloat(1.2)

// UniversityService handles catalog browsing, recommendations, and the
// per-user shortlist with its lock state.
type UniversityService interface {
	List(ctx context.Context, userID uint, filter repository.UniversityFilter) ([]model.RankedUniversity, error)
	Recommendations(ctx context.Context, userID uint) ([]model.RankedUniversity, error)
	Shortlist(ctx context.Context, userID uint) ([]model.ShortlistEntry, error)
	AddToShortlist(ctx context.Context, userID, universityID uint, category, notes string) (*model.ShortlistEntry, error)
	RemoveFromShortlist(ctx context.Context, userID, universityID uint) error
	UpdateApplicationStatus(ctx context.Context, userID, universityID uint, status string) (*model.ShortlistEntry, error)
	Lock(ctx context.Context, userID, universityID uint) (*model.ShortlistEntry, error)
	Unlock(ctx context.Context, userID, universityID uint) (*model.ShortlistEntry, error)
}

type universityService struct {
	universityRepo repository.UniversityRepository
	profileRepo    repository.ProfileRepository
	shortlistRepo  repository.ShortlistRepository
	taskRepo       repository.TaskRepository
	userRepo       repository.UserRepository
	cache          *cache.Client
}

// NewUniversityService creates a new university service.
func NewUniversityService(
	universityRepo repository.UniversityRepository,
	profileRepo repository.ProfileRepository,
	shortlistRepo repository.ShortlistRepository,
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	cache *cache.Client,
) UniversityService {
	return &universityService{
		universityRepo: universityRepo,
		profileRepo:    profileRepo,
		shortlistRepo:  shortlistRepo,
		taskRepo:       taskRepo,
		userRepo:       userRepo,
		cache:          cache,
	}
}

// List returns the catalog with per-user fit annotations, sorted by fit.
// The unfiltered catalog is cached; the catalog is read-only so no
// invalidation is needed beyond the TTL.
func (s *universityService) List(ctx context.Context, userID uint, filter repository.UniversityFilter) ([]model.RankedUniversity, error) {
	unfiltered := filter.Country == "" && filter.Program == "" &&
		filter.BudgetMax.IsZero() && len(filter.Countries) == 0

	var universities []model.University
	if unfiltered {
		if data, _ := s.cache.Get(ctx, catalogCacheKey); data != nil {
			_ = json.Unmarshal(data, &universities)
		}
	}

	if universities == nil {
		var err error
		universities, err = s.universityRepo.List(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("list universities: %w", err)
		}
		if unfiltered {
			if payload, err := json.Marshal(universities); err == nil {
				_ = s.cache.Set(ctx, catalogCacheKey, payload, catalogCacheTTL)
			}
		}
	}

	profile := s.profileOrNil(ctx, userID)
	return rankUniversities(universities, profile), nil
}

// Recommendations returns profile-matched universities, ranked by fit.
// Requires completed onboarding.
func (s *universityService) Recommendations(ctx context.Context, userID uint) ([]model.RankedUniversity, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !user.OnboardingCompleted {
		return nil, apperrors.ErrOnboardingRequired
	}

	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOnboardingRequired
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}

	filter := repository.UniversityFilter{}
	if !profile.BudgetMax.IsZero() {
		filter.BudgetMax = profile.BudgetMax.Mul(budgetBuffer)
	}
	filter.Countries = profile.PreferredCountryList()

	universities, err := s.universityRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list universities: %w", err)
	}
	return rankUniversities(universities, profile), nil
}

// Shortlist lists the user's shortlist entries with universities attached.
func (s *universityService) Shortlist(ctx context.Context, userID uint) ([]model.ShortlistEntry, error) {
	entries, err := s.shortlistRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list shortlist: %w", err)
	}
	return entries, nil
}

// AddToShortlist adds a university to the user's shortlist. Idempotent:
// re-adding returns the existing entry. The first shortlist advances the
// user to the finalizing stage.
func (s *universityService) AddToShortlist(ctx context.Context, userID, universityID uint, category, notes string) (*model.ShortlistEntry, error) {
	university, err := s.universityRepo.FindByID(ctx, universityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUniversityNotFound
		}
		return nil, fmt.Errorf("find university: %w", err)
	}

	existing, err := s.shortlistRepo.FindByUserAndUniversity(ctx, userID, universityID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find shortlist entry: %w", err)
	}

	if category == "" {
		_, category, _ = fitScore(university, s.profileOrNil(ctx, userID))
	}

	entry := &model.ShortlistEntry{
		UserID:            userID,
		UniversityID:      universityID,
		Category:          category,
		ApplicationStatus: model.ApplicationShortlisted,
		Notes:             notes,
	}
	if err := s.shortlistRepo.Create(ctx, entry); err != nil {
		// Lost a race with a concurrent add; the existing entry wins.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.shortlistRepo.FindByUserAndUniversity(ctx, userID, universityID)
		}
		return nil, fmt.Errorf("create shortlist entry: %w", err)
	}
	entry.University = *university

	s.advanceStage(ctx, userID, model.StageFinalizingUniversities)
	return entry, nil
}

// RemoveFromShortlist deletes a shortlist entry. Locked entries must be
// unlocked first.
func (s *universityService) RemoveFromShortlist(ctx context.Context, userID, universityID uint) error {
	entry, err := s.shortlistRepo.FindByUserAndUniversity(ctx, userID, universityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotShortlisted
		}
		return fmt.Errorf("find shortlist entry: %w", err)
	}
	if entry.IsLocked {
		return apperrors.ErrShortlistLocked
	}
	if err := s.shortlistRepo.Delete(ctx, entry); err != nil {
		return fmt.Errorf("delete shortlist entry: %w", err)
	}
	return nil
}

// UpdateApplicationStatus moves a shortlist entry through the application
// pipeline.
func (s *universityService) UpdateApplicationStatus(ctx context.Context, userID, universityID uint, status string) (*model.ShortlistEntry, error) {
	entry, err := s.shortlistRepo.FindByUserAndUniversity(ctx, userID, universityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotShortlisted
		}
		return nil, fmt.Errorf("find shortlist entry: %w", err)
	}

	entry.ApplicationStatus = status
	if err := s.shortlistRepo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("update shortlist entry: %w", err)
	}
	return entry, nil
}

// Lock marks a shortlisted university as committed. The first lock advances
// the user to the application stage and seeds application tasks. Locking an
// already-locked entry is a no-op.
func (s *universityService) Lock(ctx context.Context, userID, universityID uint) (*model.ShortlistEntry, error) {
	entry, err := s.shortlistRepo.FindByUserAndUniversity(ctx, userID, universityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotShortlisted
		}
		return nil, fmt.Errorf("find shortlist entry: %w", err)
	}
	if entry.IsLocked {
		return entry, nil
	}

	now := time.Now()
	entry.IsLocked = true
	entry.LockedAt = &now
	if err := s.shortlistRepo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("update shortlist entry: %w", err)
	}

	s.advanceStage(ctx, userID, model.StagePreparingApplications)

	if err := s.taskRepo.CreateBatch(ctx, applicationTasks(userID, &entry.University)); err != nil {
		return nil, fmt.Errorf("create application tasks: %w", err)
	}
	return entry, nil
}

// Unlock clears the locked flag. Unlocking an unlocked entry is a no-op.
func (s *universityService) Unlock(ctx context.Context, userID, universityID uint) (*model.ShortlistEntry, error) {
	entry, err := s.shortlistRepo.FindByUserAndUniversity(ctx, userID, universityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotShortlisted
		}
		return nil, fmt.Errorf("find shortlist entry: %w", err)
	}
	if !entry.IsLocked {
		return entry, nil
	}

	entry.IsLocked = false
	entry.LockedAt = nil
	if err := s.shortlistRepo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("update shortlist entry: %w", err)
	}
	return entry, nil
}

func (s *universityService) profileOrNil(ctx context.Context, userID uint) *model.Profile {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil
	}
	return profile
}

// advanceStage moves the user forward, never backward. Stage bookkeeping is
// best-effort and must not fail the triggering operation.
func (s *universityService) advanceStage(ctx context.Context, userID uint, stage int) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil || user.CurrentStage >= stage {
		return
	}
	user.CurrentStage = stage
	_ = s.userRepo.Update(ctx, user)
}

// applicationTasks is the task bundle seeded when a university is locked.
func applicationTasks(userID uint, university *model.University) []model.Task {
	uniID := university.ID
	return []model.Task{
		{
			UserID:       userID,
			UniversityID: &uniID,
			Title:        fmt.Sprintf("Complete SOP for %s", university.Name),
			Description:  "Write a tailored Statement of Purpose for this university",
			Category:     "document",
			Priority:     "high",
		},
		{
			UserID:       userID,
			UniversityID: &uniID,
			Title:        fmt.Sprintf("Gather transcripts for %s", university.Name),
			Description:  "Request official transcripts from your institution",
			Category:     "document",
			Priority:     "high",
		},
		{
			UserID:       userID,
			UniversityID: &uniID,
			Title:        fmt.Sprintf("Get recommendation letters for %s", university.Name),
			Description:  "Request 2-3 recommendation letters from professors/employers",
			Category:     "document",
			Priority:     "high",
		},
		{
			UserID:       userID,
			UniversityID: &uniID,
			Title:        fmt.Sprintf("Submit application to %s", university.Name),
			Description:  fmt.Sprintf("Complete and submit the application before %s", university.ApplicationDeadline),
			Category:     "application",
			Priority:     "medium",
		},
	}
}
