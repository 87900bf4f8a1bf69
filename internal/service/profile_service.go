package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "counsellor/internal/errors"
	"counsellor/internal/model"
	"counsellor/internal/repository"
)

// ProfileUpdate carries partial-update fields; nil means "leave unchanged".
type ProfileUpdate struct {
	EducationLevel     *string
	Degree             *string
	Major              *string
	GraduationYear     *int
	GPA                *float64
	IntendedDegree     *string
	FieldOfStudy       *string
	TargetIntake       *string
	PreferredCountries *string
	BudgetMin          *decimal.Decimal
	BudgetMax          *decimal.Decimal
	FundingType        *string
	IELTSStatus        *string
	IELTSScore         *float64
	TOEFLStatus        *string
	TOEFLScore         *int
	GREStatus          *string
	GREScore           *int
	GMATStatus         *string
	GMATScore          *int
	SOPStatus          *string
}

func (u ProfileUpdate) apply(p *model.Profile) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&p.EducationLevel, u.EducationLevel)
	setString(&p.Degree, u.Degree)
	setString(&p.Major, u.Major)
	setString(&p.IntendedDegree, u.IntendedDegree)
	setString(&p.FieldOfStudy, u.FieldOfStudy)
	setString(&p.TargetIntake, u.TargetIntake)
	setString(&p.PreferredCountries, u.PreferredCountries)
	setString(&p.FundingType, u.FundingType)
	setString(&p.IELTSStatus, u.IELTSStatus)
	setString(&p.TOEFLStatus, u.TOEFLStatus)
	setString(&p.GREStatus, u.GREStatus)
	setString(&p.GMATStatus, u.GMATStatus)
	setString(&p.SOPStatus, u.SOPStatus)

	if u.GraduationYear != nil {
		p.GraduationYear = *u.GraduationYear
	}
	if u.GPA != nil {
		p.GPA = *u.GPA
	}
	if u.BudgetMin != nil {
		p.BudgetMin = *u.BudgetMin
	}
	if u.BudgetMax != nil {
		p.BudgetMax = *u.BudgetMax
	}
	if u.IELTSScore != nil {
		p.IELTSScore = *u.IELTSScore
	}
	if u.TOEFLScore != nil {
		p.TOEFLScore = *u.TOEFLScore
	}
	if u.GREScore != nil {
		p.GREScore = *u.GREScore
	}
	if u.GMATScore != nil {
		p.GMATScore = *u.GMATScore
	}
}

// ProfileStrength summarises how application-ready a profile is.
type ProfileStrength struct {
	Academics    string `json:"academics"` // strong, average, weak
	Exams        string `json:"exams"`     // not_started, in_progress, completed
	SOP          string `json:"sop"`       // not_started, draft, ready
	OverallScore int    `json:"overall_score"`
}

// Dashboard is the aggregated read-only view of a user's journey.
type Dashboard struct {
	User             *model.User      `json:"user"`
	Profile          *model.Profile   `json:"profile,omitempty"`
	ProfileStrength  *ProfileStrength `json:"profile_strength,omitempty"`
	ShortlistedCount int              `json:"shortlisted_count"`
	LockedCount      int              `json:"locked_count"`
	PendingTasks     int64            `json:"pending_tasks"`
	CompletedTasks   int64            `json:"completed_tasks"`
	RecentTasks      []model.Task     `json:"recent_tasks"`
}

// ProfileService handles onboarding and profile operations.
type ProfileService interface {
	Get(ctx context.Context, userID uint) (*model.Profile, error)
	Update(ctx context.Context, userID uint, update ProfileUpdate) (*model.Profile, error)
	CompleteOnboarding(ctx context.Context, userID uint, update ProfileUpdate) (*model.Profile, error)
	Dashboard(ctx context.Context, userID uint) (*Dashboard, error)
}

type profileService struct {
	userRepo      repository.UserRepository
	profileRepo   repository.ProfileRepository
	shortlistRepo repository.ShortlistRepository
	taskRepo      repository.TaskRepository
}

// NewProfileService creates a new profile service.
func NewProfileService(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	shortlistRepo repository.ShortlistRepository,
	taskRepo repository.TaskRepository,
) ProfileService {
	return &profileService{
		userRepo:      userRepo,
		profileRepo:   profileRepo,
		shortlistRepo: shortlistRepo,
		taskRepo:      taskRepo,
	}
}

// Get retrieves the user's profile.
func (s *profileService) Get(ctx context.Context, userID uint) (*model.Profile, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return profile, nil
}

// Update applies a partial update; unspecified fields are left unchanged. A
// missing profile row is created first.
func (s *profileService) Update(ctx context.Context, userID uint, update ProfileUpdate) (*model.Profile, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("find profile: %w", err)
		}
		profile = &model.Profile{UserID: userID}
		if err := s.profileRepo.Create(ctx, profile); err != nil {
			return nil, fmt.Errorf("create profile: %w", err)
		}
	}

	update.apply(profile)
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return profile, nil
}

// CompleteOnboarding applies the onboarding answers, sets the completion
// flag, and advances the user to the discovery stage. Completing twice is a
// conflict.
func (s *profileService) CompleteOnboarding(ctx context.Context, userID uint, update ProfileUpdate) (*model.Profile, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user.OnboardingCompleted {
		return nil, apperrors.ErrOnboardingComplete
	}

	profile, err := s.Update(ctx, userID, update)
	if err != nil {
		return nil, err
	}

	user.OnboardingCompleted = true
	user.CurrentStage = model.StageDiscoveringUniversities
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return profile, nil
}

// Dashboard aggregates profile, shortlist, and task summaries. Read-only.
func (s *profileService) Dashboard(ctx context.Context, userID uint) (*Dashboard, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	dashboard := &Dashboard{User: user, RecentTasks: []model.Task{}}

	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find profile: %w", err)
	}
	if profile != nil {
		dashboard.Profile = profile
		strength := calculateProfileStrength(profile)
		dashboard.ProfileStrength = &strength
	}

	entries, err := s.shortlistRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list shortlist: %w", err)
	}
	dashboard.ShortlistedCount = len(entries)
	for _, entry := range entries {
		if entry.IsLocked {
			dashboard.LockedCount++
		}
	}

	pending, err := s.taskRepo.CountByUser(ctx, userID, false)
	if err != nil {
		return nil, fmt.Errorf("count pending tasks: %w", err)
	}
	completed, err := s.taskRepo.CountByUser(ctx, userID, true)
	if err != nil {
		return nil, fmt.Errorf("count completed tasks: %w", err)
	}
	dashboard.PendingTasks = pending
	dashboard.CompletedTasks = completed

	tasks, err := s.taskRepo.ListByUser(ctx, userID, repository.TaskFilter{})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if len(tasks) > 5 {
		tasks = tasks[:5]
	}
	dashboard.RecentTasks = tasks

	return dashboard, nil
}

func calculateProfileStrength(profile *model.Profile) ProfileStrength {
	academicScore := 0
	if profile.GPA > 0 {
		academicScore++
	}
	if profile.Degree != "" {
		academicScore++
	}
	if profile.Major != "" {
		academicScore++
	}
	academics := "weak"
	switch {
	case academicScore >= 3:
		academics = "strong"
	case academicScore >= 1:
		academics = "average"
	}

	examScore := 0
	if profile.IELTSStatus == "completed" {
		examScore++
	}
	if profile.GREStatus == "completed" {
		examScore++
	}
	exams := "not_started"
	switch {
	case examScore >= 2:
		exams = "completed"
	case profile.IELTSStatus == "preparing" || profile.GREStatus == "preparing":
		exams = "in_progress"
	}

	sop := profile.SOPStatus
	if sop == "" {
		sop = "not_started"
	}

	overall := 0
	switch academics {
	case "strong":
		overall += 30
	case "average":
		overall += 15
	}
	switch exams {
	case "completed":
		overall += 30
	case "in_progress":
		overall += 15
	}
	switch sop {
	case "ready":
		overall += 20
	case "draft":
		overall += 10
	}
	if profile.PreferredCountries != "" {
		overall += 20
	}

	return ProfileStrength{
		Academics:    academics,
		Exams:        exams,
		SOP:          sop,
		OverallScore: overall,
	}
}
