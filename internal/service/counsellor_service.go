package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "counsellor/internal/errors"
	"counsellor/internal/gemini"
	"counsellor/internal/model"
	"counsellor/internal/repository"
)

// contextHistoryLimit caps how many prior messages feed the AI context.
const contextHistoryLimit = 10

// Generator is the slice of the Gemini client the counsellor needs.
type Generator interface {
	Available() bool
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ChatResult is a counsellor chat turn.
type ChatResult struct {
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// VoiceOnboardingResult is one turn of the voice onboarding flow.
type VoiceOnboardingResult struct {
	ResponseText  string         `json:"response_text"`
	NextStep      string         `json:"next_step,omitempty"`
	ExtractedData map[string]any `json:"extracted_data,omitempty"`
	IsComplete    bool           `json:"is_complete"`
}

// CounsellorService proxies chat to the AI provider and keeps the per-user
// conversation history.
type CounsellorService interface {
	Chat(ctx context.Context, userID uint, message string) (*ChatResult, error)
	VoiceOnboarding(ctx context.Context, userID uint, transcript, currentStep string) (*VoiceOnboardingResult, error)
	History(ctx context.Context, userID uint, limit int) ([]model.Conversation, error)
	ClearHistory(ctx context.Context, userID uint) error
}

type counsellorService struct {
	userRepo         repository.UserRepository
	profileRepo      repository.ProfileRepository
	shortlistRepo    repository.ShortlistRepository
	taskRepo         repository.TaskRepository
	conversationRepo repository.ConversationRepository
	ai               Generator
}

// NewCounsellorService creates a new counsellor service.
func NewCounsellorService(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	shortlistRepo repository.ShortlistRepository,
	taskRepo repository.TaskRepository,
	conversationRepo repository.ConversationRepository,
	ai Generator,
) CounsellorService {
	return &counsellorService{
		userRepo:         userRepo,
		profileRepo:      profileRepo,
		shortlistRepo:    shortlistRepo,
		taskRepo:         taskRepo,
		conversationRepo: conversationRepo,
		ai:               ai,
	}
}

// Chat answers one user message. The user's message is persisted before the
// provider is called, so history survives an upstream failure.
func (s *counsellorService) Chat(ctx context.Context, userID uint, message string) (*ChatResult, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !user.OnboardingCompleted {
		return &ChatResult{
			Message:     "Please complete your onboarding first to unlock the AI Counsellor. I need to understand your background to provide personalized guidance.",
			Suggestions: []string{"Complete Onboarding"},
		}, nil
	}

	uc, err := s.buildUserContext(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.conversationRepo.Create(ctx, &model.Conversation{
		UserID:  userID,
		Role:    model.RoleUser,
		Message: message,
	}); err != nil {
		return nil, fmt.Errorf("persist user message: %w", err)
	}

	var reply string
	if s.ai.Available() {
		reply, err = s.ai.GenerateText(ctx, gemini.CounsellorPrompt(uc, message))
		if err != nil {
			return nil, classifyUpstreamError(err)
		}
	} else {
		reply = fallbackChatReply(message, uc)
	}

	if err := s.conversationRepo.Create(ctx, &model.Conversation{
		UserID:  userID,
		Role:    model.RoleAssistant,
		Message: reply,
	}); err != nil {
		return nil, fmt.Errorf("persist assistant message: %w", err)
	}

	return &ChatResult{
		Message:     reply,
		Suggestions: stageSuggestions(user.CurrentStage),
	}, nil
}

// VoiceOnboarding feeds a spoken transcript through the extraction prompt,
// merges any extracted fields into the profile, and flips the onboarding
// flag when the flow reports completion. Same persistence contract as Chat.
func (s *counsellorService) VoiceOnboarding(ctx context.Context, userID uint, transcript, currentStep string) (*VoiceOnboardingResult, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

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

	if err := s.conversationRepo.Create(ctx, &model.Conversation{
		UserID:  userID,
		Role:    model.RoleUser,
		Message: transcript,
	}); err != nil {
		return nil, fmt.Errorf("persist transcript: %w", err)
	}

	var result *VoiceOnboardingResult
	if s.ai.Available() {
		raw, err := s.ai.GenerateText(ctx, gemini.OnboardingPrompt(profileFields(profile), transcript, currentStep))
		if err != nil {
			return nil, classifyUpstreamError(err)
		}
		parsed, err := gemini.ParseOnboardingResult(raw)
		if err != nil {
			// The model answered free-form; use the text as-is.
			result = &VoiceOnboardingResult{ResponseText: strings.TrimSpace(raw)}
		} else {
			result = &VoiceOnboardingResult{
				ResponseText:  parsed.ResponseText,
				NextStep:      parsed.NextStep,
				ExtractedData: parsed.ExtractedData,
				IsComplete:    parsed.IsComplete,
			}
		}
	} else {
		result = fallbackOnboardingReply(profile)
	}

	if len(result.ExtractedData) > 0 {
		applyExtractedFields(profile, result.ExtractedData)
		if err := s.profileRepo.Update(ctx, profile); err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
	}

	if result.IsComplete && !user.OnboardingCompleted {
		user.OnboardingCompleted = true
		user.CurrentStage = model.StageDiscoveringUniversities
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
	}

	if err := s.conversationRepo.Create(ctx, &model.Conversation{
		UserID:  userID,
		Role:    model.RoleAssistant,
		Message: result.ResponseText,
	}); err != nil {
		return nil, fmt.Errorf("persist assistant message: %w", err)
	}

	return result, nil
}

// History returns the user's conversation in chronological order. A limit
// of 0 returns everything.
func (s *counsellorService) History(ctx context.Context, userID uint, limit int) ([]model.Conversation, error) {
	return s.conversationRepo.ListByUser(ctx, userID, limit)
}

// ClearHistory wipes the user's conversation.
func (s *counsellorService) ClearHistory(ctx context.Context, userID uint) error {
	return s.conversationRepo.DeleteByUser(ctx, userID)
}

func (s *counsellorService) buildUserContext(ctx context.Context, user *model.User) (gemini.UserContext, error) {
	uc := gemini.UserContext{
		UserName:            user.FullName,
		CurrentStage:        user.CurrentStage,
		OnboardingCompleted: user.OnboardingCompleted,
	}

	if profile, err := s.profileRepo.FindByUserID(ctx, user.ID); err == nil {
		uc.Profile = profileFields(profile)
	}

	entries, err := s.shortlistRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return uc, fmt.Errorf("list shortlist: %w", err)
	}
	for _, entry := range entries {
		uc.Shortlist = append(uc.Shortlist, gemini.ShortlistItem{
			Name:     entry.University.Name,
			Country:  entry.University.Country,
			Category: entry.Category,
			IsLocked: entry.IsLocked,
		})
	}

	pending := false
	tasks, err := s.taskRepo.ListByUser(ctx, user.ID, repository.TaskFilter{IsCompleted: &pending})
	if err != nil {
		return uc, fmt.Errorf("list tasks: %w", err)
	}
	for _, task := range tasks {
		uc.PendingTasks = append(uc.PendingTasks, gemini.TaskItem{
			Title:    task.Title,
			Category: task.Category,
			Priority: task.Priority,
		})
	}

	history, err := s.conversationRepo.ListByUser(ctx, user.ID, contextHistoryLimit)
	if err != nil {
		return uc, fmt.Errorf("list history: %w", err)
	}
	for _, msg := range history {
		uc.History = append(uc.History, gemini.Message{Role: msg.Role, Content: msg.Message})
	}

	return uc, nil
}

// classifyUpstreamError maps provider failures onto the error taxonomy:
// timeouts become 504s, everything else a 502.
func classifyUpstreamError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %v", apperrors.ErrUpstreamTimeout, err)
	}
	return fmt.Errorf("%w: %v", apperrors.ErrUpstream, err)
}

func stageSuggestions(stage int) []string {
	switch stage {
	case model.StageBuildingProfile:
		return []string{"Complete Onboarding", "What should I do next?"}
	case model.StageDiscoveringUniversities:
		return []string{"What universities should I apply to?", "Analyze my profile"}
	case model.StageFinalizingUniversities:
		return []string{"Which shortlisted university suits me best?", "Should I lock a university?"}
	case model.StagePreparingApplications:
		return []string{"Help me with my SOP", "What documents do I need?"}
	default:
		return nil
	}
}

// fallbackChatReply is the deterministic answer used when no API key is
// configured. Keeps the counsellor usable in development.
func fallbackChatReply(message string, uc gemini.UserContext) string {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "hello") || strings.Contains(lower, "hi"):
		return fmt.Sprintf("Hello %s! I'm your study abroad counsellor. You're currently in the %s stage. How can I help you today?",
			uc.UserName, gemini.StageName(uc.CurrentStage))
	case strings.Contains(lower, "universit") || strings.Contains(lower, "recommend") || strings.Contains(lower, "apply"):
		return "Head over to the Universities page for recommendations ranked against your profile - each one is categorized as dream, target, or safe. Shortlist the ones you like and I can help you compare them."
	case strings.Contains(lower, "task") || strings.Contains(lower, "next"):
		if len(uc.PendingTasks) > 0 {
			return fmt.Sprintf("You have %d pending tasks. A good next step: %q.", len(uc.PendingTasks), uc.PendingTasks[0].Title)
		}
		return "You're all caught up on tasks. A good next step is reviewing your shortlist."
	default:
		return "I can help with university recommendations, profile analysis, and application planning. What would you like to know?"
	}
}

// onboardingAreas drives the scripted fallback flow, in interview order.
var onboardingAreas = []struct {
	step     string
	answered func(*model.Profile) bool
	question string
}{
	{"academic_background", func(p *model.Profile) bool { return p.EducationLevel != "" }, "Let's start with your academic background. What's your current education level and major?"},
	{"study_goals", func(p *model.Profile) bool { return p.IntendedDegree != "" }, "What degree do you want to pursue abroad, and in which field?"},
	{"budget", func(p *model.Profile) bool { return !p.BudgetMax.IsZero() }, "What's your annual budget range for tuition?"},
	{"exam_readiness", func(p *model.Profile) bool { return p.IELTSStatus != "" }, "Where are you with language and admission tests like IELTS or GRE?"},
}

func fallbackOnboardingReply(profile *model.Profile) *VoiceOnboardingResult {
	for _, area := range onboardingAreas {
		if !area.answered(profile) {
			return &VoiceOnboardingResult{
				ResponseText: area.question,
				NextStep:     area.step,
			}
		}
	}
	return &VoiceOnboardingResult{
		ResponseText: "That covers everything I need. You can review your profile and complete onboarding whenever you're ready.",
		IsComplete:   true,
	}
}

// profileFields flattens a profile for the AI prompt.
func profileFields(p *model.Profile) map[string]any {
	if p == nil {
		return nil
	}
	return map[string]any{
		"education_level":     p.EducationLevel,
		"degree":              p.Degree,
		"major":               p.Major,
		"graduation_year":     p.GraduationYear,
		"gpa":                 p.GPA,
		"intended_degree":     p.IntendedDegree,
		"field_of_study":      p.FieldOfStudy,
		"target_intake":       p.TargetIntake,
		"preferred_countries": p.PreferredCountries,
		"budget_min":          p.BudgetMin,
		"budget_max":          p.BudgetMax,
		"funding_type":        p.FundingType,
		"ielts_status":        p.IELTSStatus,
		"ielts_score":         p.IELTSScore,
		"gre_status":          p.GREStatus,
		"gre_score":           p.GREScore,
		"sop_status":          p.SOPStatus,
	}
}

// applyExtractedFields merges AI-extracted onboarding answers into the
// profile. Unknown keys and mistyped values are ignored.
func applyExtractedFields(p *model.Profile, data map[string]any) {
	str := func(v any) (string, bool) {
		s, ok := v.(string)
		return s, ok && s != ""
	}
	num := func(v any) (float64, bool) {
		f, ok := v.(float64)
		return f, ok
	}

	for key, value := range data {
		switch key {
		case "education_level":
			if s, ok := str(value); ok {
				p.EducationLevel = s
			}
		case "degree":
			if s, ok := str(value); ok {
				p.Degree = s
			}
		case "major":
			if s, ok := str(value); ok {
				p.Major = s
			}
		case "graduation_year":
			if f, ok := num(value); ok {
				p.GraduationYear = int(f)
			}
		case "gpa":
			if f, ok := num(value); ok {
				p.GPA = f
			}
		case "intended_degree":
			if s, ok := str(value); ok {
				p.IntendedDegree = s
			}
		case "field_of_study":
			if s, ok := str(value); ok {
				p.FieldOfStudy = s
			}
		case "target_intake":
			if s, ok := str(value); ok {
				p.TargetIntake = s
			}
		case "preferred_countries":
			if s, ok := str(value); ok {
				p.PreferredCountries = s
			}
		case "budget_min":
			if f, ok := num(value); ok {
				p.BudgetMin = decimal.NewFromFloat(f)
			}
		case "budget_max":
			if f, ok := num(value); ok {
				p.BudgetMax = decimal.NewFromFloat(f)
			}
		case "funding_type":
			if s, ok := str(value); ok {
				p.FundingType = s
			}
		case "ielts_status":
			if s, ok := str(value); ok {
				p.IELTSStatus = s
			}
		case "ielts_score":
			if f, ok := num(value); ok {
				p.IELTSScore = f
			}
		case "gre_status":
			if s, ok := str(value); ok {
				p.GREStatus = s
			}
		case "gre_score":
			if f, ok := num(value); ok {
				p.GREScore = int(f)
			}
		case "sop_status":
			if s, ok := str(value); ok {
				p.SOPStatus = s
			}
		}
	}
}
