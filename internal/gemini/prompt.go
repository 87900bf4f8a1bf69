package gemini

import (
	"encoding/json"
	"fmt"
	"strings"
)

// UserContext carries everything the counsellor prompt needs to know about a
// student. Built by the counsellor service from persisted state.
type UserContext struct {
	UserName            string          `json:"user_name"`
	CurrentStage        int             `json:"current_stage"`
	OnboardingCompleted bool            `json:"onboarding_completed"`
	Profile             map[string]any  `json:"profile,omitempty"`
	Shortlist           []ShortlistItem `json:"shortlisted_universities"`
	PendingTasks        []TaskItem      `json:"pending_tasks"`
	History             []Message       `json:"-"`
}

// ShortlistItem summarises a shortlisted university for the prompt.
type ShortlistItem struct {
	Name     string `json:"name"`
	Country  string `json:"country"`
	Category string `json:"category"`
	IsLocked bool   `json:"is_locked"`
}

// TaskItem summarises a pending task for the prompt.
type TaskItem struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Priority string `json:"priority"`
}

// Message is a prior conversation turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// StageName returns the display name of a journey stage.
func StageName(stage int) string {
	switch stage {
	case 1:
		return "Building Profile"
	case 2:
		return "Discovering Universities"
	case 3:
		return "Finalizing Universities"
	case 4:
		return "Preparing Applications"
	default:
		return "Unknown"
	}
}

const historyWindow = 6

// CounsellorPrompt assembles the full prompt for a chat turn: system
// instructions, user context, the recent conversation window, and the new
// message.
func CounsellorPrompt(uc UserContext, message string) string {
	var b strings.Builder

	profileJSON, _ := json.MarshalIndent(uc.Profile, "", "  ")
	shortlistJSON, _ := json.MarshalIndent(uc.Shortlist, "", "  ")
	tasksJSON, _ := json.MarshalIndent(uc.PendingTasks, "", "  ")

	locked := make([]ShortlistItem, 0)
	for _, s := range uc.Shortlist {
		if s.IsLocked {
			locked = append(locked, s)
		}
	}
	lockedJSON, _ := json.MarshalIndent(locked, "", "  ")

	fmt.Fprintf(&b, `You are an expert study-abroad AI counsellor. Your name is "AI Counsellor".
You help students make informed decisions about studying abroad.

CURRENT USER CONTEXT:
- Name: %s
- Current Stage: %s
- Profile: %s
- Shortlisted Universities: %s
- Locked Universities: %s
- Pending Tasks: %s

YOUR ROLE:
1. Analyze the student's profile - highlight STRENGTHS and GAPS
2. Recommend universities categorized as:
   - DREAM: Highly competitive, low acceptance rate (<15%%), student has <50%% chance
   - TARGET: Moderate competition, student has 50-70%% chance
   - SAFE: Higher acceptance, student has >70%% chance
3. Always EXPLAIN WHY a university fits or has risks
4. Suggest actionable next steps based on current stage
5. Be encouraging but REALISTIC about chances
6. When the student agrees to shortlist or lock a university, mention you can do that for them

RESPONSE GUIDELINES:
- Be concise by default; keep initial responses under 150 words.
- Answer exactly what the user asks; do not pivot to unsolicited advice.
- For a simple greeting, reply with a short friendly greeting and an open question.
- If the input is gibberish, politely ask for clarification.
- Refuse to engage with abusive language; steer back to the student's applications.
- Talk like a helpful, knowledgeable friend, not a search engine.
`, uc.UserName, StageName(uc.CurrentStage), profileJSON, shortlistJSON, lockedJSON, tasksJSON)

	b.WriteString("\nCONVERSATION:\n")
	history := uc.History
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	for _, msg := range history {
		role := "Counsellor"
		if msg.Role == "user" {
			role = "User"
		}
		fmt.Fprintf(&b, "%s: %s\n", role, msg.Content)
	}
	fmt.Fprintf(&b, "User: %s\nCounsellor:", message)

	return b.String()
}

// OnboardingPrompt assembles the voice-onboarding extraction prompt. The
// model is instructed to answer with a single JSON object matching
// OnboardingResult.
func OnboardingPrompt(currentProfile map[string]any, transcript, currentStep string) string {
	profileJSON, _ := json.MarshalIndent(currentProfile, "", "  ")

	return fmt.Sprintf(`You are a friendly study-abroad onboarding assistant collecting a student's
profile through conversation. Work through these areas in order: academic
background (education_level, degree, major, graduation_year, gpa), study
goals (intended_degree, field_of_study, target_intake, preferred_countries),
budget (budget_min, budget_max, funding_type), and exam readiness
(ielts_status, ielts_score, gre_status, gre_score, sop_status).

CURRENT PROFILE STATE:
%s

CURRENT STEP: %s

The student just said:
"%s"

Respond with ONLY a JSON object, no other text:
{
  "response_text": "<your short spoken reply, one or two sentences>",
  "next_step": "<the area to ask about next>",
  "extracted_data": {<profile fields you could extract from the student's words>},
  "is_complete": <true when every area has been covered>
}`, profileJSON, currentStep, transcript)
}

// OnboardingResult is the structured answer expected from OnboardingPrompt.
type OnboardingResult struct {
	ResponseText  string         `json:"response_text"`
	NextStep      string         `json:"next_step,omitempty"`
	ExtractedData map[string]any `json:"extracted_data,omitempty"`
	IsComplete    bool           `json:"is_complete"`
}

// ParseOnboardingResult decodes the model's JSON answer, tolerating a
// surrounding markdown code fence.
func ParseOnboardingResult(text string) (*OnboardingResult, error) {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
			trimmed = trimmed[:idx]
		}
		trimmed = strings.TrimSpace(trimmed)
	}

	var result OnboardingResult
	if err := json.Unmarshal([]byte(trimmed), &result); err != nil {
		return nil, fmt.Errorf("parsing onboarding result: %w", err)
	}
	return &result, nil
}
