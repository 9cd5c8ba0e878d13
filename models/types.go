package models

import "time"

// Group status constants. A group is open for edits until the draw
// commits; drawn is terminal.
const (
	StatusOpen  = "open"
	StatusDrawn = "drawn"
)

// Request types

type CreateGroupRequest struct {
	Name          string `json:"name"`
	OrganizerName string `json:"organizer_name"`
}

type AddParticipantRequest struct {
	Name string `json:"name"`
}

type ExclusionRequest struct {
	ParticipantA string `json:"participant_a"`
	ParticipantB string `json:"participant_b"`
}

type ExecuteDrawRequest struct {
	FinalBudget string `json:"final_budget"`
}

type UpdateWishlistRequest struct {
	Wishlist string `json:"wishlist"`
}

type SuggestBudgetRequest struct {
	Amount string `json:"amount"`
}

// Response types

type CreateGroupResponse struct {
	GroupID   string `json:"group_id"`
	AdminKey  string `json:"admin_key"`
	ShareSlug string `json:"share_slug"`
}

type AddParticipantResponse struct {
	ParticipantID    string `json:"participant_id"`
	ParticipantToken string `json:"participant_token"`
}

// DrawValidation is the structured ValidateDraw result. A completed
// draw surfaces as a warning, not an error, so status polling stays
// idempotent.
type DrawValidation struct {
	IsValid            bool     `json:"is_valid"`
	CanDraw            bool     `json:"can_draw"`
	ParticipantCount   int      `json:"participant_count"`
	ExclusionRuleCount int      `json:"exclusion_rule_count"`
	Errors             []string `json:"errors"`
	Warnings           []string `json:"warnings"`
}

type ExecuteDrawResponse struct {
	AssignmentCount int       `json:"assignment_count"`
	DrawCompletedAt time.Time `json:"draw_completed_at"`
	FinalBudget     string    `json:"final_budget"`
}

// MyAssignmentResponse reveals a single participant's recipient. The
// full assignment set is never exposed through any endpoint.
type MyAssignmentResponse struct {
	RecipientName     string `json:"recipient_name"`
	RecipientWishlist string `json:"recipient_wishlist"`
	FinalBudget       string `json:"final_budget"`
}

type GroupPublicResponse struct {
	Name             string     `json:"name"`
	Status           string     `json:"status"`
	ParticipantCount int        `json:"participant_count"`
	DrawnAt          *time.Time `json:"drawn_at,omitempty"`
}

// Domain types

type Group struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	OrganizerName string     `json:"organizer_name"`
	Status        string     `json:"status"`
	ShareSlug     string     `json:"share_slug"`
	FinalBudget   *string    `json:"final_budget,omitempty"`
	DrawnAt       *time.Time `json:"drawn_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type Participant struct {
	ID        string    `json:"id"`
	GroupID   string    `json:"group_id"`
	Name      string    `json:"name"`
	Wishlist  string    `json:"wishlist"`
	Token     string    `json:"-"` // Never expose in JSON
	CreatedAt time.Time `json:"created_at"`
}

// ExclusionRule is stored canonically with ParticipantA < ParticipantB;
// it forbids assignments in both directions.
type ExclusionRule struct {
	GroupID      string    `json:"group_id"`
	ParticipantA string    `json:"participant_a"`
	ParticipantB string    `json:"participant_b"`
	CreatedAt    time.Time `json:"created_at"`
}

type Assignment struct {
	GroupID     string    `json:"group_id"`
	GiverID     string    `json:"giver_id"`
	RecipientID string    `json:"recipient_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// BudgetSuggestion amounts are shown to the organizer without the
// suggesting participant attached.
type BudgetSuggestion struct {
	Amount    string    `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

type GroupAdminResponse struct {
	Group             Group              `json:"group"`
	Participants      []Participant      `json:"participants"`
	ExclusionRules    []ExclusionRule    `json:"exclusion_rules"`
	BudgetSuggestions []BudgetSuggestion `json:"budget_suggestions"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
