package domain

import "time"

// ActivityEvent records a single action taken by a subject, shown on the
// dashboard activity feed.
type ActivityEvent struct {
	ActorID   string    `json:"actor_id"`
	Action    string    `json:"action"`
	Subject   string    `json:"subject,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Well-known activity actions.
const (
	ActionLogin               = "login"
	ActionLogout              = "logout"
	ActionProjectCreated      = "project_created"
	ActionOnboardingCompleted = "onboarding_completed"
)
