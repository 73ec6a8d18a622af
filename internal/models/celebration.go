package models

// Priority orders celebration events for display and eviction
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rank returns the sort weight of a priority. Higher ranks are shown first
// and survive eviction longer. Every priority comparison goes through this.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Celebration event types
const (
	CelebrationEvolution    = "evolution"
	CelebrationAchievement  = "achievement"
	CelebrationAccessory    = "accessory"
	CelebrationPersonalBest = "personal_best"
	CelebrationWeeklyGoal   = "weekly_goal"
)

// CelebrationEvent is a pending notification describing something worth
// showing to the kid. The UI peeks the highest-priority event and
// acknowledges it once displayed.
type CelebrationEvent struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Message     string   `json:"message"`
	Animation   string   `json:"animation"`
	DurationMs  int      `json:"duration_ms"`
	Sound       string   `json:"sound"`
	Priority    Priority `json:"priority"`
	AutoTrigger bool     `json:"auto_trigger"`
}
