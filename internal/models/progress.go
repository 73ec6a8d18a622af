package models

import "time"

// GoalMetric names what a weekly goal counts
type GoalMetric string

const (
	GoalSessions GoalMetric = "sessions"
	GoalWords    GoalMetric = "words"
	GoalMinutes  GoalMetric = "minutes"
)

// WeeklyGoal tracks progress toward a target within one calendar week
type WeeklyGoal struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	Metric      GoalMetric `json:"metric"`
	Target      int        `json:"target"`
	Progress    int        `json:"progress"`
	WeekStart   string     `json:"week_start"`
	Completed   bool       `json:"completed"`
}

// AchievementProgress is the persisted root document for the achievement engine
type AchievementProgress struct {
	UserID              string                        `json:"user_id"`
	Achievements        []Achievement                 `json:"achievements"`
	Accessories         []Accessory                   `json:"accessories"`
	PendingCelebrations []CelebrationEvent            `json:"pending_celebrations,omitempty"`
	WeeklyGoals         []WeeklyGoal                  `json:"weekly_goals,omitempty"`
	PersonalBests       map[BestCategory]PersonalBest `json:"personal_bests,omitempty"`
	TotalPoints         int                           `json:"total_points"`
	UpdatedAt           time.Time                     `json:"updated_at"`
}

// NewDefaultProgress creates an empty progress document for a user
func NewDefaultProgress(userID string, now time.Time) *AchievementProgress {
	return &AchievementProgress{
		UserID:        userID,
		Achievements:  []Achievement{},
		Accessories:   []Accessory{},
		PersonalBests: map[BestCategory]PersonalBest{},
		UpdatedAt:     now,
	}
}

// HasAchievement reports whether the achievement id has been earned
func (p *AchievementProgress) HasAchievement(id string) bool {
	for _, a := range p.Achievements {
		if a.ID == id {
			return true
		}
	}
	return false
}

// FindAccessory returns a pointer into the unlocked accessory list, or nil
func (p *AchievementProgress) FindAccessory(id string) *Accessory {
	for i := range p.Accessories {
		if p.Accessories[i].ID == id {
			return &p.Accessories[i]
		}
	}
	return nil
}
