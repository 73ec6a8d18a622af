package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"typepet/internal/catalog"
	"typepet/internal/models"
	"typepet/internal/storage"

	"github.com/google/uuid"
)

// Expected failures of accessory operations
var (
	ErrAccessoryNotUnlocked = errors.New("accessory not unlocked")
	ErrCategoryMismatch     = errors.New("accessory category mismatch")
)

// Notifier receives milestone notifications, e.g. to email a parent.
// Implementations must tolerate being called rarely and failing quietly.
type Notifier interface {
	WeeklyGoalCompleted(ctx context.Context, goal models.WeeklyGoal, totalPoints int) error
}

// UnlockResult reports the outcome of an achievement unlock attempt.
// An already-owned achievement yields Success=false with zero points; that is
// an expected result, not an error.
type UnlockResult struct {
	Success             bool                `json:"success"`
	Achievement         *models.Achievement `json:"achievement,omitempty"`
	PointsAwarded       int                 `json:"points_awarded"`
	AccessoriesUnlocked []string            `json:"accessories_unlocked,omitempty"`
}

// Weekly goal defaults seeded at the start of each week
var defaultWeeklyGoals = []models.WeeklyGoal{
	{ID: "weekly-sessions", Description: "Finish 5 practice sessions", Metric: models.GoalSessions, Target: 5},
	{ID: "weekly-words", Description: "Type 500 words", Metric: models.GoalWords, Target: 500},
	{ID: "weekly-minutes", Description: "Practice for 60 minutes", Metric: models.GoalMinutes, Target: 60},
}

// AchievementService owns the achievement catalog evaluation, accessory
// unlock/equip policy, personal bests and weekly goals. It caches the
// persisted progress document and writes through on every mutation.
type AchievementService struct {
	mu       sync.Mutex
	store    storage.Store
	queue    *CelebrationQueue
	notifier Notifier

	userID   string
	progress *models.AchievementProgress

	now func() time.Time
}

// NewAchievementService creates a new achievement service for a user. The
// progress document is loaded lazily on the first operation.
func NewAchievementService(store storage.Store, queue *CelebrationQueue, userID string) *AchievementService {
	return &AchievementService{
		store:  store,
		queue:  queue,
		userID: userID,
		now:    time.Now,
	}
}

// SetNotifier attaches a milestone notifier. Must be called before the first
// operation.
func (s *AchievementService) SetNotifier(n Notifier) {
	s.notifier = n
}

// ensureLoadedLocked loads the progress document on first use. Missing or corrupt
// documents fall back to fresh defaults rather than failing.
func (s *AchievementService) ensureLoadedLocked(ctx context.Context) error {
	if s.progress != nil {
		return nil
	}

	raw, err := s.store.Get(ctx, storage.CollectionAchievements, s.userID)
	if errors.Is(err, storage.ErrNotFound) {
		s.progress = models.NewDefaultProgress(s.userID, s.now())
		return s.persistLocked(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to load achievement progress: %w", err)
	}

	progress := &models.AchievementProgress{}
	if err := json.Unmarshal(raw, progress); err != nil {
		log.Printf("Warning: corrupt achievement progress for %s, reinitializing: %v", s.userID, err)
		s.progress = models.NewDefaultProgress(s.userID, s.now())
		return s.persistLocked(ctx)
	}

	if progress.Achievements == nil {
		progress.Achievements = []models.Achievement{}
	}
	if progress.Accessories == nil {
		progress.Accessories = []models.Accessory{}
	}
	if progress.PersonalBests == nil {
		progress.PersonalBests = map[models.BestCategory]models.PersonalBest{}
	}
	s.progress = progress

	// Re-seed the shared queue from the persisted snapshot, but never clobber
	// events queued earlier in this process
	if len(progress.PendingCelebrations) > 0 && s.queue.Len() == 0 {
		s.queue.Restore(progress.PendingCelebrations)
	}
	return nil
}

// persistLocked writes the cached progress through to the store
func (s *AchievementService) persistLocked(ctx context.Context) error {
	s.progress.PendingCelebrations = s.queue.Snapshot()
	s.progress.UpdatedAt = s.now()

	raw, err := json.Marshal(s.progress)
	if err != nil {
		return fmt.Errorf("failed to encode achievement progress: %w", err)
	}
	if err := s.store.Put(ctx, storage.CollectionAchievements, s.userID, raw); err != nil {
		return fmt.Errorf("failed to persist achievement progress: %w", err)
	}
	return nil
}

// CheckAchievements evaluates every catalog definition against a session
// summary and unlocks those newly satisfied. It returns exactly the
// achievements unlocked by this call, never ones already owned.
func (s *AchievementService) CheckAchievements(ctx context.Context, session models.SessionSummary) ([]models.Achievement, error) {
	if err := session.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}

	newly := []models.Achievement{}
	for _, def := range catalog.Achievements() {
		if s.progress.HasAchievement(def.ID) {
			continue
		}
		if !def.Check(session) {
			continue
		}
		result := s.unlock(def)
		if result.Achievement != nil {
			newly = append(newly, *result.Achievement)
		}
	}

	if len(newly) > 0 {
		if err := s.persistLocked(ctx); err != nil {
			return nil, err
		}
	}
	return newly, nil
}

// UnlockAchievement unlocks a single achievement by id. Unlocking is
// idempotent: a second call returns Success=false with zero points and does
// not duplicate the record.
func (s *AchievementService) UnlockAchievement(ctx context.Context, id string) (UnlockResult, error) {
	def, ok := catalog.LookupAchievement(id)
	if !ok {
		return UnlockResult{}, models.ValidationError{Field: "achievement_id", Message: "unknown achievement id"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return UnlockResult{}, err
	}
	if s.progress.HasAchievement(id) {
		return UnlockResult{Success: false}, nil
	}

	result := s.unlock(def)
	if err := s.persistLocked(ctx); err != nil {
		return UnlockResult{}, err
	}
	return result, nil
}

// unlock records the achievement, awards points, unlocks accessory rewards
// and enqueues a celebration styled by rarity. The caller persists.
func (s *AchievementService) unlock(def catalog.AchievementDefinition) UnlockResult {
	earned := models.Achievement{
		ID:          def.ID,
		Title:       def.Title,
		Description: def.Description,
		Points:      def.Points,
		Rarity:      def.Rarity,
		DateEarned:  s.now(),
	}
	s.progress.Achievements = append(s.progress.Achievements, earned)
	s.progress.TotalPoints += def.Points

	result := UnlockResult{
		Success:       true,
		Achievement:   &earned,
		PointsAwarded: def.Points,
	}
	for _, accessoryID := range def.AccessoryRewards {
		if s.unlockAccessory(accessoryID, "Reward for "+def.Title) {
			result.AccessoriesUnlocked = append(result.AccessoriesUnlocked, accessoryID)
		}
	}

	style := catalog.StyleForRarity(def.Rarity)
	s.queue.Queue(models.CelebrationEvent{
		ID:          uuid.NewString(),
		Type:        models.CelebrationAchievement,
		Title:       "Achievement unlocked!",
		Message:     def.Title,
		Animation:   style.Animation,
		DurationMs:  style.DurationMs,
		Sound:       style.Sound,
		Priority:    style.Priority,
		AutoTrigger: true,
	})
	return result
}

// UnlockAccessory adds an accessory to the unlocked set. It returns false
// with no state change when the accessory is already unlocked.
func (s *AchievementService) UnlockAccessory(ctx context.Context, id, reason string) (bool, error) {
	if _, ok := catalog.LookupAccessory(id); !ok {
		return false, models.ValidationError{Field: "accessory_id", Message: "unknown accessory id"}
	}
	if reason == "" {
		return false, models.ValidationError{Field: "reason", Message: "reason is required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return false, err
	}
	if !s.unlockAccessory(id, reason) {
		return false, nil
	}
	if err := s.persistLocked(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// unlockAccessory records the unlock and enqueues a medium celebration.
// Returns false if the accessory is already owned. The caller persists.
func (s *AchievementService) unlockAccessory(id, reason string) bool {
	def, ok := catalog.LookupAccessory(id)
	if !ok {
		log.Printf("Warning: accessory reward %s is not in the catalog, skipping", id)
		return false
	}
	if s.progress.FindAccessory(id) != nil {
		return false
	}

	s.progress.Accessories = append(s.progress.Accessories, models.Accessory{
		ID:              def.ID,
		Name:            def.Name,
		Category:        def.Category,
		UnlockCondition: def.UnlockCondition,
		DateUnlocked:    s.now(),
	})
	log.Printf("Accessory unlocked: %s (%s)", def.Name, reason)

	s.queue.Queue(models.CelebrationEvent{
		ID:          uuid.NewString(),
		Type:        models.CelebrationAccessory,
		Title:       "New accessory!",
		Message:     def.Name + " is now in your closet",
		Animation:   "gift_box",
		DurationMs:  3000,
		Sound:       "cheer",
		Priority:    models.PriorityMedium,
		AutoTrigger: true,
	})
	return true
}

// EquipAccessory equips an unlocked accessory into its category slot,
// unequipping whatever else occupies that slot. At most one accessory per
// category is equipped at any time.
func (s *AchievementService) EquipAccessory(ctx context.Context, id string, category models.AccessoryCategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return err
	}

	accessory := s.progress.FindAccessory(id)
	if accessory == nil {
		return fmt.Errorf("%w: %s", ErrAccessoryNotUnlocked, id)
	}
	if accessory.Category != category {
		return fmt.Errorf("%w: %s is a %s, not a %s", ErrCategoryMismatch, id, accessory.Category, category)
	}

	for i := range s.progress.Accessories {
		if s.progress.Accessories[i].Category == category {
			s.progress.Accessories[i].Equipped = false
		}
	}
	accessory.Equipped = true

	return s.persistLocked(ctx)
}

// UpdatePersonalBest records a new best for a category if value improves on
// the stored record. It returns false with no state change otherwise.
func (s *AchievementService) UpdatePersonalBest(ctx context.Context, category models.BestCategory, value float64) (bool, error) {
	if !models.KnownBestCategory(category) {
		return false, models.ValidationError{Field: "category", Message: "unknown personal best category"}
	}
	if value < 0 {
		return false, models.ValidationError{Field: "value", Message: "value must not be negative"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return false, err
	}

	previous, exists := s.progress.PersonalBests[category]
	if exists && value <= previous.Value {
		return false, nil
	}

	record := models.PersonalBest{
		Category:     category,
		Value:        value,
		Date:         s.now(),
		PreviousBest: previous.Value,
	}
	if exists && previous.Value > 0 {
		record.ImprovementPct = (value - previous.Value) / previous.Value * 100
	}
	s.progress.PersonalBests[category] = record

	s.queue.Queue(models.CelebrationEvent{
		ID:          uuid.NewString(),
		Type:        models.CelebrationPersonalBest,
		Title:       "New personal best!",
		Message:     fmt.Sprintf("Best %s is now %.0f", category, value),
		Animation:   "trophy_shine",
		DurationMs:  4000,
		Sound:       "fanfare",
		Priority:    models.PriorityHigh,
		AutoTrigger: true,
	})

	if err := s.persistLocked(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// weekStartOf returns the Monday of the week containing t
func weekStartOf(t time.Time) string {
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset).Format("2006-01-02")
}

// UpdateWeeklyGoals advances this week's goals with a finished session and
// returns the goals completed by this call. Goals reset at the start of each
// week.
func (s *AchievementService) UpdateWeeklyGoals(ctx context.Context, session models.SessionSummary) ([]models.WeeklyGoal, error) {
	if err := session.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}

	week := weekStartOf(s.now())
	if len(s.progress.WeeklyGoals) == 0 || s.progress.WeeklyGoals[0].WeekStart != week {
		goals := make([]models.WeeklyGoal, len(defaultWeeklyGoals))
		copy(goals, defaultWeeklyGoals)
		for i := range goals {
			goals[i].WeekStart = week
		}
		s.progress.WeeklyGoals = goals
	}

	completed := []models.WeeklyGoal{}
	for i := range s.progress.WeeklyGoals {
		goal := &s.progress.WeeklyGoals[i]
		if goal.Completed {
			continue
		}

		switch goal.Metric {
		case models.GoalSessions:
			goal.Progress++
		case models.GoalWords:
			goal.Progress += session.WordsTyped
		case models.GoalMinutes:
			goal.Progress += session.DurationMs / 60000
		}

		if goal.Progress >= goal.Target {
			goal.Completed = true
			completed = append(completed, *goal)

			s.queue.Queue(models.CelebrationEvent{
				ID:          uuid.NewString(),
				Type:        models.CelebrationWeeklyGoal,
				Title:       "Weekly goal reached!",
				Message:     goal.Description,
				Animation:   "confetti",
				DurationMs:  3000,
				Sound:       "cheer",
				Priority:    models.PriorityMedium,
				AutoTrigger: true,
			})

			if s.notifier != nil {
				if err := s.notifier.WeeklyGoalCompleted(ctx, *goal, s.progress.TotalPoints); err != nil {
					log.Printf("Warning: weekly goal notification failed: %v", err)
				}
			}
		}
	}

	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}
	return completed, nil
}

// GetUnlockedAchievements returns the earned achievements in unlock order
func (s *AchievementService) GetUnlockedAchievements(ctx context.Context) ([]models.Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}
	return append([]models.Achievement(nil), s.progress.Achievements...), nil
}

// GetAvailableAccessories returns the unlocked accessories
func (s *AchievementService) GetAvailableAccessories(ctx context.Context) ([]models.Accessory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}
	return append([]models.Accessory(nil), s.progress.Accessories...), nil
}

// GetPersonalBests returns the full current set of personal bests
func (s *AchievementService) GetPersonalBests(ctx context.Context) (map[models.BestCategory]models.PersonalBest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}
	bests := make(map[models.BestCategory]models.PersonalBest, len(s.progress.PersonalBests))
	for category, best := range s.progress.PersonalBests {
		bests[category] = best
	}
	return bests, nil
}

// GetWeeklyGoals returns this week's goals as last updated
func (s *AchievementService) GetWeeklyGoals(ctx context.Context) ([]models.WeeklyGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}
	return append([]models.WeeklyGoal(nil), s.progress.WeeklyGoals...), nil
}

// TotalPoints returns the accumulated reward points
func (s *AchievementService) TotalPoints(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return 0, err
	}
	return s.progress.TotalPoints, nil
}

// Reset clears all progress back to defaults
func (s *AchievementService) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return err
	}
	s.progress = models.NewDefaultProgress(s.userID, s.now())
	return s.persistLocked(ctx)
}
