package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"typepet/internal/catalog"
	"typepet/internal/models"
	"typepet/internal/storage"

	"github.com/google/uuid"
)

// Happiness deltas per fed word. Correct words cheer the pet up, missed
// words sting a little harder so sloppy streaks show.
const (
	correctWordHappiness = 2
	missedWordHappiness  = -3
)

// defaultTransientDuration is how long an eating/sad reaction lasts before the
// pet settles back into its happiness-derived mood
const defaultTransientDuration = 2 * time.Second

// ErrInvalidTransition is returned when an evolution is attempted before the
// word threshold is met or at the terminal form
var ErrInvalidTransition = errors.New("invalid transition")

// EvolutionCheck reports whether the pet can evolve, without mutating state
type EvolutionCheck struct {
	CanEvolve     bool                 `json:"can_evolve"`
	CurrentForm   models.EvolutionForm `json:"current_form"`
	NextForm      models.EvolutionForm `json:"next_form"`
	WordsEaten    int                  `json:"words_eaten"`
	WordsRequired int                  `json:"words_required"`
}

// PetService owns the pet state: evolution form, happiness, emotional state,
// accessories and feeding history. It caches the persisted document in memory
// and writes through on every mutation.
type PetService struct {
	mu    sync.Mutex
	store storage.Store
	queue *CelebrationQueue

	userID string
	state  *models.PetState

	now               func() time.Time
	transientDuration time.Duration
	transientActive   bool
	transientGen      int
	revertTimer       *time.Timer
}

// NewPetService creates a new pet service for a user. The state document is
// loaded lazily on the first operation.
func NewPetService(store storage.Store, queue *CelebrationQueue, userID string) *PetService {
	return &PetService{
		store:             store,
		queue:             queue,
		userID:            userID,
		now:               time.Now,
		transientDuration: defaultTransientDuration,
	}
}

// ensureLoadedLocked loads the pet state on first use. Missing or corrupt
// documents fall back to a fresh default pet rather than failing.
func (s *PetService) ensureLoadedLocked(ctx context.Context) error {
	if s.state != nil {
		return nil
	}

	raw, err := s.store.Get(ctx, storage.CollectionPetStates, s.userID)
	if errors.Is(err, storage.ErrNotFound) {
		s.state = models.NewDefaultPetState(uuid.NewString(), s.now())
		return s.persistLocked(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to load pet state: %w", err)
	}

	state := &models.PetState{}
	if err := json.Unmarshal(raw, state); err != nil {
		log.Printf("Warning: corrupt pet state for %s, reinitializing: %v", s.userID, err)
		s.state = models.NewDefaultPetState(uuid.NewString(), s.now())
		return s.persistLocked(ctx)
	}

	if state.Accessories == nil {
		state.Accessories = []string{}
	}
	// A persisted transient mood is stale by now
	state.EmotionalState = models.SteadyStateFor(state.HappinessLevel)
	s.state = state
	return nil
}

// persistLocked writes the cached state through to the store
func (s *PetService) persistLocked(ctx context.Context) error {
	s.state.CelebrationQueue = s.queue.Snapshot()
	s.state.UpdatedAt = s.now()

	raw, err := json.Marshal(s.state)
	if err != nil {
		return fmt.Errorf("failed to encode pet state: %w", err)
	}
	if err := s.store.Put(ctx, storage.CollectionPetStates, s.userID, raw); err != nil {
		return fmt.Errorf("failed to persist pet state: %w", err)
	}
	return nil
}

func (s *PetService) copyStateLocked() *models.PetState {
	state := *s.state
	state.Accessories = append([]string(nil), s.state.Accessories...)
	state.CelebrationQueue = s.queue.Snapshot()
	return &state
}

// LoadPetState returns a copy of the current pet state, creating the default
// pet on first call
func (s *PetService) LoadPetState(ctx context.Context) (*models.PetState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}
	return s.copyStateLocked(), nil
}

// FeedWord applies the outcome of a single typed word. Correct words feed the
// pet and cheer it up; missed words make it sad for a moment.
func (s *PetService) FeedWord(ctx context.Context, correct bool) (*models.PetState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}

	if correct {
		s.state.HappinessLevel = models.ClampHappiness(s.state.HappinessLevel + correctWordHappiness)
		s.state.TotalWordsEaten++
		s.setTransientStateLocked(models.StateEating)
	} else {
		s.state.HappinessLevel = models.ClampHappiness(s.state.HappinessLevel + missedWordHappiness)
		s.setTransientStateLocked(models.StateSad)
	}

	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}
	return s.copyStateLocked(), nil
}

// UpdateHappiness applies a happiness delta, clamped to [0,100], and returns
// the new level. This is the general-purpose entry point used by feeding and
// other reward paths.
func (s *PetService) UpdateHappiness(ctx context.Context, delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return 0, err
	}

	s.state.HappinessLevel = models.ClampHappiness(s.state.HappinessLevel + delta)
	if !s.transientActive {
		s.state.EmotionalState = models.SteadyStateFor(s.state.HappinessLevel)
	}

	if err := s.persistLocked(ctx); err != nil {
		return 0, err
	}
	return s.state.HappinessLevel, nil
}

// setTransientStateLocked applies a short-lived emotional override. Starting a
// new override supersedes any pending reversion; when the timer fires the pet
// settles back into the mood its happiness level implies.
func (s *PetService) setTransientStateLocked(state models.EmotionalState) {
	s.state.EmotionalState = state
	s.transientActive = true
	s.transientGen++
	gen := s.transientGen

	if s.revertTimer != nil {
		s.revertTimer.Stop()
	}
	s.revertTimer = time.AfterFunc(s.transientDuration, func() {
		s.revertTransientState(gen)
	})
}

func (s *PetService) revertTransientState(gen int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A newer override or a reset superseded this timer
	if gen != s.transientGen || s.state == nil {
		return
	}
	s.transientActive = false
	s.state.EmotionalState = models.SteadyStateFor(s.state.HappinessLevel)
}

// CheckEvolutionTrigger reports whether the pet has eaten enough words to
// evolve. It never mutates state.
func (s *PetService) CheckEvolutionTrigger(ctx context.Context) (EvolutionCheck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return EvolutionCheck{}, err
	}

	check := EvolutionCheck{
		CurrentForm: s.state.EvolutionForm,
		NextForm:    s.state.EvolutionForm,
		WordsEaten:  s.state.TotalWordsEaten,
	}
	next, ok := s.state.EvolutionForm.Next()
	if !ok {
		return check, nil
	}
	check.NextForm = next
	check.WordsRequired = next.WordsRequired()
	check.CanEvolve = s.state.TotalWordsEaten >= check.WordsRequired
	return check, nil
}

// EvolveToNextForm performs the evolution if the word threshold is met.
// Evolution is one-directional; the form never decreases.
func (s *PetService) EvolveToNextForm(ctx context.Context) (models.EvolutionForm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return 0, err
	}

	next, ok := s.state.EvolutionForm.Next()
	if !ok {
		return 0, fmt.Errorf("%w: %s is the final form", ErrInvalidTransition, s.state.EvolutionForm)
	}
	if s.state.TotalWordsEaten < next.WordsRequired() {
		return 0, fmt.Errorf("%w: %d more words needed to become %s",
			ErrInvalidTransition, next.WordsRequired()-s.state.TotalWordsEaten, next)
	}

	s.state.EvolutionForm = next
	s.queue.Queue(models.CelebrationEvent{
		ID:          uuid.NewString(),
		Type:        models.CelebrationEvolution,
		Title:       "Your pet evolved!",
		Message:     fmt.Sprintf("%s grew into its %s form!", s.state.Name, next),
		Animation:   "evolution_burst",
		DurationMs:  5000,
		Sound:       "fanfare",
		Priority:    models.PriorityHigh,
		AutoTrigger: true,
	})

	if err := s.persistLocked(ctx); err != nil {
		return 0, err
	}
	return next, nil
}

// RecordSessionAccuracy folds a session's accuracy into the rolling average.
// The new average moves toward the session value proportionally to weight.
func (s *PetService) RecordSessionAccuracy(ctx context.Context, accuracy, weight float64) (float64, error) {
	if accuracy < 0 || accuracy > 100 {
		return 0, models.ValidationError{Field: "accuracy", Message: "accuracy must be between 0 and 100"}
	}
	if weight <= 0 || weight > 1 {
		return 0, models.ValidationError{Field: "weight", Message: "weight must be in (0, 1]"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return 0, err
	}

	if s.state.AccuracyAverage == 0 {
		s.state.AccuracyAverage = accuracy
	} else {
		s.state.AccuracyAverage = s.state.AccuracyAverage*(1-weight) + accuracy*weight
	}

	if err := s.persistLocked(ctx); err != nil {
		return 0, err
	}
	return s.state.AccuracyAverage, nil
}

// RecordPracticeDay updates the consecutive-day streak for a practice session
// on the given day and returns the current streak length
func (s *PetService) RecordPracticeDay(ctx context.Context, day time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return 0, err
	}

	today := day.Format("2006-01-02")
	if s.state.LastPracticeDay == today {
		return s.state.StreakDays, nil
	}

	yesterday := day.AddDate(0, 0, -1).Format("2006-01-02")
	if s.state.LastPracticeDay == yesterday {
		s.state.StreakDays++
	} else {
		s.state.StreakDays = 1
	}
	s.state.LastPracticeDay = today

	if err := s.persistLocked(ctx); err != nil {
		return 0, err
	}
	return s.state.StreakDays, nil
}

// GrantAccessory adds an unlocked accessory id to the pet. Granting an
// accessory the pet already has is a no-op.
func (s *PetService) GrantAccessory(ctx context.Context, id string) error {
	if _, ok := catalog.LookupAccessory(id); !ok {
		return models.ValidationError{Field: "accessory_id", Message: "unknown accessory id"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return err
	}
	if s.state.HasAccessory(id) {
		return nil
	}
	s.state.Accessories = append(s.state.Accessories, id)
	return s.persistLocked(ctx)
}

// Rename gives the pet a new name
func (s *PetService) Rename(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return models.ValidationError{Field: "name", Message: "name must be at least 2 characters"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return err
	}
	s.state.Name = name
	return s.persistLocked(ctx)
}

// Reset reinitializes the pet to a fresh egg
func (s *PetService) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transientGen++ // invalidate any pending reversion
	s.transientActive = false
	s.state = models.NewDefaultPetState(uuid.NewString(), s.now())
	return s.persistLocked(ctx)
}
