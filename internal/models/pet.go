package models

import "time"

// EvolutionForm is one of the five ordered growth stages of the pet.
// The ordinal values are persisted, so they must never be reordered.
type EvolutionForm int

const (
	FormEgg EvolutionForm = iota + 1
	FormBaby
	FormChild
	FormTeen
	FormAdult
)

// evolutionThresholds maps a form to the cumulative words required to reach it.
var evolutionThresholds = map[EvolutionForm]int{
	FormBaby:  100,
	FormChild: 500,
	FormTeen:  1500,
	FormAdult: 5000,
}

// String returns the display name of the form
func (f EvolutionForm) String() string {
	switch f {
	case FormEgg:
		return "egg"
	case FormBaby:
		return "baby"
	case FormChild:
		return "child"
	case FormTeen:
		return "teen"
	case FormAdult:
		return "adult"
	default:
		return "unknown"
	}
}

// Next returns the form that follows this one, or false at the terminal form
func (f EvolutionForm) Next() (EvolutionForm, bool) {
	if f >= FormAdult || f < FormEgg {
		return f, false
	}
	return f + 1, true
}

// WordsRequired returns the cumulative word count needed to reach this form
func (f EvolutionForm) WordsRequired() int {
	return evolutionThresholds[f]
}

// EmotionalState describes how the pet currently feels
type EmotionalState string

const (
	StateExcited EmotionalState = "excited"
	StateContent EmotionalState = "content"
	StateHungry  EmotionalState = "hungry"
	StateSad     EmotionalState = "sad"
	StateEating  EmotionalState = "eating"
)

// SteadyStateFor derives the emotional state from a happiness level.
// Transient states (eating, momentary sadness) override this until they expire.
func SteadyStateFor(happiness int) EmotionalState {
	switch {
	case happiness >= 90:
		return StateExcited
	case happiness >= 70:
		return StateContent
	case happiness >= 50:
		return StateHungry
	default:
		return StateSad
	}
}

// ClampHappiness bounds a happiness value to the valid 0-100 range
func ClampHappiness(value int) int {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}

// DefaultPetName is used when a pet is created on first load
const DefaultPetName = "Keys"

// PetState is the persisted root document for the pet engine
type PetState struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	EvolutionForm    EvolutionForm      `json:"evolution_form"`
	HappinessLevel   int                `json:"happiness_level"`
	EmotionalState   EmotionalState     `json:"emotional_state"`
	Accessories      []string           `json:"accessories"`
	TotalWordsEaten  int                `json:"total_words_eaten"`
	AccuracyAverage  float64            `json:"accuracy_average"`
	StreakDays       int                `json:"streak_days"`
	LastPracticeDay  string             `json:"last_practice_day,omitempty"`
	CelebrationQueue []CelebrationEvent `json:"celebration_queue,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// NewDefaultPetState creates a freshly hatching pet
func NewDefaultPetState(id string, now time.Time) *PetState {
	return &PetState{
		ID:             id,
		Name:           DefaultPetName,
		EvolutionForm:  FormEgg,
		HappinessLevel: 50,
		EmotionalState: SteadyStateFor(50),
		Accessories:    []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// HasAccessory reports whether the pet has been granted the accessory id
func (p *PetState) HasAccessory(id string) bool {
	for _, a := range p.Accessories {
		if a == id {
			return true
		}
	}
	return false
}
