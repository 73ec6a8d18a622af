package models

import (
	"testing"
	"time"
)

func TestEvolutionFormNext(t *testing.T) {
	tests := []struct {
		form EvolutionForm
		next EvolutionForm
		ok   bool
	}{
		{FormEgg, FormBaby, true},
		{FormBaby, FormChild, true},
		{FormChild, FormTeen, true},
		{FormTeen, FormAdult, true},
		{FormAdult, FormAdult, false},
	}
	for _, tc := range tests {
		next, ok := tc.form.Next()
		if next != tc.next || ok != tc.ok {
			t.Errorf("%s.Next() = %s, %v; want %s, %v", tc.form, next, ok, tc.next, tc.ok)
		}
	}
}

func TestEvolutionThresholds(t *testing.T) {
	tests := []struct {
		form EvolutionForm
		want int
	}{
		{FormBaby, 100},
		{FormChild, 500},
		{FormTeen, 1500},
		{FormAdult, 5000},
	}
	for _, tc := range tests {
		if got := tc.form.WordsRequired(); got != tc.want {
			t.Errorf("%s.WordsRequired() = %d, want %d", tc.form, got, tc.want)
		}
	}
}

func TestSteadyStateFor(t *testing.T) {
	tests := []struct {
		happiness int
		want      EmotionalState
	}{
		{100, StateExcited},
		{90, StateExcited},
		{89, StateContent},
		{70, StateContent},
		{69, StateHungry},
		{50, StateHungry},
		{49, StateSad},
		{0, StateSad},
	}
	for _, tc := range tests {
		if got := SteadyStateFor(tc.happiness); got != tc.want {
			t.Errorf("SteadyStateFor(%d) = %s, want %s", tc.happiness, got, tc.want)
		}
	}
}

func TestClampHappiness(t *testing.T) {
	tests := []struct {
		value int
		want  int
	}{
		{-10, 0},
		{0, 0},
		{55, 55},
		{100, 100},
		{140, 100},
	}
	for _, tc := range tests {
		if got := ClampHappiness(tc.value); got != tc.want {
			t.Errorf("ClampHappiness(%d) = %d, want %d", tc.value, got, tc.want)
		}
	}
}

func TestNewDefaultPetState(t *testing.T) {
	now := time.Now()
	state := NewDefaultPetState("pet-1", now)

	if state.EvolutionForm != FormEgg {
		t.Errorf("EvolutionForm = %s, want egg", state.EvolutionForm)
	}
	if state.HappinessLevel != 50 {
		t.Errorf("HappinessLevel = %d, want 50", state.HappinessLevel)
	}
	if state.EmotionalState != SteadyStateFor(state.HappinessLevel) {
		t.Errorf("EmotionalState = %s, want steady state for %d", state.EmotionalState, state.HappinessLevel)
	}
	if state.Accessories == nil {
		t.Error("Accessories should be initialized, not nil")
	}
}

func TestSessionSummaryValidate(t *testing.T) {
	valid := SessionSummary{
		DurationMs:         300000,
		WordsPerMinute:     25,
		AccuracyPercentage: 92,
		TotalCharacters:    800,
		ErrorsCount:        4,
		WordsTyped:         120,
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Valid session rejected: %v", err)
	}

	tests := []struct {
		name      string
		mutate    func(*SessionSummary)
		wantField string
	}{
		{"negative duration", func(s *SessionSummary) { s.DurationMs = -1 }, "duration_ms"},
		{"negative wpm", func(s *SessionSummary) { s.WordsPerMinute = -0.1 }, "words_per_minute"},
		{"implausible wpm", func(s *SessionSummary) { s.WordsPerMinute = MaxPlausibleWPM + 1 }, "words_per_minute"},
		{"negative accuracy", func(s *SessionSummary) { s.AccuracyPercentage = -5 }, "accuracy_percentage"},
		{"accuracy over 100", func(s *SessionSummary) { s.AccuracyPercentage = 100.5 }, "accuracy_percentage"},
		{"negative characters", func(s *SessionSummary) { s.TotalCharacters = -1 }, "total_characters"},
		{"negative errors", func(s *SessionSummary) { s.ErrorsCount = -1 }, "errors_count"},
		{"negative words", func(s *SessionSummary) { s.WordsTyped = -1 }, "words_typed"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			session := valid
			tc.mutate(&session)

			err := session.Validate()
			if err == nil {
				t.Fatal("Validate accepted an impossible session")
			}
			validationErr, ok := err.(ValidationError)
			if !ok {
				t.Fatalf("Validate returned %T, want ValidationError", err)
			}
			if validationErr.Field != tc.wantField {
				t.Errorf("Error field = %s, want %s", validationErr.Field, tc.wantField)
			}
		})
	}
}

func TestKnownBestCategory(t *testing.T) {
	for _, category := range []BestCategory{BestWPM, BestAccuracy, BestStreak, BestSessionTime, BestWordsTotal} {
		if !KnownBestCategory(category) {
			t.Errorf("KnownBestCategory(%s) = false, want true", category)
		}
	}
	if KnownBestCategory("jump_height") {
		t.Error("KnownBestCategory accepted an unknown category")
	}
}

func TestPriorityRank(t *testing.T) {
	if !(PriorityHigh.Rank() > PriorityMedium.Rank() && PriorityMedium.Rank() > PriorityLow.Rank()) {
		t.Errorf("Priority ranks out of order: high=%d medium=%d low=%d",
			PriorityHigh.Rank(), PriorityMedium.Rank(), PriorityLow.Rank())
	}
	if Priority("bogus").Rank() >= PriorityLow.Rank() {
		t.Error("Unknown priority should rank below low")
	}
}

func TestRarityRank(t *testing.T) {
	ordered := []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary}
	for i := 1; i < len(ordered); i++ {
		if ordered[i].Rank() <= ordered[i-1].Rank() {
			t.Errorf("%s.Rank() = %d, should exceed %s.Rank() = %d",
				ordered[i], ordered[i].Rank(), ordered[i-1], ordered[i-1].Rank())
		}
	}
}
