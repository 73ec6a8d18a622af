package models

import "fmt"

// MaxPlausibleWPM is the validation ceiling for words per minute.
// Sessions claiming faster typing than this are treated as garbage data.
const MaxPlausibleWPM = 300

// ValidationError represents a validation error on a single field
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// SessionSummary holds the finalized metrics of one practice session,
// produced by the typing tracker and consumed by the achievement engine.
type SessionSummary struct {
	DurationMs                 int     `json:"duration_ms"`
	WordsPerMinute             float64 `json:"words_per_minute"`
	AccuracyPercentage         float64 `json:"accuracy_percentage"`
	TotalCharacters            int     `json:"total_characters"`
	ErrorsCount                int     `json:"errors_count"`
	ImprovementFromLastSession float64 `json:"improvement_from_last_session"`
	WordsTyped                 int     `json:"words_typed"`
}

// Validate rejects summaries with impossible metrics so garbage input can
// never unlock achievements
func (s SessionSummary) Validate() error {
	if s.DurationMs < 0 {
		return ValidationError{Field: "duration_ms", Message: "duration must not be negative"}
	}
	if s.WordsPerMinute < 0 {
		return ValidationError{Field: "words_per_minute", Message: "wpm must not be negative"}
	}
	if s.WordsPerMinute > MaxPlausibleWPM {
		return ValidationError{Field: "words_per_minute", Message: fmt.Sprintf("wpm must not exceed %d", MaxPlausibleWPM)}
	}
	if s.AccuracyPercentage < 0 {
		return ValidationError{Field: "accuracy_percentage", Message: "accuracy must not be negative"}
	}
	if s.AccuracyPercentage > 100 {
		return ValidationError{Field: "accuracy_percentage", Message: "accuracy must not exceed 100"}
	}
	if s.TotalCharacters < 0 {
		return ValidationError{Field: "total_characters", Message: "character count must not be negative"}
	}
	if s.ErrorsCount < 0 {
		return ValidationError{Field: "errors_count", Message: "error count must not be negative"}
	}
	if s.WordsTyped < 0 {
		return ValidationError{Field: "words_typed", Message: "word count must not be negative"}
	}
	return nil
}
