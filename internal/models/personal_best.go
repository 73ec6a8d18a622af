package models

import "time"

// BestCategory names a tracked performance category
type BestCategory string

const (
	BestWPM         BestCategory = "wpm"
	BestAccuracy    BestCategory = "accuracy"
	BestStreak      BestCategory = "streak"
	BestSessionTime BestCategory = "session_time"
	BestWordsTotal  BestCategory = "words_total"
)

// KnownBestCategory reports whether the category is one of the tracked set
func KnownBestCategory(c BestCategory) bool {
	switch c {
	case BestWPM, BestAccuracy, BestStreak, BestSessionTime, BestWordsTotal:
		return true
	}
	return false
}

// PersonalBest is the best-ever value recorded for one category.
// A new best replaces the record; history beyond the previous value is not kept.
type PersonalBest struct {
	Category       BestCategory `json:"category"`
	Value          float64      `json:"value"`
	Date           time.Time    `json:"date"`
	PreviousBest   float64      `json:"previous_best"`
	ImprovementPct float64      `json:"improvement_pct"`
}
