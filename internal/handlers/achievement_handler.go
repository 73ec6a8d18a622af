package handlers

import (
	"errors"
	"net/http"
	"time"

	"typepet/internal/models"
	"typepet/internal/service"
)

// accuracyWeight controls how fast a session moves the rolling accuracy
// average toward the session value
const accuracyWeight = 0.3

// AchievementHandler handles achievement, accessory, personal best and weekly
// goal HTTP requests
type AchievementHandler struct {
	achievementService *service.AchievementService
	petService         *service.PetService
}

// NewAchievementHandler creates a new achievement handler
func NewAchievementHandler(achievementService *service.AchievementService, petService *service.PetService) *AchievementHandler {
	return &AchievementHandler{
		achievementService: achievementService,
		petService:         petService,
	}
}

// SessionResult aggregates everything a finished session changed
type SessionResult struct {
	NewAchievements []models.Achievement  `json:"new_achievements"`
	CompletedGoals  []models.WeeklyGoal   `json:"completed_goals"`
	NewBests        []models.BestCategory `json:"new_bests"`
	AccuracyAverage float64               `json:"accuracy_average"`
	StreakDays      int                   `json:"streak_days"`
	TotalPoints     int                   `json:"total_points"`
}

// CompleteSession runs the full end-of-session pipeline: achievements, weekly
// goals, personal bests, the rolling accuracy average and the practice streak.
func (h *AchievementHandler) CompleteSession(w http.ResponseWriter, r *http.Request) {
	var session models.SessionSummary
	if !decodeBody(w, r, &session) {
		return
	}
	ctx := r.Context()

	newAchievements, err := h.achievementService.CheckAchievements(ctx, session)
	if err != nil {
		respondServiceError(w, "Failed to check achievements", err)
		return
	}

	completedGoals, err := h.achievementService.UpdateWeeklyGoals(ctx, session)
	if err != nil {
		respondServiceError(w, "Failed to update weekly goals", err)
		return
	}

	bestCandidates := []struct {
		category models.BestCategory
		value    float64
	}{
		{models.BestWPM, session.WordsPerMinute},
		{models.BestAccuracy, session.AccuracyPercentage},
		{models.BestSessionTime, float64(session.DurationMs)},
		{models.BestWordsTotal, float64(session.WordsTyped)},
	}
	newBests := []models.BestCategory{}
	for _, candidate := range bestCandidates {
		improved, err := h.achievementService.UpdatePersonalBest(ctx, candidate.category, candidate.value)
		if err != nil {
			respondServiceError(w, "Failed to update personal best", err)
			return
		}
		if improved {
			newBests = append(newBests, candidate.category)
		}
	}

	average, err := h.petService.RecordSessionAccuracy(ctx, session.AccuracyPercentage, accuracyWeight)
	if err != nil {
		respondServiceError(w, "Failed to record session accuracy", err)
		return
	}

	streak, err := h.petService.RecordPracticeDay(ctx, time.Now())
	if err != nil {
		respondServiceError(w, "Failed to record practice day", err)
		return
	}
	improved, err := h.achievementService.UpdatePersonalBest(ctx, models.BestStreak, float64(streak))
	if err != nil {
		respondServiceError(w, "Failed to update streak best", err)
		return
	}
	if improved {
		newBests = append(newBests, models.BestStreak)
	}

	points, err := h.achievementService.TotalPoints(ctx)
	if err != nil {
		respondServiceError(w, "Failed to load total points", err)
		return
	}

	respondJSON(w, http.StatusOK, SessionResult{
		NewAchievements: newAchievements,
		CompletedGoals:  completedGoals,
		NewBests:        newBests,
		AccuracyAverage: average,
		StreakDays:      streak,
		TotalPoints:     points,
	})
}

// GetAchievements returns the earned achievements and total points
func (h *AchievementHandler) GetAchievements(w http.ResponseWriter, r *http.Request) {
	achievements, err := h.achievementService.GetUnlockedAchievements(r.Context())
	if err != nil {
		respondServiceError(w, "Failed to load achievements", err)
		return
	}
	points, err := h.achievementService.TotalPoints(r.Context())
	if err != nil {
		respondServiceError(w, "Failed to load total points", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"achievements": achievements,
		"total_points": points,
	})
}

// UnlockAchievement unlocks a single achievement by id
func (h *AchievementHandler) UnlockAchievement(w http.ResponseWriter, r *http.Request) {
	result, err := h.achievementService.UnlockAchievement(r.Context(), r.PathValue("id"))
	if err != nil {
		respondServiceError(w, "Failed to unlock achievement", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// GetAccessories returns the unlocked accessories
func (h *AchievementHandler) GetAccessories(w http.ResponseWriter, r *http.Request) {
	accessories, err := h.achievementService.GetAvailableAccessories(r.Context())
	if err != nil {
		respondServiceError(w, "Failed to load accessories", err)
		return
	}
	respondJSON(w, http.StatusOK, accessories)
}

// EquipAccessory equips an unlocked accessory into its category slot and
// mirrors it onto the pet
func (h *AchievementHandler) EquipAccessory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Category models.AccessoryCategory `json:"category"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	id := r.PathValue("id")

	err := h.achievementService.EquipAccessory(r.Context(), id, req.Category)
	if err != nil {
		if errors.Is(err, service.ErrAccessoryNotUnlocked) || errors.Is(err, service.ErrCategoryMismatch) {
			respondWithError(w, http.StatusConflict, err.Error(), "", nil)
			return
		}
		respondServiceError(w, "Failed to equip accessory", err)
		return
	}

	if err := h.petService.GrantAccessory(r.Context(), id); err != nil {
		respondServiceError(w, "Failed to grant accessory to pet", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"equipped": id})
}

// GetPersonalBests returns the personal best records
func (h *AchievementHandler) GetPersonalBests(w http.ResponseWriter, r *http.Request) {
	bests, err := h.achievementService.GetPersonalBests(r.Context())
	if err != nil {
		respondServiceError(w, "Failed to load personal bests", err)
		return
	}
	respondJSON(w, http.StatusOK, bests)
}

// GetWeeklyGoals returns this week's goals
func (h *AchievementHandler) GetWeeklyGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := h.achievementService.GetWeeklyGoals(r.Context())
	if err != nil {
		respondServiceError(w, "Failed to load weekly goals", err)
		return
	}
	respondJSON(w, http.StatusOK, goals)
}
