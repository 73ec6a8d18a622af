package service

import (
	"context"
	"errors"
	"testing"

	"typepet/internal/models"
	"typepet/internal/storage"
)

func newTestAchievementService(t *testing.T) (*AchievementService, *storage.MemoryStore, *CelebrationQueue) {
	t.Helper()
	store := storage.NewMemoryStore()
	queue := NewCelebrationQueue()
	return NewAchievementService(store, queue, "test-user"), store, queue
}

func achievementIDs(achievements []models.Achievement) map[string]bool {
	ids := make(map[string]bool, len(achievements))
	for _, a := range achievements {
		ids[a.ID] = true
	}
	return ids
}

func TestCheckAchievementsUnlocksMatching(t *testing.T) {
	svc, _, _ := newTestAchievementService(t)
	ctx := context.Background()

	session := models.SessionSummary{
		DurationMs:         600000,
		WordsPerMinute:     25,
		AccuracyPercentage: 90,
		TotalCharacters:    500,
		ErrorsCount:        5,
		WordsTyped:         120,
	}

	newly, err := svc.CheckAchievements(ctx, session)
	if err != nil {
		t.Fatalf("CheckAchievements failed: %v", err)
	}

	got := achievementIDs(newly)
	for _, id := range []string{"first-steps", "speedy-fingers", "careful-typer", "marathon-typer"} {
		if !got[id] {
			t.Errorf("Expected %s to unlock, got %v", id, got)
		}
	}
	for _, id := range []string{"lightning-hands", "perfectionist", "flawless-flash", "cool-head"} {
		if got[id] {
			t.Errorf("%s should not unlock for this session", id)
		}
	}

	points, err := svc.TotalPoints(ctx)
	if err != nil {
		t.Fatalf("TotalPoints failed: %v", err)
	}
	want := 0
	for _, a := range newly {
		want += a.Points
	}
	if points != want {
		t.Errorf("TotalPoints = %d, want %d", points, want)
	}

	// The same session a second time unlocks nothing new
	again, err := svc.CheckAchievements(ctx, session)
	if err != nil {
		t.Fatalf("Second CheckAchievements failed: %v", err)
	}
	if len(again) != 0 {
		t.Errorf("Second check unlocked %d achievements, want 0", len(again))
	}
}

func TestCheckAchievementsRejectsInvalidSession(t *testing.T) {
	svc, _, _ := newTestAchievementService(t)
	ctx := context.Background()

	sessions := []struct {
		name    string
		session models.SessionSummary
	}{
		{"negative duration", models.SessionSummary{DurationMs: -1}},
		{"implausible wpm", models.SessionSummary{WordsPerMinute: models.MaxPlausibleWPM + 1}},
		{"accuracy over 100", models.SessionSummary{AccuracyPercentage: 120}},
		{"negative errors", models.SessionSummary{ErrorsCount: -3}},
	}
	for _, tc := range sessions {
		t.Run(tc.name, func(t *testing.T) {
			var validationErr models.ValidationError
			if _, err := svc.CheckAchievements(ctx, tc.session); !errors.As(err, &validationErr) {
				t.Errorf("CheckAchievements = %v, want validation error", err)
			}
		})
	}

	// Nothing may be unlocked by garbage input
	unlocked, err := svc.GetUnlockedAchievements(ctx)
	if err != nil {
		t.Fatalf("GetUnlockedAchievements failed: %v", err)
	}
	if len(unlocked) != 0 {
		t.Errorf("Invalid sessions unlocked %d achievements, want 0", len(unlocked))
	}
}

func TestUnlockAchievementIsIdempotent(t *testing.T) {
	svc, _, _ := newTestAchievementService(t)
	ctx := context.Background()

	first, err := svc.UnlockAchievement(ctx, "first-steps")
	if err != nil {
		t.Fatalf("UnlockAchievement failed: %v", err)
	}
	if !first.Success || first.PointsAwarded != 10 {
		t.Errorf("First unlock = %+v, want success with 10 points", first)
	}

	second, err := svc.UnlockAchievement(ctx, "first-steps")
	if err != nil {
		t.Fatalf("Second UnlockAchievement failed: %v", err)
	}
	if second.Success || second.PointsAwarded != 0 {
		t.Errorf("Second unlock = %+v, want no-op result", second)
	}

	unlocked, err := svc.GetUnlockedAchievements(ctx)
	if err != nil {
		t.Fatalf("GetUnlockedAchievements failed: %v", err)
	}
	count := 0
	for _, a := range unlocked {
		if a.ID == "first-steps" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("first-steps recorded %d times, want exactly 1", count)
	}

	points, err := svc.TotalPoints(ctx)
	if err != nil {
		t.Fatalf("TotalPoints failed: %v", err)
	}
	if points != 10 {
		t.Errorf("TotalPoints after double unlock = %d, want 10", points)
	}
}

func TestUnlockAchievementUnknownID(t *testing.T) {
	svc, _, _ := newTestAchievementService(t)

	var validationErr models.ValidationError
	if _, err := svc.UnlockAchievement(context.Background(), "no-such-achievement"); !errors.As(err, &validationErr) {
		t.Errorf("Unknown achievement id = %v, want validation error", err)
	}
}

func TestUnlockRewardsAccessory(t *testing.T) {
	svc, _, _ := newTestAchievementService(t)
	ctx := context.Background()

	result, err := svc.UnlockAchievement(ctx, "lightning-hands")
	if err != nil {
		t.Fatalf("UnlockAchievement failed: %v", err)
	}
	if len(result.AccessoriesUnlocked) != 1 || result.AccessoriesUnlocked[0] != "racing-goggles" {
		t.Errorf("AccessoriesUnlocked = %v, want [racing-goggles]", result.AccessoriesUnlocked)
	}

	accessories, err := svc.GetAvailableAccessories(ctx)
	if err != nil {
		t.Fatalf("GetAvailableAccessories failed: %v", err)
	}
	found := false
	for _, a := range accessories {
		if a.ID == "racing-goggles" {
			found = true
		}
	}
	if !found {
		t.Error("racing-goggles missing from unlocked accessories")
	}
}

func TestEquipAccessoryOnePerCategory(t *testing.T) {
	svc, _, _ := newTestAchievementService(t)
	ctx := context.Background()

	// Equipping before unlocking fails
	if err := svc.EquipAccessory(ctx, "party-hat", models.CategoryHat); !errors.Is(err, ErrAccessoryNotUnlocked) {
		t.Errorf("Equip before unlock = %v, want ErrAccessoryNotUnlocked", err)
	}

	for _, id := range []string{"party-hat", "tiny-crown", "racing-goggles"} {
		if _, err := svc.UnlockAccessory(ctx, id, "test setup"); err != nil {
			t.Fatalf("UnlockAccessory %s failed: %v", id, err)
		}
	}

	// Wrong category slot is rejected
	if err := svc.EquipAccessory(ctx, "party-hat", models.CategoryGlasses); !errors.Is(err, ErrCategoryMismatch) {
		t.Errorf("Equip into wrong category = %v, want ErrCategoryMismatch", err)
	}

	if err := svc.EquipAccessory(ctx, "party-hat", models.CategoryHat); err != nil {
		t.Fatalf("EquipAccessory failed: %v", err)
	}
	if err := svc.EquipAccessory(ctx, "racing-goggles", models.CategoryGlasses); err != nil {
		t.Fatalf("EquipAccessory failed: %v", err)
	}
	// Equipping a second hat must unequip the first
	if err := svc.EquipAccessory(ctx, "tiny-crown", models.CategoryHat); err != nil {
		t.Fatalf("EquipAccessory failed: %v", err)
	}

	accessories, err := svc.GetAvailableAccessories(ctx)
	if err != nil {
		t.Fatalf("GetAvailableAccessories failed: %v", err)
	}
	equipped := map[string]bool{}
	hatsEquipped := 0
	for _, a := range accessories {
		if a.Equipped {
			equipped[a.ID] = true
			if a.Category == models.CategoryHat {
				hatsEquipped++
			}
		}
	}
	if hatsEquipped != 1 {
		t.Errorf("%d hats equipped, want exactly 1", hatsEquipped)
	}
	if !equipped["tiny-crown"] || equipped["party-hat"] {
		t.Errorf("Equipped set = %v, want tiny-crown to replace party-hat", equipped)
	}
	if !equipped["racing-goggles"] {
		t.Error("Equipping a hat must not touch the glasses slot")
	}
}

func TestUpdatePersonalBest(t *testing.T) {
	svc, _, queue := newTestAchievementService(t)
	ctx := context.Background()

	improved, err := svc.UpdatePersonalBest(ctx, models.BestWPM, 25)
	if err != nil {
		t.Fatalf("UpdatePersonalBest failed: %v", err)
	}
	if !improved {
		t.Error("First record should count as a new best")
	}

	improved, err = svc.UpdatePersonalBest(ctx, models.BestWPM, 30)
	if err != nil {
		t.Fatalf("UpdatePersonalBest failed: %v", err)
	}
	if !improved {
		t.Error("30 should beat 25")
	}

	bests, err := svc.GetPersonalBests(ctx)
	if err != nil {
		t.Fatalf("GetPersonalBests failed: %v", err)
	}
	best := bests[models.BestWPM]
	if best.Value != 30 || best.PreviousBest != 25 {
		t.Errorf("Best = %+v, want value 30 with previous 25", best)
	}
	if best.ImprovementPct != 20 {
		t.Errorf("ImprovementPct = %.1f, want 20", best.ImprovementPct)
	}

	// A slower session leaves the record untouched
	improved, err = svc.UpdatePersonalBest(ctx, models.BestWPM, 28)
	if err != nil {
		t.Fatalf("UpdatePersonalBest failed: %v", err)
	}
	if improved {
		t.Error("28 must not beat 30")
	}
	bests, err = svc.GetPersonalBests(ctx)
	if err != nil {
		t.Fatalf("GetPersonalBests failed: %v", err)
	}
	if bests[models.BestWPM].Value != 30 {
		t.Errorf("Best after slower session = %.0f, want 30", bests[models.BestWPM].Value)
	}

	if next := queue.Next(); next == nil || next.Type != models.CelebrationPersonalBest {
		t.Errorf("Expected a personal best celebration, got %+v", next)
	}

	var validationErr models.ValidationError
	if _, err := svc.UpdatePersonalBest(ctx, "jump_height", 3); !errors.As(err, &validationErr) {
		t.Errorf("Unknown category = %v, want validation error", err)
	}
}

type recordingNotifier struct {
	goals []models.WeeklyGoal
}

func (n *recordingNotifier) WeeklyGoalCompleted(ctx context.Context, goal models.WeeklyGoal, totalPoints int) error {
	n.goals = append(n.goals, goal)
	return nil
}

func TestUpdateWeeklyGoals(t *testing.T) {
	svc, _, _ := newTestAchievementService(t)
	notifier := &recordingNotifier{}
	svc.SetNotifier(notifier)
	ctx := context.Background()

	session := models.SessionSummary{
		DurationMs:         900000, // 15 minutes
		WordsPerMinute:     20,
		AccuracyPercentage: 95,
		TotalCharacters:    600,
		WordsTyped:         150,
	}

	completed, err := svc.UpdateWeeklyGoals(ctx, session)
	if err != nil {
		t.Fatalf("UpdateWeeklyGoals failed: %v", err)
	}
	if len(completed) != 0 {
		t.Errorf("One session completed %d goals, want 0", len(completed))
	}

	// Three more identical sessions push the word goal (500) and the minute
	// goal (60) over their targets
	for i := 0; i < 3; i++ {
		if completed, err = svc.UpdateWeeklyGoals(ctx, session); err != nil {
			t.Fatalf("UpdateWeeklyGoals failed: %v", err)
		}
	}

	goals, err := svc.GetWeeklyGoals(ctx)
	if err != nil {
		t.Fatalf("GetWeeklyGoals failed: %v", err)
	}
	byID := map[string]models.WeeklyGoal{}
	for _, goal := range goals {
		byID[goal.ID] = goal
	}
	if !byID["weekly-words"].Completed {
		t.Errorf("Word goal = %+v, want completed after 600 words", byID["weekly-words"])
	}
	if !byID["weekly-minutes"].Completed {
		t.Errorf("Minute goal = %+v, want completed after 60 minutes", byID["weekly-minutes"])
	}
	if byID["weekly-sessions"].Completed {
		t.Errorf("Session goal = %+v, want incomplete after 4 sessions", byID["weekly-sessions"])
	}

	if len(notifier.goals) != 2 {
		t.Errorf("Notifier received %d completions, want 2", len(notifier.goals))
	}

	// A completed goal stays completed and is not reported again
	completed, err = svc.UpdateWeeklyGoals(ctx, session)
	if err != nil {
		t.Fatalf("UpdateWeeklyGoals failed: %v", err)
	}
	for _, goal := range completed {
		if goal.ID == "weekly-words" || goal.ID == "weekly-minutes" {
			t.Errorf("Goal %s reported completed twice", goal.ID)
		}
	}
}

func TestProgressSurvivesRestart(t *testing.T) {
	svc, store, _ := newTestAchievementService(t)
	ctx := context.Background()

	if _, err := svc.UnlockAchievement(ctx, "flawless-flash"); err != nil {
		t.Fatalf("UnlockAchievement failed: %v", err)
	}

	restarted := NewAchievementService(store, NewCelebrationQueue(), "test-user")
	unlocked, err := restarted.GetUnlockedAchievements(ctx)
	if err != nil {
		t.Fatalf("GetUnlockedAchievements after restart failed: %v", err)
	}
	if len(unlocked) != 1 || unlocked[0].ID != "flawless-flash" {
		t.Errorf("Unlocked after restart = %v, want [flawless-flash]", unlocked)
	}

	points, err := restarted.TotalPoints(ctx)
	if err != nil {
		t.Fatalf("TotalPoints failed: %v", err)
	}
	if points != 100 {
		t.Errorf("TotalPoints after restart = %d, want 100", points)
	}

	// Pending celebrations come back with the progress document
	if restarted.queue.Len() == 0 {
		t.Error("Pending celebrations were not restored from the snapshot")
	}
}

func TestProgressRecoversFromCorruptDocument(t *testing.T) {
	svc, store, _ := newTestAchievementService(t)
	ctx := context.Background()

	if err := store.Put(ctx, storage.CollectionAchievements, "test-user", []byte("{broken")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	unlocked, err := svc.GetUnlockedAchievements(ctx)
	if err != nil {
		t.Fatalf("GetUnlockedAchievements on corrupt document failed: %v", err)
	}
	if len(unlocked) != 0 {
		t.Errorf("Corrupt document yielded %d achievements, want fresh defaults", len(unlocked))
	}
}
