package catalog

import "typepet/internal/models"

// AchievementDefinition is one entry of the static achievement catalog.
// Check is a pure predicate over a validated session summary.
type AchievementDefinition struct {
	ID               string
	Title            string
	Description      string
	Points           int
	Rarity           models.Rarity
	Check            func(models.SessionSummary) bool
	AccessoryRewards []string
}

// achievementCatalog is evaluated in order on every session summary.
// Definitions are immutable for the process lifetime.
var achievementCatalog = []AchievementDefinition{
	{
		ID:          "first-steps",
		Title:       "First Steps",
		Description: "Finish your very first practice session",
		Points:      10,
		Rarity:      models.RarityCommon,
		Check: func(s models.SessionSummary) bool {
			return s.TotalCharacters > 0
		},
	},
	{
		ID:          "speedy-fingers",
		Title:       "Speedy Fingers",
		Description: "Type 20 words per minute or faster",
		Points:      25,
		Rarity:      models.RarityRare,
		Check: func(s models.SessionSummary) bool {
			return s.WordsPerMinute >= 20
		},
	},
	{
		ID:          "lightning-hands",
		Title:       "Lightning Hands",
		Description: "Type 30 words per minute or faster",
		Points:      50,
		Rarity:      models.RarityEpic,
		Check: func(s models.SessionSummary) bool {
			return s.WordsPerMinute >= 30
		},
		AccessoryRewards: []string{"racing-goggles"},
	},
	{
		ID:          "careful-typer",
		Title:       "Careful Typer",
		Description: "Finish a session with 90% accuracy or better",
		Points:      25,
		Rarity:      models.RarityRare,
		Check: func(s models.SessionSummary) bool {
			return s.AccuracyPercentage >= 90
		},
	},
	{
		ID:          "perfectionist",
		Title:       "Perfectionist",
		Description: "Type at least 50 characters with perfect accuracy",
		Points:      50,
		Rarity:      models.RarityEpic,
		Check: func(s models.SessionSummary) bool {
			return s.AccuracyPercentage >= 100 && s.TotalCharacters >= 50
		},
		AccessoryRewards: []string{"golden-bow"},
	},
	{
		ID:          "marathon-typer",
		Title:       "Marathon Typer",
		Description: "Practice for ten minutes in one sitting",
		Points:      30,
		Rarity:      models.RarityRare,
		Check: func(s models.SessionSummary) bool {
			return s.DurationMs >= 10*60*1000
		},
	},
	{
		ID:          "word-storm",
		Title:       "Word Storm",
		Description: "Type 1,000 characters in a single session",
		Points:      30,
		Rarity:      models.RarityRare,
		Check: func(s models.SessionSummary) bool {
			return s.TotalCharacters >= 1000
		},
		AccessoryRewards: []string{"star-collar"},
	},
	{
		ID:          "on-the-rise",
		Title:       "On the Rise",
		Description: "Beat your last session by 5 WPM or more",
		Points:      15,
		Rarity:      models.RarityCommon,
		Check: func(s models.SessionSummary) bool {
			return s.ImprovementFromLastSession >= 5
		},
	},
	{
		ID:          "cool-head",
		Title:       "Cool Head",
		Description: "Practice five minutes with two mistakes or fewer",
		Points:      10,
		Rarity:      models.RarityCommon,
		Check: func(s models.SessionSummary) bool {
			return s.DurationMs >= 5*60*1000 && s.ErrorsCount <= 2
		},
	},
	{
		ID:          "flawless-flash",
		Title:       "Flawless Flash",
		Description: "Type 25 WPM with 95% accuracy in one session",
		Points:      100,
		Rarity:      models.RarityLegendary,
		Check: func(s models.SessionSummary) bool {
			return s.WordsPerMinute >= 25 && s.AccuracyPercentage >= 95
		},
		AccessoryRewards: []string{"tiny-crown"},
	},
}

// Achievements returns the ordered achievement catalog
func Achievements() []AchievementDefinition {
	return achievementCatalog
}

// LookupAchievement finds a definition by id
func LookupAchievement(id string) (AchievementDefinition, bool) {
	for _, def := range achievementCatalog {
		if def.ID == id {
			return def, true
		}
	}
	return AchievementDefinition{}, false
}
