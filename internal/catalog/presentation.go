package catalog

import "typepet/internal/models"

// CelebrationStyle describes how an unlock of a given rarity is presented
type CelebrationStyle struct {
	Priority   models.Priority
	Animation  string
	DurationMs int
	Sound      string
}

// styleByRarity is the fixed rarity-to-presentation mapping. Rarer unlocks
// celebrate louder and longer.
var styleByRarity = map[models.Rarity]CelebrationStyle{
	models.RarityCommon:    {Priority: models.PriorityLow, Animation: "sparkle", DurationMs: 2000, Sound: "chime"},
	models.RarityRare:      {Priority: models.PriorityMedium, Animation: "confetti", DurationMs: 3000, Sound: "cheer"},
	models.RarityEpic:      {Priority: models.PriorityHigh, Animation: "fireworks", DurationMs: 4000, Sound: "fanfare"},
	models.RarityLegendary: {Priority: models.PriorityHigh, Animation: "rainbow_burst", DurationMs: 6000, Sound: "grand_fanfare"},
}

// StyleForRarity returns the presentation for a rarity, defaulting to the
// common style for anything unknown
func StyleForRarity(r models.Rarity) CelebrationStyle {
	if style, ok := styleByRarity[r]; ok {
		return style
	}
	return styleByRarity[models.RarityCommon]
}
