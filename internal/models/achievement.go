package models

import "time"

// Rarity grades an achievement and drives how loudly it is celebrated
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Rank returns the sort weight of a rarity, rarest last
func (r Rarity) Rank() int {
	switch r {
	case RarityCommon:
		return 1
	case RarityRare:
		return 2
	case RarityEpic:
		return 3
	case RarityLegendary:
		return 4
	default:
		return 0
	}
}

// Achievement is an earned instance of a catalog definition.
// Created exactly once per id, never mutated or deleted.
type Achievement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Points      int       `json:"points"`
	Rarity      Rarity    `json:"rarity"`
	DateEarned  time.Time `json:"date_earned"`
}
