package models

import "time"

// AccessoryCategory is the slot an accessory occupies. At most one accessory
// per category may be equipped at a time.
type AccessoryCategory string

const (
	CategoryHat     AccessoryCategory = "hat"
	CategoryGlasses AccessoryCategory = "glasses"
	CategoryBow     AccessoryCategory = "bow"
	CategoryCollar  AccessoryCategory = "collar"
	CategoryBadge   AccessoryCategory = "badge"
)

// Accessory is an unlocked cosmetic item
type Accessory struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Category        AccessoryCategory `json:"category"`
	UnlockCondition string            `json:"unlock_condition"`
	DateUnlocked    time.Time         `json:"date_unlocked"`
	Equipped        bool              `json:"equipped"`
}
