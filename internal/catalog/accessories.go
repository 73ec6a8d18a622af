package catalog

import "typepet/internal/models"

// AccessoryDefinition is one entry of the static accessory catalog
type AccessoryDefinition struct {
	ID              string
	Name            string
	Category        models.AccessoryCategory
	UnlockCondition string
}

var accessoryCatalog = []AccessoryDefinition{
	{ID: "party-hat", Name: "Party Hat", Category: models.CategoryHat, UnlockCondition: "Hatch your pet into its baby form"},
	{ID: "tiny-crown", Name: "Tiny Crown", Category: models.CategoryHat, UnlockCondition: "Earn the Flawless Flash achievement"},
	{ID: "racing-goggles", Name: "Racing Goggles", Category: models.CategoryGlasses, UnlockCondition: "Earn the Lightning Hands achievement"},
	{ID: "reading-glasses", Name: "Reading Glasses", Category: models.CategoryGlasses, UnlockCondition: "Practice three days in a row"},
	{ID: "golden-bow", Name: "Golden Bow", Category: models.CategoryBow, UnlockCondition: "Earn the Perfectionist achievement"},
	{ID: "polka-bow", Name: "Polka Dot Bow", Category: models.CategoryBow, UnlockCondition: "Set a new accuracy personal best"},
	{ID: "star-collar", Name: "Star Collar", Category: models.CategoryCollar, UnlockCondition: "Earn the Word Storm achievement"},
	{ID: "bell-collar", Name: "Bell Collar", Category: models.CategoryCollar, UnlockCondition: "Feed your pet 500 words"},
	{ID: "streak-badge", Name: "Streak Badge", Category: models.CategoryBadge, UnlockCondition: "Practice seven days in a row"},
}

// Accessories returns the full accessory catalog
func Accessories() []AccessoryDefinition {
	return accessoryCatalog
}

// LookupAccessory finds an accessory definition by id
func LookupAccessory(id string) (AccessoryDefinition, bool) {
	for _, def := range accessoryCatalog {
		if def.ID == id {
			return def, true
		}
	}
	return AccessoryDefinition{}, false
}
