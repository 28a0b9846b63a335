// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// DefaultNeededItems returns the starter board written on first initialization.
// A fresh slice is returned on every call.
func DefaultNeededItems() []NeededItem {
	seed := []struct {
		item     string
		category Category
		needed   int
	}{
		{"BBQ Grill", CategorySupplies, 1},
		{"Charcoal", CategorySupplies, 1},
		{"Lighter Fluid", CategorySupplies, 1},
		{"Paper Plates", CategorySupplies, 50},
		{"Napkins", CategorySupplies, 100},
		{"Plastic Cups", CategorySupplies, 50},
		{"Cooler with Ice", CategorySupplies, 2},
		{"Beach Chairs", CategorySupplies, 10},
		{"Umbrella/Tent", CategorySupplies, 3},
		{"Trash Bags", CategorySupplies, 3},
		{"Wet Wipes", CategorySupplies, 5},
		{"Sunscreen", CategorySupplies, 3},
		{"Burgers", CategoryFood, 1},
		{"Hot Dogs", CategoryFood, 1},
		{"Buns", CategoryFood, 1},
		{"Condiments", CategoryFood, 1},
		{"Fruit Salad", CategoryFood, 1},
		{"Chips", CategoryFood, 1},
		{"Sodas", CategoryDrinks, 1},
		{"Water Bottles", CategoryDrinks, 1},
		{"Beer", CategoryDrinks, 1},
		{"Sports Equipment", CategoryOther, 1},
		{"Bluetooth Speaker", CategoryOther, 1},
		{"Firewood", CategorySupplies, 5},
	}

	items := make([]NeededItem, 0, len(seed))
	for _, s := range seed {
		items = append(items, NeededItem{
			Item:           s.item,
			Category:       s.category,
			QuantityNeeded: s.needed,
		})
	}
	return items
}
