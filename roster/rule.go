// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package roster

import (
	"strings"

	"github.com/danielhkuo/bonfire/models"
)

// Apply credits q units pledged by contributor to item. quantityBrought only
// grows; taken becomes true once the target is reached and never flips back
// here. The contributor is added to takenBy unless already listed.
func Apply(item models.NeededItem, contributor string, q int) models.NeededItem {
	if q < 1 {
		q = 1
	}
	item.QuantityBrought += q
	if item.QuantityBrought >= item.QuantityNeeded {
		item.Taken = true
	}
	item.TakenBy = AddContributor(item.TakenBy, contributor)
	return item
}

// NewItem is the needed item created when someone signs up for something unlisted
func NewItem(name string, category models.Category, needed int) models.NeededItem {
	if needed < 1 {
		needed = 1
	}
	return models.NeededItem{
		Item:           strings.TrimSpace(name),
		Category:       category,
		QuantityNeeded: needed,
	}
}

// Contributors splits a takenBy field into trimmed names
func Contributors(takenBy string) []string {
	var names []string
	for _, part := range strings.Split(takenBy, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// HasContributor reports whether name is one of the entries of takenBy.
// Matching is whole-name and case-insensitive: "Al" is not in "Albert".
// Names that contain commas ("Smith, John") are matched against the joined
// form before the field is split.
func HasContributor(takenBy, name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return false
	}

	joined := strings.ToLower(strings.TrimSpace(takenBy))
	if joined == name ||
		strings.HasPrefix(joined, name+", ") ||
		strings.HasSuffix(joined, ", "+name) ||
		strings.Contains(joined, ", "+name+", ") {
		return true
	}

	for _, existing := range Contributors(takenBy) {
		if strings.EqualFold(existing, name) {
			return true
		}
	}
	return false
}

// AddContributor appends name to takenBy in the ", " joined form
func AddContributor(takenBy, name string) string {
	name = strings.TrimSpace(name)
	if name == "" || HasContributor(takenBy, name) {
		return takenBy
	}
	takenBy = strings.TrimSpace(takenBy)
	if takenBy == "" {
		return name
	}
	return takenBy + ", " + name
}
