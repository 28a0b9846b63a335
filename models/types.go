// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "strings"

// Category groups needed items on the board
type Category string

// Item categories
const (
	CategoryFood     Category = "food"
	CategoryDrinks   Category = "drinks"
	CategorySupplies Category = "supplies"
	CategoryOther    Category = "other"
)

// Categories lists every category in display order
var Categories = []Category{CategoryFood, CategoryDrinks, CategorySupplies, CategoryOther}

// ParseCategory normalizes a category name; anything unknown becomes "other"
func ParseCategory(s string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case CategoryFood, CategoryDrinks, CategorySupplies, CategoryOther:
		return c
	}
	return CategoryOther
}

// Domain types

// Signup is one (person, item, quantity) commitment
type Signup struct {
	ID        string   `json:"-"` // Internal row key for relational stores
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Item      string   `json:"item"`
	Category  Category `json:"itemCategory"`
	Quantity  int      `json:"quantity"`
	Timestamp string   `json:"timestamp"` // RFC 3339
}

// NeededItem is a supply line with a target quantity and the amount pledged so far
type NeededItem struct {
	Item            string   `json:"item"`
	Category        Category `json:"category"`
	Taken           bool     `json:"taken"`
	TakenBy         string   `json:"takenBy"`
	QuantityNeeded  int      `json:"quantityNeeded"`
	QuantityBrought int      `json:"quantityBrought"`
}

// SameItem reports whether two item names refer to the same needed item
func SameItem(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// Request types

// SignupItem is one entry of the multi-item signup shape
type SignupItem struct {
	Item           string `json:"item"`
	Category       string `json:"category"`
	Quantity       int    `json:"quantity,omitempty"`
	QuantityNeeded int    `json:"quantityNeeded,omitempty"`
}

// CreateSignupRequest accepts both the legacy single-item shape and the items list
type CreateSignupRequest struct {
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Item         string       `json:"item,omitempty"`
	ItemCategory string       `json:"itemCategory,omitempty"`
	Quantity     int          `json:"quantity,omitempty"`
	Items        []SignupItem `json:"items,omitempty"`
}

// SignupItems returns the items of the request, folding the legacy fields into a list
func (r CreateSignupRequest) SignupItems() []SignupItem {
	if len(r.Items) > 0 {
		return r.Items
	}
	if strings.TrimSpace(r.Item) == "" {
		return nil
	}
	return []SignupItem{{
		Item:     r.Item,
		Category: r.ItemCategory,
		Quantity: r.Quantity,
	}}
}

type CreateNeededItemRequest struct {
	Item           string `json:"item"`
	Category       string `json:"category"`
	QuantityNeeded int    `json:"quantityNeeded,omitempty"`
}

type UpdateNeededItemRequest struct {
	Item           string `json:"item"`
	QuantityNeeded int    `json:"quantityNeeded"`
}

type DeleteNeededItemRequest struct {
	Item string `json:"item"`
}

// Response types

type SuccessResponse struct {
	Success bool `json:"success"`
}

type NeededItemsResponse struct {
	NeededItems []NeededItem `json:"neededItems"`
}

type SignupsResponse struct {
	Signups []Signup `json:"signups"`
}

// RosterItem is one pledged item inside a contributor group
type RosterItem struct {
	Item     string   `json:"item"`
	Category Category `json:"category"`
	Quantity int      `json:"quantity"`
}

// Contributor groups every signup that shares an email
type Contributor struct {
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Timestamp string       `json:"timestamp"` // Latest signup
	Items     []RosterItem `json:"items"`
}

type RosterResponse struct {
	Roster       []Contributor `json:"roster"`
	TotalItems   int           `json:"totalItems"`
	UniquePeople int           `json:"uniquePeople"`
}

// EnvStatus reports which credential settings are present ("Set" or "Missing")
type EnvStatus struct {
	SheetID    string `json:"sheetId"`
	Email      string `json:"email"`
	PrivateKey string `json:"privateKey"`
}

type DiagnosticsResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message,omitempty"`
	Error   string    `json:"error,omitempty"`
	Backend string    `json:"backend"`
	Env     EnvStatus `json:"env"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
