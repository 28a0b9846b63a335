// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package store defines the row-level contract shared by every backend
// (spreadsheet, sqlite, postgres) over the Signups and NeededItems collections.
package store

import (
	"context"
	"errors"

	"github.com/danielhkuo/bonfire/models"
)

var (
	ErrNotFound  = errors.New("needed item not found")
	ErrDuplicate = errors.New("needed item already exists")
)

// Store reads and writes the two collections. Item names are matched
// case-insensitively. Implementations reload state on every call.
type Store interface {
	ListSignups(ctx context.Context) ([]models.Signup, error)
	AddSignup(ctx context.Context, s models.Signup) error

	ListNeededItems(ctx context.Context) ([]models.NeededItem, error)
	GetNeededItem(ctx context.Context, name string) (models.NeededItem, error)
	AddNeededItem(ctx context.Context, item models.NeededItem) error
	UpdateNeededItem(ctx context.Context, item models.NeededItem) error
	RemoveNeededItem(ctx context.Context, name string) error

	// Ping checks that the backing store is reachable
	Ping(ctx context.Context) error
	Close() error
}
