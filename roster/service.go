// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package roster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/danielhkuo/bonfire/models"
	"github.com/danielhkuo/bonfire/store"
)

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrStorage        = errors.New("storage failure")
	ErrClosed         = errors.New("roster service is closed")
)

func invalid(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, reason)
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}

// command is one mutation run by the writer goroutine
type command struct {
	ctx   context.Context
	run   func(ctx context.Context) error
	reply chan error
}

// Service validates requests and serializes every write through one
// goroutine, so concurrent signups for the same item are applied in turn.
// Reads go straight to the store.
type Service struct {
	store    store.Store
	commands chan command
	quit     chan struct{}
	done     chan struct{}

	// now is replaceable in tests
	now func() time.Time
}

// NewService starts the writer goroutine
func NewService(s store.Store) *Service {
	svc := &Service{
		store:    s,
		commands: make(chan command),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
		now:      time.Now,
	}
	go svc.loop()
	return svc
}

func (s *Service) loop() {
	defer close(s.done)
	for {
		select {
		case cmd := <-s.commands:
			// Started mutations run to completion even if the caller is gone
			cmd.reply <- cmd.run(context.WithoutCancel(cmd.ctx))
		case <-s.quit:
			return
		}
	}
}

// submit hands a mutation to the writer and waits for its result
func (s *Service) submit(ctx context.Context, run func(ctx context.Context) error) error {
	cmd := command{ctx: ctx, run: run, reply: make(chan error, 1)}

	select {
	case s.commands <- cmd:
	case <-ctx.Done():
		return ctx.Err()
	case <-s.quit:
		return ErrClosed
	}

	select {
	case err := <-cmd.reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the writer goroutine after the current mutation
func (s *Service) Close() {
	select {
	case <-s.quit:
	default:
		close(s.quit)
	}
	<-s.done
}

// Store returns the backing store
func (s *Service) Store() store.Store {
	return s.store
}

// AddSignup records one signup per item and reconciles each against the
// needed items. Items are processed in request order.
func (s *Service) AddSignup(ctx context.Context, req models.CreateSignupRequest) error {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" || email == "" {
		return invalid("name and email are required")
	}

	items := req.SignupItems()
	if len(items) == 0 {
		return invalid("at least one item is required")
	}
	for _, it := range items {
		if strings.TrimSpace(it.Item) == "" {
			return invalid("item name is required")
		}
	}

	timestamp := s.now().UTC().Format(time.RFC3339)

	return s.submit(ctx, func(ctx context.Context) error {
		for _, it := range items {
			su := models.Signup{
				Name:      name,
				Email:     email,
				Item:      strings.TrimSpace(it.Item),
				Category:  models.ParseCategory(it.Category),
				Quantity:  max(it.Quantity, 1),
				Timestamp: timestamp,
			}
			if err := s.store.AddSignup(ctx, su); err != nil {
				return storageErr("add signup", err)
			}
			if err := s.reconcile(ctx, su, it.QuantityNeeded); err != nil {
				return err
			}
			slog.Info("signup recorded", "email", email, "item", su.Item, "quantity", su.Quantity)
		}
		return nil
	})
}

// reconcile runs on the writer goroutine only
func (s *Service) reconcile(ctx context.Context, su models.Signup, neededOverride int) error {
	item, err := s.store.GetNeededItem(ctx, su.Item)
	switch {
	case err == nil:
		if err := s.store.UpdateNeededItem(ctx, Apply(item, su.Name, su.Quantity)); err != nil {
			return storageErr("update needed item", err)
		}
		return nil
	case errors.Is(err, store.ErrNotFound):
		needed := su.Quantity
		if neededOverride > 0 {
			needed = neededOverride
		}
		created := Apply(NewItem(su.Item, su.Category, needed), su.Name, su.Quantity)
		if err := s.store.AddNeededItem(ctx, created); err != nil {
			return storageErr("add needed item", err)
		}
		slog.Info("needed item created from signup", "item", created.Item, "quantityNeeded", created.QuantityNeeded)
		return nil
	default:
		return storageErr("get needed item", err)
	}
}

func (s *Service) ListSignups(ctx context.Context) ([]models.Signup, error) {
	signups, err := s.store.ListSignups(ctx)
	if err != nil {
		return nil, storageErr("list signups", err)
	}
	return signups, nil
}

func (s *Service) ListNeededItems(ctx context.Context) ([]models.NeededItem, error) {
	items, err := s.store.ListNeededItems(ctx)
	if err != nil {
		return nil, storageErr("list needed items", err)
	}
	return items, nil
}

// AddNeededItem creates an item with nothing brought yet.
// Returns store.ErrDuplicate if the name is already listed.
func (s *Service) AddNeededItem(ctx context.Context, req models.CreateNeededItemRequest) error {
	if strings.TrimSpace(req.Item) == "" {
		return invalid("item is required")
	}
	item := NewItem(req.Item, models.ParseCategory(req.Category), req.QuantityNeeded)

	return s.submit(ctx, func(ctx context.Context) error {
		err := s.store.AddNeededItem(ctx, item)
		if errors.Is(err, store.ErrDuplicate) {
			return fmt.Errorf("%q: %w", item.Item, err)
		}
		if err != nil {
			return storageErr("add needed item", err)
		}
		slog.Info("needed item added", "item", item.Item, "quantityNeeded", item.QuantityNeeded)
		return nil
	})
}

// UpdateQuantityNeeded sets a new target. The item becomes taken when the
// new target is already met; taken is never cleared. Unknown items are ignored.
func (s *Service) UpdateQuantityNeeded(ctx context.Context, req models.UpdateNeededItemRequest) error {
	if strings.TrimSpace(req.Item) == "" {
		return invalid("item is required")
	}
	if req.QuantityNeeded < 1 {
		return invalid("quantityNeeded must be at least 1")
	}

	return s.submit(ctx, func(ctx context.Context) error {
		item, err := s.store.GetNeededItem(ctx, req.Item)
		if errors.Is(err, store.ErrNotFound) {
			slog.Warn("update of unknown needed item ignored", "item", req.Item)
			return nil
		}
		if err != nil {
			return storageErr("get needed item", err)
		}

		item.QuantityNeeded = req.QuantityNeeded
		if item.QuantityBrought >= item.QuantityNeeded {
			item.Taken = true
		}
		if err := s.store.UpdateNeededItem(ctx, item); err != nil && !errors.Is(err, store.ErrNotFound) {
			return storageErr("update needed item", err)
		}
		slog.Info("needed item updated", "item", item.Item, "quantityNeeded", item.QuantityNeeded)
		return nil
	})
}

// RemoveNeededItem deletes an item. Unknown items are ignored.
// Signups that referenced the item are kept.
func (s *Service) RemoveNeededItem(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return invalid("item is required")
	}

	return s.submit(ctx, func(ctx context.Context) error {
		err := s.store.RemoveNeededItem(ctx, name)
		if errors.Is(err, store.ErrNotFound) {
			slog.Warn("removal of unknown needed item ignored", "item", name)
			return nil
		}
		if err != nil {
			return storageErr("remove needed item", err)
		}
		slog.Info("needed item removed", "item", name)
		return nil
	})
}

// Roster groups signups by email, newest contributor first
func (s *Service) Roster(ctx context.Context) (models.RosterResponse, error) {
	signups, err := s.ListSignups(ctx)
	if err != nil {
		return models.RosterResponse{}, err
	}
	return BuildRoster(signups), nil
}

// BuildRoster groups signups by case-insensitive email. Each group keeps the
// first name seen and the latest timestamp; groups are sorted newest first.
func BuildRoster(signups []models.Signup) models.RosterResponse {
	groups := []*models.Contributor{}
	byEmail := map[string]*models.Contributor{}
	latest := map[string]time.Time{}

	for _, su := range signups {
		key := strings.ToLower(strings.TrimSpace(su.Email))
		ts, _ := time.Parse(time.RFC3339, su.Timestamp)

		c, ok := byEmail[key]
		if !ok {
			c = &models.Contributor{Name: su.Name, Email: su.Email, Timestamp: su.Timestamp}
			byEmail[key] = c
			latest[key] = ts
			groups = append(groups, c)
		} else if ts.After(latest[key]) {
			c.Timestamp = su.Timestamp
			latest[key] = ts
		}
		c.Items = append(c.Items, models.RosterItem{
			Item:     su.Item,
			Category: su.Category,
			Quantity: su.Quantity,
		})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return latest[strings.ToLower(strings.TrimSpace(groups[i].Email))].
			After(latest[strings.ToLower(strings.TrimSpace(groups[j].Email))])
	})

	resp := models.RosterResponse{
		Roster:       make([]models.Contributor, 0, len(groups)),
		TotalItems:   len(signups),
		UniquePeople: len(groups),
	}
	for _, c := range groups {
		resp.Roster = append(resp.Roster, *c)
	}
	return resp
}
