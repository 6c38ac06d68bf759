// Package memory provides an in-process ownership registry used by tests
// and the simulation CLI.
package memory

import (
	"context"
	"sync"

	"github.com/louisbranch/gavel/internal/market/domain/core"
	"github.com/louisbranch/gavel/internal/market/ownership"
)

type record struct {
	owner   core.AccountID
	royalty ownership.CreatorRoyalty
	hasRate bool
}

// Registry is an in-memory ownership registry.
type Registry struct {
	mu    sync.Mutex
	items map[core.ItemID]record
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{items: make(map[core.ItemID]record)}
}

// Issue registers an item with an owner and no royalty.
func (r *Registry) Issue(itemID core.ItemID, owner core.AccountID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[itemID] = record{owner: owner}
}

// IssueWithRoyalty registers an item with a creator royalty fixed at
// issuance. An empty creator account models a royalty with no reward
// account configured.
func (r *Registry) IssueWithRoyalty(itemID core.ItemID, owner core.AccountID, creator core.AccountID, rate core.Bps) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[itemID] = record{
		owner:   owner,
		royalty: ownership.CreatorRoyalty{Creator: creator, RateBps: rate},
		hasRate: true,
	}
}

// OwnerOf returns the current owner of the item.
func (r *Registry) OwnerOf(ctx context.Context, itemID core.ItemID) (core.AccountID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.items[itemID]
	if !ok {
		return "", ownership.ErrItemNotFound
	}
	return rec.owner, nil
}

// CreatorRoyaltyOf returns the creator/royalty pair set at issuance.
func (r *Registry) CreatorRoyaltyOf(ctx context.Context, itemID core.ItemID) (ownership.CreatorRoyalty, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.items[itemID]
	if !ok {
		return ownership.CreatorRoyalty{}, false, ownership.ErrItemNotFound
	}
	return rec.royalty, rec.hasRate, nil
}

// SetOwner records the new owner.
func (r *Registry) SetOwner(ctx context.Context, itemID core.ItemID, owner core.AccountID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.items[itemID]
	if !ok {
		return ownership.ErrItemNotFound
	}
	rec.owner = owner
	r.items[itemID] = rec
	return nil
}
