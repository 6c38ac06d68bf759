// Package auth resolves acting parties against item ownership: an owner
// acts with their own credential, an agent acts under a per-item grant from
// the owner. Production deployments supply their own authorizer; this one
// backs tests and simulations.
package auth

import (
	"context"
	"sync"

	"github.com/louisbranch/gavel/internal/market/domain/core"
	"github.com/louisbranch/gavel/internal/market/ownership"
	apperrors "github.com/louisbranch/gavel/internal/platform/errors"
)

// ErrAuthorizationFailed indicates the credential does not match the claimed
// actor or the actor lacks permission on the item.
var ErrAuthorizationFailed = apperrors.New(apperrors.CodeAuthorizationFailed, "actor is not authorized for this item")

type grantKey struct {
	itemID  core.ItemID
	agentID string
}

// Delegations authorizes owners directly and agents through explicit
// per-item grants. An agent's ID doubles as its account ID.
type Delegations struct {
	items ownership.Registry

	mu     sync.Mutex
	grants map[grantKey]struct{}
}

// NewDelegations creates an authorizer over the ownership registry.
func NewDelegations(items ownership.Registry) *Delegations {
	return &Delegations{
		items:  items,
		grants: make(map[grantKey]struct{}),
	}
}

// Grant allows the agent to act on the item.
func (d *Delegations) Grant(itemID core.ItemID, agentID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.grants[grantKey{itemID: itemID, agentID: agentID}] = struct{}{}
}

// Revoke withdraws an agent's grant on the item.
func (d *Delegations) Revoke(itemID core.ItemID, agentID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.grants, grantKey{itemID: itemID, agentID: agentID})
}

// Authorize validates the origin credential against the claimed actor and
// returns the owner account the operation acts on behalf of.
func (d *Delegations) Authorize(ctx context.Context, origin core.AccountID, actor core.Actor, itemID core.ItemID) (core.AccountID, error) {
	owner, err := d.items.OwnerOf(ctx, itemID)
	if err != nil {
		return "", err
	}

	switch actor.Kind {
	case core.ActorOwner:
		if origin != owner {
			return "", ErrAuthorizationFailed
		}
		return owner, nil
	case core.ActorAgent:
		if origin != core.AccountID(actor.AgentID) {
			return "", ErrAuthorizationFailed
		}
		d.mu.Lock()
		_, ok := d.grants[grantKey{itemID: itemID, agentID: actor.AgentID}]
		d.mu.Unlock()
		if !ok {
			return "", ErrAuthorizationFailed
		}
		return owner, nil
	default:
		return "", ErrAuthorizationFailed
	}
}
