// Package ownership declares the external item-ownership boundary. Item
// records, creator attribution, and royalty rates are owned by the
// surrounding content system; the engine only reads owners and writes the
// new owner after settlement.
package ownership

import (
	"context"

	"github.com/louisbranch/gavel/internal/market/domain/core"
	apperrors "github.com/louisbranch/gavel/internal/platform/errors"
)

// ErrItemNotFound indicates the item does not exist in the registry.
var ErrItemNotFound = apperrors.New(apperrors.CodeItemNotFound, "item does not exist")

// CreatorRoyalty pairs the item's original creator with the royalty rate
// fixed at issuance. The creator account may be empty when the creator
// never configured a reward account; the rate still applies and the
// royalty share is forfeited at settlement.
type CreatorRoyalty struct {
	Creator core.AccountID
	RateBps core.Bps
}

// Registry is the ownership collaborator consumed by the engine.
type Registry interface {
	// OwnerOf returns the current owner of the item.
	OwnerOf(ctx context.Context, itemID core.ItemID) (core.AccountID, error)
	// CreatorRoyaltyOf returns the creator/royalty pair set at issuance.
	// The boolean reports whether the item carries a royalty at all.
	CreatorRoyaltyOf(ctx context.Context, itemID core.ItemID) (CreatorRoyalty, bool, error)
	// SetOwner records the new owner after a settled sale or an accepted
	// transfer.
	SetOwner(ctx context.Context, itemID core.ItemID, owner core.AccountID) error
}
