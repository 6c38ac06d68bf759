// Package offer defines direct offers: a buyer proposes a price for an item
// outside any auction, reserving the amount until the owner accepts or the
// offeror withdraws.
package offer

import (
	"time"

	"github.com/louisbranch/gavel/internal/market/domain/core"
	apperrors "github.com/louisbranch/gavel/internal/platform/errors"
)

var (
	// ErrNotFound indicates no outstanding offer matches.
	ErrNotFound = apperrors.New(apperrors.CodeOfferNotFound, "offer does not exist")
	// ErrAlreadyExists indicates the offeror already has an outstanding
	// offer on the item.
	ErrAlreadyExists = apperrors.New(apperrors.CodeOfferAlreadyExists, "offer already exists for item")
	// ErrSelfDeal indicates the owner offering on their own item.
	ErrSelfDeal = apperrors.New(apperrors.CodeSelfDeal, "owner cannot offer on their own item")
)

// Offer is one outstanding direct offer. At most one exists per
// (item, offeror) pair; the offered amount stays reserved on the offeror's
// balance while the offer stands.
type Offer struct {
	ItemID   core.ItemID
	Offeror  core.AccountID
	Amount   core.Amount
	PlacedAt time.Time
}

// Make builds an offer record.
func Make(itemID core.ItemID, offeror core.AccountID, amount core.Amount, now time.Time) Offer {
	return Offer{
		ItemID:   itemID,
		Offeror:  offeror,
		Amount:   amount,
		PlacedAt: now.UTC(),
	}
}
