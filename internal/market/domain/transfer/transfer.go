// Package transfer defines the pending-transfer handshake: a non-auction,
// no-payment ownership handoff awaiting recipient acceptance.
package transfer

import (
	"time"

	"github.com/louisbranch/gavel/internal/market/domain/core"
	apperrors "github.com/louisbranch/gavel/internal/platform/errors"
)

var (
	// ErrNotFound indicates no pending transfer exists for the item.
	ErrNotFound = apperrors.New(apperrors.CodeTransferNotFound, "pending transfer does not exist")
	// ErrAlreadyExists indicates a pending transfer already covers the item.
	ErrAlreadyExists = apperrors.New(apperrors.CodeTransferAlreadyExists, "pending transfer already exists for item")
	// ErrNotRecipient indicates an accept attempt by an account the transfer
	// does not name.
	ErrNotRecipient = apperrors.New(apperrors.CodeTransferNotRecipient, "pending transfer names a different recipient")
)

// Pending is an outstanding ownership handoff. At most one exists per item,
// and it is mutually exclusive with a live auction on the same item.
type Pending struct {
	ItemID    core.ItemID
	Recipient core.AccountID
	CreatedAt time.Time
}

// Start builds a pending transfer record.
func Start(itemID core.ItemID, recipient core.AccountID, now time.Time) Pending {
	return Pending{
		ItemID:    itemID,
		Recipient: recipient,
		CreatedAt: now.UTC(),
	}
}

// AcceptableBy reports whether the account may accept the transfer.
func (p Pending) AcceptableBy(account core.AccountID) bool {
	return p.Recipient == account
}
