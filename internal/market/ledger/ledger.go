// Package ledger declares the external balance-ledger boundary. The engine
// never holds balances itself; it reserves, releases, slashes, and deposits
// through this interface in the exact order bids are accepted.
package ledger

import (
	"context"

	"github.com/louisbranch/gavel/internal/market/domain/core"
	apperrors "github.com/louisbranch/gavel/internal/platform/errors"
)

// ErrInsufficientFunds indicates an account cannot cover a reservation or
// slash.
var ErrInsufficientFunds = apperrors.New(apperrors.CodeInsufficientFunds, "account cannot cover the amount")

// Ledger is the currency collaborator consumed by the engine. Calls are
// synchronous and fallible but never suspend.
type Ledger interface {
	// CanReserve reports whether the account's unreserved balance covers
	// the amount.
	CanReserve(ctx context.Context, account core.AccountID, amount core.Amount) (bool, error)
	// Reserve locks amount on the account pending an outcome.
	Reserve(ctx context.Context, account core.AccountID, amount core.Amount) error
	// Unreserve releases a previously reserved amount.
	Unreserve(ctx context.Context, account core.AccountID, amount core.Amount) error
	// SlashReserved permanently debits a reserved amount.
	SlashReserved(ctx context.Context, account core.AccountID, amount core.Amount) error
	// DepositCreating credits the account, creating it if needed.
	DepositCreating(ctx context.Context, account core.AccountID, amount core.Amount) error
	// CanSlash reports whether the account's reserved balance covers the
	// amount.
	CanSlash(ctx context.Context, account core.AccountID, amount core.Amount) (bool, error)
}
