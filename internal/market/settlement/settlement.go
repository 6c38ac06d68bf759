// Package settlement computes and executes the royalty/fee/seller split for
// every sale. It is the single point where funds change hands: auction
// completion, buy-now, and direct-offer acceptance all settle here, so one
// algorithm governs all three paths.
package settlement

import (
	"context"

	"github.com/louisbranch/gavel/internal/market/domain/core"
	"github.com/louisbranch/gavel/internal/market/ledger"
	"github.com/louisbranch/gavel/internal/market/ownership"
	apperrors "github.com/louisbranch/gavel/internal/platform/errors"
)

// Receipt records how a settled amount was distributed. The shares always
// sum to Amount: FeeRetained absorbs both the platform fee and any royalty
// that was skipped or forfeited.
type Receipt struct {
	ItemID         core.ItemID
	Payer          core.AccountID
	Payee          core.AccountID
	Creator        core.AccountID
	Amount         core.Amount
	SellerProceeds core.Amount
	RoyaltyPaid    core.Amount
	FeeRetained    core.Amount
}

// Engine distributes sale proceeds and transfers ownership.
type Engine struct {
	ledger ledger.Ledger
	items  ownership.Registry
	feeBps core.Bps
}

// NewEngine creates a settlement engine with the given platform fee rate.
func NewEngine(l ledger.Ledger, items ownership.Registry, feeBps core.Bps) *Engine {
	return &Engine{ledger: l, items: items, feeBps: feeBps}
}

// FeeBps returns the configured platform fee rate.
func (e *Engine) FeeBps() core.Bps {
	return e.feeBps
}

// CompletePayment slashes the payer's matching reservation, distributes the
// proceeds between payee, creator, and platform, and transfers ownership of
// the item to the payer.
//
// The royalty-margin rule: when the sale amount does not exceed
// royalty + fee, the royalty is silently skipped rather than failing the
// sale, and the payee receives amount - fee. A royalty whose creator has no
// reward account configured is forfeited to the platform-fee share. No
// negative balances are ever created.
//
// All reads and checks happen before the first ledger write; once funds
// start moving, every remaining step is non-fallible by the ledger's
// construction, so payment and ownership transfer are effectively atomic.
func (e *Engine) CompletePayment(ctx context.Context, itemID core.ItemID, amount core.Amount, payer, payee core.AccountID) (Receipt, error) {
	royaltyInfo, hasRoyalty, err := e.items.CreatorRoyaltyOf(ctx, itemID)
	if err != nil {
		return Receipt{}, err
	}

	ok, err := e.ledger.CanSlash(ctx, payer, amount)
	if err != nil {
		return Receipt{}, err
	}
	if !ok {
		return Receipt{}, apperrors.Wrap(apperrors.CodeInsufficientFunds, "payer reservation does not cover the sale amount", ledger.ErrInsufficientFunds)
	}

	fee := e.feeBps.Apply(amount)
	var royalty core.Amount
	if hasRoyalty {
		royalty = royaltyInfo.RateBps.Apply(amount)
	}

	proceeds := amount - fee
	royaltyPaid := core.Amount(0)
	if royalty > 0 && amount > royalty+fee {
		proceeds = amount - royalty - fee
		if royaltyInfo.Creator != "" {
			royaltyPaid = royalty
		}
	}

	if err := e.ledger.SlashReserved(ctx, payer, amount); err != nil {
		return Receipt{}, err
	}
	if proceeds > 0 {
		if err := e.ledger.DepositCreating(ctx, payee, proceeds); err != nil {
			return Receipt{}, err
		}
	}
	if royaltyPaid > 0 {
		if err := e.ledger.DepositCreating(ctx, royaltyInfo.Creator, royaltyPaid); err != nil {
			return Receipt{}, err
		}
	}

	if err := e.items.SetOwner(ctx, itemID, payer); err != nil {
		return Receipt{}, err
	}

	return Receipt{
		ItemID:         itemID,
		Payer:          payer,
		Payee:          payee,
		Creator:        royaltyInfo.Creator,
		Amount:         amount,
		SellerProceeds: proceeds,
		RoyaltyPaid:    royaltyPaid,
		FeeRetained:    amount - proceeds - royaltyPaid,
	}, nil
}
