package service

import (
	"context"
	"errors"
	"time"

	"github.com/louisbranch/gavel/internal/market/domain/auction"
	"github.com/louisbranch/gavel/internal/market/domain/core"
	"github.com/louisbranch/gavel/internal/market/event"
	"github.com/louisbranch/gavel/internal/market/settlement"
	"github.com/louisbranch/gavel/internal/market/storage"
)

// resolveIfExpired completes the item's auction when its winning deadline
// has passed. There is no scheduler; every entry point calls this first, so
// an expired auction is finalized by whichever operation next touches the
// item. Resolving an absent or unexpired auction is a no-op, which keeps
// repeated resolution idempotent. It reports whether a completion happened.
func (s *Service) resolveIfExpired(ctx context.Context, itemID core.ItemID, now time.Time) (bool, error) {
	a, err := s.store.GetAuction(ctx, itemID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if !a.Expired(now) {
		return false, nil
	}

	if _, err := s.settleAndClose(ctx, a, a.LastBid.Bidder, a.LastBid.Amount, false, "system"); err != nil {
		return false, err
	}
	return true, nil
}

// settleAndClose pays out the winning amount from the winner's standing
// reservation, removes the auction, and journals the completion. The
// reservation must already cover the amount; settlement checks it before the
// first ledger write.
func (s *Service) settleAndClose(ctx context.Context, a auction.Auction, winner core.AccountID, amount core.Amount, buyNow bool, actor string) (settlement.Receipt, error) {
	receipt, err := s.settle.CompletePayment(ctx, a.ItemID, amount, winner, a.Seller)
	if err != nil {
		return settlement.Receipt{}, err
	}
	if err := s.store.DeleteAuction(ctx, a.ItemID); err != nil {
		return settlement.Receipt{}, err
	}

	payload := event.AuctionCompletedPayload{
		Winner:         string(winner),
		Amount:         uint64(amount),
		SellerProceeds: uint64(receipt.SellerProceeds),
		RoyaltyPaid:    uint64(receipt.RoyaltyPaid),
		FeeRetained:    uint64(receipt.FeeRetained),
		BuyNow:         buyNow,
	}
	if err := s.appendEvent(ctx, a.ItemID, event.TypeAuctionCompleted, actor, payload); err != nil {
		return settlement.Receipt{}, err
	}
	return receipt, nil
}
