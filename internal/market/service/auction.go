package service

import (
	"context"
	"errors"

	"github.com/louisbranch/gavel/internal/market/domain/auction"
	"github.com/louisbranch/gavel/internal/market/domain/core"
	"github.com/louisbranch/gavel/internal/market/domain/transfer"
	"github.com/louisbranch/gavel/internal/market/event"
	"github.com/louisbranch/gavel/internal/market/ledger"
	"github.com/louisbranch/gavel/internal/market/settlement"
	"github.com/louisbranch/gavel/internal/market/storage"
	apperrors "github.com/louisbranch/gavel/internal/platform/errors"
)

// BidResult reports the outcome of MakeBid. Exactly one of the three
// outcomes holds: the expired auction was resolved without placing the bid,
// the bid met the buy-now threshold and settled the sale, or the bid now
// stands on the continuing auction.
type BidResult struct {
	// ResolvedExpired reports the auction had already expired; it was
	// completed instead of accepting the bid, and the caller may retry
	// against whatever replaces it.
	ResolvedExpired bool

	// Completed reports the bid triggered buy-now and the sale settled.
	Completed bool
	Receipt   settlement.Receipt

	// Auction is the post-bid state when the auction continues.
	Auction auction.Auction
}

// StartAuction opens an auction for an item. An existing auction that has
// already expired is completed first rather than blocking the new one.
func (s *Service) StartAuction(ctx context.Context, itemID core.ItemID, origin core.AccountID, actor core.Actor, params auction.Params) (auction.Auction, error) {
	ctx, span := s.span(ctx, "market.StartAuction")
	defer span.End()
	now := s.now()

	if _, err := s.resolveIfExpired(ctx, itemID, now); err != nil {
		return auction.Auction{}, err
	}

	seller, err := s.auth.Authorize(ctx, origin, actor, itemID)
	if err != nil {
		return auction.Auction{}, err
	}
	if err := s.bounds.CheckAuctionParams(params); err != nil {
		return auction.Auction{}, err
	}

	if _, err := s.store.GetAuction(ctx, itemID); err == nil {
		return auction.Auction{}, auction.ErrAlreadyExists
	} else if !errors.Is(err, storage.ErrNotFound) {
		return auction.Auction{}, err
	}
	if _, err := s.store.GetTransfer(ctx, itemID); err == nil {
		return auction.Auction{}, transfer.ErrAlreadyExists
	} else if !errors.Is(err, storage.ErrNotFound) {
		return auction.Auction{}, err
	}

	var royalty core.Bps
	if info, ok, err := s.items.CreatorRoyaltyOf(ctx, itemID); err != nil {
		return auction.Auction{}, err
	} else if ok {
		royalty = info.RateBps
	}

	a := auction.Start(itemID, seller, actor, royalty, params, now)
	if err := s.store.PutAuction(ctx, a); err != nil {
		return auction.Auction{}, err
	}

	payload := event.AuctionStartedPayload{
		Kind:            a.Kind.String(),
		Seller:          string(a.Seller),
		StartingPrice:   uint64(a.StartingPrice),
		MinimalBidStep:  uint64(a.MinimalBidStep),
		BuyNowPrice:     uint64(a.BuyNowPrice),
		RoyaltyRateBps:  uint32(a.RoyaltyRateBps),
		BidLockMs:       a.BidLockDuration.Milliseconds(),
		RoundDurationMs: a.RoundDuration.Milliseconds(),
		ExtensionMs:     a.ExtensionPeriod.Milliseconds(),
	}
	for _, member := range a.WhitelistMembers() {
		payload.Whitelist = append(payload.Whitelist, string(member))
	}
	if err := s.appendEvent(ctx, itemID, event.TypeAuctionStarted, actor.String(), payload); err != nil {
		return auction.Auction{}, err
	}
	return a, nil
}

// MakeBid places a bid, reserving the bid amount on the bidder and releasing
// the outbid reservation in the same transition. A bid meeting the buy-now
// threshold settles the sale immediately at the bid amount.
func (s *Service) MakeBid(ctx context.Context, itemID core.ItemID, bidder core.AccountID, amount core.Amount) (BidResult, error) {
	ctx, span := s.span(ctx, "market.MakeBid")
	defer span.End()
	now := s.now()

	resolved, err := s.resolveIfExpired(ctx, itemID, now)
	if err != nil {
		return BidResult{}, err
	}
	if resolved {
		return BidResult{ResolvedExpired: true}, nil
	}

	a, err := s.store.GetAuction(ctx, itemID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return BidResult{}, auction.ErrNotFound
		}
		return BidResult{}, err
	}

	if err := a.ValidateBid(bidder, amount, now); err != nil {
		return BidResult{}, err
	}
	ok, err := s.ledger.CanReserve(ctx, bidder, amount)
	if err != nil {
		return BidResult{}, err
	}
	if !ok {
		return BidResult{}, apperrors.Wrap(apperrors.CodeInsufficientFunds, "bidder cannot cover the bid amount", ledger.ErrInsufficientFunds)
	}

	// New reservation lands before the outbid one is released so the exact
	// ordering of ledger operations matches the order bids are accepted.
	if err := s.ledger.Reserve(ctx, bidder, amount); err != nil {
		return BidResult{}, err
	}
	outbid := a.LastBid
	if outbid != nil {
		if err := s.ledger.Unreserve(ctx, outbid.Bidder, outbid.Amount); err != nil {
			return BidResult{}, err
		}
	}

	if a.TriggersBuyNow(amount) {
		receipt, err := s.settleAndClose(ctx, a, bidder, amount, true, string(bidder))
		if err != nil {
			return BidResult{}, err
		}
		return BidResult{Completed: true, Receipt: receipt}, nil
	}

	updated := a.WithBid(bidder, amount, now)
	if err := s.store.PutAuction(ctx, updated); err != nil {
		return BidResult{}, err
	}

	payload := event.BidPlacedPayload{
		Bidder:   string(bidder),
		Amount:   uint64(amount),
		Extended: updated.Extended > 0,
	}
	if outbid != nil {
		payload.Outbid = string(outbid.Bidder)
	}
	if err := s.appendEvent(ctx, itemID, event.TypeBidPlaced, string(bidder), payload); err != nil {
		return BidResult{}, err
	}
	return BidResult{Auction: updated}, nil
}

// BuyNow settles the auction at its buy-now price without going through a
// competing bid.
func (s *Service) BuyNow(ctx context.Context, itemID core.ItemID, buyer core.AccountID) (settlement.Receipt, error) {
	ctx, span := s.span(ctx, "market.BuyNow")
	defer span.End()
	now := s.now()

	if _, err := s.resolveIfExpired(ctx, itemID, now); err != nil {
		return settlement.Receipt{}, err
	}

	a, err := s.store.GetAuction(ctx, itemID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return settlement.Receipt{}, auction.ErrNotFound
		}
		return settlement.Receipt{}, err
	}

	if a.BuyNowPrice == 0 {
		return settlement.Receipt{}, auction.ErrBuyNowUnset
	}
	if !a.Started(now) {
		return settlement.Receipt{}, auction.ErrNotStarted
	}
	if buyer == a.Seller {
		return settlement.Receipt{}, auction.ErrSelfDeal
	}
	if !a.Whitelisted(buyer) {
		return settlement.Receipt{}, auction.ErrBidderNotWhitelisted
	}

	amount := a.BuyNowPrice
	ok, err := s.ledger.CanReserve(ctx, buyer, amount)
	if err != nil {
		return settlement.Receipt{}, err
	}
	if !ok {
		return settlement.Receipt{}, apperrors.Wrap(apperrors.CodeInsufficientFunds, "buyer cannot cover the buy-now price", ledger.ErrInsufficientFunds)
	}
	if err := s.ledger.Reserve(ctx, buyer, amount); err != nil {
		return settlement.Receipt{}, err
	}
	if a.LastBid != nil {
		if err := s.ledger.Unreserve(ctx, a.LastBid.Bidder, a.LastBid.Amount); err != nil {
			return settlement.Receipt{}, err
		}
	}

	return s.settleAndClose(ctx, a, buyer, amount, true, string(buyer))
}

// CancelAuction removes an auction that has not received a bid.
func (s *Service) CancelAuction(ctx context.Context, itemID core.ItemID, origin core.AccountID, actor core.Actor) error {
	ctx, span := s.span(ctx, "market.CancelAuction")
	defer span.End()
	now := s.now()

	if _, err := s.resolveIfExpired(ctx, itemID, now); err != nil {
		return err
	}

	a, err := s.store.GetAuction(ctx, itemID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return auction.ErrNotFound
		}
		return err
	}
	if _, err := s.auth.Authorize(ctx, origin, actor, itemID); err != nil {
		return err
	}
	if a.HasBid() {
		return auction.ErrHasBids
	}

	if err := s.store.DeleteAuction(ctx, itemID); err != nil {
		return err
	}
	return s.appendEvent(ctx, itemID, event.TypeAuctionCanceled, actor.String(), nil)
}

// ClaimWonEnglishAuction settles an English auction whose round has elapsed.
// The claim is itself the expiry resolution for English auctions, so it does
// not resolve lazily first; doing so would complete the auction before the
// claim could observe it.
func (s *Service) ClaimWonEnglishAuction(ctx context.Context, itemID core.ItemID, origin core.AccountID, actor core.Actor) (settlement.Receipt, error) {
	ctx, span := s.span(ctx, "market.ClaimWonEnglishAuction")
	defer span.End()
	now := s.now()

	a, err := s.store.GetAuction(ctx, itemID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return settlement.Receipt{}, auction.ErrNotFound
		}
		return settlement.Receipt{}, err
	}
	if a.Kind != auction.KindEnglish {
		return settlement.Receipt{}, auction.ErrKindMismatch
	}
	if _, err := s.auth.Authorize(ctx, origin, actor, itemID); err != nil {
		return settlement.Receipt{}, err
	}
	if !a.HasBid() {
		return settlement.Receipt{}, auction.ErrBidNotFound
	}
	if !a.Expired(now) {
		return settlement.Receipt{}, auction.ErrNotExpired
	}

	return s.settleAndClose(ctx, a, a.LastBid.Bidder, a.LastBid.Amount, false, actor.String())
}

// GetAuction returns the live auction for an item, resolving a stale expired
// one first.
func (s *Service) GetAuction(ctx context.Context, itemID core.ItemID) (auction.Auction, error) {
	ctx, span := s.span(ctx, "market.GetAuction")
	defer span.End()

	if _, err := s.resolveIfExpired(ctx, itemID, s.now()); err != nil {
		return auction.Auction{}, err
	}
	a, err := s.store.GetAuction(ctx, itemID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return auction.Auction{}, auction.ErrNotFound
		}
		return auction.Auction{}, err
	}
	return a, nil
}
