package service

import (
	"context"
	"errors"

	"github.com/louisbranch/gavel/internal/market/domain/auction"
	"github.com/louisbranch/gavel/internal/market/domain/core"
	"github.com/louisbranch/gavel/internal/market/domain/offer"
	"github.com/louisbranch/gavel/internal/market/domain/transfer"
	"github.com/louisbranch/gavel/internal/market/event"
	"github.com/louisbranch/gavel/internal/market/ledger"
	"github.com/louisbranch/gavel/internal/market/settlement"
	"github.com/louisbranch/gavel/internal/market/storage"
	apperrors "github.com/louisbranch/gavel/internal/platform/errors"
)

// MakeOffer places a direct offer on an item, reserving the offered amount
// until the owner accepts or the offeror withdraws.
func (s *Service) MakeOffer(ctx context.Context, itemID core.ItemID, offeror core.AccountID, amount core.Amount) (offer.Offer, error) {
	ctx, span := s.span(ctx, "market.MakeOffer")
	defer span.End()
	now := s.now()

	if _, err := s.resolveIfExpired(ctx, itemID, now); err != nil {
		return offer.Offer{}, err
	}

	owner, err := s.items.OwnerOf(ctx, itemID)
	if err != nil {
		return offer.Offer{}, err
	}
	if owner == offeror {
		return offer.Offer{}, offer.ErrSelfDeal
	}
	if err := s.bounds.CheckOfferAmount(amount); err != nil {
		return offer.Offer{}, err
	}

	if _, err := s.store.GetOffer(ctx, itemID, offeror); err == nil {
		return offer.Offer{}, offer.ErrAlreadyExists
	} else if !errors.Is(err, storage.ErrNotFound) {
		return offer.Offer{}, err
	}

	ok, err := s.ledger.CanReserve(ctx, offeror, amount)
	if err != nil {
		return offer.Offer{}, err
	}
	if !ok {
		return offer.Offer{}, apperrors.Wrap(apperrors.CodeInsufficientFunds, "offeror cannot cover the offer amount", ledger.ErrInsufficientFunds)
	}
	if err := s.ledger.Reserve(ctx, offeror, amount); err != nil {
		return offer.Offer{}, err
	}

	o := offer.Make(itemID, offeror, amount, now)
	if err := s.store.PutOffer(ctx, o); err != nil {
		return offer.Offer{}, err
	}

	payload := event.OfferPayload{Offeror: string(offeror), Amount: uint64(amount)}
	if err := s.appendEvent(ctx, itemID, event.TypeOfferMade, string(offeror), payload); err != nil {
		return offer.Offer{}, err
	}
	return o, nil
}

// CancelOffer withdraws an outstanding offer and releases its reservation.
func (s *Service) CancelOffer(ctx context.Context, itemID core.ItemID, offeror core.AccountID) error {
	ctx, span := s.span(ctx, "market.CancelOffer")
	defer span.End()

	o, err := s.store.GetOffer(ctx, itemID, offeror)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return offer.ErrNotFound
		}
		return err
	}

	if err := s.ledger.Unreserve(ctx, o.Offeror, o.Amount); err != nil {
		return err
	}
	if err := s.store.DeleteOffer(ctx, itemID, offeror); err != nil {
		return err
	}
	payload := event.OfferPayload{Offeror: string(offeror), Amount: uint64(o.Amount)}
	return s.appendEvent(ctx, itemID, event.TypeOfferCanceled, string(offeror), payload)
}

// AcceptOffer sells the item to the offeror at the offered amount through
// the settlement engine. Every other outstanding offer on the item is
// released; the new owner starts with a clean slate.
func (s *Service) AcceptOffer(ctx context.Context, itemID core.ItemID, origin core.AccountID, actor core.Actor, offeror core.AccountID) (settlement.Receipt, error) {
	ctx, span := s.span(ctx, "market.AcceptOffer")
	defer span.End()
	now := s.now()

	if _, err := s.resolveIfExpired(ctx, itemID, now); err != nil {
		return settlement.Receipt{}, err
	}

	owner, err := s.auth.Authorize(ctx, origin, actor, itemID)
	if err != nil {
		return settlement.Receipt{}, err
	}

	if _, err := s.store.GetAuction(ctx, itemID); err == nil {
		return settlement.Receipt{}, auction.ErrAlreadyExists
	} else if !errors.Is(err, storage.ErrNotFound) {
		return settlement.Receipt{}, err
	}
	if _, err := s.store.GetTransfer(ctx, itemID); err == nil {
		return settlement.Receipt{}, transfer.ErrAlreadyExists
	} else if !errors.Is(err, storage.ErrNotFound) {
		return settlement.Receipt{}, err
	}

	o, err := s.store.GetOffer(ctx, itemID, offeror)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return settlement.Receipt{}, offer.ErrNotFound
		}
		return settlement.Receipt{}, err
	}

	receipt, err := s.settle.CompletePayment(ctx, itemID, o.Amount, o.Offeror, owner)
	if err != nil {
		return settlement.Receipt{}, err
	}
	if err := s.store.DeleteOffer(ctx, itemID, offeror); err != nil {
		return settlement.Receipt{}, err
	}

	remaining, err := s.store.ListOffersByItem(ctx, itemID)
	if err != nil {
		return settlement.Receipt{}, err
	}
	for _, other := range remaining {
		if err := s.ledger.Unreserve(ctx, other.Offeror, other.Amount); err != nil {
			return settlement.Receipt{}, err
		}
		if err := s.store.DeleteOffer(ctx, itemID, other.Offeror); err != nil {
			return settlement.Receipt{}, err
		}
	}

	payload := event.OfferAcceptedPayload{
		Offeror:        string(o.Offeror),
		Amount:         uint64(o.Amount),
		SellerProceeds: uint64(receipt.SellerProceeds),
		RoyaltyPaid:    uint64(receipt.RoyaltyPaid),
		FeeRetained:    uint64(receipt.FeeRetained),
	}
	if err := s.appendEvent(ctx, itemID, event.TypeOfferAccepted, actor.String(), payload); err != nil {
		return settlement.Receipt{}, err
	}
	return receipt, nil
}
