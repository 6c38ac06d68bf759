package service

import (
	"context"
	"errors"

	"github.com/louisbranch/gavel/internal/market/domain/auction"
	"github.com/louisbranch/gavel/internal/market/domain/core"
	"github.com/louisbranch/gavel/internal/market/domain/transfer"
	"github.com/louisbranch/gavel/internal/market/event"
	"github.com/louisbranch/gavel/internal/market/storage"
)

// StartTransfer proposes a no-payment ownership handoff to a recipient. A
// transfer and an auction are mutually exclusive on an item.
func (s *Service) StartTransfer(ctx context.Context, itemID core.ItemID, origin core.AccountID, actor core.Actor, recipient core.AccountID) (transfer.Pending, error) {
	ctx, span := s.span(ctx, "market.StartTransfer")
	defer span.End()
	now := s.now()

	if _, err := s.resolveIfExpired(ctx, itemID, now); err != nil {
		return transfer.Pending{}, err
	}

	if _, err := s.auth.Authorize(ctx, origin, actor, itemID); err != nil {
		return transfer.Pending{}, err
	}

	if _, err := s.store.GetAuction(ctx, itemID); err == nil {
		return transfer.Pending{}, auction.ErrAlreadyExists
	} else if !errors.Is(err, storage.ErrNotFound) {
		return transfer.Pending{}, err
	}
	if _, err := s.store.GetTransfer(ctx, itemID); err == nil {
		return transfer.Pending{}, transfer.ErrAlreadyExists
	} else if !errors.Is(err, storage.ErrNotFound) {
		return transfer.Pending{}, err
	}

	p := transfer.Start(itemID, recipient, now)
	if err := s.store.PutTransfer(ctx, p); err != nil {
		return transfer.Pending{}, err
	}

	payload := event.TransferPayload{Recipient: string(recipient)}
	if err := s.appendEvent(ctx, itemID, event.TypeTransferStarted, actor.String(), payload); err != nil {
		return transfer.Pending{}, err
	}
	return p, nil
}

// CancelTransfer withdraws a pending transfer before the recipient accepts.
func (s *Service) CancelTransfer(ctx context.Context, itemID core.ItemID, origin core.AccountID, actor core.Actor) error {
	ctx, span := s.span(ctx, "market.CancelTransfer")
	defer span.End()

	if _, err := s.resolveIfExpired(ctx, itemID, s.now()); err != nil {
		return err
	}

	p, err := s.store.GetTransfer(ctx, itemID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return transfer.ErrNotFound
		}
		return err
	}
	if _, err := s.auth.Authorize(ctx, origin, actor, itemID); err != nil {
		return err
	}

	if err := s.store.DeleteTransfer(ctx, itemID); err != nil {
		return err
	}
	payload := event.TransferPayload{Recipient: string(p.Recipient)}
	return s.appendEvent(ctx, itemID, event.TypeTransferCanceled, actor.String(), payload)
}

// AcceptIncomingTransfer completes a pending transfer named to the caller,
// moving ownership with no payment.
func (s *Service) AcceptIncomingTransfer(ctx context.Context, itemID core.ItemID, recipient core.AccountID) error {
	ctx, span := s.span(ctx, "market.AcceptIncomingTransfer")
	defer span.End()

	if _, err := s.resolveIfExpired(ctx, itemID, s.now()); err != nil {
		return err
	}

	p, err := s.store.GetTransfer(ctx, itemID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return transfer.ErrNotFound
		}
		return err
	}
	if !p.AcceptableBy(recipient) {
		return transfer.ErrNotRecipient
	}

	if err := s.items.SetOwner(ctx, itemID, recipient); err != nil {
		return err
	}
	if err := s.store.DeleteTransfer(ctx, itemID); err != nil {
		return err
	}
	payload := event.TransferPayload{Recipient: string(recipient)}
	return s.appendEvent(ctx, itemID, event.TypeTransferAccepted, string(recipient), payload)
}
