package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/gavel/internal/market/domain/core"
	"github.com/louisbranch/gavel/internal/market/domain/offer"
	"github.com/louisbranch/gavel/internal/market/storage"
)

// PutOffer stores an outstanding offer keyed by (item, offeror).
func (s *Store) PutOffer(ctx context.Context, o offer.Offer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(string(o.ItemID)) == "" {
		return fmt.Errorf("item id is required")
	}
	if strings.TrimSpace(string(o.Offeror)) == "" {
		return fmt.Errorf("offeror is required")
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO offers (item_id, offeror, amount, placed_at) VALUES (?, ?, ?, ?)
ON CONFLICT(item_id, offeror) DO UPDATE SET
    amount = excluded.amount,
    placed_at = excluded.placed_at
`, string(o.ItemID), string(o.Offeror), int64(o.Amount), toMillis(o.PlacedAt))
	if err != nil {
		return fmt.Errorf("put offer: %w", err)
	}
	return nil
}

// GetOffer retrieves the outstanding offer for an (item, offeror) pair.
func (s *Store) GetOffer(ctx context.Context, itemID core.ItemID, offeror core.AccountID) (offer.Offer, error) {
	if err := ctx.Err(); err != nil {
		return offer.Offer{}, err
	}
	if s == nil || s.sqlDB == nil {
		return offer.Offer{}, fmt.Errorf("storage is not configured")
	}

	var amount, placedAt int64
	row := s.sqlDB.QueryRowContext(ctx,
		"SELECT amount, placed_at FROM offers WHERE item_id = ? AND offeror = ?",
		string(itemID), string(offeror))
	if err := row.Scan(&amount, &placedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return offer.Offer{}, storage.ErrNotFound
		}
		return offer.Offer{}, fmt.Errorf("get offer: %w", err)
	}

	return offer.Offer{
		ItemID:   itemID,
		Offeror:  offeror,
		Amount:   core.Amount(amount),
		PlacedAt: fromMillis(placedAt),
	}, nil
}

// DeleteOffer removes the outstanding offer for an (item, offeror) pair.
func (s *Store) DeleteOffer(ctx context.Context, itemID core.ItemID, offeror core.AccountID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	if _, err := s.sqlDB.ExecContext(ctx,
		"DELETE FROM offers WHERE item_id = ? AND offeror = ?",
		string(itemID), string(offeror)); err != nil {
		return fmt.Errorf("delete offer: %w", err)
	}
	return nil
}

// ListOffersByItem returns all outstanding offers for an item ordered by offeror.
func (s *Store) ListOffersByItem(ctx context.Context, itemID core.ItemID) ([]offer.Offer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		"SELECT offeror, amount, placed_at FROM offers WHERE item_id = ? ORDER BY offeror",
		string(itemID))
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	defer rows.Close()

	var offers []offer.Offer
	for rows.Next() {
		var offeror string
		var amount, placedAt int64
		if err := rows.Scan(&offeror, &amount, &placedAt); err != nil {
			return nil, fmt.Errorf("scan offer: %w", err)
		}
		offers = append(offers, offer.Offer{
			ItemID:   itemID,
			Offeror:  core.AccountID(offeror),
			Amount:   core.Amount(amount),
			PlacedAt: fromMillis(placedAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read offers: %w", err)
	}
	return offers, nil
}
