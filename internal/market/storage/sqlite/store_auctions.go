package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/gavel/internal/market/domain/auction"
	"github.com/louisbranch/gavel/internal/market/domain/core"
	"github.com/louisbranch/gavel/internal/market/storage"
)

// PutAuction stores or replaces the live auction for an item.
func (s *Store) PutAuction(ctx context.Context, a auction.Auction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(string(a.ItemID)) == "" {
		return fmt.Errorf("item id is required")
	}

	whitelist, err := json.Marshal(a.WhitelistMembers())
	if err != nil {
		return fmt.Errorf("marshal whitelist: %w", err)
	}

	var bidBidder sql.NullString
	var bidAmount, bidPlacedAt sql.NullInt64
	if a.LastBid != nil {
		bidBidder = sql.NullString{String: string(a.LastBid.Bidder), Valid: true}
		bidAmount = sql.NullInt64{Int64: int64(a.LastBid.Amount), Valid: true}
		bidPlacedAt = sql.NullInt64{Int64: toMillis(a.LastBid.PlacedAt), Valid: true}
	}

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO auctions (
    item_id, seller, seller_actor, kind,
    bid_lock_ms, round_duration_ms, extension_period_ms,
    starting_price, minimal_bid_step, buy_now_price, royalty_rate_bps,
    starts_at, started_at, whitelist,
    bid_bidder, bid_amount, bid_placed_at, extended_ms
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(item_id) DO UPDATE SET
    seller = excluded.seller,
    seller_actor = excluded.seller_actor,
    kind = excluded.kind,
    bid_lock_ms = excluded.bid_lock_ms,
    round_duration_ms = excluded.round_duration_ms,
    extension_period_ms = excluded.extension_period_ms,
    starting_price = excluded.starting_price,
    minimal_bid_step = excluded.minimal_bid_step,
    buy_now_price = excluded.buy_now_price,
    royalty_rate_bps = excluded.royalty_rate_bps,
    starts_at = excluded.starts_at,
    started_at = excluded.started_at,
    whitelist = excluded.whitelist,
    bid_bidder = excluded.bid_bidder,
    bid_amount = excluded.bid_amount,
    bid_placed_at = excluded.bid_placed_at,
    extended_ms = excluded.extended_ms
`,
		string(a.ItemID), string(a.Seller), a.SellerActor.String(), a.Kind.String(),
		a.BidLockDuration.Milliseconds(), a.RoundDuration.Milliseconds(), a.ExtensionPeriod.Milliseconds(),
		int64(a.StartingPrice), int64(a.MinimalBidStep), int64(a.BuyNowPrice), int64(a.RoyaltyRateBps),
		toNullMillis(a.StartsAt), toMillis(a.StartedAt), string(whitelist),
		bidBidder, bidAmount, bidPlacedAt, a.Extended.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("put auction: %w", err)
	}
	return nil
}

// GetAuction retrieves the live auction for an item.
func (s *Store) GetAuction(ctx context.Context, itemID core.ItemID) (auction.Auction, error) {
	if err := ctx.Err(); err != nil {
		return auction.Auction{}, err
	}
	if s == nil || s.sqlDB == nil {
		return auction.Auction{}, fmt.Errorf("storage is not configured")
	}

	row := s.sqlDB.QueryRowContext(ctx, auctionSelectSQL+" WHERE item_id = ?", string(itemID))
	a, err := scanAuction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return auction.Auction{}, storage.ErrNotFound
		}
		return auction.Auction{}, fmt.Errorf("get auction: %w", err)
	}
	return a, nil
}

// DeleteAuction removes the live auction for an item. Deleting an absent
// auction is a no-op.
func (s *Store) DeleteAuction(ctx context.Context, itemID core.ItemID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	if _, err := s.sqlDB.ExecContext(ctx, "DELETE FROM auctions WHERE item_id = ?", string(itemID)); err != nil {
		return fmt.Errorf("delete auction: %w", err)
	}
	return nil
}

// ListAuctions returns all live auctions ordered by item ID.
func (s *Store) ListAuctions(ctx context.Context) ([]auction.Auction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx, auctionSelectSQL+" ORDER BY item_id")
	if err != nil {
		return nil, fmt.Errorf("list auctions: %w", err)
	}
	defer rows.Close()

	var auctions []auction.Auction
	for rows.Next() {
		a, err := scanAuction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan auction: %w", err)
		}
		auctions = append(auctions, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read auctions: %w", err)
	}
	return auctions, nil
}

const auctionSelectSQL = `
SELECT item_id, seller, seller_actor, kind,
    bid_lock_ms, round_duration_ms, extension_period_ms,
    starting_price, minimal_bid_step, buy_now_price, royalty_rate_bps,
    starts_at, started_at, whitelist,
    bid_bidder, bid_amount, bid_placed_at, extended_ms
FROM auctions`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAuction(row rowScanner) (auction.Auction, error) {
	var (
		itemID, seller, sellerActor, kind, whitelistJSON string
		bidLockMs, roundMs, extensionMs, extendedMs      int64
		startingPrice, bidStep, buyNow, royaltyBps       int64
		startsAt                                         sql.NullInt64
		startedAt                                        int64
		bidBidder                                        sql.NullString
		bidAmount, bidPlacedAt                           sql.NullInt64
	)
	if err := row.Scan(
		&itemID, &seller, &sellerActor, &kind,
		&bidLockMs, &roundMs, &extensionMs,
		&startingPrice, &bidStep, &buyNow, &royaltyBps,
		&startsAt, &startedAt, &whitelistJSON,
		&bidBidder, &bidAmount, &bidPlacedAt, &extendedMs,
	); err != nil {
		return auction.Auction{}, err
	}

	var members []core.AccountID
	if err := json.Unmarshal([]byte(whitelistJSON), &members); err != nil {
		return auction.Auction{}, fmt.Errorf("unmarshal whitelist: %w", err)
	}
	whitelist := make(map[core.AccountID]struct{}, len(members))
	for _, member := range members {
		whitelist[member] = struct{}{}
	}
	if len(whitelist) == 0 {
		whitelist = nil
	}

	a := auction.Auction{
		ItemID:          core.ItemID(itemID),
		Seller:          core.AccountID(seller),
		SellerActor:     core.ParseActor(sellerActor),
		Kind:            auction.KindFromLabel(kind),
		BidLockDuration: time.Duration(bidLockMs) * time.Millisecond,
		RoundDuration:   time.Duration(roundMs) * time.Millisecond,
		ExtensionPeriod: time.Duration(extensionMs) * time.Millisecond,
		StartingPrice:   core.Amount(startingPrice),
		MinimalBidStep:  core.Amount(bidStep),
		BuyNowPrice:     core.Amount(buyNow),
		RoyaltyRateBps:  core.Bps(royaltyBps),
		StartsAt:        fromNullMillis(startsAt),
		StartedAt:       fromMillis(startedAt),
		Whitelist:       whitelist,
		Extended:        time.Duration(extendedMs) * time.Millisecond,
	}
	if bidBidder.Valid {
		a.LastBid = &auction.Bid{
			Bidder:   core.AccountID(bidBidder.String),
			Amount:   core.Amount(bidAmount.Int64),
			PlacedAt: fromMillis(bidPlacedAt.Int64),
		}
	}
	return a, nil
}
