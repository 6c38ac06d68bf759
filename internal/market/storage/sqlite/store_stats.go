package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/louisbranch/gavel/internal/market/storage"
)

// MarketStatistics returns aggregate counts. When since is nil, journal
// counts are for all time.
func (s *Store) MarketStatistics(ctx context.Context, since *time.Time) (storage.MarketStatistics, error) {
	if err := ctx.Err(); err != nil {
		return storage.MarketStatistics{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.MarketStatistics{}, fmt.Errorf("storage is not configured")
	}

	var stats storage.MarketStatistics

	row := s.sqlDB.QueryRowContext(ctx, "SELECT COUNT(*), COALESCE(SUM(bid_bidder IS NOT NULL), 0) FROM auctions")
	if err := row.Scan(&stats.LiveAuctions, &stats.AuctionsWithBids); err != nil {
		return storage.MarketStatistics{}, fmt.Errorf("count auctions: %w", err)
	}

	row = s.sqlDB.QueryRowContext(ctx, "SELECT COUNT(*) FROM pending_transfers")
	if err := row.Scan(&stats.PendingTransfers); err != nil {
		return storage.MarketStatistics{}, fmt.Errorf("count transfers: %w", err)
	}

	row = s.sqlDB.QueryRowContext(ctx, "SELECT COUNT(*) FROM offers")
	if err := row.Scan(&stats.OpenOffers); err != nil {
		return storage.MarketStatistics{}, fmt.Errorf("count offers: %w", err)
	}

	if since != nil {
		row = s.sqlDB.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM market_events WHERE timestamp >= ?", toMillis(*since))
	} else {
		row = s.sqlDB.QueryRowContext(ctx, "SELECT COUNT(*) FROM market_events")
	}
	if err := row.Scan(&stats.JournalEvents); err != nil {
		return storage.MarketStatistics{}, fmt.Errorf("count events: %w", err)
	}

	return stats, nil
}
