// Package storage declares the persistence boundary for the market engine:
// the auction registry, the pending-transfer registry, the offer registry,
// the append-only journal, and aggregate statistics.
package storage

import (
	"context"
	"time"

	"github.com/louisbranch/gavel/internal/market/domain/auction"
	"github.com/louisbranch/gavel/internal/market/domain/core"
	"github.com/louisbranch/gavel/internal/market/domain/offer"
	"github.com/louisbranch/gavel/internal/market/domain/transfer"
	"github.com/louisbranch/gavel/internal/market/event"
	apperrors "github.com/louisbranch/gavel/internal/platform/errors"
)

// ErrNotFound indicates a requested persistence record is missing. Callers
// use this to differentiate legitimate "no such entity" states from
// transport or data corruption failures.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")

// AuctionStore owns the keyed registry of live auctions, one per item.
type AuctionStore interface {
	PutAuction(ctx context.Context, a auction.Auction) error
	GetAuction(ctx context.Context, itemID core.ItemID) (auction.Auction, error)
	DeleteAuction(ctx context.Context, itemID core.ItemID) error
	// ListAuctions returns all live auctions ordered by item ID.
	ListAuctions(ctx context.Context) ([]auction.Auction, error)
}

// TransferStore owns the pending-transfer registry, one record per item.
type TransferStore interface {
	PutTransfer(ctx context.Context, p transfer.Pending) error
	GetTransfer(ctx context.Context, itemID core.ItemID) (transfer.Pending, error)
	DeleteTransfer(ctx context.Context, itemID core.ItemID) error
}

// OfferStore owns outstanding direct offers keyed by (item, offeror).
type OfferStore interface {
	PutOffer(ctx context.Context, o offer.Offer) error
	GetOffer(ctx context.Context, itemID core.ItemID, offeror core.AccountID) (offer.Offer, error)
	DeleteOffer(ctx context.Context, itemID core.ItemID, offeror core.AccountID) error
	// ListOffersByItem returns all outstanding offers for an item ordered
	// by offeror.
	ListOffersByItem(ctx context.Context, itemID core.ItemID) ([]offer.Offer, error)
}

// EventStore owns the append-only market journal.
type EventStore interface {
	// AppendEvent atomically appends an event and returns it with its
	// sequence number set.
	AppendEvent(ctx context.Context, evt event.Event) (event.Event, error)
	// ListEvents returns events with seq greater than afterSeq, ordered by
	// seq ascending, up to limit.
	ListEvents(ctx context.Context, afterSeq uint64, limit int) ([]event.Event, error)
}

// MarketStatistics contains aggregate counters used by dashboards and the
// stat CLI.
type MarketStatistics struct {
	LiveAuctions     int64
	AuctionsWithBids int64
	PendingTransfers int64
	OpenOffers       int64
	JournalEvents    int64
}

// StatisticsStore centralizes aggregate count queries.
type StatisticsStore interface {
	// MarketStatistics returns aggregate counts. When since is nil, journal
	// counts are for all time.
	MarketStatistics(ctx context.Context, since *time.Time) (MarketStatistics, error)
}

// Store is a composite interface for all persistence concerns.
type Store interface {
	AuctionStore
	TransferStore
	OfferStore
	EventStore
	StatisticsStore
	Close() error
}
