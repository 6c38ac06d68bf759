// Package memory provides an in-process market store for tests and
// simulations. It mirrors the sqlite store's semantics, including ordered
// journal sequence assignment.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/louisbranch/gavel/internal/market/domain/auction"
	"github.com/louisbranch/gavel/internal/market/domain/core"
	"github.com/louisbranch/gavel/internal/market/domain/offer"
	"github.com/louisbranch/gavel/internal/market/domain/transfer"
	"github.com/louisbranch/gavel/internal/market/event"
	"github.com/louisbranch/gavel/internal/market/storage"
)

type offerKey struct {
	itemID  core.ItemID
	offeror core.AccountID
}

// Store is an in-memory market store.
type Store struct {
	mu        sync.Mutex
	auctions  map[core.ItemID]auction.Auction
	transfers map[core.ItemID]transfer.Pending
	offers    map[offerKey]offer.Offer
	events    []event.Event
	nextSeq   uint64
}

// New creates an empty store.
func New() *Store {
	return &Store{
		auctions:  make(map[core.ItemID]auction.Auction),
		transfers: make(map[core.ItemID]transfer.Pending),
		offers:    make(map[offerKey]offer.Offer),
		nextSeq:   1,
	}
}

// PutAuction stores or replaces the live auction for an item.
func (s *Store) PutAuction(ctx context.Context, a auction.Auction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auctions[a.ItemID] = a
	return nil
}

// GetAuction retrieves the live auction for an item.
func (s *Store) GetAuction(ctx context.Context, itemID core.ItemID) (auction.Auction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.auctions[itemID]
	if !ok {
		return auction.Auction{}, storage.ErrNotFound
	}
	return a, nil
}

// DeleteAuction removes the live auction for an item.
func (s *Store) DeleteAuction(ctx context.Context, itemID core.ItemID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.auctions, itemID)
	return nil
}

// ListAuctions returns all live auctions ordered by item ID.
func (s *Store) ListAuctions(ctx context.Context) ([]auction.Auction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	auctions := make([]auction.Auction, 0, len(s.auctions))
	for _, a := range s.auctions {
		auctions = append(auctions, a)
	}
	sort.Slice(auctions, func(i, j int) bool { return auctions[i].ItemID < auctions[j].ItemID })
	return auctions, nil
}

// PutTransfer stores the pending transfer for an item.
func (s *Store) PutTransfer(ctx context.Context, p transfer.Pending) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transfers[p.ItemID] = p
	return nil
}

// GetTransfer retrieves the pending transfer for an item.
func (s *Store) GetTransfer(ctx context.Context, itemID core.ItemID) (transfer.Pending, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.transfers[itemID]
	if !ok {
		return transfer.Pending{}, storage.ErrNotFound
	}
	return p, nil
}

// DeleteTransfer removes the pending transfer for an item.
func (s *Store) DeleteTransfer(ctx context.Context, itemID core.ItemID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.transfers, itemID)
	return nil
}

// PutOffer stores an outstanding offer keyed by (item, offeror).
func (s *Store) PutOffer(ctx context.Context, o offer.Offer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offers[offerKey{itemID: o.ItemID, offeror: o.Offeror}] = o
	return nil
}

// GetOffer retrieves the outstanding offer for an (item, offeror) pair.
func (s *Store) GetOffer(ctx context.Context, itemID core.ItemID, offeror core.AccountID) (offer.Offer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.offers[offerKey{itemID: itemID, offeror: offeror}]
	if !ok {
		return offer.Offer{}, storage.ErrNotFound
	}
	return o, nil
}

// DeleteOffer removes the outstanding offer for an (item, offeror) pair.
func (s *Store) DeleteOffer(ctx context.Context, itemID core.ItemID, offeror core.AccountID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.offers, offerKey{itemID: itemID, offeror: offeror})
	return nil
}

// ListOffersByItem returns all outstanding offers for an item ordered by offeror.
func (s *Store) ListOffersByItem(ctx context.Context, itemID core.ItemID) ([]offer.Offer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var offers []offer.Offer
	for key, o := range s.offers {
		if key.itemID == itemID {
			offers = append(offers, o)
		}
	}
	sort.Slice(offers, func(i, j int) bool { return offers[i].Offeror < offers[j].Offeror })
	return offers, nil
}

// AppendEvent atomically appends an event and returns it with its sequence
// number set.
func (s *Store) AppendEvent(ctx context.Context, evt event.Event) (event.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	evt.Seq = s.nextSeq
	s.nextSeq++
	if len(evt.PayloadJSON) == 0 {
		evt.PayloadJSON = []byte("{}")
	}
	s.events = append(s.events, evt)
	return evt, nil
}

// ListEvents returns events with seq greater than afterSeq, ordered by seq
// ascending, up to limit.
func (s *Store) ListEvents(ctx context.Context, afterSeq uint64, limit int) ([]event.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit <= 0 {
		limit = 50
	}
	var events []event.Event
	for _, evt := range s.events {
		if evt.Seq <= afterSeq {
			continue
		}
		events = append(events, evt)
		if len(events) == limit {
			break
		}
	}
	return events, nil
}

// MarketStatistics returns aggregate counts.
func (s *Store) MarketStatistics(ctx context.Context, since *time.Time) (storage.MarketStatistics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := storage.MarketStatistics{
		LiveAuctions:     int64(len(s.auctions)),
		PendingTransfers: int64(len(s.transfers)),
		OpenOffers:       int64(len(s.offers)),
	}
	for _, a := range s.auctions {
		if a.HasBid() {
			stats.AuctionsWithBids++
		}
	}
	for _, evt := range s.events {
		if since != nil && evt.Timestamp.Before(*since) {
			continue
		}
		stats.JournalEvents++
	}
	return stats, nil
}

// Close releases nothing; it exists to satisfy the composite Store interface.
func (s *Store) Close() error {
	return nil
}
