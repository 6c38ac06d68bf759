// Package event defines the append-only market journal. Every successful
// entry point appends exactly one event; the ordered journal is what makes
// independent re-executions of the same transaction sequence comparable.
package event

import "time"

// Type is a stable journal event type label.
type Type string

const (
	TypeAuctionStarted   Type = "market.auction_started"
	TypeBidPlaced        Type = "market.bid_placed"
	TypeAuctionCompleted Type = "market.auction_completed"
	TypeAuctionCanceled  Type = "market.auction_canceled"
	TypeTransferStarted  Type = "market.transfer_started"
	TypeTransferCanceled Type = "market.transfer_canceled"
	TypeTransferAccepted Type = "market.transfer_accepted"
	TypeOfferMade        Type = "market.offer_made"
	TypeOfferCanceled    Type = "market.offer_canceled"
	TypeOfferAccepted    Type = "market.offer_accepted"
)

// Event is one journal entry. Seq is assigned by the store on append and is
// strictly increasing across the journal.
type Event struct {
	Seq         uint64
	ItemID      string
	Type        Type
	Timestamp   time.Time
	Actor       string
	PayloadJSON []byte
}

// AuctionStartedPayload records the terms a new auction opened with.
type AuctionStartedPayload struct {
	Kind            string   `json:"kind"`
	Seller          string   `json:"seller"`
	StartingPrice   uint64   `json:"starting_price"`
	MinimalBidStep  uint64   `json:"minimal_bid_step"`
	BuyNowPrice     uint64   `json:"buy_now_price,omitempty"`
	RoyaltyRateBps  uint32   `json:"royalty_rate_bps,omitempty"`
	Whitelist       []string `json:"whitelist,omitempty"`
	BidLockMs       int64    `json:"bid_lock_ms,omitempty"`
	RoundDurationMs int64    `json:"round_duration_ms,omitempty"`
	ExtensionMs     int64    `json:"extension_ms,omitempty"`
}

// BidPlacedPayload records an accepted bid and whether it accrued the
// anti-snipe extension.
type BidPlacedPayload struct {
	Bidder   string `json:"bidder"`
	Amount   uint64 `json:"amount"`
	Extended bool   `json:"extended,omitempty"`
	Outbid   string `json:"outbid,omitempty"`
}

// AuctionCompletedPayload records a settled sale.
type AuctionCompletedPayload struct {
	Winner         string `json:"winner"`
	Amount         uint64 `json:"amount"`
	SellerProceeds uint64 `json:"seller_proceeds"`
	RoyaltyPaid    uint64 `json:"royalty_paid"`
	FeeRetained    uint64 `json:"fee_retained"`
	BuyNow         bool   `json:"buy_now,omitempty"`
}

// TransferPayload records the recipient of a pending transfer transition.
type TransferPayload struct {
	Recipient string `json:"recipient"`
}

// OfferPayload records a direct-offer transition.
type OfferPayload struct {
	Offeror string `json:"offeror"`
	Amount  uint64 `json:"amount"`
}

// OfferAcceptedPayload records a settled direct sale.
type OfferAcceptedPayload struct {
	Offeror        string `json:"offeror"`
	Amount         uint64 `json:"amount"`
	SellerProceeds uint64 `json:"seller_proceeds"`
	RoyaltyPaid    uint64 `json:"royalty_paid"`
	FeeRetained    uint64 `json:"fee_retained"`
}
