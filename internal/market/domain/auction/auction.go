// Package auction defines the auction aggregate and its pure transition
// rules. Nothing in this package reads the clock or touches storage; time
// always arrives as an argument so transitions stay deterministic.
package auction

import (
	"sort"
	"time"

	"github.com/louisbranch/gavel/internal/market/domain/core"
)

// Kind discriminates the supported auction mechanisms.
type Kind int

const (
	// KindUnspecified represents an invalid auction kind.
	KindUnspecified Kind = iota
	// KindOpen completes implicitly once a bid's lock duration elapses
	// unchallenged.
	KindOpen
	// KindEnglish runs a fixed round with anti-snipe extension and requires
	// an explicit claim after expiry.
	KindEnglish
)

// String returns the stable storage label for the kind.
func (k Kind) String() string {
	switch k {
	case KindOpen:
		return "open"
	case KindEnglish:
		return "english"
	default:
		return "unspecified"
	}
}

// KindFromLabel reverses Kind.String.
func KindFromLabel(label string) Kind {
	switch label {
	case "open":
		return KindOpen
	case "english":
		return KindEnglish
	default:
		return KindUnspecified
	}
}

// Params describes the caller-supplied terms for a new auction.
type Params struct {
	Kind Kind

	// BidLockDuration applies to open auctions: how long a bid must stand
	// unchallenged before it wins.
	BidLockDuration time.Duration

	// RoundDuration and ExtensionPeriod apply to English auctions.
	RoundDuration   time.Duration
	ExtensionPeriod time.Duration

	StartingPrice  core.Amount
	MinimalBidStep core.Amount

	// BuyNowPrice of zero means no buy-now threshold.
	BuyNowPrice core.Amount

	// StartsAt of zero means the auction opens immediately.
	StartsAt time.Time

	// Whitelist restricts bidding to the listed accounts when non-empty.
	Whitelist []core.AccountID
}

// Bid is the single retained bid on an auction. Superseded bids are not
// kept; their reservations are released when they are outbid.
type Bid struct {
	Bidder   core.AccountID
	Amount   core.Amount
	PlacedAt time.Time
}

// Auction is one item currently for sale. At most one live auction exists
// per item.
type Auction struct {
	ItemID      core.ItemID
	Seller      core.AccountID
	SellerActor core.Actor

	Kind            Kind
	BidLockDuration time.Duration
	RoundDuration   time.Duration
	ExtensionPeriod time.Duration

	StartingPrice  core.Amount
	MinimalBidStep core.Amount
	BuyNowPrice    core.Amount

	// RoyaltyRateBps is the creator royalty snapshot taken when the auction
	// started. Settlement re-reads the authoritative rate from the ownership
	// registry; this copy exists for journal payloads and read views.
	RoyaltyRateBps core.Bps

	StartsAt  time.Time
	StartedAt time.Time

	Whitelist map[core.AccountID]struct{}

	LastBid *Bid

	// Extended is the anti-snipe extension accrued by the current bid
	// (English auctions only).
	Extended time.Duration
}

// Start builds a new auction from normalized params. Bounds enforcement is
// the policy package's job; Start only fixes the structural shape.
func Start(itemID core.ItemID, seller core.AccountID, sellerActor core.Actor, royalty core.Bps, params Params, now time.Time) Auction {
	whitelist := make(map[core.AccountID]struct{}, len(params.Whitelist))
	for _, member := range params.Whitelist {
		whitelist[member] = struct{}{}
	}

	return Auction{
		ItemID:          itemID,
		Seller:          seller,
		SellerActor:     sellerActor,
		Kind:            params.Kind,
		BidLockDuration: params.BidLockDuration,
		RoundDuration:   params.RoundDuration,
		ExtensionPeriod: params.ExtensionPeriod,
		StartingPrice:   params.StartingPrice,
		MinimalBidStep:  params.MinimalBidStep,
		BuyNowPrice:     params.BuyNowPrice,
		RoyaltyRateBps:  royalty,
		StartsAt:        params.StartsAt,
		StartedAt:       now.UTC(),
	}
}

// HasBid reports whether a bid currently stands on the auction.
func (a Auction) HasBid() bool {
	return a.LastBid != nil
}

// Started reports whether the auction accepts bids at the given time.
func (a Auction) Started(now time.Time) bool {
	return a.StartsAt.IsZero() || !now.Before(a.StartsAt)
}

// Whitelisted reports whether the account may bid. An empty whitelist is
// open to all.
func (a Auction) Whitelisted(account core.AccountID) bool {
	if len(a.Whitelist) == 0 {
		return true
	}
	_, ok := a.Whitelist[account]
	return ok
}

// WhitelistMembers returns the whitelist in stable sorted order.
func (a Auction) WhitelistMembers() []core.AccountID {
	members := make([]core.AccountID, 0, len(a.Whitelist))
	for member := range a.Whitelist {
		members = append(members, member)
	}
	sort.Slice(members, func(i, j int) bool { return members[i] < members[j] })
	return members
}

// Deadline returns the instant the current bid wins the auction. It reports
// false when no bid stands: an auction without bids never expires.
func (a Auction) Deadline() (time.Time, bool) {
	if a.LastBid == nil {
		return time.Time{}, false
	}
	switch a.Kind {
	case KindOpen:
		return a.LastBid.PlacedAt.Add(a.BidLockDuration), true
	case KindEnglish:
		return a.LastBid.PlacedAt.Add(a.RoundDuration + a.Extended), true
	default:
		return time.Time{}, false
	}
}

// Expired reports whether the current bid has won: the deadline has passed
// with no qualifying competing bid.
func (a Auction) Expired(now time.Time) bool {
	deadline, ok := a.Deadline()
	if !ok {
		return false
	}
	return !now.Before(deadline)
}

// NextMinimumBid returns the smallest acceptable bid amount.
func (a Auction) NextMinimumBid() core.Amount {
	if a.LastBid == nil {
		return a.StartingPrice
	}
	return a.LastBid.Amount + a.MinimalBidStep
}

// TriggersBuyNow reports whether the amount meets the buy-now threshold.
func (a Auction) TriggersBuyNow(amount core.Amount) bool {
	return a.BuyNowPrice > 0 && amount >= a.BuyNowPrice
}

// WithBid returns the auction with the bid applied, replacing any previous
// bid. For English auctions a bid landing within the extension period of
// the standing deadline accrues the anti-snipe extension; otherwise the
// accrued extension resets with the new round.
func (a Auction) WithBid(bidder core.AccountID, amount core.Amount, now time.Time) Auction {
	extended := time.Duration(0)
	if a.Kind == KindEnglish {
		if deadline, ok := a.Deadline(); ok && deadline.Sub(now) <= a.ExtensionPeriod {
			extended = a.ExtensionPeriod
		}
	}
	a.LastBid = &Bid{Bidder: bidder, Amount: amount, PlacedAt: now.UTC()}
	a.Extended = extended
	return a
}
