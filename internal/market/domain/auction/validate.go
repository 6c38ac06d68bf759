package auction

import (
	"time"

	"github.com/louisbranch/gavel/internal/market/domain/core"
)

// ValidateBid checks whether the bid may replace the standing bid at the
// given time. It is pure: funds sufficiency is the caller's concern.
func (a Auction) ValidateBid(bidder core.AccountID, amount core.Amount, now time.Time) error {
	if !a.Started(now) {
		return ErrNotStarted
	}
	if bidder == a.Seller {
		return ErrSelfDeal
	}
	if !a.Whitelisted(bidder) {
		return ErrBidderNotWhitelisted
	}
	if a.LastBid == nil {
		if amount < a.StartingPrice {
			return ErrBidBelowStartingPrice
		}
		return nil
	}
	if amount < a.LastBid.Amount+a.MinimalBidStep {
		return ErrBidStepTooSmall
	}
	return nil
}
