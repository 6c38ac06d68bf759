package auction

import apperrors "github.com/louisbranch/gavel/internal/platform/errors"

var (
	// ErrNotFound indicates no live auction exists for the item.
	ErrNotFound = apperrors.New(apperrors.CodeAuctionNotFound, "auction does not exist")
	// ErrAlreadyExists indicates a live auction already covers the item.
	ErrAlreadyExists = apperrors.New(apperrors.CodeAuctionAlreadyExists, "auction already exists for item")
	// ErrHasBids indicates a cancel attempt after a bid was placed.
	ErrHasBids = apperrors.New(apperrors.CodeAuctionHasBids, "auction has bids already")
	// ErrNotExpired indicates a claim before the winning deadline passed.
	ErrNotExpired = apperrors.New(apperrors.CodeAuctionNotExpired, "auction cannot be completed yet")
	// ErrKindMismatch indicates an operation valid only for the other kind.
	ErrKindMismatch = apperrors.New(apperrors.CodeAuctionKindMismatch, "operation does not apply to this auction kind")
	// ErrNotStarted indicates a bid before the scheduled start.
	ErrNotStarted = apperrors.New(apperrors.CodeAuctionNotStarted, "auction has not started")
	// ErrBuyNowUnset indicates a buy-now attempt with no buy-now price.
	ErrBuyNowUnset = apperrors.New(apperrors.CodeAuctionBuyNowUnset, "auction has no buy-now price")
	// ErrBidNotFound indicates a claim on an auction that never got a bid.
	ErrBidNotFound = apperrors.New(apperrors.CodeBidNotFound, "bid does not exist")
	// ErrBidBelowStartingPrice indicates an opening bid under the floor.
	ErrBidBelowStartingPrice = apperrors.New(apperrors.CodeBidBelowStartingPrice, "bid is below the starting price")
	// ErrBidStepTooSmall indicates a bid under the previous bid plus step.
	ErrBidStepTooSmall = apperrors.New(apperrors.CodeBidStepTooSmall, "bid increment is below the minimal step")
	// ErrBidderNotWhitelisted indicates a bid from outside the whitelist.
	ErrBidderNotWhitelisted = apperrors.New(apperrors.CodeBidderNotWhitelisted, "bidder is not whitelisted")
	// ErrSelfDeal indicates the seller bidding on their own auction.
	ErrSelfDeal = apperrors.New(apperrors.CodeSelfDeal, "seller cannot bid on their own auction")
)
