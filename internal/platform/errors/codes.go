// Package errors provides structured error handling for the market engine.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Authorization errors
	CodeAuthorizationFailed Code = "AUTHORIZATION_FAILED"

	// Parameter bounds errors. Each bounded parameter gets its own pair of
	// codes so callers can tell which knob was out of range.
	CodeRoyaltyRateBelowMinimum     Code = "ROYALTY_RATE_BELOW_MINIMUM"
	CodeRoyaltyRateAboveMaximum     Code = "ROYALTY_RATE_ABOVE_MAXIMUM"
	CodeRoundDurationBelowMinimum   Code = "ROUND_DURATION_BELOW_MINIMUM"
	CodeRoundDurationAboveMaximum   Code = "ROUND_DURATION_ABOVE_MAXIMUM"
	CodeBidLockDurationBelowMinimum Code = "BID_LOCK_DURATION_BELOW_MINIMUM"
	CodeBidLockDurationAboveMaximum Code = "BID_LOCK_DURATION_ABOVE_MAXIMUM"
	CodeExtensionPeriodBelowMinimum Code = "EXTENSION_PERIOD_BELOW_MINIMUM"
	CodeExtensionPeriodAboveMaximum Code = "EXTENSION_PERIOD_ABOVE_MAXIMUM"
	CodeStartingPriceBelowMinimum   Code = "STARTING_PRICE_BELOW_MINIMUM"
	CodeStartingPriceAboveMaximum   Code = "STARTING_PRICE_ABOVE_MAXIMUM"
	CodeBidStepBelowMinimum         Code = "BID_STEP_BELOW_MINIMUM"
	CodeBidStepAboveMaximum         Code = "BID_STEP_ABOVE_MAXIMUM"
	CodeWhitelistSizeBelowMinimum   Code = "WHITELIST_SIZE_BELOW_MINIMUM"
	CodeWhitelistSizeAboveMaximum   Code = "WHITELIST_SIZE_ABOVE_MAXIMUM"
	CodeAuctionKindInvalid          Code = "AUCTION_KIND_INVALID"

	// Auction errors
	CodeAuctionNotFound      Code = "AUCTION_NOT_FOUND"
	CodeAuctionAlreadyExists Code = "AUCTION_ALREADY_EXISTS"
	CodeAuctionHasBids       Code = "AUCTION_HAS_BIDS"
	CodeAuctionNotExpired    Code = "AUCTION_CANNOT_BE_COMPLETED"
	CodeAuctionKindMismatch  Code = "AUCTION_KIND_MISMATCH"
	CodeAuctionNotStarted    Code = "AUCTION_NOT_STARTED"
	CodeAuctionBuyNowUnset   Code = "AUCTION_BUY_NOW_UNSET"

	// Bid errors
	CodeBidNotFound           Code = "BID_NOT_FOUND"
	CodeBidBelowStartingPrice Code = "BID_BELOW_STARTING_PRICE"
	CodeBidStepTooSmall       Code = "BID_STEP_TOO_SMALL"
	CodeBidderNotWhitelisted  Code = "BIDDER_NOT_WHITELISTED"
	CodeSelfDeal              Code = "SELF_DEAL"

	// Transfer errors
	CodeTransferNotFound      Code = "TRANSFER_NOT_FOUND"
	CodeTransferAlreadyExists Code = "TRANSFER_ALREADY_EXISTS"
	CodeTransferNotRecipient  Code = "TRANSFER_NOT_RECIPIENT"

	// Offer errors
	CodeOfferNotFound      Code = "OFFER_NOT_FOUND"
	CodeOfferAlreadyExists Code = "OFFER_ALREADY_EXISTS"
	CodeOfferAmountInvalid Code = "OFFER_AMOUNT_INVALID"

	// Ledger errors
	CodeInsufficientFunds Code = "INSUFFICIENT_FUNDS"

	// Item errors
	CodeItemNotFound Code = "ITEM_NOT_FOUND"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeRoyaltyRateBelowMinimum,
		CodeRoyaltyRateAboveMaximum,
		CodeRoundDurationBelowMinimum,
		CodeRoundDurationAboveMaximum,
		CodeBidLockDurationBelowMinimum,
		CodeBidLockDurationAboveMaximum,
		CodeExtensionPeriodBelowMinimum,
		CodeExtensionPeriodAboveMaximum,
		CodeStartingPriceBelowMinimum,
		CodeStartingPriceAboveMaximum,
		CodeBidStepBelowMinimum,
		CodeBidStepAboveMaximum,
		CodeWhitelistSizeBelowMinimum,
		CodeWhitelistSizeAboveMaximum,
		CodeAuctionKindInvalid,
		CodeOfferAmountInvalid:
		return codes.InvalidArgument

	// FailedPrecondition - state doesn't allow operation
	case CodeAuctionAlreadyExists,
		CodeAuctionHasBids,
		CodeAuctionNotExpired,
		CodeAuctionKindMismatch,
		CodeAuctionNotStarted,
		CodeAuctionBuyNowUnset,
		CodeBidBelowStartingPrice,
		CodeBidStepTooSmall,
		CodeSelfDeal,
		CodeTransferAlreadyExists,
		CodeOfferAlreadyExists,
		CodeInsufficientFunds:
		return codes.FailedPrecondition

	// PermissionDenied - caller lacks the required actor privilege
	case CodeAuthorizationFailed,
		CodeBidderNotWhitelisted,
		CodeTransferNotRecipient:
		return codes.PermissionDenied

	// NotFound - resource doesn't exist
	case CodeNotFound,
		CodeAuctionNotFound,
		CodeBidNotFound,
		CodeTransferNotFound,
		CodeOfferNotFound,
		CodeItemNotFound:
		return codes.NotFound

	default:
		return codes.Internal
	}
}
