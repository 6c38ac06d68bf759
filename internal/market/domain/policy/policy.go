// Package policy enforces the globally configured parameter bounds that
// every auction must satisfy before any mutation. The bounds are operator
// policy, not engine logic: they exist to keep degenerate auctions
// (zero-length rounds, confiscatory royalties, enormous whitelists) out of
// the registry.
package policy

import (
	"strconv"
	"time"

	"github.com/louisbranch/gavel/internal/market/domain/auction"
	"github.com/louisbranch/gavel/internal/market/domain/core"
	apperrors "github.com/louisbranch/gavel/internal/platform/errors"
)

// Bounds holds the configured [min, max] ranges for auction parameters.
type Bounds struct {
	MinRoyaltyRate core.Bps
	MaxRoyaltyRate core.Bps

	MinRoundDuration time.Duration
	MaxRoundDuration time.Duration

	MinBidLockDuration time.Duration
	MaxBidLockDuration time.Duration

	MinExtensionPeriod time.Duration
	MaxExtensionPeriod time.Duration

	MinStartingPrice core.Amount
	MaxStartingPrice core.Amount

	MinBidStep core.Amount
	MaxBidStep core.Amount

	// MinWhitelistSize applies only to non-empty whitelists; an empty
	// whitelist means the auction is open to all.
	MinWhitelistSize int
	MaxWhitelistSize int
}

// Default returns the bounds used when the operator configures nothing.
func Default() Bounds {
	return Bounds{
		MinRoyaltyRate:     0,
		MaxRoyaltyRate:     5000,
		MinRoundDuration:   time.Minute,
		MaxRoundDuration:   30 * 24 * time.Hour,
		MinBidLockDuration: time.Minute,
		MaxBidLockDuration: 30 * 24 * time.Hour,
		MinExtensionPeriod: time.Minute,
		MaxExtensionPeriod: 24 * time.Hour,
		MinStartingPrice:   1,
		MaxStartingPrice:   1_000_000_000_000,
		MinBidStep:         1,
		MaxBidStep:         1_000_000_000_000,
		MinWhitelistSize:   2,
		MaxWhitelistSize:   100,
	}
}

// CheckAuctionParams validates caller-supplied auction terms against the
// bounds. The first violation wins; each violation carries a
// parameter-specific code plus the offending and boundary values.
func (b Bounds) CheckAuctionParams(params auction.Params) error {
	switch params.Kind {
	case auction.KindOpen:
		if err := checkDuration(params.BidLockDuration, b.MinBidLockDuration, b.MaxBidLockDuration,
			apperrors.CodeBidLockDurationBelowMinimum, apperrors.CodeBidLockDurationAboveMaximum, "bid lock duration"); err != nil {
			return err
		}
	case auction.KindEnglish:
		if err := checkDuration(params.RoundDuration, b.MinRoundDuration, b.MaxRoundDuration,
			apperrors.CodeRoundDurationBelowMinimum, apperrors.CodeRoundDurationAboveMaximum, "round duration"); err != nil {
			return err
		}
		if err := checkDuration(params.ExtensionPeriod, b.MinExtensionPeriod, b.MaxExtensionPeriod,
			apperrors.CodeExtensionPeriodBelowMinimum, apperrors.CodeExtensionPeriodAboveMaximum, "extension period"); err != nil {
			return err
		}
	default:
		return apperrors.New(apperrors.CodeAuctionKindInvalid, "auction kind is required")
	}

	if err := checkAmount(params.StartingPrice, b.MinStartingPrice, b.MaxStartingPrice,
		apperrors.CodeStartingPriceBelowMinimum, apperrors.CodeStartingPriceAboveMaximum, "starting price"); err != nil {
		return err
	}
	if err := checkAmount(params.MinimalBidStep, b.MinBidStep, b.MaxBidStep,
		apperrors.CodeBidStepBelowMinimum, apperrors.CodeBidStepAboveMaximum, "bid step"); err != nil {
		return err
	}

	if size := len(params.Whitelist); size > 0 {
		if size < b.MinWhitelistSize {
			return apperrors.WithMetadata(apperrors.CodeWhitelistSizeBelowMinimum,
				"whitelist is below the minimum size",
				boundsMetadata(strconv.Itoa(size), strconv.Itoa(b.MinWhitelistSize)))
		}
		if size > b.MaxWhitelistSize {
			return apperrors.WithMetadata(apperrors.CodeWhitelistSizeAboveMaximum,
				"whitelist exceeds the maximum size",
				boundsMetadata(strconv.Itoa(size), strconv.Itoa(b.MaxWhitelistSize)))
		}
	}

	return nil
}

// CheckRoyaltyRate validates a creator royalty rate. Rates are set at item
// issuance, outside this engine, but tooling that issues items applies the
// same policy the engine would.
func (b Bounds) CheckRoyaltyRate(rate core.Bps) error {
	if rate < b.MinRoyaltyRate {
		return apperrors.WithMetadata(apperrors.CodeRoyaltyRateBelowMinimum,
			"royalty rate is below the minimum",
			boundsMetadata(bpsLabel(rate), bpsLabel(b.MinRoyaltyRate)))
	}
	if rate > b.MaxRoyaltyRate {
		return apperrors.WithMetadata(apperrors.CodeRoyaltyRateAboveMaximum,
			"royalty rate exceeds the maximum",
			boundsMetadata(bpsLabel(rate), bpsLabel(b.MaxRoyaltyRate)))
	}
	return nil
}

// CheckOfferAmount validates a direct-offer amount against the price range.
func (b Bounds) CheckOfferAmount(amount core.Amount) error {
	if amount < b.MinStartingPrice || amount > b.MaxStartingPrice {
		return apperrors.WithMetadata(apperrors.CodeOfferAmountInvalid,
			"offer amount is outside the allowed price range",
			map[string]string{
				"value": amountLabel(amount),
				"min":   amountLabel(b.MinStartingPrice),
				"max":   amountLabel(b.MaxStartingPrice),
			})
	}
	return nil
}

func checkDuration(value, min, max time.Duration, belowCode, aboveCode apperrors.Code, label string) error {
	if value < min {
		return apperrors.WithMetadata(belowCode, label+" is below the minimum",
			boundsMetadata(value.String(), min.String()))
	}
	if value > max {
		return apperrors.WithMetadata(aboveCode, label+" exceeds the maximum",
			boundsMetadata(value.String(), max.String()))
	}
	return nil
}

func checkAmount(value, min, max core.Amount, belowCode, aboveCode apperrors.Code, label string) error {
	if value < min {
		return apperrors.WithMetadata(belowCode, label+" is below the minimum",
			boundsMetadata(amountLabel(value), amountLabel(min)))
	}
	if value > max {
		return apperrors.WithMetadata(aboveCode, label+" exceeds the maximum",
			boundsMetadata(amountLabel(value), amountLabel(max)))
	}
	return nil
}

func boundsMetadata(value, bound string) map[string]string {
	return map[string]string{"value": value, "bound": bound}
}

func amountLabel(value core.Amount) string {
	return strconv.FormatUint(uint64(value), 10)
}

func bpsLabel(value core.Bps) string {
	return strconv.FormatUint(uint64(value), 10)
}
