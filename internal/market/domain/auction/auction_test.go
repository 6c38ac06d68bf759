package auction

import (
	"errors"
	"testing"
	"time"

	"github.com/louisbranch/gavel/internal/market/domain/core"
)

var baseTime = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func openAuction() Auction {
	return Start("item-1", "seller", core.Owner(), 0, Params{
		Kind:            KindOpen,
		BidLockDuration: 5 * time.Minute,
		StartingPrice:   100,
		MinimalBidStep:  10,
	}, baseTime)
}

func englishAuction() Auction {
	return Start("item-1", "seller", core.Owner(), 0, Params{
		Kind:            KindEnglish,
		RoundDuration:   10 * time.Minute,
		ExtensionPeriod: 2 * time.Minute,
		StartingPrice:   100,
		MinimalBidStep:  10,
	}, baseTime)
}

func TestKindRoundTrip(t *testing.T) {
	for _, kind := range []Kind{KindOpen, KindEnglish} {
		if got := KindFromLabel(kind.String()); got != kind {
			t.Fatalf("KindFromLabel(%q) = %v, want %v", kind.String(), got, kind)
		}
	}
	if got := KindFromLabel("dutch"); got != KindUnspecified {
		t.Fatalf("KindFromLabel(dutch) = %v, want unspecified", got)
	}
}

func TestValidateBid(t *testing.T) {
	withBid := openAuction().WithBid("bob", 100, baseTime)
	scheduled := openAuction()
	scheduled.StartsAt = baseTime.Add(time.Hour)
	whitelisted := openAuction()
	whitelisted.Whitelist = map[core.AccountID]struct{}{"bob": {}, "carol": {}}

	tests := []struct {
		name    string
		auction Auction
		bidder  core.AccountID
		amount  core.Amount
		wantErr error
	}{
		{name: "opening bid at starting price", auction: openAuction(), bidder: "bob", amount: 100},
		{name: "opening bid above starting price", auction: openAuction(), bidder: "bob", amount: 150},
		{name: "opening bid below starting price", auction: openAuction(), bidder: "bob", amount: 99, wantErr: ErrBidBelowStartingPrice},
		{name: "bid meets step", auction: withBid, bidder: "carol", amount: 110},
		{name: "bid below step", auction: withBid, bidder: "carol", amount: 105, wantErr: ErrBidStepTooSmall},
		{name: "seller bids", auction: openAuction(), bidder: "seller", amount: 100, wantErr: ErrSelfDeal},
		{name: "not started", auction: scheduled, bidder: "bob", amount: 100, wantErr: ErrNotStarted},
		{name: "whitelisted member", auction: whitelisted, bidder: "carol", amount: 100},
		{name: "outside whitelist", auction: whitelisted, bidder: "dana", amount: 100, wantErr: ErrBidderNotWhitelisted},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.auction.ValidateBid(tc.bidder, tc.amount, baseTime)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("ValidateBid() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("ValidateBid() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestDeadlineAndExpiry(t *testing.T) {
	a := openAuction()
	if _, ok := a.Deadline(); ok {
		t.Fatal("auction without bids must have no deadline")
	}
	if a.Expired(baseTime.Add(100 * time.Hour)) {
		t.Fatal("auction without bids must never expire")
	}

	a = a.WithBid("bob", 100, baseTime)
	deadline, ok := a.Deadline()
	if !ok {
		t.Fatal("auction with a bid must have a deadline")
	}
	if want := baseTime.Add(5 * time.Minute); !deadline.Equal(want) {
		t.Fatalf("open deadline = %v, want %v", deadline, want)
	}
	if a.Expired(deadline.Add(-time.Second)) {
		t.Fatal("auction expired before its deadline")
	}
	if !a.Expired(deadline) {
		t.Fatal("auction not expired at its deadline")
	}
}

func TestEnglishExtension(t *testing.T) {
	a := englishAuction().WithBid("bob", 100, baseTime)

	// A bid well before the deadline resets the round with no extension.
	early := a.WithBid("carol", 110, baseTime.Add(3*time.Minute))
	if early.Extended != 0 {
		t.Fatalf("early bid accrued extension %v, want none", early.Extended)
	}
	deadline, _ := early.Deadline()
	if want := baseTime.Add(13 * time.Minute); !deadline.Equal(want) {
		t.Fatalf("deadline after early bid = %v, want %v", deadline, want)
	}

	// A bid within the extension period of the deadline accrues it.
	late := a.WithBid("carol", 110, baseTime.Add(9*time.Minute))
	if late.Extended != 2*time.Minute {
		t.Fatalf("late bid accrued extension %v, want 2m", late.Extended)
	}
	deadline, _ = late.Deadline()
	if want := baseTime.Add(21 * time.Minute); !deadline.Equal(want) {
		t.Fatalf("deadline after late bid = %v, want %v", deadline, want)
	}
}

func TestNextMinimumBid(t *testing.T) {
	a := openAuction()
	if got := a.NextMinimumBid(); got != 100 {
		t.Fatalf("NextMinimumBid() = %d, want starting price 100", got)
	}
	a = a.WithBid("bob", 120, baseTime)
	if got := a.NextMinimumBid(); got != 130 {
		t.Fatalf("NextMinimumBid() = %d, want 130", got)
	}
}

func TestTriggersBuyNow(t *testing.T) {
	a := openAuction()
	if a.TriggersBuyNow(1_000_000) {
		t.Fatal("auction without buy-now price must not trigger buy-now")
	}
	a.BuyNowPrice = 500
	if a.TriggersBuyNow(499) {
		t.Fatal("bid below buy-now price must not trigger buy-now")
	}
	if !a.TriggersBuyNow(500) {
		t.Fatal("bid at buy-now price must trigger buy-now")
	}
}

func TestWhitelistMembersSorted(t *testing.T) {
	a := Start("item-1", "seller", core.Owner(), 0, Params{
		Kind:            KindOpen,
		BidLockDuration: time.Minute,
		StartingPrice:   1,
		MinimalBidStep:  1,
		Whitelist:       []core.AccountID{"carol", "bob", "alice"},
	}, baseTime)
	members := a.WhitelistMembers()
	want := []core.AccountID{"alice", "bob", "carol"}
	if len(members) != len(want) {
		t.Fatalf("WhitelistMembers() = %v, want %v", members, want)
	}
	for i := range want {
		if members[i] != want[i] {
			t.Fatalf("WhitelistMembers() = %v, want %v", members, want)
		}
	}
}
