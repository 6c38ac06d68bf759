package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/louisbranch/gavel/internal/market/auth"
	"github.com/louisbranch/gavel/internal/market/domain/auction"
	"github.com/louisbranch/gavel/internal/market/domain/core"
	"github.com/louisbranch/gavel/internal/market/domain/offer"
	"github.com/louisbranch/gavel/internal/market/domain/transfer"
	"github.com/louisbranch/gavel/internal/market/ledger"
	ledgermem "github.com/louisbranch/gavel/internal/market/ledger/memory"
	ownershipmem "github.com/louisbranch/gavel/internal/market/ownership/memory"
	"github.com/louisbranch/gavel/internal/market/storage/memory"
)

// fixture wires a service over in-memory collaborators with a logical clock
// the test advances explicitly.
type fixture struct {
	svc         *Service
	store       *memory.Store
	balances    *ledgermem.Ledger
	items       *ownershipmem.Registry
	delegations *auth.Delegations
	now         time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:    memory.New(),
		balances: ledgermem.New(),
		items:    ownershipmem.New(),
		now:      time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	f.delegations = auth.NewDelegations(f.items)

	svc, err := New(Config{
		Store:          f.store,
		Ledger:         f.balances,
		Items:          f.items,
		Authorizer:     f.delegations,
		PlatformFeeBps: 500,
		Clock:          func() time.Time { return f.now },
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	f.svc = svc
	return f
}

func (f *fixture) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func openParams() auction.Params {
	return auction.Params{
		Kind:            auction.KindOpen,
		BidLockDuration: 5 * time.Minute,
		StartingPrice:   100,
		MinimalBidStep:  10,
	}
}

func englishParams() auction.Params {
	return auction.Params{
		Kind:            auction.KindEnglish,
		RoundDuration:   10 * time.Minute,
		ExtensionPeriod: 2 * time.Minute,
		StartingPrice:   100,
		MinimalBidStep:  10,
	}
}

func TestOpenAuctionBiddingScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.items.Issue("sword", "alice")
	f.balances.Fund("bob", 1000)
	f.balances.Fund("carol", 1000)

	if _, err := f.svc.StartAuction(ctx, "sword", "alice", core.Owner(), openParams()); err != nil {
		t.Fatalf("StartAuction() error = %v", err)
	}

	if _, err := f.svc.MakeBid(ctx, "sword", "bob", 100); err != nil {
		t.Fatalf("bid 100 error = %v", err)
	}
	if got := f.balances.ReservedBalance("bob"); got != 100 {
		t.Fatalf("bob reservation = %d, want 100", got)
	}

	if _, err := f.svc.MakeBid(ctx, "sword", "carol", 105); !errors.Is(err, auction.ErrBidStepTooSmall) {
		t.Fatalf("bid 105 error = %v, want %v", err, auction.ErrBidStepTooSmall)
	}

	if _, err := f.svc.MakeBid(ctx, "sword", "carol", 110); err != nil {
		t.Fatalf("bid 110 error = %v", err)
	}
	if got := f.balances.ReservedBalance("bob"); got != 0 {
		t.Fatalf("outbid reservation = %d, want released", got)
	}
	if got := f.balances.ReservedBalance("carol"); got != 110 {
		t.Fatalf("carol reservation = %d, want 110", got)
	}

	if err := f.svc.CancelAuction(ctx, "sword", "alice", core.Owner()); !errors.Is(err, auction.ErrHasBids) {
		t.Fatalf("CancelAuction() error = %v, want %v", err, auction.ErrHasBids)
	}
}

func TestCancelAuctionWithoutBids(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.items.Issue("sword", "alice")

	if _, err := f.svc.StartAuction(ctx, "sword", "alice", core.Owner(), openParams()); err != nil {
		t.Fatalf("StartAuction() error = %v", err)
	}
	if err := f.svc.CancelAuction(ctx, "sword", "alice", core.Owner()); err != nil {
		t.Fatalf("CancelAuction() error = %v", err)
	}
	if _, err := f.svc.GetAuction(ctx, "sword"); !errors.Is(err, auction.ErrNotFound) {
		t.Fatalf("GetAuction() after cancel = %v, want %v", err, auction.ErrNotFound)
	}
}

func TestEnglishClaimScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.items.Issue("sword", "alice")
	f.balances.Fund("bob", 1000)

	if _, err := f.svc.StartAuction(ctx, "sword", "alice", core.Owner(), englishParams()); err != nil {
		t.Fatalf("StartAuction() error = %v", err)
	}

	if _, err := f.svc.ClaimWonEnglishAuction(ctx, "sword", "alice", core.Owner()); !errors.Is(err, auction.ErrBidNotFound) {
		t.Fatalf("claim without bid error = %v, want %v", err, auction.ErrBidNotFound)
	}

	if _, err := f.svc.MakeBid(ctx, "sword", "bob", 100); err != nil {
		t.Fatalf("bid error = %v", err)
	}
	if _, err := f.svc.ClaimWonEnglishAuction(ctx, "sword", "alice", core.Owner()); !errors.Is(err, auction.ErrNotExpired) {
		t.Fatalf("early claim error = %v, want %v", err, auction.ErrNotExpired)
	}

	f.advance(10 * time.Minute)
	receipt, err := f.svc.ClaimWonEnglishAuction(ctx, "sword", "alice", core.Owner())
	if err != nil {
		t.Fatalf("claim error = %v", err)
	}
	if receipt.Amount != 100 || receipt.SellerProceeds != 95 || receipt.FeeRetained != 5 {
		t.Fatalf("receipt = %+v, want amount 100, proceeds 95, fee 5", receipt)
	}

	owner, err := f.items.OwnerOf(ctx, "sword")
	if err != nil {
		t.Fatalf("OwnerOf() error = %v", err)
	}
	if owner != "bob" {
		t.Fatalf("owner = %s, want bob", owner)
	}
}

func TestClaimOnOpenAuctionKindMismatch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.items.Issue("sword", "alice")

	if _, err := f.svc.StartAuction(ctx, "sword", "alice", core.Owner(), openParams()); err != nil {
		t.Fatalf("StartAuction() error = %v", err)
	}
	if _, err := f.svc.ClaimWonEnglishAuction(ctx, "sword", "alice", core.Owner()); !errors.Is(err, auction.ErrKindMismatch) {
		t.Fatalf("claim error = %v, want %v", err, auction.ErrKindMismatch)
	}
}

func TestLazyCompletionOnBid(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.items.Issue("sword", "alice")
	f.balances.Fund("bob", 1000)
	f.balances.Fund("carol", 1000)

	if _, err := f.svc.StartAuction(ctx, "sword", "alice", core.Owner(), openParams()); err != nil {
		t.Fatalf("StartAuction() error = %v", err)
	}
	if _, err := f.svc.MakeBid(ctx, "sword", "bob", 100); err != nil {
		t.Fatalf("bid error = %v", err)
	}

	f.advance(5 * time.Minute)

	// The lock has elapsed: the next bid resolves the expired auction
	// instead of being placed.
	result, err := f.svc.MakeBid(ctx, "sword", "carol", 200)
	if err != nil {
		t.Fatalf("MakeBid() error = %v", err)
	}
	if !result.ResolvedExpired {
		t.Fatalf("MakeBid() result = %+v, want ResolvedExpired", result)
	}
	if got := f.balances.ReservedBalance("carol"); got != 0 {
		t.Fatalf("carol reservation = %d, want 0", got)
	}

	owner, err := f.items.OwnerOf(ctx, "sword")
	if err != nil {
		t.Fatalf("OwnerOf() error = %v", err)
	}
	if owner != "bob" {
		t.Fatalf("owner = %s, want bob", owner)
	}

	// Idempotence: the auction is gone, so a retry sees a clean slate.
	if _, err := f.svc.MakeBid(ctx, "sword", "carol", 200); !errors.Is(err, auction.ErrNotFound) {
		t.Fatalf("retry error = %v, want %v", err, auction.ErrNotFound)
	}
}

func TestStartAuctionReplacesExpiredOne(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.items.Issue("sword", "alice")
	f.balances.Fund("bob", 1000)

	if _, err := f.svc.StartAuction(ctx, "sword", "alice", core.Owner(), openParams()); err != nil {
		t.Fatalf("StartAuction() error = %v", err)
	}
	if _, err := f.svc.MakeBid(ctx, "sword", "bob", 100); err != nil {
		t.Fatalf("bid error = %v", err)
	}
	f.advance(6 * time.Minute)

	// Bob won the expired auction and now owns the item, so bob starts the
	// next one; the stale record is completed, not an obstacle.
	if _, err := f.svc.StartAuction(ctx, "sword", "bob", core.Owner(), openParams()); err != nil {
		t.Fatalf("StartAuction() over expired auction error = %v", err)
	}
}

func TestBuyNowViaBid(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.items.Issue("sword", "alice")
	f.balances.Fund("bob", 1000)

	params := openParams()
	params.BuyNowPrice = 500
	if _, err := f.svc.StartAuction(ctx, "sword", "alice", core.Owner(), params); err != nil {
		t.Fatalf("StartAuction() error = %v", err)
	}

	result, err := f.svc.MakeBid(ctx, "sword", "bob", 500)
	if err != nil {
		t.Fatalf("MakeBid() error = %v", err)
	}
	if !result.Completed {
		t.Fatalf("MakeBid() result = %+v, want Completed", result)
	}
	if result.Receipt.Amount != 500 {
		t.Fatalf("receipt amount = %d, want 500", result.Receipt.Amount)
	}
	if _, err := f.svc.GetAuction(ctx, "sword"); !errors.Is(err, auction.ErrNotFound) {
		t.Fatalf("auction still live after buy-now: %v", err)
	}
	owner, _ := f.items.OwnerOf(ctx, "sword")
	if owner != "bob" {
		t.Fatalf("owner = %s, want bob", owner)
	}
}

func TestBuyNowOperation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.items.Issue("sword", "alice")
	f.balances.Fund("bob", 1000)
	f.balances.Fund("carol", 1000)

	params := openParams()
	params.BuyNowPrice = 500
	if _, err := f.svc.StartAuction(ctx, "sword", "alice", core.Owner(), params); err != nil {
		t.Fatalf("StartAuction() error = %v", err)
	}
	if _, err := f.svc.MakeBid(ctx, "sword", "bob", 100); err != nil {
		t.Fatalf("bid error = %v", err)
	}

	receipt, err := f.svc.BuyNow(ctx, "sword", "carol")
	if err != nil {
		t.Fatalf("BuyNow() error = %v", err)
	}
	if receipt.Amount != 500 {
		t.Fatalf("receipt amount = %d, want 500", receipt.Amount)
	}
	// The outbid reservation is released before settlement.
	if got := f.balances.ReservedBalance("bob"); got != 0 {
		t.Fatalf("bob reservation = %d, want 0", got)
	}
	owner, _ := f.items.OwnerOf(ctx, "sword")
	if owner != "carol" {
		t.Fatalf("owner = %s, want carol", owner)
	}
}

func TestBuyNowUnset(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.items.Issue("sword", "alice")
	f.balances.Fund("bob", 1000)

	if _, err := f.svc.StartAuction(ctx, "sword", "alice", core.Owner(), openParams()); err != nil {
		t.Fatalf("StartAuction() error = %v", err)
	}
	if _, err := f.svc.BuyNow(ctx, "sword", "bob"); !errors.Is(err, auction.ErrBuyNowUnset) {
		t.Fatalf("BuyNow() error = %v, want %v", err, auction.ErrBuyNowUnset)
	}
}

func TestInsufficientFunds(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.items.Issue("sword", "alice")
	f.balances.Fund("bob", 50)

	if _, err := f.svc.StartAuction(ctx, "sword", "alice", core.Owner(), openParams()); err != nil {
		t.Fatalf("StartAuction() error = %v", err)
	}
	if _, err := f.svc.MakeBid(ctx, "sword", "bob", 100); !errors.Is(err, ledger.ErrInsufficientFunds) {
		t.Fatalf("MakeBid() error = %v, want %v", err, ledger.ErrInsufficientFunds)
	}
}

func TestMutualExclusionAuctionAndTransfer(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.items.Issue("sword", "alice")
	f.items.Issue("shield", "alice")

	if _, err := f.svc.StartAuction(ctx, "sword", "alice", core.Owner(), openParams()); err != nil {
		t.Fatalf("StartAuction() error = %v", err)
	}
	if _, err := f.svc.StartTransfer(ctx, "sword", "alice", core.Owner(), "bob"); !errors.Is(err, auction.ErrAlreadyExists) {
		t.Fatalf("StartTransfer() over auction error = %v, want %v", err, auction.ErrAlreadyExists)
	}

	if _, err := f.svc.StartTransfer(ctx, "shield", "alice", core.Owner(), "bob"); err != nil {
		t.Fatalf("StartTransfer() error = %v", err)
	}
	if _, err := f.svc.StartAuction(ctx, "shield", "alice", core.Owner(), openParams()); !errors.Is(err, transfer.ErrAlreadyExists) {
		t.Fatalf("StartAuction() over transfer error = %v, want %v", err, transfer.ErrAlreadyExists)
	}
}

func TestTransferLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.items.Issue("sword", "alice")

	if _, err := f.svc.StartTransfer(ctx, "sword", "alice", core.Owner(), "bob"); err != nil {
		t.Fatalf("StartTransfer() error = %v", err)
	}
	if _, err := f.svc.StartTransfer(ctx, "sword", "alice", core.Owner(), "carol"); !errors.Is(err, transfer.ErrAlreadyExists) {
		t.Fatalf("second StartTransfer() error = %v, want %v", err, transfer.ErrAlreadyExists)
	}

	if err := f.svc.AcceptIncomingTransfer(ctx, "sword", "carol"); !errors.Is(err, transfer.ErrNotRecipient) {
		t.Fatalf("accept by wrong recipient error = %v, want %v", err, transfer.ErrNotRecipient)
	}

	if err := f.svc.AcceptIncomingTransfer(ctx, "sword", "bob"); err != nil {
		t.Fatalf("AcceptIncomingTransfer() error = %v", err)
	}
	owner, _ := f.items.OwnerOf(ctx, "sword")
	if owner != "bob" {
		t.Fatalf("owner = %s, want bob", owner)
	}

	if err := f.svc.AcceptIncomingTransfer(ctx, "sword", "bob"); !errors.Is(err, transfer.ErrNotFound) {
		t.Fatalf("second accept error = %v, want %v", err, transfer.ErrNotFound)
	}
}

func TestCancelTransfer(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.items.Issue("sword", "alice")

	if _, err := f.svc.StartTransfer(ctx, "sword", "alice", core.Owner(), "bob"); err != nil {
		t.Fatalf("StartTransfer() error = %v", err)
	}
	if err := f.svc.CancelTransfer(ctx, "sword", "alice", core.Owner()); err != nil {
		t.Fatalf("CancelTransfer() error = %v", err)
	}
	if err := f.svc.AcceptIncomingTransfer(ctx, "sword", "bob"); !errors.Is(err, transfer.ErrNotFound) {
		t.Fatalf("accept after cancel error = %v, want %v", err, transfer.ErrNotFound)
	}
}

func TestAgentAuthorization(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.items.Issue("sword", "alice")

	agent := core.Agent("broker")
	if _, err := f.svc.StartAuction(ctx, "sword", "broker", agent, openParams()); !errors.Is(err, auth.ErrAuthorizationFailed) {
		t.Fatalf("ungranted agent error = %v, want %v", err, auth.ErrAuthorizationFailed)
	}

	f.delegations.Grant("sword", "broker")
	a, err := f.svc.StartAuction(ctx, "sword", "broker", agent, openParams())
	if err != nil {
		t.Fatalf("granted agent StartAuction() error = %v", err)
	}
	if a.Seller != "alice" {
		t.Fatalf("seller = %s, want owner alice", a.Seller)
	}
	if a.SellerActor != agent {
		t.Fatalf("seller actor = %+v, want %+v", a.SellerActor, agent)
	}
}

func TestOfferLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.items.Issue("sword", "alice")
	f.balances.Fund("bob", 1000)
	f.balances.Fund("carol", 1000)

	if _, err := f.svc.MakeOffer(ctx, "sword", "alice", 300); !errors.Is(err, offer.ErrSelfDeal) {
		t.Fatalf("owner offer error = %v, want %v", err, offer.ErrSelfDeal)
	}

	if _, err := f.svc.MakeOffer(ctx, "sword", "bob", 300); err != nil {
		t.Fatalf("MakeOffer() error = %v", err)
	}
	if got := f.balances.ReservedBalance("bob"); got != 300 {
		t.Fatalf("bob reservation = %d, want 300", got)
	}
	if _, err := f.svc.MakeOffer(ctx, "sword", "bob", 350); !errors.Is(err, offer.ErrAlreadyExists) {
		t.Fatalf("second offer error = %v, want %v", err, offer.ErrAlreadyExists)
	}
	if _, err := f.svc.MakeOffer(ctx, "sword", "carol", 250); err != nil {
		t.Fatalf("carol MakeOffer() error = %v", err)
	}

	receipt, err := f.svc.AcceptOffer(ctx, "sword", "alice", core.Owner(), "bob")
	if err != nil {
		t.Fatalf("AcceptOffer() error = %v", err)
	}
	if receipt.Amount != 300 || receipt.SellerProceeds != 285 || receipt.FeeRetained != 15 {
		t.Fatalf("receipt = %+v, want amount 300, proceeds 285, fee 15", receipt)
	}

	owner, _ := f.items.OwnerOf(ctx, "sword")
	if owner != "bob" {
		t.Fatalf("owner = %s, want bob", owner)
	}

	// Carol's competing offer was released alongside the acceptance.
	if got := f.balances.ReservedBalance("carol"); got != 0 {
		t.Fatalf("carol reservation = %d, want 0", got)
	}
	if got := f.balances.ReservedBalance("bob"); got != 0 {
		t.Fatalf("bob reservation = %d, want 0", got)
	}
}

func TestCancelOffer(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.items.Issue("sword", "alice")
	f.balances.Fund("bob", 1000)

	if _, err := f.svc.MakeOffer(ctx, "sword", "bob", 300); err != nil {
		t.Fatalf("MakeOffer() error = %v", err)
	}
	if err := f.svc.CancelOffer(ctx, "sword", "bob"); err != nil {
		t.Fatalf("CancelOffer() error = %v", err)
	}
	if got := f.balances.ReservedBalance("bob"); got != 0 {
		t.Fatalf("bob reservation = %d, want 0", got)
	}
	if err := f.svc.CancelOffer(ctx, "sword", "bob"); !errors.Is(err, offer.ErrNotFound) {
		t.Fatalf("second cancel error = %v, want %v", err, offer.ErrNotFound)
	}
}

func TestAcceptOfferBlockedByAuction(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.items.Issue("sword", "alice")
	f.balances.Fund("bob", 1000)

	if _, err := f.svc.MakeOffer(ctx, "sword", "bob", 300); err != nil {
		t.Fatalf("MakeOffer() error = %v", err)
	}
	if _, err := f.svc.StartAuction(ctx, "sword", "alice", core.Owner(), openParams()); err != nil {
		t.Fatalf("StartAuction() error = %v", err)
	}
	if _, err := f.svc.AcceptOffer(ctx, "sword", "alice", core.Owner(), "bob"); !errors.Is(err, auction.ErrAlreadyExists) {
		t.Fatalf("AcceptOffer() error = %v, want %v", err, auction.ErrAlreadyExists)
	}
}

func TestAntiSnipeExtensionThroughService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.items.Issue("sword", "alice")
	f.balances.Fund("bob", 1000)
	f.balances.Fund("carol", 1000)

	if _, err := f.svc.StartAuction(ctx, "sword", "alice", core.Owner(), englishParams()); err != nil {
		t.Fatalf("StartAuction() error = %v", err)
	}
	if _, err := f.svc.MakeBid(ctx, "sword", "bob", 100); err != nil {
		t.Fatalf("first bid error = %v", err)
	}

	f.advance(9 * time.Minute)
	result, err := f.svc.MakeBid(ctx, "sword", "carol", 110)
	if err != nil {
		t.Fatalf("snipe bid error = %v", err)
	}
	if result.Auction.Extended != 2*time.Minute {
		t.Fatalf("extension = %v, want 2m", result.Auction.Extended)
	}

	// Round plus extension has not elapsed yet.
	f.advance(11 * time.Minute)
	if _, err := f.svc.ClaimWonEnglishAuction(ctx, "sword", "alice", core.Owner()); !errors.Is(err, auction.ErrNotExpired) {
		t.Fatalf("claim inside extension error = %v, want %v", err, auction.ErrNotExpired)
	}

	f.advance(time.Minute)
	if _, err := f.svc.ClaimWonEnglishAuction(ctx, "sword", "alice", core.Owner()); err != nil {
		t.Fatalf("claim after extension error = %v", err)
	}
}

func TestJournalSequenceOrdering(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.items.Issue("sword", "alice")
	f.balances.Fund("bob", 1000)

	if _, err := f.svc.StartAuction(ctx, "sword", "alice", core.Owner(), openParams()); err != nil {
		t.Fatalf("StartAuction() error = %v", err)
	}
	if _, err := f.svc.MakeBid(ctx, "sword", "bob", 100); err != nil {
		t.Fatalf("bid error = %v", err)
	}
	f.advance(5 * time.Minute)
	if _, err := f.svc.GetAuction(ctx, "sword"); !errors.Is(err, auction.ErrNotFound) {
		t.Fatalf("GetAuction() after expiry = %v, want lazy completion", err)
	}

	events, err := f.store.ListEvents(ctx, 0, 10)
	if err != nil {
		t.Fatalf("ListEvents() error = %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("journal has %d events, want 3", len(events))
	}
	for i := 1; i < len(events); i++ {
		if events[i].Seq <= events[i-1].Seq {
			t.Fatalf("journal sequence not strictly increasing: %d then %d", events[i-1].Seq, events[i].Seq)
		}
	}
	wantTypes := []string{"market.auction_started", "market.bid_placed", "market.auction_completed"}
	for i, want := range wantTypes {
		if string(events[i].Type) != want {
			t.Fatalf("event %d type = %s, want %s", i, events[i].Type, want)
		}
	}
}

func TestScheduledAuctionRejectsEarlyBid(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.items.Issue("sword", "alice")
	f.balances.Fund("bob", 1000)

	params := openParams()
	params.StartsAt = f.now.Add(time.Hour)
	if _, err := f.svc.StartAuction(ctx, "sword", "alice", core.Owner(), params); err != nil {
		t.Fatalf("StartAuction() error = %v", err)
	}
	if _, err := f.svc.MakeBid(ctx, "sword", "bob", 100); !errors.Is(err, auction.ErrNotStarted) {
		t.Fatalf("early bid error = %v, want %v", err, auction.ErrNotStarted)
	}

	f.advance(time.Hour)
	if _, err := f.svc.MakeBid(ctx, "sword", "bob", 100); err != nil {
		t.Fatalf("bid after start error = %v", err)
	}
}
