// Package sim runs a deterministic end-to-end market simulation: auctions,
// bids, buy-now, offers, and transfers against a sqlite store with a fixed
// logical clock. Running it twice against fresh stores produces identical
// journals, which is the engine's replay guarantee made visible.
package sim

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/louisbranch/gavel/internal/market/auth"
	"github.com/louisbranch/gavel/internal/market/domain/auction"
	"github.com/louisbranch/gavel/internal/market/domain/core"
	ledgermem "github.com/louisbranch/gavel/internal/market/ledger/memory"
	ownershipmem "github.com/louisbranch/gavel/internal/market/ownership/memory"
	"github.com/louisbranch/gavel/internal/market/service"
	"github.com/louisbranch/gavel/internal/market/storage/sqlite"
	"github.com/louisbranch/gavel/internal/platform/config"
	"github.com/louisbranch/gavel/internal/platform/otel"
)

// Config holds simulation command configuration.
type Config struct {
	DBPath string `env:"GAVEL_SIM_DB"      envDefault:":memory:"`
	FeeBps uint   `env:"GAVEL_SIM_FEE_BPS" envDefault:"500"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "sqlite database path")
	fs.UintVar(&cfg.FeeBps, "fee-bps", cfg.FeeBps, "platform fee in basis points")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the simulation.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}

	shutdown, err := otel.Setup(ctx, "marketsim")
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			fmt.Fprintf(errOut, "otel shutdown: %v\n", err)
		}
	}()

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	// Logical clock: the simulation owns time and advances it explicitly,
	// so every run replays the same sequence.
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	advance := func(d time.Duration) { now = now.Add(d) }

	balances := ledgermem.New()
	items := ownershipmem.New()
	delegations := auth.NewDelegations(items)

	svc, err := service.New(service.Config{
		Store:          store,
		Ledger:         balances,
		Items:          items,
		Authorizer:     delegations,
		PlatformFeeBps: core.Bps(cfg.FeeBps),
		Clock:          clock,
	})
	if err != nil {
		return err
	}

	const (
		alice = core.AccountID("alice")
		bob   = core.AccountID("bob")
		carol = core.AccountID("carol")
		dana  = core.AccountID("dana")

		emberblade = core.ItemID("emberblade")
		moonshard  = core.ItemID("moonshard")
		runestone  = core.ItemID("runestone")
	)

	items.IssueWithRoyalty(emberblade, alice, carol, 1000)
	items.Issue(moonshard, alice)
	items.Issue(runestone, bob)
	balances.Fund(bob, 5_000)
	balances.Fund(carol, 5_000)
	balances.Fund(dana, 5_000)

	fmt.Fprintln(out, "== english auction with royalty and anti-snipe ==")
	if _, err := svc.StartAuction(ctx, emberblade, alice, core.Owner(), auction.Params{
		Kind:            auction.KindEnglish,
		RoundDuration:   10 * time.Minute,
		ExtensionPeriod: 2 * time.Minute,
		StartingPrice:   500,
		MinimalBidStep:  50,
	}); err != nil {
		return fmt.Errorf("start english auction: %w", err)
	}
	if _, err := svc.MakeBid(ctx, emberblade, bob, 500); err != nil {
		return fmt.Errorf("first bid: %w", err)
	}
	advance(9 * time.Minute)
	result, err := svc.MakeBid(ctx, emberblade, dana, 600)
	if err != nil {
		return fmt.Errorf("snipe bid: %w", err)
	}
	fmt.Fprintf(out, "dana bid 600, round extended: %v\n", result.Auction.Extended > 0)
	advance(13 * time.Minute)
	receipt, err := svc.ClaimWonEnglishAuction(ctx, emberblade, alice, core.Owner())
	if err != nil {
		return fmt.Errorf("claim: %w", err)
	}
	printReceipt(out, "emberblade sold to dana", receipt.Amount, receipt.SellerProceeds, receipt.RoyaltyPaid, receipt.FeeRetained)

	fmt.Fprintln(out, "== open auction completed by buy-now ==")
	if _, err := svc.StartAuction(ctx, moonshard, alice, core.Owner(), auction.Params{
		Kind:            auction.KindOpen,
		BidLockDuration: 5 * time.Minute,
		StartingPrice:   200,
		MinimalBidStep:  20,
		BuyNowPrice:     1000,
	}); err != nil {
		return fmt.Errorf("start open auction: %w", err)
	}
	result, err = svc.MakeBid(ctx, moonshard, carol, 1000)
	if err != nil {
		return fmt.Errorf("buy-now bid: %w", err)
	}
	printReceipt(out, "moonshard bought now by carol", result.Receipt.Amount, result.Receipt.SellerProceeds, result.Receipt.RoyaltyPaid, result.Receipt.FeeRetained)

	fmt.Fprintln(out, "== direct offer ==")
	if _, err := svc.MakeOffer(ctx, runestone, dana, 300); err != nil {
		return fmt.Errorf("make offer: %w", err)
	}
	receipt, err = svc.AcceptOffer(ctx, runestone, bob, core.Owner(), dana)
	if err != nil {
		return fmt.Errorf("accept offer: %w", err)
	}
	printReceipt(out, "runestone sold to dana by offer", receipt.Amount, receipt.SellerProceeds, receipt.RoyaltyPaid, receipt.FeeRetained)

	fmt.Fprintln(out, "== pending transfer ==")
	if _, err := svc.StartTransfer(ctx, runestone, dana, core.Owner(), bob); err != nil {
		return fmt.Errorf("start transfer: %w", err)
	}
	if err := svc.AcceptIncomingTransfer(ctx, runestone, bob); err != nil {
		return fmt.Errorf("accept transfer: %w", err)
	}
	fmt.Fprintln(out, "runestone returned to bob with no payment")

	stats, err := store.MarketStatistics(ctx, nil)
	if err != nil {
		return fmt.Errorf("statistics: %w", err)
	}
	fmt.Fprintf(out, "\njournal events: %d, live auctions: %d, pending transfers: %d, open offers: %d\n",
		stats.JournalEvents, stats.LiveAuctions, stats.PendingTransfers, stats.OpenOffers)

	events, err := store.ListEvents(ctx, 0, int(stats.JournalEvents))
	if err != nil {
		return fmt.Errorf("list events: %w", err)
	}
	for _, evt := range events {
		fmt.Fprintf(out, "%3d %s %s %s %s\n", evt.Seq, evt.Timestamp.Format(time.RFC3339), evt.ItemID, evt.Type, evt.Actor)
	}
	return nil
}

func printReceipt(out io.Writer, label string, amount, proceeds, royalty, fee core.Amount) {
	fmt.Fprintf(out, "%s: amount=%d seller=%d royalty=%d fee=%d\n", label, amount, proceeds, royalty, fee)
}
