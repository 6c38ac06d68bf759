package stat

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/gavel/internal/market/domain/auction"
	"github.com/louisbranch/gavel/internal/market/domain/core"
	"github.com/louisbranch/gavel/internal/market/event"
	"github.com/louisbranch/gavel/internal/market/storage/sqlite"
)

func TestParseConfig(t *testing.T) {
	fs := flag.NewFlagSet("marketstat", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-db", "market.db", "-json", "-events", "5"})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.DBPath != "market.db" || !cfg.JSON || cfg.Events != 5 {
		t.Fatalf("ParseConfig() = %+v", cfg)
	}
}

func TestParseConfigRejectsNegativeEvents(t *testing.T) {
	fs := flag.NewFlagSet("marketstat", flag.ContinueOnError)
	if _, err := ParseConfig(fs, []string{"-events", "-1"}); err == nil {
		t.Fatal("ParseConfig() with negative events must fail")
	}
}

func seedStore(t *testing.T, path string) {
	t.Helper()
	store, err := sqlite.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	a := auction.Start("sword", "alice", core.Owner(), 0, auction.Params{
		Kind:            auction.KindOpen,
		BidLockDuration: time.Minute,
		StartingPrice:   100,
		MinimalBidStep:  10,
	}, now)
	if err := store.PutAuction(ctx, a); err != nil {
		t.Fatalf("PutAuction() error = %v", err)
	}
	if _, err := store.AppendEvent(ctx, event.Event{
		ItemID:    "sword",
		Type:      event.TypeAuctionStarted,
		Timestamp: now,
		Actor:     "owner",
	}); err != nil {
		t.Fatalf("AppendEvent() error = %v", err)
	}
}

func TestRunText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "market.db")
	seedStore(t, path)

	var out bytes.Buffer
	cfg := Config{DBPath: path, Events: 10}
	if err := Run(context.Background(), cfg, &out, &bytes.Buffer{}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	text := out.String()
	for _, want := range []string{"live auctions:      1", "journal events:     1", "market.auction_started"} {
		if !strings.Contains(text, want) {
			t.Fatalf("output missing %q\noutput:\n%s", want, text)
		}
	}
}

func TestRunJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "market.db")
	seedStore(t, path)

	var out bytes.Buffer
	cfg := Config{DBPath: path, JSON: true, Events: 10}
	if err := Run(context.Background(), cfg, &out, &bytes.Buffer{}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var rep struct {
		LiveAuctions  int64 `json:"live_auctions"`
		JournalEvents int64 `json:"journal_events"`
		Recent        []struct {
			Type string `json:"type"`
		} `json:"recent"`
	}
	if err := json.Unmarshal(out.Bytes(), &rep); err != nil {
		t.Fatalf("output is not JSON: %v\noutput:\n%s", err, out.String())
	}
	if rep.LiveAuctions != 1 || rep.JournalEvents != 1 {
		t.Fatalf("report = %+v", rep)
	}
	if len(rep.Recent) != 1 || rep.Recent[0].Type != "market.auction_started" {
		t.Fatalf("recent events = %+v", rep.Recent)
	}
}
