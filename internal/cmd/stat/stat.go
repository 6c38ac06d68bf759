// Package stat prints aggregate market statistics and recent journal events
// from a sqlite store.
package stat

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/louisbranch/gavel/internal/market/storage/sqlite"
	"github.com/louisbranch/gavel/internal/platform/config"
)

// Config holds stat command configuration.
type Config struct {
	DBPath string        `env:"GAVEL_DB"          envDefault:"gavel.db"`
	JSON   bool          `env:"GAVEL_STAT_JSON"`
	Since  time.Duration `env:"GAVEL_STAT_SINCE"`
	Events int           `env:"GAVEL_STAT_EVENTS" envDefault:"20"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "sqlite database path")
	fs.BoolVar(&cfg.JSON, "json", cfg.JSON, "emit JSON instead of text")
	fs.DurationVar(&cfg.Since, "since", cfg.Since, "count journal events within this window (0 = all time)")
	fs.IntVar(&cfg.Events, "events", cfg.Events, "number of recent journal events to print")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if cfg.Events < 0 {
		return Config{}, errors.New("events must not be negative")
	}
	return cfg, nil
}

type report struct {
	LiveAuctions     int64         `json:"live_auctions"`
	AuctionsWithBids int64         `json:"auctions_with_bids"`
	PendingTransfers int64         `json:"pending_transfers"`
	OpenOffers       int64         `json:"open_offers"`
	JournalEvents    int64         `json:"journal_events"`
	Recent           []reportEvent `json:"recent,omitempty"`
}

type reportEvent struct {
	Seq       uint64          `json:"seq"`
	ItemID    string          `json:"item_id"`
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Actor     string          `json:"actor"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// Run executes the stat command.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	var since *time.Time
	if cfg.Since > 0 {
		cutoff := time.Now().UTC().Add(-cfg.Since)
		since = &cutoff
	}

	stats, err := store.MarketStatistics(ctx, since)
	if err != nil {
		return fmt.Errorf("statistics: %w", err)
	}

	rep := report{
		LiveAuctions:     stats.LiveAuctions,
		AuctionsWithBids: stats.AuctionsWithBids,
		PendingTransfers: stats.PendingTransfers,
		OpenOffers:       stats.OpenOffers,
		JournalEvents:    stats.JournalEvents,
	}

	if cfg.Events > 0 {
		afterSeq := uint64(0)
		if stats.JournalEvents > int64(cfg.Events) {
			afterSeq = uint64(stats.JournalEvents - int64(cfg.Events))
		}
		events, err := store.ListEvents(ctx, afterSeq, cfg.Events)
		if err != nil {
			return fmt.Errorf("list events: %w", err)
		}
		for _, evt := range events {
			rep.Recent = append(rep.Recent, reportEvent{
				Seq:       evt.Seq,
				ItemID:    evt.ItemID,
				Type:      string(evt.Type),
				Timestamp: evt.Timestamp,
				Actor:     evt.Actor,
				Payload:   json.RawMessage(evt.PayloadJSON),
			})
		}
	}

	if cfg.JSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(rep)
	}

	fmt.Fprintf(out, "live auctions:      %d (%d with bids)\n", rep.LiveAuctions, rep.AuctionsWithBids)
	fmt.Fprintf(out, "pending transfers:  %d\n", rep.PendingTransfers)
	fmt.Fprintf(out, "open offers:        %d\n", rep.OpenOffers)
	fmt.Fprintf(out, "journal events:     %d\n", rep.JournalEvents)
	if len(rep.Recent) > 0 {
		fmt.Fprintln(out, "\nrecent events:")
		for _, evt := range rep.Recent {
			fmt.Fprintf(out, "%5d %s %-24s %-28s %s\n",
				evt.Seq, evt.Timestamp.Format(time.RFC3339), evt.ItemID, evt.Type, evt.Actor)
		}
	}
	return nil
}
