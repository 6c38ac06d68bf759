// Package service orchestrates the market engine: it resolves expired
// auctions lazily, validates every operation fully before the first write,
// moves funds through the settlement engine, and appends one journal event
// per successful entry point.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/gavel/internal/market/domain/core"
	"github.com/louisbranch/gavel/internal/market/domain/policy"
	"github.com/louisbranch/gavel/internal/market/event"
	"github.com/louisbranch/gavel/internal/market/ledger"
	"github.com/louisbranch/gavel/internal/market/ownership"
	"github.com/louisbranch/gavel/internal/market/settlement"
	"github.com/louisbranch/gavel/internal/market/storage"
)

// Authorizer validates that the calling credential matches the claimed actor
// and that the actor may operate on the item. It returns the account the
// operation is performed on behalf of.
type Authorizer interface {
	Authorize(ctx context.Context, origin core.AccountID, actor core.Actor, itemID core.ItemID) (core.AccountID, error)
}

// Config assembles the collaborators a market service needs.
type Config struct {
	Store      storage.Store
	Ledger     ledger.Ledger
	Items      ownership.Registry
	Authorizer Authorizer

	// PlatformFeeBps is the platform's cut of every settled sale.
	PlatformFeeBps core.Bps

	// Bounds of zero value means policy.Default().
	Bounds policy.Bounds

	// Clock of nil means time.Now. Tests and simulations inject fixed or
	// logical clocks here.
	Clock func() time.Time
}

// Service is the market engine's single entry-point surface. Operations are
// applied sequentially; callers serialize access per item.
type Service struct {
	store  storage.Store
	ledger ledger.Ledger
	items  ownership.Registry
	auth   Authorizer
	settle *settlement.Engine
	bounds policy.Bounds
	clock  func() time.Time
	tracer trace.Tracer
}

// New creates a market service from the config.
func New(cfg Config) (*Service, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cfg.Ledger == nil {
		return nil, fmt.Errorf("ledger is required")
	}
	if cfg.Items == nil {
		return nil, fmt.Errorf("ownership registry is required")
	}
	if cfg.Authorizer == nil {
		return nil, fmt.Errorf("authorizer is required")
	}

	bounds := cfg.Bounds
	if bounds == (policy.Bounds{}) {
		bounds = policy.Default()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	return &Service{
		store:  cfg.Store,
		ledger: cfg.Ledger,
		items:  cfg.Items,
		auth:   cfg.Authorizer,
		settle: settlement.NewEngine(cfg.Ledger, cfg.Items, cfg.PlatformFeeBps),
		bounds: bounds,
		clock:  clock,
		tracer: otel.Tracer("gavel/market"),
	}, nil
}

func (s *Service) now() time.Time {
	return s.clock().UTC()
}

func (s *Service) span(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name)
}

// appendEvent journals one entry for a successful operation. The payload is
// JSON-encoded; a nil payload journals an empty object.
func (s *Service) appendEvent(ctx context.Context, itemID core.ItemID, typ event.Type, actor string, payload any) error {
	var raw []byte
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode %s payload: %w", typ, err)
		}
		raw = encoded
	}
	_, err := s.store.AppendEvent(ctx, event.Event{
		ItemID:      string(itemID),
		Type:        typ,
		Timestamp:   s.now(),
		Actor:       actor,
		PayloadJSON: raw,
	})
	if err != nil {
		return fmt.Errorf("journal %s: %w", typ, err)
	}
	return nil
}
