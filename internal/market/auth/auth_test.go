package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/louisbranch/gavel/internal/market/domain/core"
	"github.com/louisbranch/gavel/internal/market/ownership"
	ownershipmem "github.com/louisbranch/gavel/internal/market/ownership/memory"
)

func TestAuthorize(t *testing.T) {
	items := ownershipmem.New()
	items.Issue("item-1", "alice")
	delegations := NewDelegations(items)
	delegations.Grant("item-1", "broker")

	tests := []struct {
		name    string
		origin  core.AccountID
		actor   core.Actor
		itemID  core.ItemID
		want    core.AccountID
		wantErr error
	}{
		{name: "owner", origin: "alice", actor: core.Owner(), itemID: "item-1", want: "alice"},
		{name: "owner impersonation", origin: "bob", actor: core.Owner(), itemID: "item-1", wantErr: ErrAuthorizationFailed},
		{name: "granted agent", origin: "broker", actor: core.Agent("broker"), itemID: "item-1", want: "alice"},
		{name: "agent credential mismatch", origin: "bob", actor: core.Agent("broker"), itemID: "item-1", wantErr: ErrAuthorizationFailed},
		{name: "agent without grant", origin: "scalper", actor: core.Agent("scalper"), itemID: "item-1", wantErr: ErrAuthorizationFailed},
		{name: "unspecified actor", origin: "alice", actor: core.Actor{}, itemID: "item-1", wantErr: ErrAuthorizationFailed},
		{name: "unknown item", origin: "alice", actor: core.Owner(), itemID: "ghost", wantErr: ownership.ErrItemNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := delegations.Authorize(context.Background(), tc.origin, tc.actor, tc.itemID)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("Authorize() error = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Authorize() error = %v", err)
			}
			if got != tc.want {
				t.Fatalf("Authorize() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestRevoke(t *testing.T) {
	items := ownershipmem.New()
	items.Issue("item-1", "alice")
	delegations := NewDelegations(items)
	delegations.Grant("item-1", "broker")
	delegations.Revoke("item-1", "broker")

	_, err := delegations.Authorize(context.Background(), "broker", core.Agent("broker"), "item-1")
	if !errors.Is(err, ErrAuthorizationFailed) {
		t.Fatalf("Authorize() after revoke = %v, want %v", err, ErrAuthorizationFailed)
	}
}
