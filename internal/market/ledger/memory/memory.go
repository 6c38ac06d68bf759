// Package memory provides an in-process ledger used by tests and the
// simulation CLI. It applies the same reserve/slash/deposit discipline the
// production ledger enforces, with deterministic sequential semantics.
package memory

import (
	"context"
	"sync"

	"github.com/louisbranch/gavel/internal/market/domain/core"
	"github.com/louisbranch/gavel/internal/market/ledger"
)

// Ledger is an in-memory balance ledger.
type Ledger struct {
	mu       sync.Mutex
	free     map[core.AccountID]core.Amount
	reserved map[core.AccountID]core.Amount
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{
		free:     make(map[core.AccountID]core.Amount),
		reserved: make(map[core.AccountID]core.Amount),
	}
}

// Fund credits the account's free balance. It exists for test and
// simulation setup; the engine itself only deposits through
// DepositCreating.
func (l *Ledger) Fund(account core.AccountID, amount core.Amount) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.free[account] += amount
}

// FreeBalance returns the account's unreserved balance.
func (l *Ledger) FreeBalance(account core.AccountID) core.Amount {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.free[account]
}

// ReservedBalance returns the account's reserved balance.
func (l *Ledger) ReservedBalance(account core.AccountID) core.Amount {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reserved[account]
}

// CanReserve reports whether the free balance covers the amount.
func (l *Ledger) CanReserve(ctx context.Context, account core.AccountID, amount core.Amount) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.free[account] >= amount, nil
}

// Reserve locks amount on the account.
func (l *Ledger) Reserve(ctx context.Context, account core.AccountID, amount core.Amount) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.free[account] < amount {
		return ledger.ErrInsufficientFunds
	}
	l.free[account] -= amount
	l.reserved[account] += amount
	return nil
}

// Unreserve releases a previously reserved amount.
func (l *Ledger) Unreserve(ctx context.Context, account core.AccountID, amount core.Amount) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.reserved[account] < amount {
		return ledger.ErrInsufficientFunds
	}
	l.reserved[account] -= amount
	l.free[account] += amount
	return nil
}

// SlashReserved permanently debits a reserved amount.
func (l *Ledger) SlashReserved(ctx context.Context, account core.AccountID, amount core.Amount) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.reserved[account] < amount {
		return ledger.ErrInsufficientFunds
	}
	l.reserved[account] -= amount
	return nil
}

// DepositCreating credits the account, creating it if needed.
func (l *Ledger) DepositCreating(ctx context.Context, account core.AccountID, amount core.Amount) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.free[account] += amount
	return nil
}

// CanSlash reports whether the reserved balance covers the amount.
func (l *Ledger) CanSlash(ctx context.Context, account core.AccountID, amount core.Amount) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reserved[account] >= amount, nil
}
