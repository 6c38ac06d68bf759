package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/gavel/internal/market/domain/core"
	"github.com/louisbranch/gavel/internal/market/domain/transfer"
	"github.com/louisbranch/gavel/internal/market/storage"
)

// PutTransfer stores the pending transfer for an item.
func (s *Store) PutTransfer(ctx context.Context, p transfer.Pending) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(string(p.ItemID)) == "" {
		return fmt.Errorf("item id is required")
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO pending_transfers (item_id, recipient, created_at) VALUES (?, ?, ?)
ON CONFLICT(item_id) DO UPDATE SET
    recipient = excluded.recipient,
    created_at = excluded.created_at
`, string(p.ItemID), string(p.Recipient), toMillis(p.CreatedAt))
	if err != nil {
		return fmt.Errorf("put transfer: %w", err)
	}
	return nil
}

// GetTransfer retrieves the pending transfer for an item.
func (s *Store) GetTransfer(ctx context.Context, itemID core.ItemID) (transfer.Pending, error) {
	if err := ctx.Err(); err != nil {
		return transfer.Pending{}, err
	}
	if s == nil || s.sqlDB == nil {
		return transfer.Pending{}, fmt.Errorf("storage is not configured")
	}

	var recipient string
	var createdAt int64
	row := s.sqlDB.QueryRowContext(ctx,
		"SELECT recipient, created_at FROM pending_transfers WHERE item_id = ?", string(itemID))
	if err := row.Scan(&recipient, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return transfer.Pending{}, storage.ErrNotFound
		}
		return transfer.Pending{}, fmt.Errorf("get transfer: %w", err)
	}

	return transfer.Pending{
		ItemID:    itemID,
		Recipient: core.AccountID(recipient),
		CreatedAt: fromMillis(createdAt),
	}, nil
}

// DeleteTransfer removes the pending transfer for an item.
func (s *Store) DeleteTransfer(ctx context.Context, itemID core.ItemID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	if _, err := s.sqlDB.ExecContext(ctx, "DELETE FROM pending_transfers WHERE item_id = ?", string(itemID)); err != nil {
		return fmt.Errorf("delete transfer: %w", err)
	}
	return nil
}
