package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/JonMunkholm/stow/internal/inventory"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const itemColumns = `
	i.id, i.name, i.description, i.quantity, i.tote_id, i.image_url,
	i.is_checked_out, i.checked_out_at,
	u.id, u.email, u.full_name`

const itemFrom = `
	FROM items i
	LEFT JOIN users u ON u.id = i.checked_out_by`

func scanItem(row pgx.Row) (inventory.Item, error) {
	var (
		it        inventory.Item
		userID    *string
		userEmail *string
		userName  *string
	)
	err := row.Scan(
		&it.ID, &it.Name, &it.Description, &it.Quantity, &it.ToteID,
		&it.ImageURL, &it.IsCheckedOut, &it.CheckedOutAt,
		&userID, &userEmail, &userName,
	)
	if err != nil {
		return inventory.Item{}, err
	}
	if userID != nil {
		it.CheckedOutBy = &inventory.CheckoutUser{
			ID:       *userID,
			Email:    inventory.Deref(userEmail),
			FullName: inventory.Deref(userName),
		}
	}
	return it, nil
}

func (s *Store) queryItems(ctx context.Context, where string, args ...any) ([]inventory.Item, error) {
	rows, err := s.pool.Query(ctx, `SELECT`+itemColumns+itemFrom+where+` ORDER BY i.name`, args...)
	if err != nil {
		return nil, fmt.Errorf("store: list items: %w", err)
	}
	defer rows.Close()

	items := []inventory.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list items: %w", err)
	}
	return items, nil
}

// ListItems returns every item, orphans included.
func (s *Store) ListItems(ctx context.Context) ([]inventory.Item, error) {
	return s.queryItems(ctx, ``)
}

func (s *Store) listItemsByTote(ctx context.Context, toteID string) ([]inventory.Item, error) {
	return s.queryItems(ctx, ` WHERE i.tote_id = $1`, toteID)
}

// CreateItem inserts a new item. An empty toteID creates an orphan; a
// non-empty one must reference an existing tote.
func (s *Store) CreateItem(ctx context.Context, params inventory.ItemParams, toteID string) (inventory.Item, error) {
	it := inventory.Item{
		ID:          uuid.NewString(),
		Name:        params.Name,
		Description: params.Description,
		Quantity:    params.Quantity,
	}
	if toteID != "" {
		it.ToteID = &toteID
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO items (id, name, description, quantity, tote_id)
		VALUES ($1, $2, $3, $4, $5)`,
		it.ID, it.Name, it.Description, it.Quantity, it.ToteID)
	if err != nil {
		return inventory.Item{}, fmt.Errorf("store: create item: %w", err)
	}
	return it, nil
}

// GetItem fetches one item by id.
func (s *Store) GetItem(ctx context.Context, id string) (inventory.Item, error) {
	it, err := scanItem(s.pool.QueryRow(ctx, `SELECT`+itemColumns+itemFrom+` WHERE i.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return inventory.Item{}, ErrNotFound
	}
	if err != nil {
		return inventory.Item{}, fmt.Errorf("store: get item: %w", err)
	}
	return it, nil
}

// DeleteItem removes an item.
func (s *Store) DeleteItem(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("store: delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
