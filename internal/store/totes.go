package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/JonMunkholm/stow/internal/inventory"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ListTotes returns every tote with its items attached.
func (s *Store) ListTotes(ctx context.Context) ([]inventory.Tote, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, description, location, location_id, metadata_json
		FROM totes
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("store: list totes: %w", err)
	}
	defer rows.Close()

	totes := []inventory.Tote{}
	index := map[string]int{}
	for rows.Next() {
		var t inventory.Tote
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.Location, &t.LocationID, &t.MetadataJSON); err != nil {
			return nil, fmt.Errorf("store: scan tote: %w", err)
		}
		t.Items = []inventory.Item{}
		index[t.ID] = len(totes)
		totes = append(totes, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list totes: %w", err)
	}

	items, err := s.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if it.ToteID == nil {
			continue
		}
		if i, ok := index[*it.ToteID]; ok {
			totes[i].Items = append(totes[i].Items, it)
		}
	}
	return totes, nil
}

// CreateTote inserts a new tote. When a location link is given the
// location's name is denormalized into the display column so exports and
// listings can show it without a join.
func (s *Store) CreateTote(ctx context.Context, params inventory.ToteParams) (inventory.Tote, error) {
	t := inventory.Tote{
		ID:          uuid.NewString(),
		Name:        params.Name,
		Description: params.Description,
		LocationID:  params.LocationID,
		Items:       []inventory.Item{},
	}
	if t.LocationID != nil {
		loc, err := s.GetLocation(ctx, *t.LocationID)
		switch {
		case errors.Is(err, ErrNotFound):
			t.LocationID = nil
		case err != nil:
			return inventory.Tote{}, err
		default:
			t.Location = inventory.StringPtr(loc.Name)
		}
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO totes (id, name, description, location, location_id)
		VALUES ($1, $2, $3, $4, $5)`,
		t.ID, t.Name, t.Description, t.Location, t.LocationID)
	if err != nil {
		return inventory.Tote{}, fmt.Errorf("store: create tote: %w", err)
	}
	return t, nil
}

// GetTote fetches one tote by id, items included.
func (s *Store) GetTote(ctx context.Context, id string) (inventory.Tote, error) {
	var t inventory.Tote
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, description, location, location_id, metadata_json
		FROM totes
		WHERE id = $1`, id).
		Scan(&t.ID, &t.Name, &t.Description, &t.Location, &t.LocationID, &t.MetadataJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return inventory.Tote{}, ErrNotFound
	}
	if err != nil {
		return inventory.Tote{}, fmt.Errorf("store: get tote: %w", err)
	}
	t.Items, err = s.listItemsByTote(ctx, id)
	if err != nil {
		return inventory.Tote{}, err
	}
	return t, nil
}

// DeleteTote removes a tote. Its items survive as orphans.
func (s *Store) DeleteTote(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM totes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("store: delete tote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
