package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/JonMunkholm/stow/internal/inventory"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ListLocations returns every location ordered by name.
func (s *Store) ListLocations(ctx context.Context) ([]inventory.Location, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, description
		FROM locations
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("store: list locations: %w", err)
	}
	defer rows.Close()

	locations := []inventory.Location{}
	for rows.Next() {
		var l inventory.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Description); err != nil {
			return nil, fmt.Errorf("store: scan location: %w", err)
		}
		locations = append(locations, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list locations: %w", err)
	}
	return locations, nil
}

// CreateLocation inserts a new location and returns it.
func (s *Store) CreateLocation(ctx context.Context, params inventory.LocationParams) (inventory.Location, error) {
	l := inventory.Location{
		ID:          uuid.NewString(),
		Name:        params.Name,
		Description: params.Description,
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO locations (id, name, description)
		VALUES ($1, $2, $3)`,
		l.ID, l.Name, l.Description)
	if err != nil {
		return inventory.Location{}, fmt.Errorf("store: create location: %w", err)
	}
	return l, nil
}

// GetLocation fetches one location by id.
func (s *Store) GetLocation(ctx context.Context, id string) (inventory.Location, error) {
	var l inventory.Location
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, description
		FROM locations
		WHERE id = $1`, id).Scan(&l.ID, &l.Name, &l.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return inventory.Location{}, ErrNotFound
	}
	if err != nil {
		return inventory.Location{}, fmt.Errorf("store: get location: %w", err)
	}
	return l, nil
}

// DeleteLocation removes a location. Totes that referenced it keep their
// display name but lose the link.
func (s *Store) DeleteLocation(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("store: delete location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
