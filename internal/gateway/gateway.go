// Package gateway defines the data store contract consumed by the
// interchange subsystem and provides an HTTP client implementation of it.
//
// The gateway is treated as an at-least-once, possibly slow, non-
// transactional service: list and create calls may fail independently, and
// all consistency (dedup, foreign-key remapping) is enforced by the caller.
package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/JonMunkholm/stow/internal/inventory"
)

// ErrUnavailable indicates the data store could not be reached at all, as
// opposed to rejecting an individual request. Import treats this as fatal
// when it occurs before any write.
var ErrUnavailable = errors.New("data store unreachable")

// Gateway is the CRUD surface the interchange subsystem needs. It is
// satisfied by the HTTP Client for remote use and by store.Store for
// in-process use on the server.
type Gateway interface {
	ListLocations(ctx context.Context) ([]inventory.Location, error)
	ListTotes(ctx context.Context) ([]inventory.Tote, error)
	ListItems(ctx context.Context) ([]inventory.Item, error)
	ListUsers(ctx context.Context) ([]inventory.User, error)

	CreateLocation(ctx context.Context, params inventory.LocationParams) (inventory.Location, error)
	CreateTote(ctx context.Context, params inventory.ToteParams) (inventory.Tote, error)
	// CreateItem creates an item inside toteID, or unscoped when toteID is
	// empty (the item is orphaned, not rejected).
	CreateItem(ctx context.Context, params inventory.ItemParams, toteID string) (inventory.Item, error)
	CreateUser(ctx context.Context, params inventory.UserParams) (inventory.User, error)
}

// APIError is a non-transport rejection from the data store, e.g. a
// validation failure on a single create call.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("data store rejected request (HTTP %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("data store rejected request (HTTP %d)", e.Status)
}
