package interchange

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/JonMunkholm/stow/internal/archive"
	"github.com/JonMunkholm/stow/internal/csv"
	"github.com/JonMunkholm/stow/internal/gateway"
	"github.com/JonMunkholm/stow/internal/inventory"
)

// Column orders are part of the archive format; see the package docs.
var (
	locationHeaders = []string{"id", "name", "description"}
	toteHeaders     = []string{"id", "name", "description", "location", "location_id", "metadata_json", "items_count"}
	itemHeaders     = []string{
		"id", "name", "description", "quantity", "tote_id", "image_url",
		"is_checked_out", "checked_out_at", "checked_out_by_id", "checked_out_by_email", "checked_out_by_name",
	}
	userHeaders = []string{"id", "email", "full_name", "is_active", "is_superuser", "account_id", "created_at", "updated_at"}
)

// Export reads the full dataset from the gateway and returns it as a zip
// archive containing the four CSV documents. The four reads have no ordering
// dependency and run concurrently; any read failure fails the export.
func Export(ctx context.Context, gw gateway.Gateway) ([]byte, error) {
	var (
		locations []inventory.Location
		totes     []inventory.Tote
		items     []inventory.Item
		users     []inventory.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		locations, err = gw.ListLocations(gctx)
		return err
	})
	g.Go(func() (err error) {
		totes, err = gw.ListTotes(gctx)
		return err
	})
	g.Go(func() (err error) {
		items, err = gw.ListItems(gctx)
		return err
	})
	g.Go(func() (err error) {
		users, err = gw.ListUsers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("export: read destination data: %w", err)
	}

	blob, err := archive.Pack(map[string]string{
		archive.MemberLocations: csv.Encode(locationRows(locations), locationHeaders),
		archive.MemberTotes:     csv.Encode(toteRows(totes, locations), toteHeaders),
		archive.MemberItems:     csv.Encode(itemRows(items), itemHeaders),
		archive.MemberUsers:     csv.Encode(userRows(users), userHeaders),
	})
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	slog.Info("export complete",
		"locations", len(locations),
		"totes", len(totes),
		"items", len(items),
		"users", len(users),
		"bytes", len(blob),
	)
	return blob, nil
}

func locationRows(locations []inventory.Location) []map[string]any {
	rows := make([]map[string]any, len(locations))
	for i, l := range locations {
		rows[i] = map[string]any{
			"id":          l.ID,
			"name":        l.Name,
			"description": l.Description,
		}
	}
	return rows
}

func toteRows(totes []inventory.Tote, locations []inventory.Location) []map[string]any {
	locationName := make(map[string]string, len(locations))
	for _, l := range locations {
		locationName[l.ID] = l.Name
	}

	rows := make([]map[string]any, len(totes))
	for i, t := range totes {
		// Prefer the legacy display string; fall back to resolving the
		// location_id so older consumers of the archive still see a name.
		display := inventory.Deref(t.Location)
		if display == "" && t.LocationID != nil {
			display = locationName[*t.LocationID]
		}
		rows[i] = map[string]any{
			"id":            t.ID,
			"name":          inventory.Deref(t.Name),
			"description":   inventory.Deref(t.Description),
			"location":      display,
			"location_id":   inventory.Deref(t.LocationID),
			"metadata_json": inventory.Deref(t.MetadataJSON),
			"items_count":   len(t.Items),
		}
	}
	return rows
}

func itemRows(items []inventory.Item) []map[string]any {
	rows := make([]map[string]any, len(items))
	for i, it := range items {
		row := map[string]any{
			"id":                   it.ID,
			"name":                 it.Name,
			"description":          it.Description,
			"quantity":             it.Quantity,
			"tote_id":              inventory.Deref(it.ToteID),
			"image_url":            it.ImageURL,
			"is_checked_out":       it.IsCheckedOut,
			"checked_out_at":       formatTime(it.CheckedOutAt),
			"checked_out_by_id":    "",
			"checked_out_by_email": "",
			"checked_out_by_name":  "",
		}
		if by := it.CheckedOutBy; by != nil {
			row["checked_out_by_id"] = by.ID
			row["checked_out_by_email"] = by.Email
			row["checked_out_by_name"] = by.FullName
		}
		rows[i] = row
	}
	return rows
}

func userRows(users []inventory.User) []map[string]any {
	rows := make([]map[string]any, len(users))
	for i, u := range users {
		rows[i] = map[string]any{
			"id":           u.ID,
			"email":        u.Email,
			"full_name":    u.FullName,
			"is_active":    u.IsActive,
			"is_superuser": u.IsSuperuser,
			"account_id":   u.AccountID,
			"created_at":   formatTime(u.CreatedAt),
			"updated_at":   formatTime(u.UpdatedAt),
		}
	}
	return rows
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
