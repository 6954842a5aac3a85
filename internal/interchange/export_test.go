package interchange

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/JonMunkholm/stow/internal/archive"
	"github.com/JonMunkholm/stow/internal/csv"
	"github.com/JonMunkholm/stow/internal/inventory"
)

func TestExport_ProducesAllFourMembers(t *testing.T) {
	checkedOut := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	locID := "loc-1"
	toteName := "Bin A"

	gw := &fakeGateway{
		locations: []inventory.Location{{ID: locID, Name: "Garage", Description: "detached"}},
		totes: []inventory.Tote{{
			ID:         "tote-1",
			Name:       &toteName,
			LocationID: &locID,
			Items:      []inventory.Item{{ID: "item-1"}, {ID: "item-2"}},
		}},
		items: []inventory.Item{{
			ID:           "item-1",
			Name:         "Hammer, claw",
			Quantity:     2,
			ToteID:       inventory.StringPtr("tote-1"),
			IsCheckedOut: true,
			CheckedOutAt: &checkedOut,
			CheckedOutBy: &inventory.CheckoutUser{ID: "user-1", Email: "ops@example.com", FullName: "Ops Person"},
		}},
		users: []inventory.User{{ID: "user-1", Email: "ops@example.com", IsActive: true, IsSuperuser: true}},
	}

	blob, err := Export(context.Background(), gw)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	docs, err := archive.Unpack(blob)
	if err != nil {
		t.Fatalf("Unpack() error = %v", err)
	}
	for _, name := range archive.Members {
		if _, ok := docs[name]; !ok {
			t.Errorf("member %s missing from export", name)
		}
	}

	totes := csv.Decode(docs[archive.MemberTotes])
	if len(totes.Rows) != 1 {
		t.Fatalf("tote rows = %d, want 1", len(totes.Rows))
	}
	toteRow := totes.Rows[0]
	if toteRow["location"] != "Garage" {
		t.Errorf("tote location display = %q, want Garage (resolved from location_id)", toteRow["location"])
	}
	if toteRow["items_count"] != "2" {
		t.Errorf("items_count = %q, want 2", toteRow["items_count"])
	}

	items := csv.Decode(docs[archive.MemberItems])
	itemRow := items.Rows[0]
	if itemRow["name"] != "Hammer, claw" {
		t.Errorf("item name = %q (comma should survive quoting)", itemRow["name"])
	}
	if itemRow["is_checked_out"] != "true" {
		t.Errorf("is_checked_out = %q, want true", itemRow["is_checked_out"])
	}
	if itemRow["checked_out_at"] != "2026-03-14T09:30:00Z" {
		t.Errorf("checked_out_at = %q", itemRow["checked_out_at"])
	}
	if itemRow["checked_out_by_email"] != "ops@example.com" {
		t.Errorf("checked_out_by_email = %q", itemRow["checked_out_by_email"])
	}

	users := csv.Decode(docs[archive.MemberUsers])
	if users.Rows[0]["is_superuser"] != "true" {
		t.Errorf("is_superuser = %q, want true", users.Rows[0]["is_superuser"])
	}
}

func TestExport_ReadFailureIsFatal(t *testing.T) {
	gw := &fakeGateway{listUsersErr: errors.New("forbidden")}
	if _, err := Export(context.Background(), gw); err == nil {
		t.Fatal("Export() should fail when any read fails")
	}
}

// TestExportImport_RoundTrip moves a populated dataset into an empty
// destination and verifies the relationships survive the move.
func TestExportImport_RoundTrip(t *testing.T) {
	ctx := context.Background()

	source := &fakeGateway{}
	garage, _ := source.CreateLocation(ctx, inventory.LocationParams{Name: "Garage"})
	tote, _ := source.CreateTote(ctx, inventory.ToteParams{
		Name:       inventory.StringPtr("Bin A"),
		LocationID: &garage.ID,
	})
	// The archive carries the legacy display name, which import resolves.
	source.totes[0].Location = inventory.StringPtr("Garage")
	if _, err := source.CreateItem(ctx, inventory.ItemParams{Name: "Hammer", Quantity: 2}, tote.ID); err != nil {
		t.Fatal(err)
	}

	blob, err := Export(ctx, source)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	dest := &fakeGateway{}
	report, err := Import(ctx, dest, blob, Options{})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	if report.LocationsCreated != 1 || report.TotesCreated != 1 || report.ItemsCreated != 1 {
		t.Fatalf("report = %+v, want 1/1/1", report)
	}
	if got, want := inventory.Deref(dest.items[0].ToteID), dest.totes[0].ID; got != want {
		t.Errorf("item tote = %s, want %s", got, want)
	}
	if got, want := inventory.Deref(dest.totes[0].LocationID), dest.locations[0].ID; got != want {
		t.Errorf("tote location = %s, want %s", got, want)
	}
	// Destination assigned fresh identities.
	if dest.totes[0].ID == tote.ID && dest.locations[0].ID == garage.ID {
		// ids come from the same counter scheme in the fake, so equality is
		// possible; the FK chain checks above are the real assertion.
		t.Log("fake ids collided; FK assertions still hold")
	}
}
