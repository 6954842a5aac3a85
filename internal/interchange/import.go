package interchange

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JonMunkholm/stow/internal/archive"
	"github.com/JonMunkholm/stow/internal/csv"
	"github.com/JonMunkholm/stow/internal/gateway"
	"github.com/JonMunkholm/stow/internal/inventory"
)

// Import unpacks blob and reconciles its contents into the destination
// behind gw. It returns a Report describing what was created and what was
// skipped. Existing destination entities are never mutated or deleted.
//
// Only two conditions are fatal: a corrupt archive, and a gateway failure
// during the initial destination reads (before any write). Everything else
// is folded into Report.Notes.
//
// The four phases run strictly in dependency order -- locations, users,
// totes, items -- because later phases consume the index and remapping
// tables built by earlier ones. Those tables are owned by this call and
// discarded when it returns.
func Import(ctx context.Context, gw gateway.Gateway, blob []byte, opts Options) (*Report, error) {
	documents, err := archive.Unpack(blob)
	if err != nil {
		return nil, err
	}

	decoded := make(map[string]*csv.Document, len(documents))
	for name, text := range documents {
		doc := csv.Decode(text)
		decoded[name] = &doc
	}

	// Snapshot the destination once up front. Reconciliation works against
	// this snapshot plus entities created during the run, never by querying
	// the gateway per row.
	existingLocations, err := gw.ListLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("import: read destination locations: %w", err)
	}
	existingTotes, err := gw.ListTotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("import: read destination totes: %w", err)
	}

	imp := &importer{gw: gw, report: newReport()}

	locationIndex := imp.importLocations(ctx, decoded[archive.MemberLocations], existingLocations)

	if opts.IncludeUsers && decoded[archive.MemberUsers] != nil {
		if err := imp.importUsers(ctx, decoded[archive.MemberUsers]); err != nil {
			// User provisioning is best-effort: a forbidden endpoint or a
			// broken users document must not block totes and items.
			imp.report.note("users import skipped due to error: %v", err)
		}
	}

	toteIDMap := imp.importTotes(ctx, decoded[archive.MemberTotes], existingTotes, locationIndex)

	imp.importItems(ctx, decoded[archive.MemberItems], toteIDMap)

	slog.Info("import complete",
		"locations_created", imp.report.LocationsCreated,
		"totes_created", imp.report.TotesCreated,
		"items_created", imp.report.ItemsCreated,
		"users_created", imp.report.UsersCreated,
		"notes", len(imp.report.Notes),
	)
	return imp.report, nil
}

// importer carries the gateway and the accumulating report through the
// phases of one import run.
type importer struct {
	gw     gateway.Gateway
	report *Report
}

// importLocations reconciles archive locations by exact name and returns
// the name-to-destination-id index the tote phase resolves against. The
// index is seeded from the destination snapshot so pre-existing locations
// resolve without creating duplicates.
//
// Rows with an empty name are skipped outright: an unnamed location is not
// a meaningful destination entity.
func (imp *importer) importLocations(ctx context.Context, doc *csv.Document, existing []inventory.Location) map[string]string {
	index := make(map[string]string, len(existing))
	for _, l := range existing {
		index[l.Name] = l.ID
	}
	if doc == nil {
		return index
	}

	for _, row := range doc.Rows {
		name := strings.TrimSpace(row["name"])
		if name == "" {
			continue
		}
		if _, ok := index[name]; ok {
			continue
		}

		created, err := imp.gw.CreateLocation(ctx, inventory.LocationParams{
			Name:        name,
			Description: row["description"],
		})
		if err != nil {
			imp.report.note("location %q: create failed: %v", name, err)
			continue
		}
		index[name] = created.ID
		imp.report.LocationsCreated++
	}
	return index
}

// importUsers provisions accounts for archive rows whose email does not
// already exist in the destination, compared case-insensitively. Created
// accounts get random placeholder passwords. An error from the initial user
// listing aborts just this phase; per-row failures are noted and skipped.
func (imp *importer) importUsers(ctx context.Context, doc *csv.Document) error {
	existing, err := imp.gw.ListUsers(ctx)
	if err != nil {
		return err
	}
	byEmail := make(map[string]struct{}, len(existing))
	for _, u := range existing {
		byEmail[strings.ToLower(u.Email)] = struct{}{}
	}

	for _, row := range doc.Rows {
		email := strings.ToLower(strings.TrimSpace(row["email"]))
		if email == "" {
			continue
		}
		if _, ok := byEmail[email]; ok {
			continue
		}

		password, err := generatePassword()
		if err != nil {
			return err
		}
		if _, err := imp.gw.CreateUser(ctx, inventory.UserParams{
			Email:    email,
			FullName: row["full_name"],
			Password: password,
		}); err != nil {
			imp.report.note("user %s: create failed: %v", email, err)
			continue
		}
		byEmail[email] = struct{}{}
		imp.report.UsersCreated++
	}
	return nil
}

// importTotes reconciles archive totes by name and returns the remapping
// table from archive tote id to destination tote id that the item phase
// resolves against.
//
// A tote's location is resolved through the archive's legacy display-name
// column against locationIndex; an unresolvable or absent location leaves
// the tote unassigned rather than failing the row. Unnamed totes have no
// natural key and are always created fresh.
func (imp *importer) importTotes(ctx context.Context, doc *csv.Document, existing []inventory.Tote, locationIndex map[string]string) map[string]string {
	index := make(map[string]string, len(existing))
	for _, t := range existing {
		if name := inventory.Deref(t.Name); name != "" {
			index[name] = t.ID
		}
	}

	idMap := make(map[string]string)
	if doc == nil {
		return idMap
	}

	for _, row := range doc.Rows {
		name := strings.TrimSpace(row["name"])
		oldID := strings.TrimSpace(row["id"])

		var locationID *string
		if locName := strings.TrimSpace(row["location"]); locName != "" {
			if id, ok := locationIndex[locName]; ok {
				locationID = &id
			}
		}

		if name == "" {
			created, err := imp.gw.CreateTote(ctx, inventory.ToteParams{
				Name:        nil,
				Description: inventory.StringPtr(row["description"]),
				LocationID:  locationID,
			})
			if err != nil {
				imp.report.note("unnamed tote (archive id %q): create failed: %v", oldID, err)
				continue
			}
			if oldID != "" {
				idMap[oldID] = created.ID
			}
			imp.report.TotesCreated++
			continue
		}

		if id, ok := index[name]; ok {
			if oldID != "" {
				idMap[oldID] = id
			}
			continue
		}

		created, err := imp.gw.CreateTote(ctx, inventory.ToteParams{
			Name:        &name,
			Description: inventory.StringPtr(row["description"]),
			LocationID:  locationID,
		})
		if err != nil {
			imp.report.note("tote %q: create failed: %v", name, err)
			continue
		}
		index[name] = created.ID
		if oldID != "" {
			idMap[oldID] = created.ID
		}
		imp.report.TotesCreated++
	}
	return idMap
}

// importItems creates one item per named archive row. Items have no natural
// key and are never deduplicated. A tote reference that does not resolve
// through toteIDMap produces an orphaned item, not a dropped row.
func (imp *importer) importItems(ctx context.Context, doc *csv.Document, toteIDMap map[string]string) {
	if doc == nil {
		return
	}

	for _, row := range doc.Rows {
		name := strings.TrimSpace(row["name"])
		if name == "" {
			continue
		}

		quantity := inventory.ParseIntDefault(row["quantity"], 1)
		toteID := toteIDMap[strings.TrimSpace(row["tote_id"])]

		if _, err := imp.gw.CreateItem(ctx, inventory.ItemParams{
			Name:        name,
			Quantity:    quantity,
			Description: row["description"],
		}, toteID); err != nil {
			imp.report.note("item %q: create failed: %v", name, err)
			continue
		}
		imp.report.ItemsCreated++
	}
}
