// Package inventory defines the entity types shared by the data store, the
// gateway client, and the interchange subsystem.
//
// IDs are destination-assigned UUID strings. An ID read out of an archive is
// an archive identity from whatever system produced the export; it is only
// meaningful as a key in the remapping tables built during one import run
// and is never written into the destination.
package inventory

import "time"

// Location is a physical place that holds totes.
type Location struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Tote is a container of items, optionally assigned to a location.
// Name is nullable: unnamed totes are legal and have no natural key, so
// imports always create them fresh rather than reconciling by name.
type Tote struct {
	ID           string  `json:"id"`
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	Location     *string `json:"location"` // legacy display name, superseded by LocationID
	LocationID   *string `json:"location_id"`
	MetadataJSON *string `json:"metadata_json"` // free-text contents field; not parsed as JSON
	Items        []Item  `json:"items,omitempty"`
}

// Item is a tracked object. ToteID is nullable: an item with no tote is
// orphaned, either by design or because its tote could not be resolved
// during an import.
type Item struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description,omitempty"`
	Quantity     int           `json:"quantity"`
	ToteID       *string       `json:"tote_id"`
	ImageURL     string        `json:"image_url,omitempty"`
	IsCheckedOut bool          `json:"is_checked_out"`
	CheckedOutAt *time.Time    `json:"checked_out_at,omitempty"`
	CheckedOutBy *CheckoutUser `json:"checked_out_by,omitempty"`
}

// CheckoutUser identifies who has an item checked out. Carried through
// export for audit; never replayed on import, since checkout is live state
// owned by the data store.
type CheckoutUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
}

// User is an account in the destination.
type User struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name,omitempty"`
	IsActive    bool       `json:"is_active"`
	IsSuperuser bool       `json:"is_superuser"`
	AccountID   string     `json:"account_id,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// LocationParams are the fields accepted when creating a location.
type LocationParams struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ToteParams are the fields accepted when creating a tote. Pointer fields
// serialize as JSON null when unset, which the API treats as absent.
type ToteParams struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	LocationID  *string `json:"location_id"`
}

// ItemParams are the fields accepted when creating an item. The tote, if
// any, is addressed separately so the same params work for scoped and
// orphaned creation.
type ItemParams struct {
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	Description string `json:"description,omitempty"`
}

// UserParams are the fields accepted when provisioning a user.
type UserParams struct {
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
	Password string `json:"password"`
}

// StringPtr returns a pointer to s, or nil if s is empty. The API encodes
// absent optional strings as JSON null rather than "".
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the value of p, or "" if p is nil.
func Deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
