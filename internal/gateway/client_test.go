package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JonMunkholm/stow/internal/inventory"
)

func TestClient_ListLocations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/locations" {
			t.Errorf("path = %s, want /api/locations", r.URL.Path)
		}
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if got := r.Header.Get("X-API-Key"); got != "secret" {
			t.Errorf("X-API-Key = %q, want %q", got, "secret")
		}
		json.NewEncoder(w).Encode([]inventory.Location{{ID: "L1", Name: "Garage"}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret")
	locs, err := c.ListLocations(context.Background())
	if err != nil {
		t.Fatalf("ListLocations() error = %v", err)
	}
	if len(locs) != 1 || locs[0].Name != "Garage" {
		t.Errorf("locations = %+v", locs)
	}
}

func TestClient_CreateItem_Routing(t *testing.T) {
	tests := []struct {
		name     string
		toteID   string
		wantPath string
	}{
		{"scoped", "T-123", "/api/totes/T-123/items"},
		{"orphaned", "", "/api/items"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				var params inventory.ItemParams
				if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
					t.Errorf("decode body: %v", err)
				}
				if params.Name != "Hammer" || params.Quantity != 2 {
					t.Errorf("params = %+v", params)
				}
				json.NewEncoder(w).Encode(inventory.Item{ID: "I1", Name: params.Name, Quantity: params.Quantity})
			}))
			defer srv.Close()

			c := NewClient(srv.URL, "")
			item, err := c.CreateItem(context.Background(), inventory.ItemParams{Name: "Hammer", Quantity: 2}, tt.toteID)
			if err != nil {
				t.Fatalf("CreateItem() error = %v", err)
			}
			if gotPath != tt.wantPath {
				t.Errorf("path = %s, want %s", gotPath, tt.wantPath)
			}
			if item.ID != "I1" {
				t.Errorf("item.ID = %s, want I1", item.ID)
			}
		})
	}
}

func TestClient_RejectionIsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"name must not be blank"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.CreateLocation(context.Background(), inventory.LocationParams{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want APIError", err)
	}
	if apiErr.Status != http.StatusUnprocessableEntity {
		t.Errorf("Status = %d, want 422", apiErr.Status)
	}
	if apiErr.Message != "name must not be blank" {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if errors.Is(err, ErrUnavailable) {
		t.Error("a rejection must not look like an unreachable store")
	}
}

func TestClient_UnreachableIsErrUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // shut down before use

	c := NewClient(srv.URL, "")
	_, err := c.ListTotes(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable", err)
	}
}

func TestClient_ExportArchive(t *testing.T) {
	blob := []byte{0x50, 0x4b, 0x03, 0x04, 0xff}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/export" {
			t.Errorf("path = %s, want /api/export", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/zip")
		w.Write(blob)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	got, err := c.ExportArchive(context.Background())
	if err != nil {
		t.Fatalf("ExportArchive() error = %v", err)
	}
	if string(got) != string(blob) {
		t.Errorf("blob mismatch: got %v", got)
	}
}
