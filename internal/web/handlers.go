package web

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/JonMunkholm/stow/internal/inventory"
	"github.com/go-chi/chi/v5"
)

// decodeBody decodes a JSON request body into v, capped at 1MB.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// --- Locations ---

func (s *Server) handleListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := s.store.ListLocations(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, locations)
}

func (s *Server) handleCreateLocation(w http.ResponseWriter, r *http.Request) {
	var params inventory.LocationParams
	if err := decodeBody(w, r, &params); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	params.Name = strings.TrimSpace(params.Name)
	if params.Name == "" {
		writeError(w, http.StatusUnprocessableEntity, "name is required")
		return
	}
	location, err := s.store.CreateLocation(r.Context(), params)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, location)
}

func (s *Server) handleGetLocation(w http.ResponseWriter, r *http.Request) {
	location, err := s.store.GetLocation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, location)
}

func (s *Server) handleDeleteLocation(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteLocation(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Totes ---

func (s *Server) handleListTotes(w http.ResponseWriter, r *http.Request) {
	totes, err := s.store.ListTotes(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, totes)
}

func (s *Server) handleCreateTote(w http.ResponseWriter, r *http.Request) {
	var params inventory.ToteParams
	if err := decodeBody(w, r, &params); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	tote, err := s.store.CreateTote(r.Context(), params)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tote)
}

func (s *Server) handleGetTote(w http.ResponseWriter, r *http.Request) {
	tote, err := s.store.GetTote(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tote)
}

func (s *Server) handleDeleteTote(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteTote(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Items ---

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.ListItems(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	s.createItem(w, r, "")
}

func (s *Server) handleCreateToteItem(w http.ResponseWriter, r *http.Request) {
	s.createItem(w, r, chi.URLParam(r, "toteID"))
}

func (s *Server) createItem(w http.ResponseWriter, r *http.Request, toteID string) {
	var params inventory.ItemParams
	if err := decodeBody(w, r, &params); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	params.Name = strings.TrimSpace(params.Name)
	if params.Name == "" {
		writeError(w, http.StatusUnprocessableEntity, "name is required")
		return
	}
	item, err := s.store.CreateItem(r.Context(), params, toteID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	item, err := s.store.GetItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Users ---

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.ListUsers(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var params inventory.UserParams
	if err := decodeBody(w, r, &params); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(params.Email) == "" {
		writeError(w, http.StatusUnprocessableEntity, "email is required")
		return
	}
	if len(params.Password) < 8 {
		writeError(w, http.StatusUnprocessableEntity, "password must be at least 8 characters")
		return
	}
	user, err := s.store.CreateUser(r.Context(), params)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}
