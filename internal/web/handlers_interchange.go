package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/JonMunkholm/stow/internal/interchange"
	"github.com/JonMunkholm/stow/internal/inventory"
)

// handleExport streams the full dataset as a zip archive download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	blob, err := interchange.Export(r.Context(), s.store)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	filename := fmt.Sprintf("inventory-export-%s.zip", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(blob)))
	w.Write(blob)
}

// handleImport accepts a multipart upload with an "archive" file field and an
// optional "include_users" flag, runs the import, and returns the report.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if err := s.imports.acquire(r.Context()); err != nil {
		if errors.Is(err, ErrTooManyImports) {
			w.Header().Set("Retry-After", "30")
			writeError(w, http.StatusTooManyRequests, err.Error())
			return
		}
		s.respondError(w, r, err)
		return
	}
	defer s.imports.release()

	maxSize := s.cfg.Import.MaxArchiveSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		writeError(w, http.StatusBadRequest, "upload too large or malformed")
		return
	}

	file, _, err := r.FormFile("archive")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing archive file")
		return
	}
	defer file.Close()

	blob, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read archive")
		return
	}

	opts := interchange.Options{
		IncludeUsers: inventory.ParseBool(r.FormValue("include_users")),
	}

	report, err := interchange.Import(r.Context(), s.store, blob, opts)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
