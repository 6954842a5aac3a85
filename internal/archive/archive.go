// Package archive packs and unpacks the zip container used for inventory
// exports. The container holds up to four CSV documents under fixed member
// names; the member names are the only contract, ordering is not.
package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Fixed member names. An archive need not contain all four.
const (
	MemberLocations = "locations.csv"
	MemberTotes     = "totes.csv"
	MemberItems     = "items.csv"
	MemberUsers     = "users.csv"
)

// Members lists the recognized member names in dependency order.
var Members = []string{MemberLocations, MemberTotes, MemberItems, MemberUsers}

// ErrCorrupt indicates the blob could not be opened as a zip container.
// Callers must treat this as fatal; no partial import should be attempted.
var ErrCorrupt = errors.New("archive is not a valid zip container")

// Pack bundles the named CSV documents into a zip archive. Only the entries
// present in documents are written, so a caller can produce a partial
// archive (e.g. a users-less export).
func Pack(documents map[string]string) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, name := range Members {
		text, ok := documents[name]
		if !ok {
			continue
		}
		w, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("archive: create member %s: %w", name, err)
		}
		if _, err := io.WriteString(w, text); err != nil {
			return nil, fmt.Errorf("archive: write member %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("archive: finalize: %w", err)
	}
	return buf.Bytes(), nil
}

// Unpack opens the archive and returns the text of each recognized member
// that is present. A missing member is simply absent from the returned map,
// which keeps absence distinguishable from an empty document. Members with
// unrecognized names are ignored.
func Unpack(data []byte) (map[string]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	documents := make(map[string]string, len(Members))
	for _, name := range Members {
		f, err := zr.Open(name)
		if err != nil {
			continue
		}
		text, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("archive: read member %s: %w", name, err)
		}
		documents[name] = string(text)
	}
	return documents, nil
}
