package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/JonMunkholm/SupplierImport/internal/core"
)

// maxSubmitBody bounds the JSON body of a single-record submit.
const maxSubmitBody = 1 << 20

// handleSubmitForm upserts one supplier from a JSON body.
func (s *Server) handleSubmitForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSubmitBody)

	var rec *core.SupplierRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		if errors.Is(err, io.EOF) {
			s.respondError(w, r, core.ErrMissingBody, http.StatusBadRequest)
			return
		}
		s.respondError(w, r, fmt.Errorf("invalid JSON body: %w", err), http.StatusBadRequest)
		return
	}

	result, err := s.service.Submit(r.Context(), rec)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	writeJSON(w, result)
}

// handleDeleteSuppliers empties the supplier table.
func (s *Server) handleDeleteSuppliers(w http.ResponseWriter, r *http.Request) {
	ctx := WithRequestMetadata(r.Context(), r)
	if err := s.service.DeleteAll(ctx); err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	writeJSON(w, map[string]string{"message": core.MsgDeleted})
}
