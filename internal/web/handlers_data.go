package web

import (
	"net/http"

	"github.com/JonMunkholm/SupplierImport/internal/core"
)

type supplierDataResponse struct {
	Message string                     `json:"message"`
	Data    []core.ExportedSupplierRow `json:"data,omitempty"`
}

// handleSupplierData returns every persisted supplier, or only a message when
// the table is empty.
func (s *Server) handleSupplierData(w http.ResponseWriter, r *http.Request) {
	result, err := s.service.Export(r.Context())
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	if result.Empty {
		writeJSON(w, supplierDataResponse{Message: result.Message})
		return
	}

	writeJSON(w, supplierDataResponse{Message: result.Message, Data: result.Data})
}

// handleHealth reports whether the store is reachable.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Ping(r.Context()); err != nil {
		s.respondError(w, r, err, http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}
