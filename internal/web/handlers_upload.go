package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/JonMunkholm/SupplierImport/internal/core"
)

// multipartOverhead is the body allowance for boundaries and part headers on
// top of the file size limit.
const multipartOverhead = 64 << 10

// handleImportCSV accepts a multipart upload in field "file" and imports it
// as one batch.
func (s *Server) handleImportCSV(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.respondError(w, r, fileTooLarge(maxSize), http.StatusBadRequest)
			return
		}
		s.respondError(w, r, core.ErrNoFile, http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, core.ErrNoFile, http.StatusBadRequest)
		return
	}
	defer file.Close()

	if header.Size == 0 {
		s.respondError(w, r, core.ErrEmptyUpload, http.StatusBadRequest)
		return
	}
	if header.Size > maxSize {
		s.respondError(w, r, fileTooLarge(maxSize), http.StatusBadRequest)
		return
	}

	ctx := WithRequestMetadata(r.Context(), r)
	result, err := s.service.ImportCSV(ctx, file)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	writeJSON(w, result)
}

func fileTooLarge(limit int64) error {
	return fmt.Errorf("file exceeds %d bytes", limit)
}
