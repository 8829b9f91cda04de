package core

// errors.go defines the failures an import, submit, export or delete can
// surface, and the short codes logged next to them for support lookups.
//
// Client input errors are rejected before any store interaction:
//
//	FILE004 - no file was provided
//	FILE005 - the upload is empty
//	FILE006 - a serialized record exceeds the bulk line cap
//	VAL001  - the submit body is missing
//	VAL002  - the submitted record failed validation
//
// Parse failures abort the whole import:
//
//	FILE002 - malformed CSV (bad quoting, unterminated field)
//	FILE003 - the file is not valid UTF-8
//
// Store failures carry the driver message through unchanged:
//
//	DB001 - unique violation        (SQLSTATE 23505)
//	DB003 - foreign key violation   (SQLSTATE 23503)
//	DB004 - connection failure      (SQLSTATE class 08, or acquire failure)
//	DB008 - undefined procedure     (SQLSTATE 42883)
//	DB000 - any other store failure

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNoFile         = errors.New("no file provided")
	ErrEmptyUpload    = errors.New("cannot upload an empty file")
	ErrMissingBody    = errors.New("cannot submit without form data")
	ErrInvalidRecord  = errors.New("invalid supplier record")
	ErrMalformedCSV   = errors.New("invalid csv")
	ErrEncoding       = errors.New("encoding error: file is not valid UTF-8")
	ErrRecordTooLarge = errors.New("record exceeds bulk line limit")
)

// StoreError wraps a failure raised while acquiring a connection, binding
// parameters or executing a statement. Error returns the underlying message
// unchanged so callers see exactly what the store reported.
type StoreError struct {
	Op  string // "acquire", "import", "submit", "export", "delete"
	Err error
}

func (e *StoreError) Error() string {
	return e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// storeErr wraps err as a StoreError unless it already is one.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

// IsClientError reports whether err was caused by the caller's input and
// should be answered with a 4xx.
func IsClientError(err error) bool {
	switch {
	case errors.Is(err, ErrNoFile),
		errors.Is(err, ErrEmptyUpload),
		errors.Is(err, ErrMissingBody),
		errors.Is(err, ErrInvalidRecord),
		errors.Is(err, ErrRecordTooLarge):
		return true
	}
	return false
}

// ErrorCode returns the support code for err.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoFile):
		return "FILE004"
	case errors.Is(err, ErrEmptyUpload):
		return "FILE005"
	case errors.Is(err, ErrRecordTooLarge):
		return "FILE006"
	case errors.Is(err, ErrMalformedCSV):
		return "FILE002"
	case errors.Is(err, ErrEncoding):
		return "FILE003"
	case errors.Is(err, ErrMissingBody):
		return "VAL001"
	case errors.Is(err, ErrInvalidRecord):
		return "VAL002"
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505":
			return "DB001"
		case pgErr.Code == "23503":
			return "DB003"
		case pgErr.Code == "42883":
			return "DB008"
		case strings.HasPrefix(pgErr.Code, "08"):
			return "DB004"
		}
		return "DB000"
	}

	var se *StoreError
	if errors.As(err, &se) {
		if se.Op == "acquire" {
			return "DB004"
		}
		return "DB000"
	}

	return "ERR000"
}

// tooLargeError names the offending supplier so the caller can fix the file.
func tooLargeError(supplierID int32, size, limit int) error {
	return fmt.Errorf("%w: supplier %d serializes to %d bytes (limit %d)",
		ErrRecordTooLarge, supplierID, size, limit)
}
