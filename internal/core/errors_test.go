package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"no file", ErrNoFile, "FILE004"},
		{"empty upload", ErrEmptyUpload, "FILE005"},
		{"too large", tooLargeError(1, 5000, 4000), "FILE006"},
		{"malformed", fmt.Errorf("%w: bare quote", ErrMalformedCSV), "FILE002"},
		{"encoding", ErrEncoding, "FILE003"},
		{"missing body", ErrMissingBody, "VAL001"},
		{"invalid record", fmt.Errorf("%w: Supplier_ID is required", ErrInvalidRecord), "VAL002"},
		{"unique violation", storeErr("import", &pgconn.PgError{Code: "23505"}), "DB001"},
		{"fk violation", &pgconn.PgError{Code: "23503"}, "DB003"},
		{"undefined function", storeErr("export", &pgconn.PgError{Code: "42883"}), "DB008"},
		{"connection exception", &pgconn.PgError{Code: "08006"}, "DB004"},
		{"other pg error", &pgconn.PgError{Code: "22001"}, "DB000"},
		{"acquire failure", storeErr("acquire", errors.New("dial tcp: refused")), "DB004"},
		{"other store failure", storeErr("delete", errors.New("boom")), "DB000"},
		{"unknown", errors.New("boom"), "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorCode(tt.err); got != tt.want {
				t.Errorf("ErrorCode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsClientError(t *testing.T) {
	client := []error{ErrNoFile, ErrEmptyUpload, ErrMissingBody, ErrInvalidRecord, tooLargeError(3, 10, 5)}
	for _, err := range client {
		if !IsClientError(err) {
			t.Errorf("IsClientError(%v) = false, want true", err)
		}
	}

	server := []error{ErrMalformedCSV, ErrEncoding, storeErr("import", errors.New("boom")), errors.New("x")}
	for _, err := range server {
		if IsClientError(err) {
			t.Errorf("IsClientError(%v) = true, want false", err)
		}
	}
}

func TestStoreError_PreservesMessage(t *testing.T) {
	inner := errors.New(`relation "suppliers_masters" does not exist`)
	err := storeErr("delete", inner)

	if err.Error() != inner.Error() {
		t.Errorf("Error() = %q, want %q", err.Error(), inner.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("StoreError should unwrap to the original error")
	}
	if storeErr("other", err) != err {
		t.Error("wrapping a StoreError twice should return it unchanged")
	}
	if storeErr("x", nil) != nil {
		t.Error("storeErr(nil) should be nil")
	}
}
