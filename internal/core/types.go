// Package core provides the business logic for supplier imports.
// This package has no HTTP dependencies and can be driven by any frontend.
package core

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the interface for database operations.
// Satisfied by *pgxpool.Conn, *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Conn is a store connection checked out for a single operation.
// Release must be called exactly once, on every exit path.
type Conn interface {
	DBTX
	Release()
}

// Connector hands out store connections.
type Connector interface {
	Acquire(ctx context.Context) (Conn, error)
}

// SupplierRecord is the transfer shape shared by the CSV import, the single
// submit and the export. JSON names follow the upload column headers.
type SupplierRecord struct {
	SupplierID        int32  `json:"Supplier_ID" validate:"required"`
	SupplierName      string `json:"Supplier_Name"`
	ContactName       string `json:"Contact_Name"`
	ContactPhone      string `json:"Contact_Phone"`
	ContactEmail      string `json:"Contact_Email"`
	Address           string `json:"Address"`
	City              string `json:"City"`
	State             string `json:"State"`
	PostalCode        string `json:"Postal_Code"`
	Country           string `json:"Country"`
	TaxIdentification string `json:"Tax_Identification"`
}

// ExportedSupplierRow is a persisted supplier plus the message the store
// recorded against it, if any.
type ExportedSupplierRow struct {
	SupplierRecord
	ErrorMsg string `json:"errorMsg"`
}

// ImportResult is returned by a successful CSV import.
// Rows counts records that survived filtering and were sent in the batch.
type ImportResult struct {
	ImportID string `json:"-"`
	Message  string `json:"message"`
	Rows     int    `json:"rows"`
}

// SubmitResult is returned by a successful single-record submit.
type SubmitResult struct {
	ReceivedID int32  `json:"receivedId"`
	Message    string `json:"message"`
}

// ExportResult is the read-back of the supplier table.
// Empty distinguishes "nothing persisted" from a populated result.
type ExportResult struct {
	Empty   bool
	Message string
	Data    []ExportedSupplierRow
}

// Procedures names the store objects the service calls.
type Procedures struct {
	Import string // bulk import, one array- or table-shaped argument
	Submit string // single-row upsert, eleven scalar arguments
	Export string // set-returning function with no arguments
	Table  string // supplier table cleared by DeleteAll
}

// Response messages.
const (
	MsgImported      = "CSV imported successfully."
	MsgNothingToLoad = "No supplier rows to import."
	MsgSaved         = "Supplier saved successfully"
	MsgDeleted       = "Data deleted successfully"
	MsgNoData        = "No data in the table"
	MsgFetched       = "Data has been fetched successfully"
)
