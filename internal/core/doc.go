// Package core provides the business logic for supplier imports.
//
// It has no HTTP dependencies. The web package drives it, and tests drive it
// through a fake [Connector].
//
// # Import flow
//
// [Service.ImportCSV] handles one uploaded file end to end:
//
//  1. [ParseSuppliers] binds rows to [SupplierRecord] by header name and drops
//     rows whose Supplier_ID is zero or not an integer.
//  2. [NormalizeRecord] trims text and coerces the postal code, replacing
//     anything non-numeric with "0". Replacements are logged at WARN.
//  3. A [BatchSerializer] turns the batch into one parameter: a text[] of
//     escaped CSV lines, or an array of the store's composite row type.
//  4. One connection is acquired, the import procedure is called once and
//     the connection is released.
//
// Nothing is retried. A parse failure or a store failure fails the whole
// request; per-row problems the procedure records are visible only through
// [Service.Export].
//
// # Errors
//
// Input problems are sentinel errors ([ErrEmptyUpload], [ErrMissingBody],
// [ErrRecordTooLarge], ...) that [IsClientError] reports as the caller's
// fault. Store failures are returned as [*StoreError], whose message is the
// driver's message unchanged. [ErrorCode] gives each a short code for logs.
package core
