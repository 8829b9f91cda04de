package core

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/SupplierImport/internal/logging"
)

// exportColumns are selected from the export function in record order,
// followed by the per-row error message.
const exportColumns = `supplier_id, supplier_name, contact_name, contact_phone, contact_email,
	address, city, state, postal_code::text, country, tax_identification, error_msg`

// Export reads back every persisted supplier with the message the store
// recorded against it. An empty table yields Empty=true rather than an empty
// list.
func (s *Service) Export(ctx context.Context) (ExportResult, error) {
	query := fmt.Sprintf("SELECT %s FROM %s()", exportColumns, QuoteIdentifier(s.procs.Export))

	var rows []ExportedSupplierRow
	err := s.withConn(ctx, "export", func(db DBTX) error {
		res, err := db.Query(ctx, query)
		if err != nil {
			return err
		}
		rows, err = pgx.CollectRows(res, scanExportRow)
		return err
	})
	if err != nil {
		logging.FromContext(ctx).Error("export failed", "error", err, "code", ErrorCode(err))
		return ExportResult{}, err
	}

	if len(rows) == 0 {
		return ExportResult{Empty: true, Message: MsgNoData}, nil
	}

	logging.FromContext(ctx).Debug("export completed", "rows", len(rows))
	return ExportResult{Message: MsgFetched, Data: rows}, nil
}

func scanExportRow(row pgx.CollectableRow) (ExportedSupplierRow, error) {
	var (
		id   pgtype.Int4
		text [11]pgtype.Text
	)
	err := row.Scan(&id,
		&text[0], &text[1], &text[2], &text[3], &text[4],
		&text[5], &text[6], &text[7], &text[8], &text[9], &text[10],
	)
	if err != nil {
		return ExportedSupplierRow{}, err
	}

	// NULL scans to the zero value, so absent text becomes "".
	return ExportedSupplierRow{
		SupplierRecord: SupplierRecord{
			SupplierID:        id.Int32,
			SupplierName:      text[0].String,
			ContactName:       text[1].String,
			ContactPhone:      text[2].String,
			ContactEmail:      text[3].String,
			Address:           text[4].String,
			City:              text[5].String,
			State:             text[6].String,
			PostalCode:        text[7].String,
			Country:           text[8].String,
			TaxIdentification: text[9].String,
		},
		ErrorMsg: text[10].String,
	}, nil
}
