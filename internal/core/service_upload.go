package core

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/SupplierImport/internal/logging"
)

// ImportCSV parses one uploaded CSV, normalizes every surviving record and
// sends the whole batch to the bulk import procedure in a single call.
//
// Rows with a zero or unparseable Supplier_ID are dropped. Postal code
// substitutions are logged, never rejected. The result's Rows is the number
// of records sent, not the number the procedure persisted.
func (s *Service) ImportCSV(ctx context.Context, r io.Reader) (ImportResult, error) {
	importID := uuid.NewString()
	log := logging.WithFields(ctx, "import_id", importID, "strategy", s.serializer.Kind())
	start := time.Now()

	records, dropped, err := parseSuppliers(r)
	if err != nil {
		log.Warn("import rejected", "error", err, "code", ErrorCode(err))
		return ImportResult{}, err
	}

	for _, d := range dropped {
		log.Debug("row dropped: zero or invalid supplier id", "line", d.Line, "value", d.Raw)
	}

	for i := range records {
		for _, c := range NormalizeRecord(&records[i]) {
			log.Warn("field replaced with fallback",
				"supplier_id", records[i].SupplierID,
				"field", c.Field,
				"original", c.Original,
				"replacement", c.Replacement,
			)
		}
	}

	if len(records) == 0 {
		log.Info("import skipped: no supplier rows", "dropped", len(dropped))
		return ImportResult{ImportID: importID, Message: MsgNothingToLoad}, nil
	}

	payload, err := s.serializer.Serialize(records)
	if err != nil {
		log.Warn("import rejected", "error", err, "code", ErrorCode(err))
		return ImportResult{}, err
	}

	stmt := callStatement(s.procs.Import, 1, s.serializer.Cast())
	err = s.withConn(ctx, "import", func(db DBTX) error {
		_, err := db.Exec(ctx, stmt, payload.Value)
		return err
	})
	if err != nil {
		log.Error("import failed", "error", err, "code", ErrorCode(err), "rows", payload.Rows)
		return ImportResult{}, err
	}

	log.Info("import completed",
		"rows", payload.Rows,
		"dropped", len(dropped),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return ImportResult{
		ImportID: importID,
		Message:  MsgImported,
		Rows:     payload.Rows,
	}, nil
}
