package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/JonMunkholm/SupplierImport/internal/logging"
)

// Submit upserts a single supplier through the submit procedure. The record
// is validated, trimmed and has its postal code coerced the same way a CSV
// row would.
func (s *Service) Submit(ctx context.Context, rec *SupplierRecord) (SubmitResult, error) {
	if rec == nil {
		return SubmitResult{}, ErrMissingBody
	}

	if err := s.validate.Struct(rec); err != nil {
		return SubmitResult{}, invalidRecord(err)
	}

	r := *rec
	log := logging.WithFields(ctx, "supplier_id", r.SupplierID)
	for _, c := range NormalizeRecord(&r) {
		log.Warn("field replaced with fallback",
			"field", c.Field,
			"original", c.Original,
			"replacement", c.Replacement,
		)
	}

	stmt := callStatement(s.procs.Submit, 11)
	err := s.withConn(ctx, "submit", func(db DBTX) error {
		_, err := db.Exec(ctx, stmt,
			r.SupplierID,
			r.SupplierName,
			r.ContactName,
			r.ContactPhone,
			r.ContactEmail,
			r.Address,
			r.City,
			r.State,
			postalCodeInt(r.PostalCode),
			r.Country,
			r.TaxIdentification,
		)
		return err
	})
	if err != nil {
		log.Error("submit failed", "error", err, "code", ErrorCode(err))
		return SubmitResult{}, err
	}

	log.Info("supplier saved")
	return SubmitResult{ReceivedID: r.SupplierID, Message: MsgSaved}, nil
}

// DeleteAll truncates the supplier table.
func (s *Service) DeleteAll(ctx context.Context) error {
	stmt := "TRUNCATE TABLE " + QuoteIdentifier(s.procs.Table)

	err := s.withConn(ctx, "delete", func(db DBTX) error {
		_, err := db.Exec(ctx, stmt)
		return err
	})
	if err != nil {
		logging.FromContext(ctx).Error("delete failed", "error", err, "code", ErrorCode(err))
		return err
	}

	attrs := append([]any{"table", s.procs.Table}, ClientFrom(ctx).LogAttrs()...)
	logging.FromContext(ctx).Warn("supplier table truncated", attrs...)
	return nil
}

func invalidRecord(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("%w: %s is %s", ErrInvalidRecord, fe.Field(), fe.Tag())
	}
	return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
}
