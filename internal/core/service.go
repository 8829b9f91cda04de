package core

import (
	"context"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Service runs supplier imports, submits, exports and deletes against the
// store. It holds no per-request state; every operation checks out its own
// connection and releases it before returning.
type Service struct {
	conns      Connector
	serializer BatchSerializer
	procs      Procedures
	validate   *validator.Validate
}

// NewService creates a new Service. A nil serializer selects the array
// strategy with the default line cap.
func NewService(conns Connector, serializer BatchSerializer, procs Procedures) *Service {
	if serializer == nil {
		serializer = NewArraySerializer(DefaultMaxLineBytes)
	}
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)

	return &Service{
		conns:      conns,
		serializer: serializer,
		procs:      procs,
		validate:   v,
	}
}

// jsonFieldName makes validation errors name fields the way clients send them.
func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

// withConn acquires one connection, runs fn on it and releases it on every
// exit path. Errors are wrapped as StoreError tagged with op.
func (s *Service) withConn(ctx context.Context, op string, fn func(DBTX) error) error {
	conn, err := s.conns.Acquire(ctx)
	if err != nil {
		return storeErr("acquire", err)
	}
	defer conn.Release()

	if err := fn(conn); err != nil {
		return storeErr(op, err)
	}
	return nil
}

// Ping checks that a connection can be acquired and used.
func (s *Service) Ping(ctx context.Context) error {
	return s.withConn(ctx, "ping", func(db DBTX) error {
		_, err := db.Exec(ctx, "SELECT 1")
		return err
	})
}
