package core

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// QuoteIdentifier quotes a possibly schema-qualified name for use in SQL.
// Each dot-separated part is quoted separately and embedded quotes are
// doubled: public.supplier_row becomes "public"."supplier_row".
func QuoteIdentifier(name string) string {
	return pgx.Identifier(strings.Split(name, ".")).Sanitize()
}

// callStatement builds CALL proc($1, ..., $n). casts[i], when non-empty, is
// appended to parameter i+1 as ::cast.
func callStatement(proc string, nargs int, casts ...string) string {
	params := make([]string, nargs)
	for i := range params {
		params[i] = fmt.Sprintf("$%d", i+1)
		if i < len(casts) && casts[i] != "" {
			params[i] += "::" + casts[i]
		}
	}
	return fmt.Sprintf("CALL %s(%s)", QuoteIdentifier(proc), strings.Join(params, ", "))
}
