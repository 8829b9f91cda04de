package web

import (
	"context"
	"net"
	"net/http"

	"github.com/JonMunkholm/SupplierImport/internal/core"
)

// WithRequestMetadata records the caller on ctx for the service's operation
// logs.
func WithRequestMetadata(ctx context.Context, r *http.Request) context.Context {
	ip := r.RemoteAddr // already rewritten by TrustedRealIP
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}
	return core.WithClient(ctx, core.Client{IP: ip, UserAgent: r.UserAgent()})
}
