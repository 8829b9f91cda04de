package core

import "context"

// Client identifies the caller behind a request. DeleteAll logs it with the
// truncate.
type Client struct {
	IP        string
	UserAgent string
}

// LogAttrs returns the client as slog key/value pairs, with empty fields
// reported as "unknown".
func (c Client) LogAttrs() []any {
	return []any{"ip_address", orUnknown(c.IP), "user_agent", orUnknown(c.UserAgent)}
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

type clientKey struct{}

// WithClient returns a copy of ctx carrying c.
func WithClient(ctx context.Context, c Client) context.Context {
	return context.WithValue(ctx, clientKey{}, c)
}

// ClientFrom returns the Client stored by WithClient, or the zero Client when
// the call did not come through the HTTP layer.
func ClientFrom(ctx context.Context) Client {
	c, _ := ctx.Value(clientKey{}).(Client)
	return c
}
