package auth

import (
	"context"
	"net/http"
	"strings"

	"google.golang.org/grpc/credentials"
)

type contextKey struct {
	name string
}

var authKey = &contextKey{"token"}

func WithContextToken(ctx context.Context, token string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, authKey, token)
}

func ContextToken(ctx context.Context) string {
	if ctx != nil {
		if val, ok := ctx.Value(authKey).(string); ok {
			return val
		}
	}
	return ""
}

// RequestToken extracts the bearer token from the Authorization header of r.
func RequestToken(r *http.Request) string {
	value := r.Header.Get("Authorization")
	if len(value) > 7 && strings.EqualFold(value[:7], "bearer ") {
		return strings.TrimSpace(value[7:])
	}
	return ""
}

type tokenCredentials struct {
	secure bool
}

// TokenCredentials forwards the token stored in the call context as an
// "authorization" bearer header. Calls without a token are sent unchanged.
func TokenCredentials(requireTLS bool) credentials.PerRPCCredentials {
	return tokenCredentials{secure: requireTLS}
}

func (c tokenCredentials) GetRequestMetadata(ctx context.Context, _ ...string) (map[string]string, error) {
	token := ContextToken(ctx)
	if token == "" {
		return nil, nil
	}
	return map[string]string{"authorization": "Bearer " + token}, nil
}

func (c tokenCredentials) RequireTransportSecurity() bool {
	return c.secure
}
