package mid

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/inkwell/dashboard/business/core/wallet"
	"github.com/inkwell/dashboard/business/web/errs"
	"github.com/inkwell/dashboard/foundation/web"
)

// Authenticator validates session tokens.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (wallet.Session, error)
}

// Authenticate validates the bearer token and places the wallet session
// into the context.
func Authenticate(a Authenticator) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			token, err := bearer(r)
			if err != nil {
				return errs.NewTrusted(err, http.StatusUnauthorized)
			}

			s, err := a.Authenticate(ctx, token)
			if err != nil {
				return errs.NewTrusted(err, http.StatusUnauthorized)
			}

			ctx = wallet.SetSession(ctx, s)

			return handler(ctx, w, r)
		}

		return h
	}

	return m
}

// bearer extracts the token from the Authorization header. Websocket
// clients can't set headers so the token query parameter is accepted too.
func bearer(r *http.Request) (string, error) {
	if token := r.URL.Query().Get("token"); token != "" {
		return token, nil
	}

	parts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", errors.New("expected authorization header format: Bearer <token>")
	}

	return parts[1], nil
}
