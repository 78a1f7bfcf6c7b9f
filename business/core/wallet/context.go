package wallet

import (
	"context"
	"errors"
)

// ctxKey represents the type of value for the context key.
type ctxKey int

// key is used to store/retrieve a Session value from a context.Context.
const key ctxKey = 1

// SetSession stores the session in the context.
func SetSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, key, s)
}

// GetSession returns the session from the context.
func GetSession(ctx context.Context) (Session, error) {
	s, ok := ctx.Value(key).(Session)
	if !ok {
		return Session{}, errors.New("session value missing from context")
	}
	return s, nil
}
