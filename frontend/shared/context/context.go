package context

import (
	"context"

	"github.com/Jwfathoni/kasir-pos/models"
)

type sessionKey struct{}

// NewContextWithSession is called once per request by the auth
// middleware; handlers read the session back with
// GetSessionFromContext.
func NewContextWithSession(ctx context.Context, session models.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

func GetSessionFromContext(ctx context.Context) (models.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(models.Session)
	return s, ok
}
