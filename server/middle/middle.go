// Package middle contains middleware for use with the LLGram server.
package middle

import (
	"context"
	"net/http"
	"time"

	"github.com/dekarrin/llgram/server/result"
	"github.com/dekarrin/llgram/server/token"
)

// Middleware is a function that takes a handler and returns a new handler which
// wraps the given one and provides some additional functionality.
type Middleware func(next http.Handler) http.Handler

// AuthKey is a key in the context of a request populated by an AuthHandler.
type AuthKey int64

const (
	AuthLoggedIn AuthKey = iota
	AuthAccount
)

// AuthHandler is middleware that will accept a request, extract the token used
// for authentication, and look up the token.Account it was issued for.
//
// Keys are added to the request context before the request is passed to the
// next step in the chain. AuthAccount will contain the logged-in account, and
// AuthLoggedIn will return whether the client is logged in. For optional auth,
// a missing or bad token just leaves AuthLoggedIn false; for required auth it
// results in an HTTP-401 before the request reaches the next handler.
type AuthHandler struct {
	lookup        token.Lookup
	secret        []byte
	required      bool
	unauthedDelay time.Duration
	next          http.Handler
}

func (ah *AuthHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	var loggedIn bool
	var acct token.Account

	tok, err := token.Get(req)
	if err == nil {
		acct, err = token.Validate(req.Context(), tok, ah.secret, ah.lookup)
	}

	if err != nil {
		if ah.required {
			r := result.Unauthorized("", err.Error())
			time.Sleep(ah.unauthedDelay)
			r.WriteResponse(w)
			return
		}
		acct = token.Account{}
	} else {
		loggedIn = true
	}

	ctx := req.Context()
	ctx = context.WithValue(ctx, AuthLoggedIn, loggedIn)
	ctx = context.WithValue(ctx, AuthAccount, acct)
	req = req.WithContext(ctx)
	ah.next.ServeHTTP(w, req)
}

// RequireAuth returns middleware that rejects requests without a valid token.
func RequireAuth(lookup token.Lookup, secret []byte, unauthDelay time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return &AuthHandler{
			lookup:        lookup,
			secret:        secret,
			unauthedDelay: unauthDelay,
			required:      true,
			next:          next,
		}
	}
}

// OptionalAuth returns middleware that records whether a request carries a
// valid token but lets it through either way.
func OptionalAuth(lookup token.Lookup, secret []byte, unauthDelay time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return &AuthHandler{
			lookup:        lookup,
			secret:        secret,
			unauthedDelay: unauthDelay,
			next:          next,
		}
	}
}
