// Package token issues and checks the JWTs that clients of the LLGram server
// use to authenticate.
package token

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// Issuer is the "iss" claim of every token.
	Issuer = "llgs"

	// Lifetime is how long a token is valid after it is generated.
	Lifetime = time.Hour
)

// Account is an identity that the server issues tokens for.
type Account struct {
	Name         string
	PasswordHash []byte
}

// Lookup finds the Account that a token's subject names.
type Lookup func(ctx context.Context, name string) (Account, error)

// Get extracts the bearer token from the Authorization header of req.
func Get(req *http.Request) (string, error) {
	authHeader := strings.TrimSpace(req.Header.Get("Authorization"))

	if authHeader == "" {
		return "", fmt.Errorf("no authorization header present")
	}

	authParts := strings.SplitN(authHeader, " ", 2)
	if len(authParts) != 2 {
		return "", fmt.Errorf("authorization header not in Bearer format")
	}

	scheme := strings.TrimSpace(strings.ToLower(authParts[0]))
	tok := strings.TrimSpace(authParts[1])

	if scheme != "bearer" {
		return "", fmt.Errorf("authorization header not in Bearer format")
	}

	return tok, nil
}

// Generate creates a signed token for acct. The signing key includes the
// account's password hash, so tokens stop validating once the password is
// changed.
func Generate(secret []byte, acct Account) (string, error) {
	claims := &jwt.MapClaims{
		"iss": Issuer,
		"exp": time.Now().Add(Lifetime).Unix(),
		"sub": acct.Name,
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)

	tokStr, err := tok.SignedString(signingKey(secret, acct))
	if err != nil {
		return "", err
	}
	return tokStr, nil
}

// Validate checks that tok was generated by Generate with the same secret for
// an account that lookup still knows about, and returns that account.
func Validate(ctx context.Context, tok string, secret []byte, lookup Lookup) (Account, error) {
	var acct Account

	_, err := jwt.Parse(tok, func(t *jwt.Token) (interface{}, error) {
		subj, err := t.Claims.GetSubject()
		if err != nil {
			return nil, fmt.Errorf("cannot get subject: %w", err)
		}

		acct, err = lookup(ctx, subj)
		if err != nil {
			return nil, fmt.Errorf("subject could not be validated: %w", err)
		}

		return signingKey(secret, acct), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}), jwt.WithIssuer(Issuer), jwt.WithLeeway(time.Minute))

	if err != nil {
		return Account{}, err
	}

	return acct, nil
}

func signingKey(secret []byte, acct Account) []byte {
	var key []byte
	key = append(key, secret...)
	key = append(key, acct.PasswordHash...)
	return key
}
