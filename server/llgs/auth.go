package llgs

import (
	"context"
	"errors"

	"github.com/dekarrin/llgram/server/serr"
	"github.com/dekarrin/llgram/server/token"
	"golang.org/x/crypto/bcrypt"
)

// AdminName is the name of the only account on an LLGram server.
const AdminName = "admin"

// HashPassword returns the bcrypt hash of password for use as
// Service.AdminPasswordHash.
func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

// Login verifies the provided password against the admin password and returns
// the admin account if they match.
//
// The returned error, if non-nil, will match serr.ErrBadCredentials if the
// password is incorrect or no admin password is set.
func (svc Service) Login(ctx context.Context, password string) (token.Account, error) {
	if len(svc.AdminPasswordHash) == 0 {
		return token.Account{}, serr.New("no admin password is set", serr.ErrBadCredentials)
	}

	err := bcrypt.CompareHashAndPassword(svc.AdminPasswordHash, []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return token.Account{}, serr.ErrBadCredentials
		}
		return token.Account{}, serr.New("could not check password", err)
	}

	return svc.admin(), nil
}

// GetAccount returns the account with the given name. It has the signature of
// a token.Lookup.
//
// The returned error, if non-nil, will match serr.ErrNotFound if there is no
// such account.
func (svc Service) GetAccount(ctx context.Context, name string) (token.Account, error) {
	if name != AdminName || len(svc.AdminPasswordHash) == 0 {
		return token.Account{}, serr.ErrNotFound
	}
	return svc.admin(), nil
}

func (svc Service) admin() token.Account {
	return token.Account{
		Name:         AdminName,
		PasswordHash: svc.AdminPasswordHash,
	}
}
