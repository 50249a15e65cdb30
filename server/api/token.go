package api

import (
	"errors"
	"net/http"

	"github.com/dekarrin/llgram/server/result"
	"github.com/dekarrin/llgram/server/serr"
	"github.com/dekarrin/llgram/server/token"
)

// HTTPCreateToken returns a HandlerFunc that checks the admin password in the
// request and responds with a new token for the admin account.
func (api API) HTTPCreateToken() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epCreateToken)
}

func (api API) epCreateToken(req *http.Request) result.Result {
	var loginData LoginRequest
	if err := parseJSON(req, &loginData); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	if loginData.Password == "" {
		return result.BadRequest("password: property is empty or missing from request", "empty password")
	}

	acct, err := api.Backend.Login(req.Context(), loginData.Password)
	if err != nil {
		if errors.Is(err, serr.ErrBadCredentials) {
			return result.Unauthorized(serr.ErrBadCredentials.Error(), "login: %s", err.Error())
		}
		return result.InternalServerError(err.Error())
	}

	tok, err := token.Generate(api.Secret, acct)
	if err != nil {
		return result.InternalServerError("could not generate JWT: %s", err.Error())
	}

	return result.Created(LoginResponse{Token: tok}, "'%s' successfully logged in", acct.Name)
}
