package api

import (
	"net/http"

	"github.com/dekarrin/llgram/internal/version"
	"github.com/dekarrin/llgram/server/middle"
	"github.com/dekarrin/llgram/server/result"
	"github.com/dekarrin/llgram/server/token"
)

// HTTPGetInfo returns a HandlerFunc that retrieves information on the API and
// server.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// a value denoting whether the client making the request is logged-in.
func (api API) HTTPGetInfo() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetInfo)
}

func (api API) epGetInfo(req *http.Request) result.Result {
	loggedIn := req.Context().Value(middle.AuthLoggedIn).(bool)

	var resp InfoModel
	resp.Version.Server = version.ServerCurrent
	resp.Version.LLGram = version.Current

	who := "unauthed client"
	if loggedIn {
		acct := req.Context().Value(middle.AuthAccount).(token.Account)
		who = "'" + acct.Name + "'"
	}
	return result.OK(resp, "%s got API info", who)
}
