package api

import (
	"errors"
	"net/http"

	"github.com/dekarrin/llgram/internal/llerrors"
	"github.com/dekarrin/llgram/server/middle"
	"github.com/dekarrin/llgram/server/result"
	"github.com/dekarrin/llgram/server/serr"
	"github.com/dekarrin/llgram/server/token"
	"github.com/go-chi/chi/v5"
)

// HTTPCreateAnalysis returns a HandlerFunc that analyzes the grammar in the
// request, stores it, and responds with the full analysis.
func (api API) HTTPCreateAnalysis() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epCreateAnalysis)
}

func (api API) epCreateAnalysis(req *http.Request) result.Result {
	var body AnalysisRequest
	if err := parseJSON(req, &body); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	normalize := true
	if body.Normalize != nil {
		normalize = *body.Normalize
	}

	an, err := api.Backend.CreateAnalysis(req.Context(), body.Grammar, body.Epsilon, body.EOF, normalize)
	if err != nil {
		if errors.Is(err, serr.ErrInvalidGrammar) {
			human := llerrors.Human(err)
			return result.BadRequest(human, human)
		} else if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), err.Error())
		}
		return result.InternalServerError(err.Error())
	}

	return result.Created(analysisModel(an), "created analysis %s (ambiguous=%t)", an.ID, an.Ambiguous)
}

// HTTPGetAllAnalyses returns a HandlerFunc that lists every stored analysis.
func (api API) HTTPGetAllAnalyses() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetAllAnalyses)
}

func (api API) epGetAllAnalyses(req *http.Request) result.Result {
	all, err := api.Backend.GetAllAnalyses(req.Context())
	if err != nil {
		return result.InternalServerError(err.Error())
	}

	resp := make([]AnalysisSummaryModel, len(all))
	for i := range all {
		resp[i] = summaryModel(all[i])
	}

	return result.OK(resp, "got all analyses (%d)", len(resp))
}

// HTTPGetAnalysis returns a HandlerFunc that analyzes a stored grammar again
// and responds with the full analysis.
func (api API) HTTPGetAnalysis() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetAnalysis)
}

func (api API) epGetAnalysis(req *http.Request) result.Result {
	id := chi.URLParam(req, "id")

	an, err := api.Backend.GetAnalysis(req.Context(), id)
	if err != nil {
		return errResult(err, "get analysis %s", id)
	}

	return result.OK(analysisModel(an), "got analysis %s", id)
}

// HTTPDeleteAnalysis returns a HandlerFunc that deletes a stored analysis.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the logged-in account of the client making the request.
func (api API) HTTPDeleteAnalysis() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epDeleteAnalysis)
}

func (api API) epDeleteAnalysis(req *http.Request) result.Result {
	id := chi.URLParam(req, "id")
	acct := req.Context().Value(middle.AuthAccount).(token.Account)

	_, err := api.Backend.DeleteAnalysis(req.Context(), id)
	if err != nil {
		return errResult(err, "delete analysis %s", id)
	}

	return result.NoContent("'%s' deleted analysis %s", acct.Name, id)
}

// HTTPCreateCheck returns a HandlerFunc that runs a predictive parse of the
// input in the request with the table of a stored analysis.
func (api API) HTTPCreateCheck() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epCreateCheck)
}

func (api API) epCreateCheck(req *http.Request) result.Result {
	id := chi.URLParam(req, "id")

	var body CheckRequest
	if err := parseJSON(req, &body); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	res, err := api.Backend.CheckInput(req.Context(), id, body.Input)
	if err != nil {
		return errResult(err, "check input against analysis %s", id)
	}

	resp := CheckResponse{
		Accepted:  res.Accepted,
		Ambiguous: res.Report.Ambiguous,
	}
	if res.Rejection != nil {
		pos := res.Rejection.Pos
		resp.Error = res.Rejection.Error()
		resp.Position = &pos
		resp.Token = res.Rejection.Token
		resp.Expected = res.Rejection.Expected
	}

	return result.OK(resp, "checked input against analysis %s (accepted=%t)", id, res.Accepted)
}

// errResult gives the Result for an error from a Backend call that looks up an
// analysis by ID. The action is used as a format string for the log message.
func errResult(err error, action string, a ...interface{}) result.Result {
	if errors.Is(err, serr.ErrNotFound) || errors.Is(err, serr.ErrBadArgument) {
		return result.NotFound()
	}
	args := append([]interface{}{action + ": %s"}, a...)
	args = append(args, err.Error())
	return result.InternalServerError(args...)
}
