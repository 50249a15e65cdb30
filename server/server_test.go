package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dekarrin/llgram/server/api"
	"github.com/stretchr/testify/assert"
)

const testPassword = "correct horse battery staple"

func newTestServer(t *testing.T) LLGramServer {
	srv, err := New(Config{
		TokenSecret:       []byte("0123456789abcdef0123456789abcdef"),
		AdminPassword:     testPassword,
		UnauthDelayMillis: -1,
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { srv.Close() })
	return srv
}

// do sends a request to srv and decodes a JSON response into respObj if it is
// not nil.
func do(t *testing.T, srv LLGramServer, method, path string, body interface{}, authTok string, respObj interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&reqBody).Encode(body); err != nil {
			t.Fatal(err)
		}
	}

	req := httptest.NewRequest(method, api.PathPrefix+path, &reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authTok != "" {
		req.Header.Set("Authorization", "Bearer "+authTok)
	}

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if respObj != nil && w.Code < 300 {
		if err := json.Unmarshal(w.Body.Bytes(), respObj); err != nil {
			t.Fatalf("could not decode response %q: %v", w.Body.String(), err)
		}
	}
	return w
}

func Test_Server_analyses(t *testing.T) {
	assert := assert.New(t)
	srv := newTestServer(t)

	var created api.AnalysisModel
	w := do(t, srv, "POST", "/analyses", api.AnalysisRequest{
		Grammar: "E -> E + T | T\nT -> T * F | F\nF -> ( E ) | id",
	}, "", &created)
	if !assert.Equal(http.StatusCreated, w.Code, w.Body.String()) {
		return
	}

	assert.NotEmpty(created.ID)
	assert.True(created.Normalize)
	assert.False(created.Ambiguous)
	assert.Equal("E -> E + T | T\nT -> T * F | F\nF -> ( E ) | id", created.Grammars.Original)
	assert.Contains(created.Grammars.NoLeftRecursion, "E' -> + T E' | ε")
	assert.Equal([]string{"(", "id"}, created.First["E"])
	assert.Equal([]string{"$", ")"}, created.Follow["E"])
	assert.Equal([]string{"(", ")", "*", "+", "id", "$"}, created.Table.Columns)
	if assert.Len(created.Table.Rows, 5) {
		assert.Equal("E", created.Table.Rows[0].NonTerminal)
		assert.Equal([]string{"E -> T E'", "", "", "", "E -> T E'", ""}, created.Table.Rows[0].Cells)
	}
	assert.Empty(created.Conflicts)

	var got api.AnalysisModel
	w = do(t, srv, "GET", "/analyses/"+created.ID, nil, "", &got)
	assert.Equal(http.StatusOK, w.Code)
	assert.Equal(created, got)

	var all []api.AnalysisSummaryModel
	w = do(t, srv, "GET", "/analyses", nil, "", &all)
	assert.Equal(http.StatusOK, w.Code)
	if assert.Len(all, 1) {
		assert.Equal(created.AnalysisSummaryModel, all[0])
	}
}

func Test_Server_createAnalysis_invalid(t *testing.T) {
	testCases := []struct {
		name         string
		body         interface{}
		expectStatus int
		expectErrMsg string
	}{
		{
			name:         "bad line",
			body:         api.AnalysisRequest{Grammar: "S -> a\nS a"},
			expectStatus: http.StatusBadRequest,
			expectErrMsg: "invalid grammar: line 2",
		},
		{
			name:         "empty grammar",
			body:         api.AnalysisRequest{Grammar: ""},
			expectStatus: http.StatusBadRequest,
			expectErrMsg: "invalid grammar: no rules given",
		},
		{
			name:         "same symbols",
			body:         api.AnalysisRequest{Grammar: "S -> a", Epsilon: "#", EOF: "#"},
			expectStatus: http.StatusBadRequest,
			expectErrMsg: "must differ",
		},
		{
			name:         "not JSON object",
			body:         "S -> a",
			expectStatus: http.StatusBadRequest,
			expectErrMsg: "malformed JSON",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			srv := newTestServer(t)

			w := do(t, srv, "POST", "/analyses", tc.body, "", nil)
			assert.Equal(tc.expectStatus, w.Code)

			var errResp struct {
				Error string `json:"error"`
			}
			if assert.NoError(json.Unmarshal(w.Body.Bytes(), &errResp)) {
				assert.Contains(errResp.Error, tc.expectErrMsg)
			}
		})
	}
}

func Test_Server_ambiguousAsIs(t *testing.T) {
	assert := assert.New(t)
	srv := newTestServer(t)

	normalize := false
	var created api.AnalysisModel
	w := do(t, srv, "POST", "/analyses", api.AnalysisRequest{
		Grammar:   "E -> E + T | T\nT -> id",
		Normalize: &normalize,
	}, "", &created)
	if !assert.Equal(http.StatusCreated, w.Code) {
		return
	}

	assert.True(created.Ambiguous)
	assert.False(created.Normalize)
	assert.Empty(created.Grammars.NoLeftRecursion)
	assert.Equal([]string{"M[E, id] = {E -> E + T, E -> T}"}, created.Conflicts)
	assert.Equal([]string{"E"}, created.ResidualRecursion)
}

func Test_Server_checks(t *testing.T) {
	srv := newTestServer(t)

	var created api.AnalysisModel
	w := do(t, srv, "POST", "/analyses", api.AnalysisRequest{
		Grammar: "E -> E + T | T\nT -> T * F | F\nF -> ( E ) | id",
	}, "", &created)
	if w.Code != http.StatusCreated {
		t.Fatalf("create analysis: HTTP-%d %s", w.Code, w.Body.String())
	}

	testCases := []struct {
		name           string
		input          string
		expectAccepted bool
		expectPos      int
		expectExpected []string
	}{
		{
			name:           "accepted",
			input:          "id + id * id",
			expectAccepted: true,
		},
		{
			name:           "incomplete",
			input:          "id +",
			expectPos:      2,
			expectExpected: []string{"(", "id"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			var resp api.CheckResponse
			w := do(t, srv, "POST", "/analyses/"+created.ID+"/checks", api.CheckRequest{Input: tc.input}, "", &resp)
			if !assert.Equal(http.StatusOK, w.Code) {
				return
			}

			assert.Equal(tc.expectAccepted, resp.Accepted)
			if tc.expectAccepted {
				assert.Nil(resp.Position)
				assert.Empty(resp.Error)
			} else if assert.NotNil(resp.Position) {
				assert.Equal(tc.expectPos, *resp.Position)
				assert.Equal(tc.expectExpected, resp.Expected)
				assert.NotEmpty(resp.Error)
			}
		})
	}
}

func Test_Server_deleteRequiresToken(t *testing.T) {
	assert := assert.New(t)
	srv := newTestServer(t)

	var created api.AnalysisModel
	w := do(t, srv, "POST", "/analyses", api.AnalysisRequest{Grammar: "S -> a"}, "", &created)
	if !assert.Equal(http.StatusCreated, w.Code) {
		return
	}

	w = do(t, srv, "DELETE", "/analyses/"+created.ID, nil, "", nil)
	assert.Equal(http.StatusUnauthorized, w.Code)

	w = do(t, srv, "POST", "/tokens", api.LoginRequest{Password: "wrong"}, "", nil)
	assert.Equal(http.StatusUnauthorized, w.Code)

	var login api.LoginResponse
	w = do(t, srv, "POST", "/tokens", api.LoginRequest{Password: testPassword}, "", &login)
	if !assert.Equal(http.StatusCreated, w.Code) {
		return
	}
	assert.NotEmpty(login.Token)

	w = do(t, srv, "DELETE", "/analyses/"+created.ID, nil, login.Token, nil)
	assert.Equal(http.StatusNoContent, w.Code)

	w = do(t, srv, "GET", "/analyses/"+created.ID, nil, "", nil)
	assert.Equal(http.StatusNotFound, w.Code)

	w = do(t, srv, "DELETE", "/analyses/"+created.ID, nil, login.Token, nil)
	assert.Equal(http.StatusNotFound, w.Code)
}

func Test_Server_routing(t *testing.T) {
	testCases := []struct {
		name         string
		method       string
		path         string
		expectStatus int
	}{
		{name: "non-uuid ID", method: "GET", path: "/analyses/12", expectStatus: http.StatusNotFound},
		{name: "unknown resource", method: "GET", path: "/grammars", expectStatus: http.StatusNotFound},
		{name: "method not allowed", method: "PUT", path: "/analyses", expectStatus: http.StatusMethodNotAllowed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			srv := newTestServer(t)

			w := do(t, srv, tc.method, tc.path, nil, "", nil)
			assert.Equal(tc.expectStatus, w.Code)
		})
	}
}

func Test_Server_info(t *testing.T) {
	assert := assert.New(t)
	srv := newTestServer(t)

	var info api.InfoModel
	w := do(t, srv, "GET", "/info", nil, "", &info)
	assert.Equal(http.StatusOK, w.Code)
	assert.NotEmpty(info.Version.Server)
	assert.NotEmpty(info.Version.LLGram)
}

func Test_New_invalidConfig(t *testing.T) {
	assert := assert.New(t)

	_, err := New(Config{TokenSecret: []byte("short")})
	assert.Error(err)
}
