// Package server provides the LLGram HTTP REST server, which analyzes grammars
// sent to it and keeps them for later checks of input against their tables.
package server

import (
	"log"
	"net/http"
	"strings"

	"github.com/dekarrin/llgram/server/api"
	"github.com/dekarrin/llgram/server/dao"
	"github.com/dekarrin/llgram/server/llgs"
	"github.com/go-chi/chi/v5"
)

// DefaultListenAddress is where ServeForever listens if given no address.
const DefaultListenAddress = "localhost:8080"

// server:
//
//	POST   /analyses             - analyze and store a grammar (auth not required)
//	GET    /analyses             - summaries of all stored analyses (auth not required)
//	GET    /analyses/{id}        - analyze a stored grammar again (auth not required)
//	DELETE /analyses/{id}        - delete a stored analysis (auth required)
//	POST   /analyses/{id}/checks - parse input with a stored analysis's table (auth not required)
//	POST   /tokens               - exchange the admin password for a token
//	GET    /info                 - get version info on the server and LLGram itself.

// LLGramServer is an HTTP REST server that analyzes grammars. The zero-value of
// an LLGramServer should not be used directly; call New() to get one ready for
// use.
type LLGramServer struct {
	router chi.Router
	db     dao.Store
}

// New creates a new LLGramServer from the given config. Defaults are filled in
// for any unset values of cfg before it is validated.
func New(cfg Config) (LLGramServer, error) {
	cfg = cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return LLGramServer{}, err
	}

	db, err := cfg.DB.Connect()
	if err != nil {
		return LLGramServer{}, err
	}

	svc := llgs.Service{
		DB:     db,
		Logger: analysisLogger(cfg.Debug),
	}
	if cfg.AdminPassword != "" {
		svc.AdminPasswordHash, err = llgs.HashPassword(cfg.AdminPassword)
		if err != nil {
			db.Close()
			return LLGramServer{}, err
		}
	} else {
		log.Printf("WARN  no admin password set; analyses cannot be deleted")
	}

	lgs := LLGramServer{
		db: db,
		router: newRouter(api.API{
			Backend:     svc,
			UnauthDelay: cfg.UnauthDelay(),
			Secret:      cfg.TokenSecret,
		}),
	}

	return lgs, nil
}

// ServeHTTP routes the request to the API.
func (lgs LLGramServer) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	lgs.router.ServeHTTP(w, req)
}

// ServeForever begins listening on the given address for HTTP REST client
// requests. If address is kept as "", it will default to
// DefaultListenAddress.
func (lgs LLGramServer) ServeForever(address string) {
	if address == "" {
		address = DefaultListenAddress
	}

	log.Printf("INFO  Listening on %s", address)
	log.Fatalf("FATAL %v", http.ListenAndServe(address, lgs.router))
}

// Close closes the connection to the store.
func (lgs LLGramServer) Close() error {
	return lgs.db.Close()
}

// analysisLogger logs through the standard logger, dropping DEBUG lines unless
// debug is set.
func analysisLogger(debug bool) func(format string, a ...interface{}) {
	return func(format string, a ...interface{}) {
		if !debug && strings.HasPrefix(format, "DEBUG") {
			return
		}
		log.Printf(format, a...)
	}
}
