// Package llgs has services for interacting with the LLGram server backend
// decoupled from the API that accesses it.
package llgs

import (
	"github.com/dekarrin/llgram/internal/analysis"
	"github.com/dekarrin/llgram/server/dao"
)

// Service is a service for interacting with and modifying the LLGram server
// backend. It performs the actions requested and makes calls to server
// persistence to preserve the backend state.
//
// The zero-value of Service is not ready to be used; assign a valid DAO store
// to DB before attempting to use it.
type Service struct {

	// DB is the persistence store of the service.
	DB dao.Store

	// AdminPasswordHash is the bcrypt hash of the admin account's password.
	// If it is empty, nobody can log in. Create one with HashPassword.
	AdminPasswordHash []byte

	// Logger receives the warnings and debug output of each analysis. If nil,
	// nothing is logged.
	Logger analysis.Logger
}
