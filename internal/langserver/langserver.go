// Package langserver exposes compile() over HTTP for editor tooling
// (SPEC_FULL.md §11): a single POST /v1/compile endpoint returning
// spec.md §6's stable diagnostic JSON schema, routed with
// github.com/go-chi/chi/v5 and guarded by a Bearer-JWT auth middleware,
// the way the teacher's server/api package routes the game engine and
// server/token.go guards it.
package langserver

import (
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/asthra-lang/asthrac/internal/compile"
	"github.com/asthra-lang/asthrac/internal/session"
)

// Server holds the parameters every request handler needs, the same
// shape as the teacher's server/api.API: a backend to call into, a
// shared secret for token verification, and a delay applied to
// unauthorized responses to deprioritize naive retry floods.
type Server struct {
	// DefaultOptions seeds each request's compile.Options; per-request
	// JSON fields (see compileRequest in handlers.go) override individual
	// fields on top of this.
	DefaultOptions compile.Options

	// Secret signs and verifies the Bearer tokens this service accepts.
	Secret []byte

	// UnauthDelay is slept before writing an HTTP 401, mirroring
	// server/token.go's AuthHandler unauthedDelay.
	UnauthDelay time.Duration

	Sessions *session.Registry
}

// NewServer creates a Server with a fresh session registry and a default
// one-second unauthorized-response delay, matching the teacher's
// server.Config.UnauthDelayMillis default.
func NewServer(secret []byte, defaults compile.Options) *Server {
	return &Server{
		DefaultOptions: defaults,
		Secret:         secret,
		UnauthDelay:    time.Second,
		Sessions:       session.NewRegistry(),
	}
}

// Router builds the chi mux this Server serves: one authenticated
// POST /v1/compile route.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.With(s.requireAuth).Post("/v1/compile", s.handleCompile)
	return r
}
