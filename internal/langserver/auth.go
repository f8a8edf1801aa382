package langserver

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// requireAuth is the Bearer-JWT gate in front of /v1/compile, grounded on
// server/token.go's AuthHandler: extract the token, validate it, reject
// with a deliberately delayed 401 on failure so naive clients can't use
// the endpoint as a fast oracle for guessing secrets. Unlike the
// teacher's per-user signing key (secret + password hash + last-logout
// timestamp), this service has no user accounts — the whole endpoint is
// guarded by one shared service secret, so the signing key is just
// Server.Secret.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		tok, err := bearerToken(req)
		if err != nil {
			s.rejectUnauthorized(w, err)
			return
		}

		if _, err := jwt.Parse(tok, func(t *jwt.Token) (interface{}, error) {
			return s.Secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer("asthrac"),
			jwt.WithLeeway(time.Minute)); err != nil {
			s.rejectUnauthorized(w, err)
			return
		}

		next.ServeHTTP(w, req)
	})
}

func bearerToken(req *http.Request) (string, error) {
	header := strings.TrimSpace(req.Header.Get("Authorization"))
	if header == "" {
		return "", fmt.Errorf("no authorization header present")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(strings.TrimSpace(parts[0]), "bearer") {
		return "", fmt.Errorf("authorization header not in Bearer format")
	}

	return strings.TrimSpace(parts[1]), nil
}

func (s *Server) rejectUnauthorized(w http.ResponseWriter, cause error) {
	time.Sleep(s.UnauthDelay)
	writeJSON(w, http.StatusUnauthorized, errorBody{Error: cause.Error()})
}
