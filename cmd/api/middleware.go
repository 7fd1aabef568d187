package main

import (
	"net/http"
	"strings"

	"github.com/farxc/carteira-devedores/internal/auth"
)

// authenticate resolves the bearer token into a session on the request context.
func (app *application) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeJSONError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		s, err := app.tokens.Parse(token)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), *s)))
	})
}

func (app *application) requireSupervisor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := auth.FromContext(r.Context())
		if !ok || !s.IsSupervisor() {
			writeJSONError(w, http.StatusForbidden, "supervisor role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// session returns the caller set by authenticate.
func session(r *http.Request) auth.Session {
	s, _ := auth.FromContext(r.Context())
	return s
}
