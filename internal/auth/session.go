package auth

import (
	"context"
	"errors"
	"time"

	"github.com/farxc/carteira-devedores/internal/store"
)

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleAgent   = "agent"
)

// Session identifies who is acting. It is passed explicitly to every
// operation that stamps provenance or checks permissions.
type Session struct {
	UserID     string `json:"user_id"`
	Name       string `json:"name"`
	Title      string `json:"title,omitempty"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
}

// IsSupervisor reports whether the session may edit anything it can see.
func (s Session) IsSupervisor() bool {
	return s.Role == RoleAdmin || s.Role == RoleManager
}

func (s Session) Actor(at time.Time) store.Actor {
	return store.Actor{ID: s.UserID, Name: s.Name, Title: s.Title, At: at}
}

type ctxKey string

const ctxSession ctxKey = "session"

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxSession, s)
}

func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxSession).(Session)
	return s, ok
}

var ErrForbidden = errors.New("operation not allowed for this session")
