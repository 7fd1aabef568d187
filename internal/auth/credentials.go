package auth

import (
	"errors"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type account struct {
	hash    []byte
	session Session
}

// Credentials is an in-process user table keyed by lower-cased email.
type Credentials struct {
	mu       sync.RWMutex
	accounts map[string]account
}

func NewCredentials() *Credentials {
	return &Credentials{accounts: make(map[string]account)}
}

// Add registers an account with an existing bcrypt hash.
func (c *Credentials) Add(email, passwordHash string, s Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accounts[strings.ToLower(strings.TrimSpace(email))] = account{hash: []byte(passwordHash), session: s}
}

func (c *Credentials) Authenticate(email, password string) (*Session, error) {
	c.mu.RLock()
	acc, ok := c.accounts[strings.ToLower(strings.TrimSpace(email))]
	c.mu.RUnlock()
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acc.hash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	s := acc.session
	return &s, nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
