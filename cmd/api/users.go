package main

import (
	"fmt"
	"strings"

	"github.com/farxc/carteira-devedores/internal/auth"
)

type errUnknownDriver string

func (e errUnknownDriver) Error() string {
	return fmt.Sprintf("unknown store driver %q", string(e))
}

// loadCredentials builds the login table from ADMIN_* and AUTH_USERS.
//
// AUTH_USERS holds ';' separated entries of the form
// id|email|bcrypt-hash|role|name|department, department being optional.
func loadCredentials(cfg authConfig) (*auth.Credentials, error) {
	creds := auth.NewCredentials()

	if cfg.adminEmail != "" {
		hash := cfg.adminHash
		if hash == "" {
			if cfg.adminPassword == "" {
				return nil, fmt.Errorf("ADMIN_EMAIL needs ADMIN_PASSWORD or ADMIN_PASSWORD_HASH")
			}
			var err error
			if hash, err = auth.HashPassword(cfg.adminPassword); err != nil {
				return nil, fmt.Errorf("hash admin password: %w", err)
			}
		}
		creds.Add(cfg.adminEmail, hash, auth.Session{
			UserID: "admin",
			Name:   "Administrador",
			Title:  "Administrador",
			Role:   auth.RoleAdmin,
		})
	}

	users, err := parseUsers(cfg.users)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		creds.Add(u.email, u.hash, u.session)
	}
	return creds, nil
}

type seededUser struct {
	email   string
	hash    string
	session auth.Session
}

func parseUsers(raw string) ([]seededUser, error) {
	var out []seededUser
	for i, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, "|")
		if len(parts) < 5 {
			return nil, fmt.Errorf("AUTH_USERS entry %d: expected id|email|hash|role|name[|department]", i+1)
		}
		role := strings.TrimSpace(parts[3])
		switch role {
		case auth.RoleAdmin, auth.RoleManager, auth.RoleAgent:
		default:
			return nil, fmt.Errorf("AUTH_USERS entry %d: unknown role %q", i+1, role)
		}

		u := seededUser{
			email: strings.TrimSpace(parts[1]),
			hash:  strings.TrimSpace(parts[2]),
			session: auth.Session{
				UserID: strings.TrimSpace(parts[0]),
				Name:   strings.TrimSpace(parts[4]),
				Role:   role,
			},
		}
		if len(parts) > 5 {
			u.session.Department = strings.TrimSpace(parts[5])
		}
		out = append(out, u)
	}
	return out, nil
}
