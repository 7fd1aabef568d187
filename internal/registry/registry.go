package registry

import (
	"context"
	"errors"

	"github.com/farxc/carteira-devedores/internal/store"
)

//go:generate mockgen -source=registry.go -destination=mocks/mock_lookup.go -package=mock_registry

var (
	ErrUnavailable = errors.New("registry unavailable")
	ErrNotFound    = errors.New("tax id not found in registry")
	ErrInvalidID   = errors.New("tax id must have 14 digits")
)

// Lookup fetches public registry data by a digits-only CNPJ.
type Lookup interface {
	Fetch(ctx context.Context, taxID string) (*store.RegistryData, error)
}
