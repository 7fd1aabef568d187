package store

import (
	"context"
	"encoding/json"
	"errors"
)

// Collection names shared by every RecordStore driver.
const (
	CollectionDebtors        = "debtors"
	CollectionImportMetadata = "import-metadata"
	CollectionClients        = "clients"
	CollectionEmployees      = "employees"
	CollectionGoals          = "goals"
	CollectionTasks          = "tasks"
	CollectionMeetings       = "meetings"
	CollectionImportHistory  = "import-history"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrNoChange = errors.New("no change")
)

// RecordStore persists whole collections as JSON payloads addressed by name.
// Get returns a nil payload and no error when the collection was never written.
type RecordStore interface {
	Get(ctx context.Context, collection string) (json.RawMessage, error)
	Set(ctx context.Context, collection string, payload json.RawMessage) error
	Clear(ctx context.Context, collection string) error
}
