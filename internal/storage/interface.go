package storage

import "errors"

// ErrNotInitialized is returned by providers used before Init.
var ErrNotInitialized = errors.New("storage not initialized")

// Provider is a named-slot blob store. Each slot holds one serialized
// collection and is overwritten in full on every save.
type Provider interface {
	// Lifecycle
	Init() error
	Close() error

	// Slots
	Load(slot string) ([]byte, bool, error)
	Save(slot string, blob []byte) error
	Slots() ([]string, error)

	// Utils
	GetConfigPath() string
}

// SchemaReporter is implemented by providers backed by a migrated SQL schema.
type SchemaReporter interface {
	SchemaVersion() (current, latest int, err error)
}
