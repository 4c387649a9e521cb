// Package storage provides the pluggable persistence backends used by the
// cart and wishlist stores. A backend is a flat key/value space of JSON
// blobs, mirroring the browser's local storage contract: writes are
// synchronous and there is no schema versioning.
package storage

import "errors"

// ErrNotFound is returned by Load when the key has never been saved.
var ErrNotFound = errors.New("storage: key not found")

// Backend persists raw JSON blobs by key.
type Backend interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
	Delete(key string) error
}
