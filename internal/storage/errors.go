package storage

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by a KV backend when the key has no value. It lets
// the session store tell a missing slot from a broken backend.
var ErrNotFound = errors.New("storage: key not found")

// StorageError wraps a backend failure with the operation and key involved.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
