package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDataSourceMissing means the personnel table file is absent.
	ErrDataSourceMissing = errors.New("data source missing")
	// ErrRetrievalUnavailable means the semantic index is absent or unreachable.
	ErrRetrievalUnavailable = errors.New("retrieval unavailable")

	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrTemporary    = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
