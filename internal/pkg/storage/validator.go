package storage

import (
	"fmt"
	"io"
)

// MaxObjectSize bounds what ReadAll will buffer.
const MaxObjectSize = 1 << 20

// ReadAll reads an object fully, rejecting empty or oversized payloads.
func ReadAll(reader io.Reader, maxSize int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(reader, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read object: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyObject
	}
	if int64(len(data)) > maxSize {
		return nil, ErrObjectTooLarge
	}
	return data, nil
}
