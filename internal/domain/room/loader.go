package room

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hotelbook/booking-api/internal/pkg/storage"
)

// LoadCatalog reads a JSON array of rooms from src and validates it.
func LoadCatalog(ctx context.Context, src storage.ObjectSource, key string) (*Catalog, error) {
	rc, err := src.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", key, err)
	}
	defer rc.Close()

	data, err := storage.ReadAll(rc, storage.MaxObjectSize)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", key, err)
	}

	var rooms []Room
	if err := json.Unmarshal(data, &rooms); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrInvalidCatalog, key, err)
	}
	if len(rooms) == 0 {
		return nil, fmt.Errorf("%w: %s has no rooms", ErrInvalidCatalog, key)
	}

	return NewCatalog(rooms)
}

// OpenCatalog builds the catalog from a source URI, or from DefaultRooms when uri is empty.
func OpenCatalog(ctx context.Context, uri string, cfg storage.Config) (*Catalog, error) {
	if uri == "" {
		return NewCatalog(DefaultRooms())
	}
	src, key, err := storage.Open(ctx, uri, cfg)
	if err != nil {
		return nil, err
	}
	return LoadCatalog(ctx, src, key)
}
