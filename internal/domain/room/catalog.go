package room

import (
	"fmt"
)

// Catalog is the read-only room list supplied once at startup.
// Accessors return copies, so callers cannot mutate the seed data.
type Catalog struct {
	rooms []Room
	byID  map[string]int
}

// NewCatalog validates rooms and builds a catalog.
func NewCatalog(rooms []Room) (*Catalog, error) {
	c := &Catalog{
		rooms: make([]Room, 0, len(rooms)),
		byID:  make(map[string]int, len(rooms)),
	}

	for i, r := range rooms {
		if r.ID == "" {
			return nil, fmt.Errorf("%w: room at index %d has no id", ErrInvalidCatalog, i)
		}
		if _, dup := c.byID[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate room id %q", ErrInvalidCatalog, r.ID)
		}
		if !r.Type.IsValid() {
			return nil, fmt.Errorf("%w: room %q has unknown type %q", ErrInvalidCatalog, r.ID, r.Type)
		}
		if r.NightlyPrice <= 0 {
			return nil, fmt.Errorf("%w: room %q must have a positive nightly price", ErrInvalidCatalog, r.ID)
		}
		if r.Capacity <= 0 {
			return nil, fmt.Errorf("%w: room %q must have a positive capacity", ErrInvalidCatalog, r.ID)
		}
		c.byID[r.ID] = len(c.rooms)
		c.rooms = append(c.rooms, r.Clone())
	}

	return c, nil
}

// Rooms returns every room in catalog order.
func (c *Catalog) Rooms() []Room {
	return cloneAll(c.rooms)
}

// Get returns the room with the given id.
func (c *Catalog) Get(id string) (Room, error) {
	i, ok := c.byID[id]
	if !ok {
		return Room{}, ErrRoomNotFound
	}
	return c.rooms[i].Clone(), nil
}

// Len returns the number of rooms.
func (c *Catalog) Len() int {
	return len(c.rooms)
}
