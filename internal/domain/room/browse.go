package room

import "strings"

// BrowseFilter holds the listing page filters. Zero values disable a filter.
type BrowseFilter struct {
	Type        Type
	MaxPrice    int64
	MinCapacity int
	Search      string
}

// Browse narrows rooms for the listing page. Search matches type or description, case-insensitively.
func Browse(rooms []Room, f BrowseFilter) []Room {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]Room, 0, len(rooms))
	for _, r := range rooms {
		if f.Type != "" && r.Type != f.Type {
			continue
		}
		if f.MaxPrice > 0 && r.NightlyPrice > f.MaxPrice {
			continue
		}
		if f.MinCapacity > 0 && r.Capacity < f.MinCapacity {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(string(r.Type)), search) &&
			!strings.Contains(strings.ToLower(r.Description), search) {
			continue
		}
		out = append(out, r.Clone())
	}
	return out
}

// Types lists the distinct room types in catalog order.
func Types(rooms []Room) []Type {
	seen := make(map[Type]bool)
	var out []Type
	for _, r := range rooms {
		if !seen[r.Type] {
			seen[r.Type] = true
			out = append(out, r.Type)
		}
	}
	return out
}
