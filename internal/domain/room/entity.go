package room

// Type is the room category.
type Type string

const (
	TypeSimple Type = "simple"
	TypeDouble Type = "double"
	TypeSuite  Type = "suite"
	TypeDeluxe Type = "deluxe"
)

// IsValid reports whether t is a known room type.
func (t Type) IsValid() bool {
	switch t {
	case TypeSimple, TypeDouble, TypeSuite, TypeDeluxe:
		return true
	}
	return false
}

// Room is a bookable unit. NightlyPrice is in whole FCFA.
type Room struct {
	ID           string   `json:"id"`
	Number       string   `json:"number"`
	Type         Type     `json:"type"`
	NightlyPrice int64    `json:"nightly_price"`
	Capacity     int      `json:"capacity"`
	Description  string   `json:"description,omitempty"`
	Image        string   `json:"image,omitempty"`
	Amenities    []string `json:"amenities"`
	Available    bool     `json:"available"`
}

// Clone returns a copy that shares no memory with r.
func (r Room) Clone() Room {
	if r.Amenities != nil {
		r.Amenities = append([]string(nil), r.Amenities...)
	}
	return r
}

func cloneAll(rooms []Room) []Room {
	out := make([]Room, len(rooms))
	for i, r := range rooms {
		out[i] = r.Clone()
	}
	return out
}
