package room

// BrowseQuery is the query string of GET /rooms.
type BrowseQuery struct {
	Type        string `json:"type" validate:"omitempty,room_type"`
	MaxPrice    int64  `json:"max_price" validate:"gte=0"`
	MinCapacity int    `json:"min_capacity" validate:"gte=0"`
	Search      string `json:"q" validate:"max=100"`
}

// StayQuery is the query string of the availability and quote endpoints.
type StayQuery struct {
	PartySize int    `json:"party_size" validate:"gte=1"`
	Arrival   string `json:"arrival" validate:"required"`
	Departure string `json:"departure" validate:"required"`
}

// AvailableRoom pairs an eligible room with the price of the requested stay.
type AvailableRoom struct {
	Room  Room  `json:"room"`
	Quote Quote `json:"quote"`
}
