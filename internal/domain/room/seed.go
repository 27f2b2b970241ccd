package room

// DefaultRooms returns the built-in hotel catalog.
func DefaultRooms() []Room {
	return []Room{
		{
			ID: "1", Number: "101", Type: TypeSimple, NightlyPrice: 25000, Capacity: 1,
			Description: "Chambre simple confortable avec vue sur la ville",
			Image:       unsplash("1611892440507-42a792e24d32"),
			Amenities:   []string{"Climatisation", "Wi-Fi", "TV", "Salle de bain privée"},
			Available:   true,
		},
		{
			ID: "2", Number: "102", Type: TypeDouble, NightlyPrice: 35000, Capacity: 2,
			Description: "Chambre double spacieuse avec lit king-size",
			Image:       unsplash("1566073771259-6a8506099945"),
			Amenities:   []string{"Climatisation", "Wi-Fi", "TV", "Minibar", "Salle de bain privée"},
			Available:   true,
		},
		{
			ID: "3", Number: "201", Type: TypeSuite, NightlyPrice: 55000, Capacity: 3,
			Description: "Suite élégante avec salon séparé",
			Image:       unsplash("1582719478250-c89cae4dc85b"),
			Amenities:   []string{"Climatisation", "Wi-Fi", "TV", "Minibar", "Balcon", "Salle de bain privée"},
			Available:   true,
		},
		{
			ID: "4", Number: "301", Type: TypeDeluxe, NightlyPrice: 75000, Capacity: 4,
			Description: "Suite deluxe avec vue panoramique",
			Image:       unsplash("1584132967334-10e028bd69f5"),
			Amenities:   []string{"Climatisation", "Wi-Fi", "TV", "Minibar", "Balcon", "Jacuzzi", "Salle de bain privée"},
			Available:   true,
		},
		{
			ID: "5", Number: "103", Type: TypeSimple, NightlyPrice: 25000, Capacity: 1,
			Description: "Chambre simple calme côté jardin",
			Image:       unsplash("1631049307264-da0ec9d70304"),
			Amenities:   []string{"Climatisation", "Wi-Fi", "TV", "Salle de bain privée"},
			Available:   true,
		},
		{
			ID: "6", Number: "202", Type: TypeDouble, NightlyPrice: 35000, Capacity: 2,
			Description: "Chambre double avec deux lits séparés",
			Image:       unsplash("1566665797739-1674de7a4219"),
			Amenities:   []string{"Climatisation", "Wi-Fi", "TV", "Minibar", "Salle de bain privée"},
			Available:   true,
		},
	}
}

func unsplash(photo string) string {
	return "https://images.unsplash.com/photo-" + photo + "?w=800&h=600&fit=crop&auto=format"
}
