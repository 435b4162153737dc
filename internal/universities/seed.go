package universities

// SeedDev loads the same catalog the SQL seed migration installs, so the
// in-memory dev mode has referenced universities from the start.
func SeedDev(r *MemoryRepo) {
	four := 4
	two := 2
	r.Put(University{
		ID:          "11111111-1111-1111-1111-111111111111",
		Name:        "Delhi Technical University",
		Location:    "New Delhi",
		Ranking:     &four,
		Description: "Public technical university",
	},
		Program{
			ID:       "aaaaaaa1-0000-0000-0000-000000000001",
			Name:     "Computer Science",
			Degree:   "B.Tech",
			Duration: "4 years",
			Fee:      250000,
		},
		Program{
			ID:       "aaaaaaa1-0000-0000-0000-000000000002",
			Name:     "Electronics",
			Degree:   "B.Tech",
			Duration: "4 years",
			Fee:      220000,
		},
	)
	r.Put(University{
		ID:          "22222222-2222-2222-2222-222222222222",
		Name:        "Bangalore Institute of Science",
		Location:    "Bangalore",
		Ranking:     &two,
		Description: "Research-focused institute",
	},
		Program{
			ID:       "aaaaaaa2-0000-0000-0000-000000000001",
			Name:     "Data Science",
			Degree:   "B.Sc",
			Duration: "3 years",
			Fee:      180000,
		},
	)
}
