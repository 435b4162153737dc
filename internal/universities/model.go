package universities

import "time"

// University is a reference entity owning zero or more programs.
type University struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Ranking     *int      `json:"ranking,omitempty"`
	LogoColor   string    `json:"logoColor,omitempty"`
	Description string    `json:"description,omitempty"`
	Programs    []Program `json:"programs,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Program is an immutable reference target for applications.
type Program struct {
	ID           string         `json:"id"`
	UniversityID string         `json:"universityId"`
	Name         string         `json:"name"`
	Degree       string         `json:"degree"`
	Duration     string         `json:"duration"`
	Fee          float64        `json:"fee"`
	Description  string         `json:"description,omitempty"`
	Eligibility  map[string]any `json:"eligibility,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
}
