package domain

// DisasterCategory is the only event category the app keeps
const DisasterCategory = "disasters"

// Event represents a single event returned by the events API
type Event struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Labels      []string `json:"labels,omitempty"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
	Geo         *Geo     `json:"geo,omitempty"`
	Timezone    string   `json:"timezone,omitempty"`
	State       string   `json:"state,omitempty"`
}

// Geo holds the location block of an event
type Geo struct {
	Geometry *Geometry `json:"geometry,omitempty"`
	Address  *Address  `json:"address,omitempty"`
}

// Geometry holds event coordinates as [lon, lat]
type Geometry struct {
	Coordinates []float64 `json:"coordinates,omitempty"`
}

// Address is the postal part of an event location
type Address struct {
	City        string `json:"city,omitempty"`
	District    string `json:"district,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
}

// Page is one page of search results
type Page struct {
	Items []Event
	Next  string // continuation; "" when there are no more pages
}

// IsDisaster reports whether the event belongs to the disasters category.
// The comparison is exact; a missing category never matches.
func (e Event) IsDisaster() bool {
	return e.Category == DisasterCategory
}

// Location returns the city, falling back to the district
func (e Event) Location() string {
	if e.Geo == nil || e.Geo.Address == nil {
		return ""
	}
	if e.Geo.Address.City != "" {
		return e.Geo.Address.City
	}
	return e.Geo.Address.District
}
