package types

// ------------------------------
// Response Types
// ------------------------------

// TransitSet wraps the GET /transits/ response.
type TransitSet struct {
	Date     string                     `json:"date"`
	Timezone string                     `json:"timezone"`
	Transits map[string]TransitPosition `json:"transits"`
}

// HealthStatus is the GET /health/ response plus the provenance headers the
// service attaches to every answer.
type HealthStatus struct {
	Status     string `json:"status"`
	SourceCode string `json:"-"`
	License    string `json:"-"`
}
