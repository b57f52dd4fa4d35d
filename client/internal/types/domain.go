package types

import "encoding/json"

// ------------------------------
// Core Domain Entities
// ------------------------------

// NatalChart is the chart returned by the compute endpoint. Only planets and
// houses are interpreted by the client; every other field is kept verbatim so
// a stored chart round-trips without loss.
type NatalChart struct {
	Planets map[string]json.RawMessage `json:"planets"`
	Houses  json.RawMessage            `json:"houses"`

	raw json.RawMessage
}

// UnmarshalJSON decodes planets and houses and retains the full document.
func (c *NatalChart) UnmarshalJSON(data []byte) error {
	type chart NatalChart
	var decoded chart
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*c = NatalChart(decoded)
	c.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON returns the document the chart was decoded from, or planets and
// houses alone when the chart was built in code.
func (c NatalChart) MarshalJSON() ([]byte, error) {
	if len(c.raw) > 0 {
		return c.raw, nil
	}
	type chart NatalChart
	return json.Marshal(chart(c))
}

// Subset returns the planets/houses pair the horoscope endpoint expects.
func (c *NatalChart) Subset() ChartSubset {
	return ChartSubset{Planets: c.Planets, Houses: c.Houses}
}

// Aspect is an angular relationship between a transiting and a natal planet.
type Aspect struct {
	TransitPlanet string  `json:"transit_planet"`
	NatalPlanet   string  `json:"natal_planet"`
	Kind          string  `json:"aspect"`
	Angle         float64 `json:"angle,omitempty"`
	Orb           float64 `json:"orb"`
	Applying      bool    `json:"applying"`
	Weight        float64 `json:"weight,omitempty"`
}

// HousePlanet is a transiting planet found inside an activated house.
type HousePlanet struct {
	Planet string `json:"planet"`
	IsFast bool   `json:"is_fast"`
}

// HouseActivation is a natal house occupied by transiting planets.
type HouseActivation struct {
	House   int           `json:"house"`
	Weight  float64       `json:"weight"`
	Planets []HousePlanet `json:"planets"`
}

// Interpretation is the service-written reading of the day. Summary may use
// **bold** and newlines.
type Interpretation struct {
	Summary string `json:"summary"`
	Advice  string `json:"advice"`
}

// TransitPosition is a planet's position on the requested date.
type TransitPosition struct {
	Longitude    float64 `json:"longitude"`
	Speed        float64 `json:"speed"`
	Sign         string  `json:"sign"`
	SignIndex    int     `json:"sign_index"`
	DegreeInSign float64 `json:"degree_in_sign"`
}

// DailyHoroscope is the personalised reading for one date. Aspects and houses
// keep the order the service returned them in.
type DailyHoroscope struct {
	Date            string                     `json:"date"`
	NatalAscendant  string                     `json:"natal_ascendant"`
	TopAspects      []Aspect                   `json:"top_aspects"`
	HousesActivated []HouseActivation          `json:"houses_activated"`
	Interpretation  Interpretation             `json:"interpretation"`
	Transits        map[string]TransitPosition `json:"transits,omitempty"`
}
