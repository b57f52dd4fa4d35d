package types

import "encoding/json"

// ------------------------------
// Request Types
// ------------------------------

// BirthData is the payload for POST /compute/.
type BirthData struct {
	Datetime            string  `json:"datetime" validate:"required"`
	Timezone            string  `json:"timezone" validate:"required"`
	Latitude            float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude           float64 `json:"longitude" validate:"gte=-180,lte=180"`
	HouseSystem         string  `json:"house_system" validate:"required,len=1"`
	TopocentricMoonOnly bool    `json:"topocentric_moon_only"`
}

// ChartSubset is the part of a natal chart the horoscope endpoint reads.
type ChartSubset struct {
	Planets map[string]json.RawMessage `json:"planets"`
	Houses  json.RawMessage            `json:"houses"`
}

// HoroscopeRequest is the payload for POST /horoscope/daily/. TargetDate is
// omitted when empty, in which case the service uses its own "today".
type HoroscopeRequest struct {
	BirthData  ChartSubset `json:"birth_data"`
	Timezone   string      `json:"timezone"`
	TargetDate string      `json:"target_date,omitempty"`
}
