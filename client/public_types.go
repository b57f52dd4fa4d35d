package client

import "github.com/hectorherrerafullstack/astroApi/client/internal/types"

// Public type aliases so SDK consumers can import only the client package.
type (
	// Requests
	BirthData        = types.BirthData
	HoroscopeRequest = types.HoroscopeRequest
	ChartSubset      = types.ChartSubset

	// Domain entities
	NatalChart      = types.NatalChart
	Aspect          = types.Aspect
	HouseActivation = types.HouseActivation
	HousePlanet     = types.HousePlanet
	Interpretation  = types.Interpretation
	TransitPosition = types.TransitPosition
	DailyHoroscope  = types.DailyHoroscope

	// Responses
	TransitSet   = types.TransitSet
	HealthStatus = types.HealthStatus
)

// DateLayout is the YYYY-MM-DD layout used for dates and cache keys.
const DateLayout = types.DateLayout

// DefaultTimezone is assumed when a timezone argument is empty.
const DefaultTimezone = types.DefaultTimezone
