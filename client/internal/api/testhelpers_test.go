package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/hectorherrerafullstack/astroApi/client/internal/types"
)

// errRT is an http.RoundTripper that always returns an error (simulates network failure).
type errRT struct{}

func (e *errRT) RoundTrip(*http.Request) (*http.Response, error) { return nil, fmt.Errorf("boom") }

const chartJSON = `{
	"planets": {"sun": {"value": 255.93}, "moon": {"value": 12.4}},
	"houses": {"cusps": [{"value": 160.2}], "ascendente": {"formatted": "Virgo 10°12'"}},
	"aspects": []
}`

func testChart(t *testing.T) *types.NatalChart {
	t.Helper()
	var c types.NatalChart
	if err := json.Unmarshal([]byte(chartJSON), &c); err != nil {
		t.Fatalf("decode chart fixture: %v", err)
	}
	return &c
}

const horoscopeJSON = `{
	"date": "2024-05-01",
	"natal_ascendant": "Virgo 10°12'",
	"top_aspects": [
		{"transit_planet": "moon", "natal_planet": "sun", "aspect": "Trígono", "angle": 119.2, "orb": 0.8, "applying": true, "weight": 15}
	],
	"houses_activated": [
		{"house": 5, "weight": 10, "planets": [{"planet": "moon", "is_fast": true}, {"planet": "venus", "is_fast": true}]}
	],
	"interpretation": {"summary": "**Aspectos clave del día:**\n- Moon en trígono", "advice": "Día favorable."},
	"transits": {"moon": {"longitude": 132.1, "speed": 13.2, "sign": "Leo", "sign_index": 4, "degree_in_sign": 12.1}}
}`
