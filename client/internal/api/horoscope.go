package api

import (
	"context"
	"net/http"

	"github.com/hectorherrerafullstack/astroApi/client/internal/types"
)

// GetDailyHoroscope posts the chart's planets and houses to the daily
// horoscope endpoint. An empty targetDate leaves target_date out of the
// payload so the service picks today; an empty timezone means UTC.
func GetDailyHoroscope(ctx context.Context, httpClient HTTPClient, baseURL string, chart *types.NatalChart, targetDate, timezone string) (*types.DailyHoroscope, error) {
	if err := types.ValidateChart(chart); err != nil {
		return nil, err
	}
	if err := types.ValidateDate(targetDate); err != nil {
		return nil, err
	}
	payload := types.HoroscopeRequest{
		BirthData:  chart.Subset(),
		Timezone:   types.TimezoneOrDefault(timezone),
		TargetDate: targetDate,
	}
	var h types.DailyHoroscope
	if _, err := doJSON(ctx, httpClient, "get daily horoscope", http.MethodPost, endpoint(baseURL, "horoscope/daily/"), payload, &h); err != nil {
		return nil, err
	}
	return &h, nil
}
