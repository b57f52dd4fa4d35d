package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/hectorherrerafullstack/astroApi/client/internal/types"
)

// GetTransits reads planetary positions for a date. An empty date lets the
// service use the current moment.
func GetTransits(ctx context.Context, httpClient HTTPClient, baseURL, date, timezone string) (*types.TransitSet, error) {
	if err := types.ValidateDate(date); err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("timezone", types.TimezoneOrDefault(timezone))
	if date != "" {
		q.Set("date", date)
	}
	var ts types.TransitSet
	if _, err := doJSON(ctx, httpClient, "get transits", http.MethodGet, endpoint(baseURL, "transits/")+"?"+q.Encode(), nil, &ts); err != nil {
		return nil, err
	}
	return &ts, nil
}
