package api

import (
	"context"
	"net/http"

	"github.com/hectorherrerafullstack/astroApi/client/internal/types"
)

// ComputeNatalChart posts birth data to the compute endpoint.
func ComputeNatalChart(ctx context.Context, httpClient HTTPClient, baseURL string, birth types.BirthData) (*types.NatalChart, error) {
	if err := types.ValidateBirthData(birth); err != nil {
		return nil, err
	}
	var chart types.NatalChart
	if _, err := doJSON(ctx, httpClient, "compute natal chart", http.MethodPost, endpoint(baseURL, "compute/"), birth, &chart); err != nil {
		return nil, err
	}
	return &chart, nil
}
