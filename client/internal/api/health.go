package api

import (
	"context"
	"net/http"

	"github.com/hectorherrerafullstack/astroApi/client/internal/types"
)

// Health checks the service and reports its provenance headers.
func Health(ctx context.Context, httpClient HTTPClient, baseURL string) (*types.HealthStatus, error) {
	var hs types.HealthStatus
	hdr, err := doJSON(ctx, httpClient, "health", http.MethodGet, endpoint(baseURL, "health/"), nil, &hs)
	if err != nil {
		return nil, err
	}
	hs.SourceCode = hdr.Get("X-Source-Code")
	hs.License = hdr.Get("X-License")
	return &hs, nil
}
