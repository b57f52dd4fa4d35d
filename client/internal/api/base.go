package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	apierrors "github.com/hectorherrerafullstack/astroApi/client/internal/errors"
	"github.com/hectorherrerafullstack/astroApi/client/internal/types"
)

// HTTPClient interface for dependency injection
type HTTPClient = types.HTTPClient

// endpoint joins the configured base URL and a service path such as "compute/".
func endpoint(baseURL, path string) string {
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// doJSON performs a single round trip. A non-nil payload is sent as a JSON
// body; a 2xx response is decoded into out. Any other status becomes a
// RequestFailure. The response headers are returned for callers that need them.
func doJSON(ctx context.Context, httpClient HTTPClient, op, method, url string, payload, out any) (http.Header, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.Header, apierrors.FromResponse(op, resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.Header, fmt.Errorf("%s: decode response: %w", op, err)
		}
	}
	return resp.Header, nil
}
