package errors

import (
	"io"
	"net/http"
	"strings"
)

// maxBodyBytes bounds how much of a failed response body is kept for debugging.
const maxBodyBytes = 4 << 10

// categorize maps HTTP status codes to failure categories:
// - 4xx client errors (except 408 and 429) mean the request was rejected
// - everything else means the service is unavailable
func categorize(statusCode int) Category {
	if statusCode >= 400 && statusCode < 500 {
		switch statusCode {
		case http.StatusRequestTimeout, http.StatusTooManyRequests:
			return ServiceError
		default:
			return ClientError
		}
	}
	return ServiceError
}

// NewRequestFailure builds a RequestFailure for a status code and status text.
func NewRequestFailure(operation string, statusCode int, status, body string) *RequestFailure {
	return &RequestFailure{
		Operation:  operation,
		StatusCode: statusCode,
		Status:     status,
		Category:   categorize(statusCode),
		Body:       body,
	}
}

// FromResponse builds a RequestFailure from a non-success response. The body
// is read up to maxBodyBytes; the caller still owns closing it.
func FromResponse(operation string, resp *http.Response) *RequestFailure {
	var body string
	if resp.Body != nil {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		body = strings.TrimSpace(string(b))
	}
	return NewRequestFailure(operation, resp.StatusCode, statusText(resp), body)
}

// statusText returns the reason phrase, e.g. "Service Unavailable", from a
// response whose Status field looks like "503 Service Unavailable".
func statusText(resp *http.Response) string {
	if _, text, ok := strings.Cut(resp.Status, " "); ok && text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}
