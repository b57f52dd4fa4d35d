package client

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func TestWithHTTPTimeoutAndDebugLogging(t *testing.T) {
	// timeout option sets http timeout
	c := &Client{http: &http.Client{}}
	if err := WithHTTPTimeout(5 * time.Second)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.http.Timeout != 5*time.Second {
		t.Fatalf("http timeout not set")
	}
	if err := WithHTTPTimeout(0)(c); err == nil {
		t.Fatalf("expected error for zero timeout")
	}

	// debug logging wraps the injected transport
	var called bool
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		called = true
		return &http.Response{StatusCode: 200, Body: http.NoBody, Header: make(http.Header)}, nil
	})
	c2, err := New("http://example.com", WithHTTPClient(&http.Client{Transport: rt}), WithHTTPTimeout(2*time.Second), WithDebugLogging(true))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	outer, ok := c2.http.Transport.(*requestIDTransport)
	if !ok {
		t.Fatalf("expected request-id transport outermost, got %T", c2.http.Transport)
	}
	if _, ok := outer.base.(*debugTransport); !ok {
		t.Fatalf("expected debug transport underneath, got %T", outer.base)
	}

	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://example.com", strings.NewReader(""))
	if _, err := c2.http.Do(req); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if !called {
		t.Fatalf("base transport not invoked")
	}
}

func TestWithDebugLogging_Disabled(t *testing.T) {
	c := &Client{http: &http.Client{}}
	if err := WithDebugLogging(false)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.http.Transport != nil {
		t.Fatalf("transport should be untouched when disabled")
	}
}

func TestWithHTTPClient_LeavesCallerClientUntouched(t *testing.T) {
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: 200, Body: http.NoBody, Header: make(http.Header)}, nil
	})
	shared := &http.Client{Transport: rt}

	for i := 0; i < 2; i++ {
		c := MustNew("http://example.com", WithHTTPClient(shared), WithHTTPTimeout(time.Second))
		outer, ok := c.http.Transport.(*requestIDTransport)
		if !ok {
			t.Fatalf("unexpected transport %T", c.http.Transport)
		}
		if _, nested := outer.base.(*requestIDTransport); nested {
			t.Fatalf("request-id transport stacked on client %d", i)
		}
	}
	if _, ok := shared.Transport.(roundTripFunc); !ok {
		t.Fatalf("caller transport replaced with %T", shared.Transport)
	}
	if shared.Timeout != 0 {
		t.Fatalf("caller timeout changed to %s", shared.Timeout)
	}
}
