package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(srv.Client(), "test-key")
	c.baseURL = srv.URL
	return c
}

func TestCurrentTemperature(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"cod":200,"main":{"temp":21.5,"humidity":40}}`))
	})

	temp, err := c.CurrentTemperature(context.Background(), "Moscow")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if temp != 21.5 {
		t.Fatalf("expected 21.5, got %v", temp)
	}

	q := "appid=test-key&q=Moscow&units=metric"
	if gotQuery != q {
		t.Fatalf("expected query %q, got %q", q, gotQuery)
	}
}

func TestCurrentTemperatureUnauthorized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"cod":401,"message":"Invalid API key"}`))
	})

	if _, err := c.CurrentTemperature(context.Background(), "Moscow"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestCurrentTemperatureStringCod(t *testing.T) {
	// OpenWeather serializes cod as a string on some error paths.
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"cod":"401","message":"Invalid API key"}`))
	})

	if _, err := c.CurrentTemperature(context.Background(), "Moscow"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestCurrentTemperatureNoReading(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"cod":200}`))
	})

	if _, err := c.CurrentTemperature(context.Background(), "Moscow"); !errors.Is(err, ErrNoReading) {
		t.Fatalf("expected ErrNoReading, got %v", err)
	}
}

func TestCurrentTemperatureMissingKey(t *testing.T) {
	c := NewClient(http.DefaultClient, "")
	if _, err := c.CurrentTemperature(context.Background(), "Moscow"); err == nil {
		t.Fatal("expected error when api key is not configured")
	}
}
