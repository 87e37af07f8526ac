package ephemeris

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapponejosh/panchang-api/internal/panchang"
)

func TestClient_Positions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/positions", r.URL.Path)
		assert.Equal(t, "2451545.000000", r.URL.Query().Get("jd"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"sun_longitude": 256.52, "moon_longitude": 199.6, "ayanamsa": 23.85}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/", time.Second)
	pos, err := client.Positions(context.Background(), panchang.J2000)
	require.NoError(t, err)
	require.Equal(t, panchang.Positions{SunLongitude: 256.52, MoonLongitude: 199.6, Ayanamsa: 23.85}, pos)
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		isBad  bool
	}{
		{"server error", http.StatusBadGateway, `upstream down`, false},
		{"malformed json", http.StatusOK, `{"sun_longitude":`, false},
		{"missing field", http.StatusOK, `{"sun_longitude": 10, "moon_longitude": 20}`, true},
		{"out of range", http.StatusOK, `{"sun_longitude": 360, "moon_longitude": 20, "ayanamsa": 24}`, true},
		{"negative", http.StatusOK, `{"sun_longitude": 10, "moon_longitude": -1, "ayanamsa": 24}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, time.Second).Positions(context.Background(), panchang.J2000)
			require.Error(t, err)
			assert.Equal(t, tt.isBad, errors.Is(err, ErrBadPosition))
		})
	}
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewClient(srv.URL, 50*time.Millisecond).Positions(context.Background(), panchang.J2000)
	require.Error(t, err)
}

func TestClient_NotConfigured(t *testing.T) {
	_, err := NewClient("  ", 0).Positions(context.Background(), panchang.J2000)
	require.Error(t, err)
}

func TestClient_FallsBackInsideCalculator(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	calc := panchang.NewCalculator(panchang.WithEphemeris(NewClient(srv.URL, time.Second)))
	result, err := calc.Calculate(context.Background(), "2024-01-07", panchang.GeoLocation{
		Latitude:  19.076,
		Longitude: 72.8777,
		Timezone:  "Asia/Kolkata",
	})
	require.NoError(t, err)
	assert.Equal(t, panchang.MethodFallback, result.Diagnostics.Method)
}
