package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/beach-safety-agent/internal/config"
	"github.com/beach-safety-agent/internal/domain"
	"github.com/beach-safety-agent/internal/pkg/errors"
	"github.com/beach-safety-agent/internal/pkg/metrics"
)

func newTestClient(baseURL string) *client {
	cfg := &config.GatewayConfig{
		BaseURL:        baseURL,
		RequestTimeout: 5 * time.Second,
		MaxRetries:     3,
		RetryBackoff:   10 * time.Millisecond,
	}
	return NewClient(cfg, metrics.New(), zap.NewNop()).(*client)
}

func TestClient_FetchBeaches(t *testing.T) {
	t.Run("successful fetch with zone decoding", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/beaches", r.URL.Path)
			assert.Equal(t, "en", r.URL.Query().Get("language"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"id":1,"name":"Safi Beach","zones":[{"id":5,"type":"BATHING","coordinates":[{"latitude":32.29,"longitude":-9.25},{"latitude":32.29,"longitude":-9.22},{"latitude":32.31,"longitude":-9.22}]}]}]`))
		}))
		defer server.Close()

		beaches, err := newTestClient(server.URL).FetchBeaches(context.Background(), "en")
		require.NoError(t, err)

		require.Len(t, beaches, 1)
		assert.Equal(t, "Safi Beach", beaches[0].Name)
		require.Len(t, beaches[0].Zones, 1)
		assert.Equal(t, domain.ZoneSafe, beaches[0].Zones[0].Kind)
		assert.True(t, beaches[0].Zones[0].Matchable())
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{not json`))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).FetchBeaches(context.Background(), "en")
		assert.ErrorIs(t, err, errors.ErrParseFailure)
	})
}

func TestClient_FetchAlerts(t *testing.T) {
	t.Run("204 means no alerts", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/alerts/beach/1", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		alerts, err := newTestClient(server.URL).FetchAlerts(context.Background(), 1)
		require.NoError(t, err)
		assert.NotNil(t, alerts)
		assert.Empty(t, alerts)
	})

	t.Run("alerts decoded", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"id":11,"type":"DANGER","message":"Rip current","beachId":1,"zoneId":7}]`))
		}))
		defer server.Close()

		alerts, err := newTestClient(server.URL).FetchAlerts(context.Background(), 1)
		require.NoError(t, err)
		require.Len(t, alerts, 1)
		assert.Equal(t, "Rip current", alerts[0].Message)
		require.NotNil(t, alerts[0].ZoneID)
		assert.Equal(t, 7, *alerts[0].ZoneID)
	})
}

func TestClient_Retries(t *testing.T) {
	t.Run("5xx retried until success", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) < 3 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Write([]byte(`[]`))
		}))
		defer server.Close()

		beaches, err := newTestClient(server.URL).FetchBeaches(context.Background(), "en")
		require.NoError(t, err)
		assert.Empty(t, beaches)
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	})

	t.Run("retries exhausted", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).FetchBeaches(context.Background(), "en")
		assert.ErrorIs(t, err, errors.ErrNetworkFailure)
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	})

	t.Run("4xx not retried", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).FetchBeaches(context.Background(), "en")
		assert.ErrorIs(t, err, errors.ErrNetworkFailure)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})
}

func TestClient_UpdateLocation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/users/update-location", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload locationRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "device-1", payload.DeviceID)
		assert.Equal(t, 32.2996, payload.Latitude)
		assert.Equal(t, -9.2371, payload.Longitude)

		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	err := newTestClient(server.URL).UpdateLocation(context.Background(), "device-1",
		domain.Coordinate{Lat: 32.2996, Lon: -9.2371})
	assert.NoError(t, err)
}

func TestClient_CheckLocation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/check-location", r.URL.Path)
		w.Write([]byte(`{"inside":true,"zoneId":5,"zoneType":"BATHING","beachId":1,"beachName":"Safi Beach"}`))
	}))
	defer server.Close()

	result, err := newTestClient(server.URL).CheckLocation(context.Background(), "device-1",
		domain.Coordinate{Lat: 32.2996, Lon: -9.2371})
	require.NoError(t, err)

	assert.True(t, result.Inside)
	require.NotNil(t, result.ZoneID)
	assert.Equal(t, 5, *result.ZoneID)
	assert.Equal(t, "BATHING", result.ZoneType)
	assert.Equal(t, "Safi Beach", result.BeachName)
}

func TestClient_FetchLastLocation(t *testing.T) {
	t.Run("known location", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/users/location/device-1", r.URL.Path)
			w.Write([]byte(`{"latitude":32.2996,"longitude":-9.2371}`))
		}))
		defer server.Close()

		coord, err := newTestClient(server.URL).FetchLastLocation(context.Background(), "device-1")
		require.NoError(t, err)
		assert.Equal(t, 32.2996, coord.Lat)
		assert.Equal(t, -9.2371, coord.Lon)
	})

	t.Run("404 maps to not found without retries", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).FetchLastLocation(context.Background(), "device-1")
		assert.ErrorIs(t, err, errors.ErrLocationNotFound)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("invalid coordinates rejected", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"latitude":120.5,"longitude":-9.2371}`))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).FetchLastLocation(context.Background(), "device-1")
		assert.ErrorIs(t, err, errors.ErrInvalidCoordinates)
	})
}

func TestClient_PushSettings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/settings", r.URL.Path)

		var payload settingsEnvelope
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "device-1", payload.DeviceID)
		assert.False(t, payload.Settings.Sounds)

		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	settings := domain.DefaultSettings()
	settings.Sounds = false

	err := newTestClient(server.URL).PushSettings(context.Background(), "device-1", settings)
	assert.NoError(t, err)
}

func TestClient_FetchSettings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/settings", r.URL.Path)
		assert.Equal(t, "device-1", r.URL.Query().Get("deviceId"))

		w.Write([]byte(`{"notifications":true,"locationAlerts":true,"sounds":false,"vibrations":true,"dailyTips":true,"version":3}`))
	}))
	defer server.Close()

	settings, err := newTestClient(server.URL).FetchSettings(context.Background(), "device-1")
	require.NoError(t, err)
	assert.False(t, settings.Sounds)
	assert.True(t, settings.DailyTips)
	assert.Equal(t, 3, settings.Version)
}

func TestClient_FetchDailyTip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tips/daily", r.URL.Path)
		assert.Equal(t, "fr", r.URL.Query().Get("language"))
		w.Write([]byte(`{"id":4,"language":"fr","title":"Marees","message":"Attention aux marees"}`))
	}))
	defer server.Close()

	tip, err := newTestClient(server.URL).FetchDailyTip(context.Background(), "fr")
	require.NoError(t, err)
	assert.Equal(t, 4, tip.ID)
	assert.Equal(t, "Marees", tip.Title)
}
