package usgs_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/quake-impact-service/internal/adapter/usgs"
	"github.com/couchcryptid/quake-impact-service/internal/observability"
)

const sampleFeed = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"mag": 4.3, "place": "42 km WSW of Ferndale, CA"},
      "geometry": {"type": "Point", "coordinates": [-124.8, 40.5, 21.37]}
    },
    {
      "type": "Feature",
      "properties": {"mag": null, "place": "Kermadec Islands region"},
      "geometry": {"type": "Point", "coordinates": [-177.9, -29.7, -1.2]}
    }
  ]
}`

func newTestClient(feedURL string, timeout time.Duration) *usgs.Client {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return usgs.NewClient(feedURL, timeout, observability.NewMetricsForTesting(), logger)
}

func TestRecentEvents_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	events, err := newTestClient(srv.URL, 5*time.Second).RecentEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)

	first := events[0]
	require.NotNil(t, first.Magnitude)
	assert.Equal(t, 4.3, *first.Magnitude)
	assert.Equal(t, "42 km WSW of Ferndale, CA", first.Place)
	assert.Equal(t, 40.5, first.Lat)
	assert.Equal(t, -124.8, first.Lon)
	assert.Equal(t, 21.37, first.DepthKm)

	second := events[1]
	assert.Nil(t, second.Magnitude)
	assert.Equal(t, -1.2, second.DepthKm) // feed sign preserved
}

func TestRecentEvents_MalformedGeometry(t *testing.T) {
	body := `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"mag": 5.1, "place": "no coordinates"},
      "geometry": {"type": "Point", "coordinates": []}
    },
    {
      "type": "Feature",
      "properties": {"mag": 5.2, "place": "lon only"},
      "geometry": {"type": "Point", "coordinates": [12.5]}
    },
    {
      "type": "Feature",
      "properties": {"mag": 5.3, "place": "no depth"},
      "geometry": {"type": "Point", "coordinates": [12.5, 41.9]}
    }
  ]
}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	events, err := newTestClient(srv.URL, 5*time.Second).RecentEvents(context.Background())
	require.NoError(t, err)

	// Features without a coordinate pair are dropped, not placed at (0, 0).
	require.Len(t, events, 1)
	assert.Equal(t, "no depth", events[0].Place)
	assert.Equal(t, 41.9, events[0].Lat)
	assert.Equal(t, 12.5, events[0].Lon)
	assert.Equal(t, 0.0, events[0].DepthKm)
}

func TestRecentEvents_EmptyFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"type":"FeatureCollection","features":[]}`))
	}))
	defer srv.Close()

	events, err := newTestClient(srv.URL, 5*time.Second).RecentEvents(context.Background())
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestRecentEvents_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream broke"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 5*time.Second).RecentEvents(context.Background())
	require.Error(t, err)
	assert.Equal(t, usgs.KindStatus, usgs.KindOf(err))
	assert.Contains(t, err.Error(), "502")
}

func TestRecentEvents_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>definitely not geojson</html>"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 5*time.Second).RecentEvents(context.Background())
	require.Error(t, err)
	assert.Equal(t, usgs.KindMalformed, usgs.KindOf(err))
}

func TestRecentEvents_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 50*time.Millisecond).RecentEvents(context.Background())
	require.Error(t, err)
	assert.Equal(t, usgs.KindTimeout, usgs.KindOf(err))
}

func TestRecentEvents_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := newTestClient(srv.URL, time.Second).RecentEvents(context.Background())
	require.Error(t, err)
	assert.Equal(t, usgs.KindNetwork, usgs.KindOf(err))
}

func TestKindOf_NonFeedError(t *testing.T) {
	assert.Equal(t, usgs.ErrorKind(""), usgs.KindOf(context.Canceled))
}

func TestCheckReadiness(t *testing.T) {
	t.Run("feed answering", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodHead, r.Method)
		}))
		defer srv.Close()

		err := newTestClient(srv.URL, time.Second).CheckReadiness(context.Background())
		assert.NoError(t, err)
	})

	t.Run("feed erroring", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		err := newTestClient(srv.URL, time.Second).CheckReadiness(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "503")
	})

	t.Run("feed unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
		srv.Close()

		err := newTestClient(srv.URL, time.Second).CheckReadiness(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "feed unreachable")
	})
}
