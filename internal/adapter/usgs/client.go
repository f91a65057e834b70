// Package usgs fetches seismic events from a USGS GeoJSON summary feed.
package usgs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/couchcryptid/quake-impact-service/internal/domain"
	"github.com/couchcryptid/quake-impact-service/internal/observability"
)

// ErrorKind classifies feed fetch failures so callers can surface each
// kind distinctly instead of one undifferentiated error string.
type ErrorKind string

const (
	KindTimeout   ErrorKind = "timeout"
	KindNetwork   ErrorKind = "network"
	KindStatus    ErrorKind = "status"
	KindMalformed ErrorKind = "malformed"
)

// FeedError wraps a fetch failure with its classification.
type FeedError struct {
	Kind ErrorKind
	Err  error
}

func (e *FeedError) Error() string {
	return fmt.Sprintf("usgs feed %s: %v", e.Kind, e.Err)
}

func (e *FeedError) Unwrap() error { return e.Err }

// KindOf returns the classification of err, or "" when err is not a FeedError.
func KindOf(err error) ErrorKind {
	var fe *FeedError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}

// Client fetches seismic events over a bounded-timeout HTTP GET.
type Client struct {
	feedURL    string
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a feed client. The timeout bounds the whole fetch
// including the body read; there is no retry.
func NewClient(feedURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		feedURL: feedURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// RecentEvents performs one GET of the feed and returns every feature in
// feed order, including events with a null magnitude.
func (c *Client) RecentEvents(ctx context.Context) ([]domain.SeismicEvent, error) {
	start := time.Now()
	events, err := c.fetch(ctx)
	c.metrics.FeedFetchDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		kind := KindOf(err)
		c.metrics.FeedFetches.WithLabelValues(string(kind)).Inc()
		c.logger.Warn("feed fetch failed", "kind", kind, "error", err)
		return nil, err
	}

	c.metrics.FeedFetches.WithLabelValues("success").Inc()
	c.metrics.FeedEvents.Observe(float64(len(events)))
	return events, nil
}

func (c *Client) fetch(ctx context.Context) ([]domain.SeismicEvent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return nil, &FeedError{Kind: KindNetwork, Err: fmt.Errorf("create request: %w", err)}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FeedError{Kind: classifyTransport(err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &FeedError{Kind: KindStatus, Err: fmt.Errorf("status %d: %s", resp.StatusCode, body)}
	}

	var f feed
	if err := json.NewDecoder(resp.Body).Decode(&f); err != nil {
		return nil, &FeedError{Kind: KindMalformed, Err: fmt.Errorf("decode feed: %w", err)}
	}

	events := make([]domain.SeismicEvent, 0, len(f.Features))
	for _, feat := range f.Features {
		// GeoJSON coordinate order is [lon, lat, depth]. A feature without
		// a coordinate pair has no usable location and is skipped; it must
		// not default to (0, 0).
		if len(feat.Geometry.Coordinates) < 2 {
			c.logger.Warn("skipping feature with malformed geometry", "place", feat.Properties.Place)
			continue
		}
		ev := domain.SeismicEvent{
			Magnitude: feat.Properties.Mag,
			Place:     feat.Properties.Place,
			Lon:       feat.Geometry.Coordinates[0],
			Lat:       feat.Geometry.Coordinates[1],
		}
		if len(feat.Geometry.Coordinates) >= 3 {
			ev.DepthKm = feat.Geometry.Coordinates[2]
		}
		events = append(events, ev)
	}
	return events, nil
}

// classifyTransport separates client-side timeouts from other transport failures.
func classifyTransport(err error) ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return KindTimeout
	}
	return KindNetwork
}

// CheckReadiness reports whether the upstream feed answers at all.
func (c *Client) CheckReadiness(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.feedURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("feed unreachable: %w", err)
	}
	resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("feed returned status %d", resp.StatusCode)
	}
	return nil
}

// USGS GeoJSON summary types.

type feed struct {
	Features []feature `json:"features"`
}

type feature struct {
	Properties struct {
		Mag   *float64 `json:"mag"`
		Place string   `json:"place"`
	} `json:"properties"`
	Geometry struct {
		Coordinates []float64 `json:"coordinates"` // [lon, lat, depth]
	} `json:"geometry"`
}
