// Command genfeed generates a synthetic USGS-style GeoJSON summary feed for
// local development and test fixtures. Events are scattered around a center
// point with a deterministic seed; a fraction get a null magnitude to mirror
// unreviewed feed entries.
//
// Usage:
//
//	go run ./cmd/genfeed -center 37.77,-122.42 -count 25 -out feed.geojson
//	go run ./cmd/genfeed -center 37.77,-122.42 -serve :9091
//
// With -serve, the generated feed is kept in memory and served at
// /feed.geojson so the service can run against FEED_URL=http://localhost:9091/feed.geojson.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"strings"
)

type properties struct {
	Mag   *float64 `json:"mag"`
	Place string   `json:"place"`
}

type geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"` // [lon, lat, depth]
}

type feature struct {
	Type       string     `json:"type"`
	Properties properties `json:"properties"`
	Geometry   geometry   `json:"geometry"`
}

type feed struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

func main() {
	var (
		center = flag.String("center", "37.77,-122.42", "feed center as lat,lon")
		count  = flag.Int("count", 25, "number of events to generate")
		seed   = flag.Int64("seed", 1, "random seed")
		out    = flag.String("out", "feed.geojson", "output file")
		serve  = flag.String("serve", "", "serve the feed over HTTP at this address instead of writing a file")
	)
	flag.Parse()

	lat, lon, err := parseCenter(*center)
	if err != nil {
		log.Fatalf("invalid -center: %v", err)
	}

	f := generate(lat, lon, *count, *seed)

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		log.Fatalf("marshal feed: %v", err)
	}

	if *serve != "" {
		http.HandleFunc("/feed.geojson", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write(data) //nolint:errcheck
		})
		log.Printf("serving %d events at http://%s/feed.geojson", len(f.Features), *serve)
		log.Fatal(http.ListenAndServe(*serve, nil))
	}

	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatalf("write %s: %v", *out, err)
	}
	log.Printf("wrote %d events to %s", len(f.Features), *out)
}

func parseCenter(s string) (lat, lon float64, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("want lat,lon, got %q", s)
	}
	lat, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, err
	}
	lon, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	return lat, lon, err
}

func generate(lat, lon float64, count int, seed int64) feed {
	rng := rand.New(rand.NewSource(seed))

	f := feed{Type: "FeatureCollection"}
	for i := 0; i < count; i++ {
		// Scatter within roughly +-9 degrees so some events land outside
		// the default 1000 km eligibility radius.
		evLat := lat + (rng.Float64()-0.5)*18
		evLon := lon + (rng.Float64()-0.5)*18
		depth := rng.Float64()*120 - 5 // occasionally negative, like the real feed

		var mag *float64
		if rng.Float64() > 0.15 { // ~15% unreviewed, null magnitude
			m := 1.0 + rng.Float64()*5.5
			mag = &m
		}

		f.Features = append(f.Features, feature{
			Type: "Feature",
			Properties: properties{
				Mag:   mag,
				Place: fmt.Sprintf("%d km test region %d", int(rng.Float64()*100), i+1),
			},
			Geometry: geometry{
				Type:        "Point",
				Coordinates: []float64{evLon, evLat, depth},
			},
		})
	}
	return f
}
