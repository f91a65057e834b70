// Package domain models USGS earthquake feed data and the impact heuristic.
//
// # Data Source
//
// Events come from the USGS earthquake summary feeds
// (https://earthquake.usgs.gov/earthquakes/feed/v1.0/), GeoJSON documents
// where each feature carries properties.mag (float or null), properties.place,
// and geometry.coordinates = [longitude, latitude, depth]. Depth is in
// kilometers and may be negative (below sea level); the impact detail view
// shows its absolute value. A null magnitude means the event has not been
// reviewed yet; such events are skipped during candidate filtering.
//
// # Eligibility
//
// An event is an eligible candidate when its magnitude is reported and at
// or above the configured threshold (default 3.0) and its great-circle
// distance from the query point is under the configured radius (default
// 1000 km). Among eligible candidates exactly one is selected: the closest,
// with ties keeping the first-seen candidate.
//
// # Scoring
//
// The canonical formula is
//
//	score = magnitude*10 + max(0, 10 - log10(distance_km+1)*3) + building factor
//
// rounded to one decimal. Building factors: house 0, apartment 1,
// old_building 2. Classification thresholds (inclusive upward):
//
//	score < 30  Low     "Barely felt"
//	score < 60  Medium  "Noticeable shaking"
//	otherwise   High    "Potential damage"
//
// See [ImpactScore], [Level], [Felt], and [Confidence].
package domain
