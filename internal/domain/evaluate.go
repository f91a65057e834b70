package domain

import (
	"fmt"
	"math"
)

// Options controls candidate eligibility and the no-candidate fallback.
type Options struct {
	MinMagnitude  float64
	MaxDistanceKm float64

	// DrillEvent scores a synthetic nearby event when no real earthquake
	// qualifies, instead of returning the quiet branch. Demo deployments
	// only; off by default.
	DrillEvent bool
}

// DefaultOptions returns the standard eligibility rule: magnitude 3.0+
// within 1000 km.
func DefaultOptions() Options {
	return Options{MinMagnitude: 3.0, MaxDistanceKm: 1000}
}

// Candidate pairs an eligible event with its distance from the query point.
type Candidate struct {
	Event      SeismicEvent
	DistanceKm float64
}

// FilterCandidates keeps events with a reported magnitude at or above the
// threshold and strictly inside the distance radius, preserving feed order.
// Events without a magnitude are skipped, not errors.
func FilterCandidates(events []SeismicEvent, q Query, opts Options) []Candidate {
	var out []Candidate
	for _, ev := range events {
		if ev.Magnitude == nil || *ev.Magnitude < opts.MinMagnitude {
			continue
		}
		d := GeodesicKm(q.Lat, q.Lon, ev.Lat, ev.Lon)
		if d >= opts.MaxDistanceKm {
			continue
		}
		out = append(out, Candidate{Event: ev, DistanceKm: d})
	}
	return out
}

// ClosestCandidate returns the minimum-distance candidate. Ties keep the
// first-seen candidate (stable scan).
func ClosestCandidate(candidates []Candidate) (Candidate, bool) {
	if len(candidates) == 0 {
		return Candidate{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.DistanceKm < best.DistanceKm {
			best = c
		}
	}
	return best, true
}

var (
	quietActions = []string{
		"No action needed",
		"Stay informed for future alerts",
		"Ensure general emergency preparedness",
	}
	activeActions = []string{
		"Stay calm and informed",
		"Secure loose objects nearby",
		"Check emergency supplies",
	}
)

// Evaluate runs one full scoring pass over a feed snapshot: filter by
// eligibility, select the closest candidate, score it, and classify.
// With no eligible candidate it returns the fixed quiet assessment
// (or the drill assessment when Options.DrillEvent is set).
func Evaluate(events []SeismicEvent, q Query, opts Options) Assessment {
	best, ok := ClosestCandidate(FilterCandidates(events, q, opts))
	if !ok {
		if !opts.DrillEvent {
			return quietAssessment(q, opts)
		}
		best = drillCandidate(q)
	}
	return assess(best, q)
}

func assess(c Candidate, q Query) Assessment {
	magnitude := *c.Event.Magnitude
	score := ImpactScore(magnitude, c.DistanceKm, q.Building)
	distance := round1(c.DistanceKm)

	return Assessment{
		Earthquake: &QuakeDetail{
			Magnitude: magnitude,
			Place:     c.Event.Place,
			DepthKm:   round1(math.Abs(c.Event.DepthKm)),
		},
		YourLocation:  Coordinates{Lat: q.Lat, Lon: q.Lon},
		DistanceKm:    &distance,
		ImpactScore:   score,
		ImpactLevel:   Level(score),
		FeltIntensity: Felt(score),
		Confidence:    Confidence(score),
		Why:           "This is the closest significant earthquake to your location.",
		WhatToDo:      activeActions,
		EvaluatedAt:   clock.Now().UTC(),
	}
}

func quietAssessment(q Query, opts Options) Assessment {
	return Assessment{
		Status:        "No relevant earthquakes near your location",
		YourLocation:  Coordinates{Lat: q.Lat, Lon: q.Lon},
		ImpactScore:   0,
		ImpactLevel:   ImpactLow,
		FeltIntensity: "None",
		Confidence:    "No earthquake activity near you is expected to be felt.",
		Why: fmt.Sprintf(
			"No earthquakes of magnitude %.1f+ occurred within %.0f km in the last hour.",
			opts.MinMagnitude, opts.MaxDistanceKm,
		),
		WhatToDo:    quietActions,
		EvaluatedAt: clock.Now().UTC(),
	}
}

// drillCandidate fabricates a moderate event roughly 50 km north of the
// query point. The place name marks it as synthetic so drill responses
// cannot be mistaken for real events.
func drillCandidate(q Query) Candidate {
	magnitude := 4.5
	ev := SeismicEvent{
		Magnitude: &magnitude,
		Place:     "Scheduled drill event (synthetic)",
		Lat:       q.Lat + 0.45, // ~50 km of latitude
		Lon:       q.Lon,
		DepthKm:   10,
	}
	return Candidate{
		Event:      ev,
		DistanceKm: GeodesicKm(q.Lat, q.Lon, ev.Lat, ev.Lon),
	}
}
