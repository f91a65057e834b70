package domain

import "time"

// BuildingType describes the vulnerability class of the caller's building.
type BuildingType string

const (
	BuildingHouse       BuildingType = "house"
	BuildingApartment   BuildingType = "apartment"
	BuildingOldBuilding BuildingType = "old_building"
)

// ParseBuildingType maps a raw query value to a known building type.
// Unrecognized values silently fall back to BuildingHouse; the building
// type is a best-effort hint, not validated input.
func ParseBuildingType(s string) BuildingType {
	switch BuildingType(s) {
	case BuildingApartment:
		return BuildingApartment
	case BuildingOldBuilding:
		return BuildingOldBuilding
	default:
		return BuildingHouse
	}
}

// SeismicEvent is one feature from the USGS summary feed. Events are
// sourced fresh per request and never persisted.
type SeismicEvent struct {
	Magnitude *float64 `json:"magnitude"` // nil when the feed reports no magnitude
	Place     string   `json:"place"`
	Lat       float64  `json:"latitude"`
	Lon       float64  `json:"longitude"`
	DepthKm   float64  `json:"depth_km"` // feed sign convention: negative = below sea level
}

// Query is the caller's location and building type.
type Query struct {
	Lat      float64
	Lon      float64
	Building BuildingType
}

// Coordinates echoes the query point back in responses.
type Coordinates struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

// QuakeDetail describes the selected event within an assessment.
type QuakeDetail struct {
	Magnitude float64 `json:"magnitude"`
	Place     string  `json:"place"`
	DepthKm   float64 `json:"depth_km"` // absolute value, one decimal
}

// Assessment is the outcome of evaluating a query against a feed snapshot.
// Status is set only on the quiet branch; Earthquake and DistanceKm only
// when a candidate was selected. DistanceKm is a pointer so a candidate at
// the query point still serializes "distance_km": 0.
type Assessment struct {
	Status        string       `json:"status,omitempty"`
	Earthquake    *QuakeDetail `json:"earthquake,omitempty"`
	YourLocation  Coordinates  `json:"your_location"`
	DistanceKm    *float64     `json:"distance_km,omitempty"`
	ImpactScore   float64      `json:"impact_score"`
	ImpactLevel   ImpactLevel  `json:"impact_level"`
	FeltIntensity string       `json:"felt_intensity"`
	Confidence    string       `json:"confidence"`
	Why           string       `json:"why"`
	WhatToDo      []string     `json:"what_to_do"`
	EvaluatedAt   time.Time    `json:"evaluated_at"`
}
