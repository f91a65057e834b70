package domain

import "math"

// ImpactLevel is the categorical severity of an assessment.
type ImpactLevel string

const (
	ImpactLow    ImpactLevel = "Low"
	ImpactMedium ImpactLevel = "Medium"
	ImpactHigh   ImpactLevel = "High"
)

// buildingFactors adds a small vulnerability bonus per building class.
// Unknown types score as a house (factor 0).
var buildingFactors = map[BuildingType]float64{
	BuildingHouse:       0,
	BuildingApartment:   1,
	BuildingOldBuilding: 2,
}

// ImpactScore computes the canonical impact heuristic:
//
//	score = magnitude*10 + max(0, 10 - log10(distance+1)*3) + building factor
//
// Magnitude dominates linearly. The distance effect decays logarithmically
// and saturates at zero near 1000 km. The score has no upper bound; only
// the classification thresholds give it meaning. Earlier variants of this
// tool used a linear step function for distance; they are deprecated.
func ImpactScore(magnitude, distanceKm float64, building BuildingType) float64 {
	distanceFactor := 10 - math.Log10(distanceKm+1)*3
	if distanceFactor < 0 {
		distanceFactor = 0
	}
	return round1(magnitude*10 + distanceFactor + buildingFactors[building])
}

// Level maps a score to its categorical label. Thresholds are inclusive
// upward: exactly 30 is Medium, exactly 60 is High.
func Level(score float64) ImpactLevel {
	switch {
	case score < 30:
		return ImpactLow
	case score < 60:
		return ImpactMedium
	default:
		return ImpactHigh
	}
}

// Felt describes the expected shaking for a score.
func Felt(score float64) string {
	switch {
	case score < 30:
		return "Barely felt"
	case score < 60:
		return "Noticeable shaking"
	default:
		return "Potential damage"
	}
}

// Confidence phrases how likely the caller is to notice anything.
func Confidence(score float64) string {
	switch {
	case score < 10:
		return "You are very unlikely to notice any earthquake activity."
	case score < 50:
		return "Some people may feel shaking."
	default:
		return "There is a realistic chance of noticeable shaking."
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
