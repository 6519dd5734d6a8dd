package services

import (
	"math"
	"time"
)

const (
	// DefaultCourierSpeedKmh is assumed when no positive speed is given.
	DefaultCourierSpeedKmh = 30.0

	minTravelMinutes = 1
	minCountdown     = 60 * time.Second
)

// ArrivalEstimate is a straight-line ETA. It is a presentation approximation and
// makes no routing claims.
type ArrivalEstimate struct {
	DistanceKm    float64
	TravelMinutes int
	BufferMinutes int
	Countdown     time.Duration
}

// EstimateArrival computes the ETA for distanceKm at speedKmh:
//
//	travel    = ceil(distance / speed × 60) minutes, at least 1
//	buffer    = 5, 10 or 15 minutes for distance < 2 km, < 5 km, ≥ 5 km
//	countdown = travel + buffer, at least 60 seconds
//
// Negative or NaN distances are treated as 0. The result is non-decreasing in distance.
func EstimateArrival(distanceKm float64, speedKmh float64) ArrivalEstimate {
	if math.IsNaN(distanceKm) || distanceKm < 0 {
		distanceKm = 0
	}
	if math.IsNaN(speedKmh) || speedKmh <= 0 {
		speedKmh = DefaultCourierSpeedKmh
	}

	travel := int(math.Ceil(distanceKm / speedKmh * 60))
	if travel < minTravelMinutes {
		travel = minTravelMinutes
	}

	buffer := bufferMinutes(distanceKm)

	countdown := time.Duration(travel+buffer) * time.Minute
	if countdown < minCountdown {
		countdown = minCountdown
	}

	return ArrivalEstimate{
		DistanceKm:    distanceKm,
		TravelMinutes: travel,
		BufferMinutes: buffer,
		Countdown:     countdown,
	}
}

func bufferMinutes(distanceKm float64) int {
	switch {
	case distanceKm < 2:
		return 5
	case distanceKm < 5:
		return 10
	default:
		return 15
	}
}
