// Package kernel provides the domain primitives shared by every aggregate of the
// food delivery core.
//
// The package includes:
//   - UUID: identifier value object with parsing, validation and text encoding
//   - Location: a validated latitude/longitude pair with haversine distance
//   - DistanceKm: great-circle distance on a sphere of radius EarthRadiusKm
//   - DomainEvent, EventRecorder: the event recording contract used by aggregates
//
// Zero values of UUID and Location are invalid; use the constructors.
package kernel
