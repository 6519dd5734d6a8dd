// Package services provides domain services that span more than one aggregate.
//
// The package includes:
//   - DeliveryDispatcher: authorizes and performs courier assignment and reassignment
//   - EstimateArrival: straight-line ETA with a distance-tiered buffer
package services
