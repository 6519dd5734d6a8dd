// Package delivery implements the Delivery aggregate: the fulfillment record that
// binds a delivery order to its courier and tracks the courier's reported status
// and last known position.
package delivery
