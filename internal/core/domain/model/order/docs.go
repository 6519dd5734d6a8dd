// Package order implements the Order aggregate: a customer's food order with its
// captured line prices, fulfillment type and status state machine.
//
// Key business rules:
//   - total price is computed once, at placement, from the captured unit prices
//   - items never change after placement
//   - operators move orders through pending, confirmed, preparing and ready;
//     cancelled and rejected are side exits from the early states
//   - delivering is entered only through courier assignment and left only through
//     the courier's delivered report
//   - admins may override the transition table
package order
