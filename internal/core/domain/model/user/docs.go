// Package user models the accounts the core reads: customers, restaurant owners,
// admins and couriers (role "delivery"), plus the authenticated Principal passed
// into every operation.
package user
