// Package restaurant holds the read-only restaurant and menu collaborators used to
// authorize owners and to price order items.
package restaurant
