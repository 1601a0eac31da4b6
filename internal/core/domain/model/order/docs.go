// Package order provides the Order aggregate root and its lifecycle state
// machine. An order is created once with status "new", transitions through
// "taken" to the terminal "delivered" status via the Claim, Release, and
// Complete actions, and records an append-only list of message handles so
// every previously delivered notification copy can be edited in place.
package order
