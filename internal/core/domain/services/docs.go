// Package services provides domain services for the dispatch system:
// classification of actors into roles and the pure rendering of an order
// into the notification payload shown to staff.
package services
