// Package courier provides the courier registry member aggregate. The
// registry is the administrator-maintained set of handles allowed to claim
// orders; deliverable channel addresses live in the contact model and are
// captured the first time a handle interacts with the system.
package courier
