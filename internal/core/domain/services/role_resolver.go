package services

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// Role classifies an actor interacting with the system.
type Role int

const (
	// RoleCustomer is the default classification for any unknown handle.
	RoleCustomer Role = iota

	// RoleCourier marks a handle currently present in the courier registry.
	RoleCourier

	// RoleAdmin marks one of the configured privileged handles.
	RoleAdmin
)

// String returns the role name for logs and error messages.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleCourier:
		return "courier"
	default:
		return "customer"
	}
}

// CourierRegistry is the subset of the courier repository the resolver needs.
type CourierRegistry interface {
	Get(ctx context.Context, handle kernel.Handle) (*courier.Courier, error)
}

// RoleResolver classifies an actor handle as Admin, Courier, or Customer.
//
// The privileged set comes from configuration and is checked uniformly here,
// never through scattered identity comparisons. Courier membership is looked
// up in the dynamic registry at resolution time, so a removal takes effect
// on the very next action.
type RoleResolver struct {
	admins   map[string]struct{}
	registry CourierRegistry
}

// NewRoleResolver creates a resolver for the given privileged handles backed
// by the courier registry.
func NewRoleResolver(adminHandles []kernel.Handle, registry CourierRegistry) *RoleResolver {
	admins := make(map[string]struct{}, len(adminHandles))
	for _, h := range adminHandles {
		admins[h.String()] = struct{}{}
	}

	return &RoleResolver{admins: admins, registry: registry}
}

// Resolve classifies the actor. Unknown handles default to RoleCustomer.
func (r *RoleResolver) Resolve(ctx context.Context, actor kernel.Handle) (Role, error) {
	if err := actor.Validate(); err != nil {
		return RoleCustomer, err
	}

	if r.IsAdmin(actor) {
		return RoleAdmin, nil
	}

	_, err := r.registry.Get(ctx, actor)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return RoleCustomer, nil
		}
		return RoleCustomer, err
	}

	return RoleCourier, nil
}

// IsAdmin reports whether the handle belongs to the privileged set.
func (r *RoleResolver) IsAdmin(actor kernel.Handle) bool {
	_, ok := r.admins[actor.String()]
	return ok
}
