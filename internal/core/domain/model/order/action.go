package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Action identifies a lifecycle transition an actor can request on an order.
type Action int

const (
	// ActionUnknown represents an invalid or undefined action.
	ActionUnknown Action = iota

	// ActionClaim takes exclusive ownership of a New order.
	ActionClaim

	// ActionRelease returns a Taken order to the unassigned pool.
	ActionRelease

	// ActionComplete marks a Taken order as fulfilled.
	ActionComplete
)

// actionVerbs maps actions to the verbs used in inline action tokens
// ("<verb>_<orderId>") on notification messages.
func actionVerbs() map[Action]string {
	return map[Action]string{
		ActionClaim:    "take",
		ActionRelease:  "release",
		ActionComplete: "delivered",
	}
}

// ActionFromVerb parses an action from its token verb:
// "take" -> ActionClaim, "release" -> ActionRelease, "delivered" -> ActionComplete.
func ActionFromVerb(verb string) (Action, error) {
	for action, v := range actionVerbs() {
		if v == verb {
			return action, nil
		}
	}
	return ActionUnknown, errs.NewValueIsInvalidErrorWithCause("action",
		fmt.Errorf("%q is not a valid action verb", verb))
}

// Validate checks that the Action is one of Claim, Release, Complete.
func (a Action) Validate() error {
	if _, ok := actionVerbs()[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("action",
			fmt.Errorf("%d is not a valid action", a))
	}
	return nil
}

// Verb returns the token verb of the action ("take", "release", "delivered").
func (a Action) Verb() string {
	if v, ok := actionVerbs()[a]; ok {
		return v
	}
	return "unknown"
}

// String returns the action name used in error messages and logs.
func (a Action) String() string {
	switch a {
	case ActionClaim:
		return "claim"
	case ActionRelease:
		return "release"
	case ActionComplete:
		return "complete"
	default:
		return "unknown"
	}
}
