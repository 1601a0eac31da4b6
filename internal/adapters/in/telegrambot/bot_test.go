package telegrambot

import (
	"testing"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseActionToken(t *testing.T) {
	t.Run("claim", func(t *testing.T) {
		action, orderID, err := parseActionToken("take_482913")

		require.NoError(t, err)
		assert.Equal(t, order.ActionClaim, action)
		assert.Equal(t, "482913", orderID.String())
	})

	t.Run("release", func(t *testing.T) {
		action, _, err := parseActionToken("release_482913")

		require.NoError(t, err)
		assert.Equal(t, order.ActionRelease, action)
	})

	t.Run("complete", func(t *testing.T) {
		action, _, err := parseActionToken("delivered_482913")

		require.NoError(t, err)
		assert.Equal(t, order.ActionComplete, action)
	})

	t.Run("rejects_garbage", func(t *testing.T) {
		testCases := []string{"", "take", "take_", "take_12", "nuke_482913", "take_482913_extra"}
		for _, data := range testCases {
			_, _, err := parseActionToken(data)
			assert.Error(t, err, "data %q", data)
		}
	})
}

func TestTransitionAlert(t *testing.T) {
	assert.Equal(t, "Too late, the order is already taken.",
		transitionAlert(errs.NewConflictError("order already taken")))
	assert.Equal(t, "You are not allowed to do that.",
		transitionAlert(errs.NewUnauthorizedError("someone", "claim")))
	assert.Equal(t, "This action is not available anymore.",
		transitionAlert(errs.NewInvalidTransitionError("complete", "new")))
	assert.Equal(t, "Order not found.",
		transitionAlert(errs.NewObjectNotFoundError("order", "482913")))
	assert.Equal(t, "Something went wrong, try again.",
		transitionAlert(assert.AnError))
}
