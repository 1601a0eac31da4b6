package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransitionOrderCommand(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cmd, err := commands.NewTransitionOrderCommand(
			mustOrderID(t, "482913"),
			mustHandle(t, "courier_a"),
			order.ActionClaim,
		)

		require.NoError(t, err)
		assert.NoError(t, cmd.Validate())
		assert.Equal(t, "482913", cmd.OrderID().String())
		assert.Equal(t, order.ActionClaim, cmd.Action())
	})

	t.Run("unknown_action_is_rejected", func(t *testing.T) {
		_, err := commands.NewTransitionOrderCommand(
			mustOrderID(t, "482913"),
			mustHandle(t, "courier_a"),
			order.ActionUnknown,
		)

		assert.ErrorIs(t, err, commands.ErrActionIsInvalid)
	})

	t.Run("invalid_order_id_is_rejected", func(t *testing.T) {
		_, err := commands.NewTransitionOrderCommand(
			kernel.OrderID{},
			mustHandle(t, "courier_a"),
			order.ActionClaim,
		)

		assert.Error(t, err)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var cmd commands.TransitionOrderCommand

		assert.ErrorIs(t, cmd.Validate(), commands.ErrTransitionOrderCommandIsNotConstructed)
	})
}
