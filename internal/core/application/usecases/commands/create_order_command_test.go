package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHandle(t *testing.T, raw string) kernel.Handle {
	t.Helper()
	h, err := kernel.NewHandle(raw)
	require.NoError(t, err)
	return h
}

func mustOrderID(t *testing.T, raw string) kernel.OrderID {
	t.Helper()
	id, err := kernel.OrderIDFromString(raw)
	require.NoError(t, err)
	return id
}

func TestNewCreateOrderCommand(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		customer := mustHandle(t, "customer_1")

		cmd, err := commands.NewCreateOrderCommand(customer, order.Details{Content: "beans"})

		require.NoError(t, err)
		assert.NoError(t, cmd.Validate())
		assert.Equal(t, customer, cmd.Customer())
		assert.Equal(t, "beans", cmd.Details().Content)
	})

	t.Run("empty_content_is_rejected", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(mustHandle(t, "customer_1"), order.Details{})

		assert.ErrorIs(t, err, commands.ErrOrderContentIsRequired)
	})

	t.Run("invalid_customer_is_rejected", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.Handle{}, order.Details{Content: "beans"})

		assert.Error(t, err)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var cmd commands.CreateOrderCommand

		assert.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	})
}
