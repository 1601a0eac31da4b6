package order_test

import (
	"testing"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	testCases := []struct {
		status order.Status
		want   string
	}{
		{order.New, "new"},
		{order.Taken, "taken"},
		{order.Delivered, "delivered"},
		{order.Unknown, "unknown"},
		{order.Status(42), "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.status.String())
		})
	}
}

func TestStatusFromString(t *testing.T) {
	t.Run("valid_wire_strings", func(t *testing.T) {
		for _, tc := range []struct {
			input string
			want  order.Status
		}{
			{"new", order.New},
			{"taken", order.Taken},
			{"delivered", order.Delivered},
		} {
			status, err := order.StatusFromString(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, status)
		}
	})

	t.Run("invalid_wire_strings", func(t *testing.T) {
		for _, input := range []string{"", "New", "TAKEN", "done"} {
			_, err := order.StatusFromString(input)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestStatus_Validate(t *testing.T) {
	require.NoError(t, order.New.Validate())
	require.NoError(t, order.Taken.Validate())
	require.NoError(t, order.Delivered.Validate())
	require.Error(t, order.Unknown.Validate())
	require.Error(t, order.Status(42).Validate())
}

func TestStatus_Claim(t *testing.T) {
	t.Run("new_becomes_taken", func(t *testing.T) {
		next, err := order.New.Claim()

		require.NoError(t, err)
		assert.Equal(t, order.Taken, next)
	})

	t.Run("taken_is_a_conflict", func(t *testing.T) {
		_, err := order.Taken.Claim()

		require.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("delivered_is_an_invalid_transition", func(t *testing.T) {
		_, err := order.Delivered.Claim()

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("unknown_is_an_invalid_transition", func(t *testing.T) {
		_, err := order.Unknown.Claim()

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestStatus_Release(t *testing.T) {
	t.Run("taken_reverts_to_new", func(t *testing.T) {
		next, err := order.Taken.Release()

		require.NoError(t, err)
		assert.Equal(t, order.New, next)
	})

	t.Run("invalid_sources", func(t *testing.T) {
		for _, s := range []order.Status{order.New, order.Delivered, order.Unknown} {
			_, err := s.Release()
			require.ErrorIs(t, err, errs.ErrInvalidTransition, "release from %s", s)
		}
	})
}

func TestStatus_Complete(t *testing.T) {
	t.Run("taken_becomes_delivered", func(t *testing.T) {
		next, err := order.Taken.Complete()

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, next)
	})

	t.Run("invalid_sources", func(t *testing.T) {
		for _, s := range []order.Status{order.New, order.Delivered, order.Unknown} {
			_, err := s.Complete()
			require.ErrorIs(t, err, errs.ErrInvalidTransition, "complete from %s", s)
		}
	})
}

func TestStatus_ValidateCanHaveCourier(t *testing.T) {
	t.Run("new_must_have_no_courier", func(t *testing.T) {
		require.NoError(t, order.New.ValidateCanHaveCourier(false))
		require.Error(t, order.New.ValidateCanHaveCourier(true))
	})

	t.Run("taken_must_have_a_courier", func(t *testing.T) {
		require.NoError(t, order.Taken.ValidateCanHaveCourier(true))
		require.Error(t, order.Taken.ValidateCanHaveCourier(false))
	})

	t.Run("delivered_keeps_its_last_courier", func(t *testing.T) {
		require.NoError(t, order.Delivered.ValidateCanHaveCourier(true))
		require.NoError(t, order.Delivered.ValidateCanHaveCourier(false))
	})
}

func TestAction(t *testing.T) {
	t.Run("verbs", func(t *testing.T) {
		assert.Equal(t, "take", order.ActionClaim.Verb())
		assert.Equal(t, "release", order.ActionRelease.Verb())
		assert.Equal(t, "delivered", order.ActionComplete.Verb())
	})

	t.Run("from_verb", func(t *testing.T) {
		for _, tc := range []struct {
			verb string
			want order.Action
		}{
			{"take", order.ActionClaim},
			{"release", order.ActionRelease},
			{"delivered", order.ActionComplete},
		} {
			action, err := order.ActionFromVerb(tc.verb)
			require.NoError(t, err)
			assert.Equal(t, tc.want, action)
		}

		_, err := order.ActionFromVerb("claim")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("validate", func(t *testing.T) {
		require.NoError(t, order.ActionClaim.Validate())
		require.Error(t, order.ActionUnknown.Validate())
	})
}
