package services_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type CourierRegistryMock struct {
	mock.Mock
}

func (m *CourierRegistryMock) Get(ctx context.Context, handle kernel.Handle) (*courier.Courier, error) {
	args := m.Called(ctx, handle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

func mustServiceHandle(t *testing.T, raw string) kernel.Handle {
	t.Helper()
	h, err := kernel.NewHandle(raw)
	require.NoError(t, err)
	return h
}

func TestRoleResolver_Resolve(t *testing.T) {
	ctx := context.Background()
	admin := "boss"

	t.Run("configured_handle_resolves_to_admin", func(t *testing.T) {
		registry := &CourierRegistryMock{}
		resolver := services.NewRoleResolver([]kernel.Handle{mustServiceHandle(t, admin)}, registry)

		role, err := resolver.Resolve(ctx, mustServiceHandle(t, admin))

		require.NoError(t, err)
		assert.Equal(t, services.RoleAdmin, role)
		registry.AssertNotCalled(t, "Get")
	})

	t.Run("registered_handle_resolves_to_courier", func(t *testing.T) {
		handle := mustServiceHandle(t, "runner")
		member, err := courier.NewCourier(handle, time.Now())
		require.NoError(t, err)

		registry := &CourierRegistryMock{}
		registry.On("Get", ctx, handle).Return(member, nil)
		resolver := services.NewRoleResolver([]kernel.Handle{mustServiceHandle(t, admin)}, registry)

		role, err := resolver.Resolve(ctx, handle)

		require.NoError(t, err)
		assert.Equal(t, services.RoleCourier, role)
		registry.AssertExpectations(t)
	})

	t.Run("unknown_handle_defaults_to_customer", func(t *testing.T) {
		handle := mustServiceHandle(t, "stranger")

		registry := &CourierRegistryMock{}
		registry.On("Get", ctx, handle).Return(nil, errs.NewObjectNotFoundError("courier", handle.String()))
		resolver := services.NewRoleResolver([]kernel.Handle{mustServiceHandle(t, admin)}, registry)

		role, err := resolver.Resolve(ctx, handle)

		require.NoError(t, err)
		assert.Equal(t, services.RoleCustomer, role)
	})

	t.Run("registry_failure_is_propagated", func(t *testing.T) {
		handle := mustServiceHandle(t, "runner")
		registryErr := errors.New("connection reset")

		registry := &CourierRegistryMock{}
		registry.On("Get", ctx, handle).Return(nil, registryErr)
		resolver := services.NewRoleResolver(nil, registry)

		_, err := resolver.Resolve(ctx, handle)

		assert.ErrorIs(t, err, registryErr)
	})

	t.Run("admin_check_is_case_exact", func(t *testing.T) {
		handle := mustServiceHandle(t, "Boss")

		registry := &CourierRegistryMock{}
		registry.On("Get", ctx, handle).Return(nil, errs.NewObjectNotFoundError("courier", handle.String()))
		resolver := services.NewRoleResolver([]kernel.Handle{mustServiceHandle(t, admin)}, registry)

		role, err := resolver.Resolve(ctx, handle)

		require.NoError(t, err)
		assert.Equal(t, services.RoleCustomer, role)
	})
}

func TestRoleResolver_IsAdmin(t *testing.T) {
	resolver := services.NewRoleResolver([]kernel.Handle{mustServiceHandle(t, "boss")}, &CourierRegistryMock{})

	assert.True(t, resolver.IsAdmin(mustServiceHandle(t, "boss")))
	assert.False(t, resolver.IsAdmin(mustServiceHandle(t, "runner")))
}
