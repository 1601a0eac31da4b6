package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/keylock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newStoredOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		mustOrderID(t, "482913"),
		mustHandle(t, "customer_1"),
		order.Details{Content: "beans"},
		time.Now(),
	)
	require.NoError(t, err)
	return o
}

func newTakenOrder(t *testing.T, assignee string) *order.Order {
	t.Helper()
	o := newStoredOrder(t)
	require.NoError(t, o.Claim(mustHandle(t, assignee), time.Now()))
	return o
}

func registryWith(t *testing.T, members ...string) *MockCourierRepository {
	t.Helper()
	repo := new(MockCourierRepository)
	known := map[string]struct{}{}
	for _, member := range members {
		known[member] = struct{}{}
		handle := mustHandle(t, member)
		registered, err := courier.NewCourier(handle, time.Now())
		require.NoError(t, err)
		repo.On("Get", mock.Anything, handle).Return(registered, nil).Maybe()
	}
	repo.On("Get", mock.Anything, mock.Anything).Return(
		nil, errs.NewObjectNotFoundError("courier", "unknown"),
	).Maybe()
	return repo
}

func newTransitionHandler(
	t *testing.T,
	stored *order.Order,
	registry ports.CourierRepository,
	expectUpdate bool,
	admins ...string,
) commands.TransitionOrderCommandHandler {
	t.Helper()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once()
	if expectUpdate {
		orderRepo.On("Update", mock.Anything, stored).Return(nil).Once()
	}

	uow := new(MockOrderCourierUoW)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("CourierRepository").Return(registry).Maybe()
	uow.On("Commit", mock.Anything).Return(nil).Maybe()
	uow.On("Rollback", mock.Anything).Return(nil).Once()

	factory := new(MockOrderCourierUoWFactory)
	factory.On("Create").Return(uow).Once()

	adminHandles := make([]kernel.Handle, 0, len(admins))
	for _, admin := range admins {
		adminHandles = append(adminHandles, mustHandle(t, admin))
	}

	return commands.NewTransitionOrderCommandHandler(factory, keylock.NewKeyedMutex(), adminHandles)
}

func TestTransitionOrderCommandHandler_Claim(t *testing.T) {
	ctx := t.Context()

	t.Run("courier_claims_a_new_order", func(t *testing.T) {
		stored := newStoredOrder(t)
		h := newTransitionHandler(t, stored, registryWith(t, "courier_a"), true)
		cmd, err := commands.NewTransitionOrderCommand(stored.ID(), mustHandle(t, "courier_a"), order.ActionClaim)
		require.NoError(t, err)

		updated, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.Taken, updated.Status())
		require.NotNil(t, updated.Courier())
		assert.Equal(t, "courier_a", updated.Courier().String())
	})

	t.Run("admin_claims_a_new_order", func(t *testing.T) {
		stored := newStoredOrder(t)
		h := newTransitionHandler(t, stored, registryWith(t), true, "boss")
		cmd, err := commands.NewTransitionOrderCommand(stored.ID(), mustHandle(t, "boss"), order.ActionClaim)
		require.NoError(t, err)

		updated, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.Taken, updated.Status())
	})

	t.Run("customer_may_not_claim", func(t *testing.T) {
		stored := newStoredOrder(t)
		h := newTransitionHandler(t, stored, registryWith(t), false)
		cmd, err := commands.NewTransitionOrderCommand(stored.ID(), mustHandle(t, "stranger"), order.ActionClaim)
		require.NoError(t, err)

		_, err = h.Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("claiming_a_taken_order_conflicts", func(t *testing.T) {
		stored := newTakenOrder(t, "courier_a")
		h := newTransitionHandler(t, stored, registryWith(t, "courier_a", "courier_b"), false)
		cmd, err := commands.NewTransitionOrderCommand(stored.ID(), mustHandle(t, "courier_b"), order.ActionClaim)
		require.NoError(t, err)

		_, err = h.Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("claiming_a_delivered_order_is_an_invalid_transition", func(t *testing.T) {
		stored := newTakenOrder(t, "courier_a")
		require.NoError(t, stored.Complete(time.Now()))
		h := newTransitionHandler(t, stored, registryWith(t, "courier_b"), false)
		cmd, err := commands.NewTransitionOrderCommand(stored.ID(), mustHandle(t, "courier_b"), order.ActionClaim)
		require.NoError(t, err)

		_, err = h.Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestTransitionOrderCommandHandler_Release(t *testing.T) {
	ctx := t.Context()

	t.Run("assignee_releases", func(t *testing.T) {
		stored := newTakenOrder(t, "courier_a")
		h := newTransitionHandler(t, stored, registryWith(t, "courier_a"), true)
		cmd, err := commands.NewTransitionOrderCommand(stored.ID(), mustHandle(t, "courier_a"), order.ActionRelease)
		require.NoError(t, err)

		updated, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.New, updated.Status())
		assert.Nil(t, updated.Courier())
	})

	t.Run("admin_releases_someone_elses_order", func(t *testing.T) {
		stored := newTakenOrder(t, "courier_a")
		h := newTransitionHandler(t, stored, registryWith(t, "courier_a"), true, "boss")
		cmd, err := commands.NewTransitionOrderCommand(stored.ID(), mustHandle(t, "boss"), order.ActionRelease)
		require.NoError(t, err)

		_, err = h.Handle(ctx, cmd)

		require.NoError(t, err)
	})

	t.Run("other_courier_may_not_release", func(t *testing.T) {
		stored := newTakenOrder(t, "courier_a")
		h := newTransitionHandler(t, stored, registryWith(t, "courier_a", "courier_b"), false)
		cmd, err := commands.NewTransitionOrderCommand(stored.ID(), mustHandle(t, "courier_b"), order.ActionRelease)
		require.NoError(t, err)

		_, err = h.Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("deregistered_assignee_may_still_release", func(t *testing.T) {
		stored := newTakenOrder(t, "courier_a")
		h := newTransitionHandler(t, stored, registryWith(t), true)
		cmd, err := commands.NewTransitionOrderCommand(stored.ID(), mustHandle(t, "courier_a"), order.ActionRelease)
		require.NoError(t, err)

		updated, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.New, updated.Status())
	})
}

func TestTransitionOrderCommandHandler_Complete(t *testing.T) {
	ctx := t.Context()

	t.Run("assignee_completes", func(t *testing.T) {
		stored := newTakenOrder(t, "courier_a")
		h := newTransitionHandler(t, stored, registryWith(t, "courier_a"), true)
		cmd, err := commands.NewTransitionOrderCommand(stored.ID(), mustHandle(t, "courier_a"), order.ActionComplete)
		require.NoError(t, err)

		updated, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, updated.Status())
		require.NotNil(t, updated.Courier())
		assert.Equal(t, "courier_a", updated.Courier().String())
	})

	t.Run("completing_a_new_order_is_an_invalid_transition", func(t *testing.T) {
		stored := newStoredOrder(t)
		h := newTransitionHandler(t, stored, registryWith(t), false, "boss")
		cmd, err := commands.NewTransitionOrderCommand(stored.ID(), mustHandle(t, "boss"), order.ActionComplete)
		require.NoError(t, err)

		_, err = h.Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestTransitionOrderCommandHandler_UnknownOrder(t *testing.T) {
	ctx := t.Context()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", mock.Anything, mock.Anything).Return(
		nil, errs.NewObjectNotFoundError("order", "482913"),
	).Once()

	uow := new(MockOrderCourierUoW)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()

	factory := new(MockOrderCourierUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderCommandHandler(factory, keylock.NewKeyedMutex(), nil)
	cmd, err := commands.NewTransitionOrderCommand(mustOrderID(t, "482913"), mustHandle(t, "courier_a"), order.ActionClaim)
	require.NoError(t, err)

	_, err = h.Handle(ctx, cmd)

	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

// fakeOrderStore is a stateful in-memory store shared across concurrent
// handler calls. Get restores a fresh aggregate from the stored snapshot and
// Update persists it back, mirroring how the real repository behaves.
type fakeOrderStore struct {
	mu          sync.Mutex
	id          kernel.OrderID
	customer    kernel.Handle
	details     order.Details
	status      order.Status
	courier     *kernel.Handle
	createdAt   time.Time
	takenAt     *time.Time
	deliveredAt *time.Time
}

type fakeOrderUoW struct {
	store    *fakeOrderStore
	registry ports.CourierRepository
}

func (u *fakeOrderUoW) Begin(context.Context) error    { return nil }
func (u *fakeOrderUoW) Commit(context.Context) error   { return nil }
func (u *fakeOrderUoW) Rollback(context.Context) error { return nil }

func (u *fakeOrderUoW) OrderRepository() ports.OrderRepository     { return &fakeOrderRepo{store: u.store} }
func (u *fakeOrderUoW) CourierRepository() ports.CourierRepository { return u.registry }

type fakeOrderUoWFactory struct {
	store    *fakeOrderStore
	registry ports.CourierRepository
}

func (f *fakeOrderUoWFactory) Create() commands.OrderCourierUoW {
	return &fakeOrderUoW{store: f.store, registry: f.registry}
}

type fakeOrderRepo struct {
	store *fakeOrderStore
}

func (r *fakeOrderRepo) Add(context.Context, *order.Order) error { panic("not used") }

func (r *fakeOrderRepo) Get(_ context.Context, _ kernel.OrderID) (*order.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return order.RestoreOrder(
		r.store.id, r.store.customer, r.store.details, r.store.status,
		r.store.courier, r.store.createdAt, r.store.takenAt, r.store.deliveredAt, nil,
	)
}

func (r *fakeOrderRepo) Update(_ context.Context, o *order.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.status = o.Status()
	r.store.courier = o.Courier()
	return nil
}

func (r *fakeOrderRepo) Exists(context.Context, kernel.OrderID) (bool, error) { panic("not used") }
func (r *fakeOrderRepo) GetAllInStatus(context.Context, order.Status) ([]*order.Order, error) {
	panic("not used")
}
func (r *fakeOrderRepo) GetAllActiveFor(context.Context, kernel.Handle) ([]*order.Order, error) {
	panic("not used")
}
func (r *fakeOrderRepo) GetAllDeliveredFor(context.Context, kernel.Handle) ([]*order.Order, error) {
	panic("not used")
}
func (r *fakeOrderRepo) AppendMessages(context.Context, kernel.OrderID, []order.MessageHandle) error {
	panic("not used")
}

func TestTransitionOrderCommandHandler_ConcurrentClaims(t *testing.T) {
	ctx := t.Context()
	couriers := []string{"courier_a", "courier_b", "courier_c", "courier_d", "courier_e"}

	store := &fakeOrderStore{
		id:        mustOrderID(t, "482913"),
		customer:  mustHandle(t, "customer_1"),
		details:   order.Details{Content: "beans"},
		status:    order.New,
		createdAt: time.Now(),
	}
	factory := &fakeOrderUoWFactory{store: store, registry: registryWith(t, couriers...)}
	h := commands.NewTransitionOrderCommandHandler(factory, keylock.NewKeyedMutex(), nil)

	results := make(chan error, len(couriers))
	var wg sync.WaitGroup
	for _, name := range couriers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cmd, err := commands.NewTransitionOrderCommand(store.id, mustHandle(t, name), order.ActionClaim)
			if err != nil {
				results <- err
				return
			}
			_, err = h.Handle(ctx, cmd)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	wins, conflicts := 0, 0
	for err := range results {
		switch {
		case err == nil:
			wins++
		default:
			require.ErrorIs(t, err, errs.ErrConflict)
			conflicts++
		}
	}

	assert.Equal(t, 1, wins)
	assert.Equal(t, len(couriers)-1, conflicts)
	assert.Equal(t, order.Taken, store.status)
	require.NotNil(t, store.courier)
}
