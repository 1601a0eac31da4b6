package orderrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID().String(), aggregate)
	return nil
}

// Update persists the mutable state of an existing order: status, courier,
// and transition timestamps. The column list is explicit so clearing the
// courier on release actually writes NULL, and recorded notification copies
// are never touched.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("status", "courier", "taken_at", "delivered_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", dto.ID)
	}

	r.tracker.TrackAggregate(aggregate.ID().String(), aggregate)
	return nil
}

// Get retrieves an order by ID together with its notification copies.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).Preload("Messages").First(&dto, "id = ?", id.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Exists reports whether an order with the given ID is stored.
func (r *GormOrderRepository) Exists(ctx context.Context, id kernel.OrderID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", id.String()).Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// GetAllInStatus retrieves all orders in the given status, oldest first.
func (r *GormOrderRepository) GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).Preload("Messages").
		Order("created_at").
		Find(&dtos, "status = ?", int(status)).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// GetAllActiveFor retrieves the orders a courier can act on: every new order
// plus the taken orders assigned to that courier, oldest first.
func (r *GormOrderRepository) GetAllActiveFor(ctx context.Context, courier kernel.Handle) ([]*order.Order, error) {
	if err := courier.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).Preload("Messages").
		Order("created_at").
		Find(&dtos, "status = ? OR (status = ? AND courier = ?)",
			int(order.New), int(order.Taken), courier.String()).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// GetAllDeliveredFor retrieves the delivered orders completed by the given
// courier, oldest first.
func (r *GormOrderRepository) GetAllDeliveredFor(ctx context.Context, courier kernel.Handle) ([]*order.Order, error) {
	if err := courier.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).Preload("Messages").
		Order("created_at").
		Find(&dtos, "status = ? AND courier = ?", int(order.Delivered), courier.String()).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// AppendMessages records notification copies for an order. Inserts are
// idempotent: a handle that is already recorded is skipped via the unique
// index instead of failing.
func (r *GormOrderRepository) AppendMessages(
	ctx context.Context,
	id kernel.OrderID,
	handles []order.MessageHandle,
) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if len(handles) == 0 {
		return nil
	}

	dtos := make([]MessageDTO, 0, len(handles))
	for _, handle := range handles {
		if err := handle.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, MessageDTO{
			ID:        uuid.New(),
			OrderID:   id.String(),
			ChatID:    handle.ChatID(),
			MessageID: handle.MessageID(),
		})
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "order_id"}, {Name: "chat_id"}, {Name: "message_id"},
			},
			DoNothing: true,
		}).
		Create(&dtos).Error
}

func toDomainAll(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}
	return orders, nil
}
