package contactrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/contact"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormContactRepository implements ContactRepository using GORM.
type GormContactRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

// NewGormContactRepository creates a new GORM contact repository.
func NewGormContactRepository(db *gorm.DB, tracker aggregateTracker) *GormContactRepository {
	return &GormContactRepository{
		db:      db,
		tracker: tracker,
	}
}

// Save upserts the contact binding: inserts a new row or refreshes the chat
// id and last-seen time of an existing one.
func (r *GormContactRepository) Save(ctx context.Context, aggregate *contact.Contact) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "handle"}},
			DoUpdates: clause.AssignmentColumns([]string{"chat_id", "last_seen_at"}),
		}).
		Create(&dto).Error
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.Handle().String(), aggregate)
	return nil
}

// Get retrieves the contact with the given handle.
func (r *GormContactRepository) Get(ctx context.Context, handle kernel.Handle) (*contact.Contact, error) {
	if err := handle.Validate(); err != nil {
		return nil, err
	}

	var dto ContactDTO
	err := r.db.WithContext(ctx).First(&dto, "handle = ?", handle.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("contact", handle.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves every known contact.
func (r *GormContactRepository) GetAll(ctx context.Context) ([]*contact.Contact, error) {
	var dtos []ContactDTO
	if err := r.db.WithContext(ctx).Order("first_seen_at").Find(&dtos).Error; err != nil {
		return nil, err
	}

	contacts := make([]*contact.Contact, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, aggregate)
	}

	return contacts, nil
}
