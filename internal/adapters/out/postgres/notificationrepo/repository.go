package notificationrepo

import (
	"context"
	"errors"

	"deliveryhub/internal/core/domain/model/delivery"
	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormNotificationRepository implements NotificationRepository using GORM.
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GORM notification repository.
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Add saves new notifications. A no-op for an empty batch, so dispatcher
// output can be passed through unconditionally.
func (r *GormNotificationRepository) Add(ctx context.Context, notifications ...*delivery.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	dtos := make([]NotificationDTO, 0, len(notifications))
	for _, notification := range notifications {
		if err := notification.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(notification))
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}

// Update saves changes to an existing notification. The only mutable
// column is the read flag.
func (r *GormNotificationRepository) Update(ctx context.Context, notification *delivery.Notification) error {
	if err := notification.Validate(); err != nil {
		return err
	}

	dto := fromDomain(notification)
	result := r.db.WithContext(ctx).Model(&NotificationDTO{}).
		Where("id = ?", dto.ID).
		Update("read", dto.Read)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("notification", notification.ID().String())
	}

	return nil
}

// Get retrieves a notification by ID.
func (r *GormNotificationRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Notification, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto NotificationDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("notification", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
