// Package notificationrepo persists delivery notifications.
package notificationrepo

import (
	"time"

	"deliveryhub/internal/core/domain/model/delivery"
	"deliveryhub/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// NotificationDTO represents the database structure of notification rows.
type NotificationDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeliveryID  uuid.UUID `gorm:"type:uuid;index"`
	RecipientID uuid.UUID `gorm:"type:uuid;index"`
	Kind        string
	Message     string
	Read        bool
	SentAt      time.Time `gorm:"index"`
}

func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(notification *delivery.Notification) NotificationDTO {
	return NotificationDTO{
		ID:          notification.ID().Bytes(),
		DeliveryID:  notification.DeliveryID().Bytes(),
		RecipientID: notification.RecipientID().Bytes(),
		Kind:        notification.Kind().String(),
		Message:     notification.Message(),
		Read:        notification.IsRead(),
		SentAt:      notification.SentAt(),
	}
}

func toDomain(dto NotificationDTO) (*delivery.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	deliveryID, err := kernel.UUIDFromBytes(dto.DeliveryID[:])
	if err != nil {
		return nil, err
	}
	recipientID, err := kernel.UUIDFromBytes(dto.RecipientID[:])
	if err != nil {
		return nil, err
	}

	kind := delivery.NotificationKindFromString(dto.Kind)
	if err = kind.Validate(); err != nil {
		return nil, err
	}

	return delivery.RestoreNotification(
		id, deliveryID, recipientID, kind, dto.Message, dto.Read, dto.SentAt)
}
