// Package deliveryrepo persists delivery aggregates and their child rows.
// The aggregate root maps to the deliveries table; audit events, failure
// ledger rows and comments are append-only child tables flushed from the
// aggregate's pending collections within the same transaction.
package deliveryrepo

import (
	"time"

	"deliveryhub/internal/core/domain/model/account"
	"deliveryhub/internal/core/domain/model/delivery"
	"deliveryhub/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO represents the database structure for persisting delivery aggregates.
// The version column backs optimistic concurrency control.
type DeliveryDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID  `gorm:"type:uuid;uniqueIndex"`
	CourierID       *uuid.UUID `gorm:"type:uuid;index"`
	Status          string     `gorm:"index"`
	ScheduledDate   *time.Time
	ScheduledWindow string
	Notes           string
	Photo           string
	FailureNote     string
	FailureCount    int
	Version         int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// EventDTO is one append-only audit trail row.
type EventDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	DeliveryID   uuid.UUID  `gorm:"type:uuid;index"`
	ActorID      *uuid.UUID `gorm:"type:uuid"`
	StatusBefore string
	StatusAfter  string
	Note         string
	Photo        string
	CreatedAt    time.Time `gorm:"index"`
}

func (EventDTO) TableName() string {
	return "delivery_events"
}

// FailureDTO is one failure ledger row.
type FailureDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	DeliveryID    uuid.UUID  `gorm:"type:uuid;index"`
	Code          string
	Details       string
	ReportedByID  *uuid.UUID `gorm:"type:uuid"`
	AttemptNumber int
	CreatedAt     time.Time `gorm:"index"`
}

func (FailureDTO) TableName() string {
	return "delivery_failures"
}

// CommentDTO is one comment thread row. The author role is a snapshot
// that survives author account deletion.
type CommentDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	DeliveryID uuid.UUID  `gorm:"type:uuid;index"`
	AuthorID   *uuid.UUID `gorm:"type:uuid"`
	AuthorRole string
	Message    string
	Photo      string
	CreatedAt  time.Time `gorm:"index"`
}

func (CommentDTO) TableName() string {
	return "delivery_comments"
}

func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	var courierID *uuid.UUID
	if id := aggregate.CourierID(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	return DeliveryDTO{
		ID:              aggregate.ID().Bytes(),
		OrderID:         aggregate.OrderID().Bytes(),
		CourierID:       courierID,
		Status:          aggregate.Status().String(),
		ScheduledDate:   aggregate.ScheduledDate(),
		ScheduledWindow: aggregate.ScheduledWindow(),
		Notes:           aggregate.Notes(),
		Photo:           aggregate.Photo(),
		FailureNote:     aggregate.FailureNote(),
		FailureCount:    aggregate.FailureCount(),
		Version:         aggregate.Version(),
		CreatedAt:       aggregate.CreatedAt(),
		UpdatedAt:       aggregate.UpdatedAt(),
	}
}

func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	status := delivery.StatusFromString(dto.Status)
	if err = status.Validate(); err != nil {
		return nil, err
	}

	return delivery.RestoreDelivery(
		id, orderID, courierID, status,
		dto.ScheduledDate, dto.ScheduledWindow,
		dto.Notes, dto.Photo, dto.FailureNote,
		dto.FailureCount, dto.Version,
		dto.CreatedAt, dto.UpdatedAt,
	)
}

func eventFromDomain(deliveryID kernel.UUID, event *delivery.Event) EventDTO {
	var actorID *uuid.UUID
	if id := event.ActorID(); id != nil {
		raw := id.Bytes()
		actorID = &raw
	}

	return EventDTO{
		ID:           event.ID().Bytes(),
		DeliveryID:   deliveryID.Bytes(),
		ActorID:      actorID,
		StatusBefore: event.StatusBefore().String(),
		StatusAfter:  event.StatusAfter().String(),
		Note:         event.Note(),
		Photo:        event.Photo(),
		CreatedAt:    event.CreatedAt(),
	}
}

func failureFromDomain(deliveryID kernel.UUID, reason *delivery.FailureReason) FailureDTO {
	var reportedByID *uuid.UUID
	if id := reason.ReportedByID(); id != nil {
		raw := id.Bytes()
		reportedByID = &raw
	}

	return FailureDTO{
		ID:            reason.ID().Bytes(),
		DeliveryID:    deliveryID.Bytes(),
		Code:          reason.Code().String(),
		Details:       reason.Details(),
		ReportedByID:  reportedByID,
		AttemptNumber: reason.AttemptNumber(),
		CreatedAt:     reason.CreatedAt(),
	}
}

func commentFromDomain(deliveryID kernel.UUID, comment *delivery.Comment) CommentDTO {
	var authorID *uuid.UUID
	if id := comment.AuthorID(); id != nil {
		raw := id.Bytes()
		authorID = &raw
	}

	var role string
	if comment.AuthorRole() != account.RoleNone {
		role = comment.AuthorRole().String()
	}

	return CommentDTO{
		ID:         comment.ID().Bytes(),
		DeliveryID: deliveryID.Bytes(),
		AuthorID:   authorID,
		AuthorRole: role,
		Message:    comment.Message(),
		Photo:      comment.Photo(),
		CreatedAt:  comment.CreatedAt(),
	}
}
