package queries

import (
	"errors"
	"time"

	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/pkg/errs"
	"deliveryhub/internal/pkg/guard"
)

var ErrGetDeliveryQueryIsNotConstructed = errors.New(
	"GetDeliveryQuery must be created via NewGetDeliveryQuery constructor",
)

// GetDeliveryQuery retrieves a single delivery together with its audit
// trail, comment thread and failure ledger. Visible to managers, the
// owning customer and the assigned courier.
type GetDeliveryQuery struct {
	actorID    kernel.UUID
	deliveryID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetDeliveryQuery(actorID, deliveryID kernel.UUID) (GetDeliveryQuery, error) {
	if err := actorID.Validate(); err != nil {
		return GetDeliveryQuery{}, errs.NewValueIsRequiredError("actorID")
	}
	if err := deliveryID.Validate(); err != nil {
		return GetDeliveryQuery{}, errs.NewValueIsRequiredError("deliveryID")
	}

	return GetDeliveryQuery{
		actorID:    actorID,
		deliveryID: deliveryID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryQueryIsNotConstructed)
}

func (q GetDeliveryQuery) ActorID() kernel.UUID {
	return q.actorID
}

func (q GetDeliveryQuery) DeliveryID() kernel.UUID {
	return q.deliveryID
}

// DeliveryEventResponse is one audit trail row.
type DeliveryEventResponse struct {
	ID           kernel.UUID
	ActorID      *kernel.UUID
	StatusBefore string
	StatusAfter  string
	Note         string
	Photo        string
	CreatedAt    time.Time
}

// DeliveryCommentResponse is one comment thread row. AuthorRole is the
// role snapshot taken when the comment was posted; it outlives the
// author account, so AuthorID may be nil.
type DeliveryCommentResponse struct {
	ID         kernel.UUID
	AuthorID   *kernel.UUID
	AuthorRole string
	Message    string
	Photo      string
	CreatedAt  time.Time
}

// DeliveryFailureResponse is one failure ledger row.
type DeliveryFailureResponse struct {
	ID            kernel.UUID
	Code          string
	Details       string
	ReportedByID  *kernel.UUID
	AttemptNumber int
	CreatedAt     time.Time
}

// GetDeliveryQueryResponse is the delivery detail read model. Events,
// Comments and Failures are each ordered newest-first.
type GetDeliveryQueryResponse struct {
	ID               kernel.UUID
	OrderID          kernel.UUID
	CourierID        *kernel.UUID
	Status           string
	ScheduledDate    *time.Time
	ScheduledWindow  string
	Notes            string
	Photo            string
	FailureNote      string
	FailureCount     int
	EstimatedArrival time.Time
	Version          int
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Events   []DeliveryEventResponse
	Comments []DeliveryCommentResponse
	Failures []DeliveryFailureResponse
}
