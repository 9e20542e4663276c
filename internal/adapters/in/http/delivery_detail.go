package http

import (
	"time"

	"deliveryhub/internal/core/application/usecases/queries"
	"deliveryhub/internal/core/domain/model/kernel"
)

func optionalIDString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	raw := id.String()
	return &raw
}

// DeliveryDetailResponse is the full delivery view: the delivery itself
// plus its audit trail, comment thread and failure ledger, each newest-first.
type DeliveryDetailResponse struct {
	ID               string     `json:"id"`
	OrderID          string     `json:"order_id"`
	CourierID        *string    `json:"courier_id"`
	Status           string     `json:"status"`
	ScheduledDate    *time.Time `json:"scheduled_date"`
	ScheduledWindow  string     `json:"scheduled_window"`
	Notes            string     `json:"notes,omitempty"`
	Photo            string     `json:"photo,omitempty"`
	FailureNote      string     `json:"failure_note,omitempty"`
	FailureCount     int        `json:"failure_count"`
	EstimatedArrival time.Time  `json:"estimated_arrival"`
	Version          int        `json:"version"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	Events   []DeliveryEventResponse   `json:"events"`
	Comments []DeliveryCommentResponse `json:"comments"`
	Failures []DeliveryFailureResponse `json:"failures"`
}

// DeliveryEventResponse is one audit trail row. ActorID is null for
// system-initiated transitions.
type DeliveryEventResponse struct {
	ID           string    `json:"id"`
	ActorID      *string   `json:"actor_id"`
	StatusBefore string    `json:"status_before"`
	StatusAfter  string    `json:"status_after"`
	Note         string    `json:"note,omitempty"`
	Photo        string    `json:"photo,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// DeliveryCommentResponse is one comment thread row.
type DeliveryCommentResponse struct {
	ID         string    `json:"id"`
	AuthorID   *string   `json:"author_id"`
	AuthorRole string    `json:"author_role"`
	Message    string    `json:"message"`
	Photo      string    `json:"photo,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// DeliveryFailureResponse is one failure ledger row.
type DeliveryFailureResponse struct {
	ID            string    `json:"id"`
	Code          string    `json:"code"`
	Details       string    `json:"details,omitempty"`
	ReportedByID  *string   `json:"reported_by_id"`
	AttemptNumber int       `json:"attempt_number"`
	CreatedAt     time.Time `json:"created_at"`
}

func deliveryDetailFromReadModel(detail queries.GetDeliveryQueryResponse) DeliveryDetailResponse {
	response := DeliveryDetailResponse{
		ID:               detail.ID.String(),
		OrderID:          detail.OrderID.String(),
		Status:           detail.Status,
		ScheduledDate:    detail.ScheduledDate,
		ScheduledWindow:  detail.ScheduledWindow,
		Notes:            detail.Notes,
		Photo:            detail.Photo,
		FailureNote:      detail.FailureNote,
		FailureCount:     detail.FailureCount,
		EstimatedArrival: detail.EstimatedArrival,
		Version:          detail.Version,
		CreatedAt:        detail.CreatedAt,
		UpdatedAt:        detail.UpdatedAt,
		Events:           make([]DeliveryEventResponse, len(detail.Events)),
		Comments:         make([]DeliveryCommentResponse, len(detail.Comments)),
		Failures:         make([]DeliveryFailureResponse, len(detail.Failures)),
	}

	if detail.CourierID != nil {
		raw := detail.CourierID.String()
		response.CourierID = &raw
	}

	for i, event := range detail.Events {
		response.Events[i] = DeliveryEventResponse{
			ID:           event.ID.String(),
			ActorID:      optionalIDString(event.ActorID),
			StatusBefore: event.StatusBefore,
			StatusAfter:  event.StatusAfter,
			Note:         event.Note,
			Photo:        event.Photo,
			CreatedAt:    event.CreatedAt,
		}
	}

	for i, comment := range detail.Comments {
		response.Comments[i] = DeliveryCommentResponse{
			ID:         comment.ID.String(),
			AuthorID:   optionalIDString(comment.AuthorID),
			AuthorRole: comment.AuthorRole,
			Message:    comment.Message,
			Photo:      comment.Photo,
			CreatedAt:  comment.CreatedAt,
		}
	}

	for i, failure := range detail.Failures {
		response.Failures[i] = DeliveryFailureResponse{
			ID:            failure.ID.String(),
			Code:          failure.Code,
			Details:       failure.Details,
			ReportedByID:  optionalIDString(failure.ReportedByID),
			AttemptNumber: failure.AttemptNumber,
			CreatedAt:     failure.CreatedAt,
		}
	}

	return response
}
