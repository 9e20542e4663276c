package http

import (
	"net/http"
	"time"

	"deliveryhub/internal/core/application/usecases/commands"
	"deliveryhub/internal/core/application/usecases/queries"
	"deliveryhub/internal/core/domain/model/delivery"
	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// DeliveryResponse is the delivery summary returned by command endpoints.
type DeliveryResponse struct {
	ID              string     `json:"id"`
	OrderID         string     `json:"order_id"`
	CourierID       *string    `json:"courier_id"`
	Status          string     `json:"status"`
	ScheduledDate   *time.Time `json:"scheduled_date"`
	ScheduledWindow string     `json:"scheduled_window"`
	FailureNote     string     `json:"failure_note,omitempty"`
	FailureCount    int        `json:"failure_count"`
	Version         int        `json:"version"`
}

func deliveryResponseFromAggregate(del *delivery.Delivery) DeliveryResponse {
	var courierID *string
	if id := del.CourierID(); id != nil {
		raw := id.String()
		courierID = &raw
	}

	return DeliveryResponse{
		ID:              del.ID().String(),
		OrderID:         del.OrderID().String(),
		CourierID:       courierID,
		Status:          del.Status().String(),
		ScheduledDate:   del.ScheduledDate(),
		ScheduledWindow: del.ScheduledWindow(),
		FailureNote:     del.FailureNote(),
		FailureCount:    del.FailureCount(),
		Version:         del.Version(),
	}
}

// AssignCourierRequest is the request body for the assign endpoint.
type AssignCourierRequest struct {
	CourierID       string     `json:"courier_id"`
	ScheduledDate   *time.Time `json:"scheduled_date"`
	ScheduledWindow string     `json:"scheduled_window"`
}

// AssignCourier handles POST /api/v1/deliveries/:deliveryID/assign.
func (s *Server) AssignCourier(ctx echo.Context) error {
	actor, err := actorID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	deliveryID, err := pathUUID(ctx, "deliveryID")
	if err != nil {
		return writeError(ctx, err)
	}

	var request AssignCourierRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	courierID, err := kernelUUIDFromRequest(request.CourierID, "courier_id")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAssignCourierCommand(
		actor, deliveryID, courierID, request.ScheduledDate, request.ScheduledWindow)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.assignCourierHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deliveryResponseFromAggregate(updated))
}

// AdvanceStatusRequest is the request body for the status endpoint.
// FailureCode and FailureDetails are required when status is "failed".
type AdvanceStatusRequest struct {
	Status         string `json:"status"`
	Note           string `json:"note"`
	Photo          string `json:"photo"`
	FailureCode    string `json:"failure_code"`
	FailureDetails string `json:"failure_details"`
}

// AdvanceStatus handles POST /api/v1/deliveries/:deliveryID/status.
func (s *Server) AdvanceStatus(ctx echo.Context) error {
	actor, err := actorID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	deliveryID, err := pathUUID(ctx, "deliveryID")
	if err != nil {
		return writeError(ctx, err)
	}

	var request AdvanceStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	target := delivery.StatusFromString(request.Status)
	cmd, err := commands.NewAdvanceStatusCommand(
		actor, deliveryID, target,
		request.Note, request.Photo,
		delivery.FailureCodeFromString(request.FailureCode), request.FailureDetails,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.advanceStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deliveryResponseFromAggregate(updated))
}

// RescheduleRequest is the request body for the reschedule endpoint.
type RescheduleRequest struct {
	NewDate   time.Time `json:"new_date"`
	NewWindow string    `json:"new_window"`
}

// RescheduleDelivery handles POST /api/v1/deliveries/:deliveryID/reschedule.
func (s *Server) RescheduleDelivery(ctx echo.Context) error {
	actor, err := actorID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	deliveryID, err := pathUUID(ctx, "deliveryID")
	if err != nil {
		return writeError(ctx, err)
	}

	var request RescheduleRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewRescheduleDeliveryCommand(actor, deliveryID, request.NewDate, request.NewWindow)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.rescheduleDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deliveryResponseFromAggregate(updated))
}

// CommentRequest is the request body for the comments endpoint.
type CommentRequest struct {
	Message string `json:"message"`
	Photo   string `json:"photo"`
}

// CommentResponse is the created comment.
type CommentResponse struct {
	ID         string    `json:"id"`
	AuthorRole string    `json:"author_role"`
	Message    string    `json:"message"`
	Photo      string    `json:"photo,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// AddComment handles POST /api/v1/deliveries/:deliveryID/comments.
func (s *Server) AddComment(ctx echo.Context) error {
	actor, err := actorID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	deliveryID, err := pathUUID(ctx, "deliveryID")
	if err != nil {
		return writeError(ctx, err)
	}

	var request CommentRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewAddCommentCommand(actor, deliveryID, request.Message, request.Photo)
	if err != nil {
		return writeError(ctx, err)
	}

	comment, err := s.addCommentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CommentResponse{
		ID:         comment.ID().String(),
		AuthorRole: comment.AuthorRole().String(),
		Message:    comment.Message(),
		Photo:      comment.Photo(),
		CreatedAt:  comment.CreatedAt(),
	})
}

// PingRequest is the request body for the ping endpoint.
type PingRequest struct {
	Kind             string `json:"kind"`
	EstimatedMinutes int    `json:"estimated_minutes"`
}

// SendCourierPing handles POST /api/v1/deliveries/:deliveryID/ping.
func (s *Server) SendCourierPing(ctx echo.Context) error {
	actor, err := actorID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	deliveryID, err := pathUUID(ctx, "deliveryID")
	if err != nil {
		return writeError(ctx, err)
	}

	var request PingRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewSendCourierPingCommand(
		actor, deliveryID,
		delivery.NotificationKindFromString(request.Kind),
		request.EstimatedMinutes,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	notification, err := s.sendCourierPingHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, NotificationResponse{
		ID:         notification.ID().String(),
		DeliveryID: notification.DeliveryID().String(),
		Kind:       notification.Kind().String(),
		Message:    notification.Message(),
		Read:       notification.IsRead(),
		SentAt:     notification.SentAt(),
	})
}

// GetDelivery handles GET /api/v1/deliveries/:deliveryID.
func (s *Server) GetDelivery(ctx echo.Context) error {
	actor, err := actorID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	deliveryID, err := pathUUID(ctx, "deliveryID")
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetDeliveryQuery(actor, deliveryID)
	if err != nil {
		return writeError(ctx, err)
	}

	detail, err := s.getDeliveryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deliveryDetailFromReadModel(detail))
}

// GetDeliveryBoard handles GET /api/v1/board - manager metrics.
func (s *Server) GetDeliveryBoard(ctx echo.Context) error {
	actor, err := actorID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetDeliveryBoardQuery(actor)
	if err != nil {
		return writeError(ctx, err)
	}

	board, err := s.getDeliveryBoardHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, BoardResponse{
		TotalDeliveries: board.TotalDeliveries,
		Delivered:       board.Delivered,
		Failed:          board.Failed,
		Open:            board.Open,
		ByStatus:        board.ByStatus,
	})
}

// BoardResponse is the manager board read model.
type BoardResponse struct {
	TotalDeliveries int            `json:"total_deliveries"`
	Delivered       int            `json:"delivered"`
	Failed          int            `json:"failed"`
	Open            int            `json:"open"`
	ByStatus        map[string]int `json:"by_status"`
}

func kernelUUIDFromRequest(raw, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}
