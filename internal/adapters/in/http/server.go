// Package http exposes the delivery lifecycle over a JSON API. The caller
// is identified by the X-Account-Id header, set by the gateway after
// authentication; this service only resolves the account and checks roles.
package http

import (
	"errors"
	"net/http"

	"deliveryhub/internal/core/application/usecases/commands"
	"deliveryhub/internal/core/application/usecases/queries"
	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// accountHeader carries the authenticated caller's account id.
const accountHeader = "X-Account-Id"

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	checkoutHandler             commands.CheckoutCommandHandler
	confirmPaymentHandler       commands.ConfirmPaymentCommandHandler
	assignCourierHandler        commands.AssignCourierCommandHandler
	advanceStatusHandler        commands.AdvanceStatusCommandHandler
	rescheduleDeliveryHandler   commands.RescheduleDeliveryCommandHandler
	addCommentHandler           commands.AddCommentCommandHandler
	sendCourierPingHandler      commands.SendCourierPingCommandHandler
	markNotificationReadHandler commands.MarkNotificationReadCommandHandler

	// Query handlers
	getDeliveryHandler       queries.GetDeliveryQueryHandler
	listNotificationsHandler queries.ListNotificationsQueryHandler
	getDeliveryBoardHandler  queries.GetDeliveryBoardQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	checkoutHandler commands.CheckoutCommandHandler,
	confirmPaymentHandler commands.ConfirmPaymentCommandHandler,
	assignCourierHandler commands.AssignCourierCommandHandler,
	advanceStatusHandler commands.AdvanceStatusCommandHandler,
	rescheduleDeliveryHandler commands.RescheduleDeliveryCommandHandler,
	addCommentHandler commands.AddCommentCommandHandler,
	sendCourierPingHandler commands.SendCourierPingCommandHandler,
	markNotificationReadHandler commands.MarkNotificationReadCommandHandler,
	getDeliveryHandler queries.GetDeliveryQueryHandler,
	listNotificationsHandler queries.ListNotificationsQueryHandler,
	getDeliveryBoardHandler queries.GetDeliveryBoardQueryHandler,
) *Server {
	return &Server{
		checkoutHandler:             checkoutHandler,
		confirmPaymentHandler:       confirmPaymentHandler,
		assignCourierHandler:        assignCourierHandler,
		advanceStatusHandler:        advanceStatusHandler,
		rescheduleDeliveryHandler:   rescheduleDeliveryHandler,
		addCommentHandler:           addCommentHandler,
		sendCourierPingHandler:      sendCourierPingHandler,
		markNotificationReadHandler: markNotificationReadHandler,
		getDeliveryHandler:          getDeliveryHandler,
		listNotificationsHandler:    listNotificationsHandler,
		getDeliveryBoardHandler:     getDeliveryBoardHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.Checkout)
	api.POST("/orders/:orderID/payment-confirmed", s.ConfirmPayment)

	api.GET("/deliveries/:deliveryID", s.GetDelivery)
	api.POST("/deliveries/:deliveryID/assign", s.AssignCourier)
	api.POST("/deliveries/:deliveryID/status", s.AdvanceStatus)
	api.POST("/deliveries/:deliveryID/reschedule", s.RescheduleDelivery)
	api.POST("/deliveries/:deliveryID/comments", s.AddComment)
	api.POST("/deliveries/:deliveryID/ping", s.SendCourierPing)

	api.GET("/notifications", s.ListNotifications)
	api.POST("/notifications/:notificationID/read", s.MarkNotificationRead)

	api.GET("/board", s.GetDeliveryBoard)

	e.GET("/health", s.Health)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// ErrorResponse is the JSON error body returned on failed requests.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// writeError maps application errors onto HTTP status codes.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrNotAuthorized):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrVersionIsInvalid):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}

// actorID extracts the caller's account id from the request headers.
func actorID(ctx echo.Context) (kernel.UUID, error) {
	raw := ctx.Request().Header.Get(accountHeader)
	if raw == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError(accountHeader + " header")
	}

	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(accountHeader+" header", err)
	}
	return id, nil
}

// pathUUID extracts and parses a UUID path parameter.
func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}
