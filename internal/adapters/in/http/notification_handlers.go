package http

import (
	"net/http"
	"strconv"
	"time"

	"deliveryhub/internal/core/application/usecases/commands"
	"deliveryhub/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// NotificationResponse is one notification feed entry.
type NotificationResponse struct {
	ID         string    `json:"id"`
	DeliveryID string    `json:"delivery_id"`
	Kind       string    `json:"kind"`
	Message    string    `json:"message"`
	Read       bool      `json:"read"`
	SentAt     time.Time `json:"sent_at"`
}

// ListNotifications handles GET /api/v1/notifications - the caller's
// feed, newest first. The limit query parameter caps the page size.
func (s *Server) ListNotifications(ctx echo.Context) error {
	actor, err := actorID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	limit := 0
	if raw := ctx.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, ErrorResponse{
				Code:    http.StatusBadRequest,
				Message: "Invalid limit parameter",
			})
		}
	}

	query, err := queries.NewListNotificationsQuery(actor, limit)
	if err != nil {
		return writeError(ctx, err)
	}

	feed, err := s.listNotificationsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]NotificationResponse, len(feed))
	for i, entry := range feed {
		response[i] = NotificationResponse{
			ID:         entry.ID.String(),
			DeliveryID: entry.DeliveryID.String(),
			Kind:       entry.Kind,
			Message:    entry.Message,
			Read:       entry.Read,
			SentAt:     entry.SentAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// MarkNotificationRead handles POST /api/v1/notifications/:notificationID/read.
func (s *Server) MarkNotificationRead(ctx echo.Context) error {
	actor, err := actorID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	notificationID, err := pathUUID(ctx, "notificationID")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewMarkNotificationReadCommand(actor, notificationID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.markNotificationReadHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
