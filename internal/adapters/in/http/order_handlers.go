package http

import (
	"net/http"

	"deliveryhub/internal/core/application/usecases/commands"
	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CheckoutRequest is the request body for POST /api/v1/orders.
type CheckoutRequest struct {
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`

	Items []CheckoutItemRequest `json:"items"`
}

// CheckoutItemRequest is one requested catalog position.
type CheckoutItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// OrderResponse is the order summary returned after checkout.
type OrderResponse struct {
	ID          string `json:"id"`
	TotalAmount string `json:"total_amount"`
	Paid        bool   `json:"paid"`
}

// Checkout handles POST /api/v1/orders - places a new order.
// The X-Account-Id header is optional here: guest checkouts produce
// orders without an owning customer.
func (s *Server) Checkout(ctx echo.Context) error {
	var request CheckoutRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	var customerID *kernel.UUID
	if raw := ctx.Request().Header.Get(accountHeader); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return writeError(ctx, errs.NewValueIsInvalidErrorWithCause(accountHeader+" header", err))
		}
		customerID = &id
	}

	lines := make([]commands.CheckoutLine, 0, len(request.Items))
	for _, item := range request.Items {
		productID, err := kernel.UUIDFromString(item.ProductID)
		if err != nil {
			return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("product_id", err))
		}
		lines = append(lines, commands.CheckoutLine{
			ProductID: productID,
			Quantity:  item.Quantity,
		})
	}

	cmd, err := commands.NewCheckoutCommand(
		kernel.NewUUID(), customerID,
		request.FullName, request.Email, request.Address, request.City, request.PostalCode,
		lines,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	placed, err := s.checkoutHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, OrderResponse{
		ID:          placed.ID().String(),
		TotalAmount: placed.TotalAmount().StringFixed(2),
		Paid:        placed.Paid(),
	})
}

// ConfirmPayment handles POST /api/v1/orders/:orderID/payment-confirmed.
// Called by the payment collaborator; marks the order paid and provisions
// its delivery.
func (s *Server) ConfirmPayment(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewConfirmPaymentCommand(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	provisioned, err := s.confirmPaymentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deliveryResponseFromAggregate(provisioned))
}
