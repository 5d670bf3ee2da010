// Package http is the inbound HTTP adapter: a thin echo layer that binds
// JSON requests onto commands and queries, maps domain errors to status
// codes, and streams realtime updates over SSE.
package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/application/usecases/commands"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/application/usecases/queries"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/kernel"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/order"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/pkg/errs"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/realtime"

	"github.com/labstack/echo/v4"
)

// TransitionRequester is the single-order transition entry point.
type TransitionRequester interface {
	Handle(ctx context.Context, cmd commands.RequestTransitionCommand) (commands.TransitionResult, error)
}

// BulkTransitioner is the batch transition entry point.
type BulkTransitioner interface {
	Handle(ctx context.Context, cmd commands.BulkTransitionCommand) (commands.BulkTransitionResult, error)
}

// OrderCreator registers new orders.
type OrderCreator interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) error
}

// OpenOrdersReader serves the admin open-orders view.
type OpenOrdersReader interface {
	Handle(ctx context.Context, query queries.GetOpenOrdersQuery) ([]queries.GetOpenOrdersQueryResponse, error)
}

// EventHistoryReader serves one order's event trail.
type EventHistoryReader interface {
	Handle(ctx context.Context, query queries.GetEventHistoryQuery) ([]queries.GetEventHistoryQueryResponse, error)
}

// CriticalEventsReader serves the cross-order triage feed.
type CriticalEventsReader interface {
	Handle(ctx context.Context, query queries.GetCriticalEventsQuery) ([]queries.GetCriticalEventsQueryResponse, error)
}

// Server wires the HTTP routes onto the application layer.
type Server struct {
	createOrder    OrderCreator
	transition     TransitionRequester
	bulkTransition BulkTransitioner
	openOrders     OpenOrdersReader
	eventHistory   EventHistoryReader
	criticalEvents CriticalEventsReader
	hub            *realtime.Hub
}

// NewServer creates the HTTP server over its command and query handlers.
func NewServer(
	createOrder OrderCreator,
	transition TransitionRequester,
	bulkTransition BulkTransitioner,
	openOrders OpenOrdersReader,
	eventHistory EventHistoryReader,
	criticalEvents CriticalEventsReader,
	hub *realtime.Hub,
) *Server {
	return &Server{
		createOrder:    createOrder,
		transition:     transition,
		bulkTransition: bulkTransition,
		openOrders:     openOrders,
		eventHistory:   eventHistory,
		criticalEvents: criticalEvents,
		hub:            hub,
	}
}

// RegisterRoutes mounts every route on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/open", s.GetOpenOrders)
	api.POST("/orders/:id/status", s.RequestTransition)
	api.POST("/orders/status/bulk", s.BulkTransition)
	api.GET("/orders/:id/events", s.GetEventHistory)
	api.GET("/orders/statuses/:status/transitions", s.GetValidTransitions)
	api.GET("/events/critical", s.GetCriticalEvents)
	api.GET("/stream", s.Stream)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := s.buildCreateOrderCommand(req)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.createOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createOrderResponse{OrderID: cmd.OrderID().String()})
}

func (s *Server) buildCreateOrderCommand(req createOrderRequest) (commands.CreateOrderCommand, error) {
	var userID *kernel.UUID
	if req.UserID != "" {
		parsed, err := kernel.UUIDFromString(req.UserID)
		if err != nil {
			return commands.CreateOrderCommand{}, err
		}
		userID = &parsed
	}

	totals, err := totalsFromRequest(req.Totals)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	items := make([]order.Item, 0, len(req.Items))
	for _, itemReq := range req.Items {
		item, err := itemFromRequest(itemReq)
		if err != nil {
			return commands.CreateOrderCommand{}, err
		}
		items = append(items, item)
	}

	return commands.NewCreateOrderCommand(kernel.NewUUID(), userID, req.Email, req.Phone, totals, items)
}

func totalsFromRequest(req orderTotalsRequest) (order.Totals, error) {
	var amounts [5]kernel.Money
	for i, pence := range []int64{
		req.SubtotalPence, req.DiscountPence, req.TaxPence, req.ShippingPence, req.TotalPence,
	} {
		money, err := kernel.NewMoney(pence)
		if err != nil {
			return order.Totals{}, err
		}
		amounts[i] = money
	}
	return order.NewTotals(amounts[0], amounts[1], amounts[2], amounts[3], amounts[4])
}

func itemFromRequest(req orderItemRequest) (order.Item, error) {
	productID, err := kernel.UUIDFromString(req.ProductID)
	if err != nil {
		return order.Item{}, err
	}
	unitPrice, err := kernel.NewMoney(req.UnitPricePence)
	if err != nil {
		return order.Item{}, err
	}
	return order.NewItem(kernel.NewUUID(), productID, req.Name, req.Size, req.Quantity, unitPrice)
}

// RequestTransition handles POST /api/v1/orders/:id/status.
func (s *Server) RequestTransition(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req transitionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	target, err := order.StatusFromString(req.Target)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewRequestTransitionCommand(orderID, target, req.Reason, req.ActorID, req.Force)
	if err != nil {
		return writeError(ctx, err)
	}
	if req.TrackingNumber != "" || req.Carrier != "" {
		cmd = cmd.WithShippingDetails(req.TrackingNumber, req.Carrier, req.Service)
	}

	result, err := s.transition.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, transitionResponse{
		OrderID:  result.Order.ID().String(),
		From:     result.From.String(),
		To:       result.To.String(),
		NoOp:     result.NoOp,
		Warnings: result.Warnings,
	})
}

// BulkTransition handles POST /api/v1/orders/status/bulk.
func (s *Server) BulkTransition(ctx echo.Context) error {
	var req bulkTransitionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	target, err := order.StatusFromString(req.Target)
	if err != nil {
		return writeError(ctx, err)
	}

	orderIDs := make([]kernel.UUID, 0, len(req.OrderIDs))
	for _, raw := range req.OrderIDs {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return badRequest(ctx, "invalid order id: "+raw)
		}
		orderIDs = append(orderIDs, id)
	}

	cmd, err := commands.NewBulkTransitionCommand(orderIDs, target, req.Reason, req.ActorID, req.ContinueOnError)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.bulkTransition.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	response := bulkTransitionResponse{
		Applied: make([]bulkAppliedResponse, 0, len(result.Applied)),
		Failed:  make([]bulkFailedResponse, 0, len(result.Failed)),
	}
	for _, applied := range result.Applied {
		response.Applied = append(response.Applied, bulkAppliedResponse{
			OrderID:  applied.OrderID,
			NoOp:     applied.NoOp,
			Warnings: applied.Warnings,
		})
	}
	for _, failed := range result.Failed {
		response.Failed = append(response.Failed, bulkFailedResponse{
			OrderID: failed.OrderID,
			Reason:  failed.Reason,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetValidTransitions handles GET /api/v1/orders/statuses/:status/transitions.
func (s *Server) GetValidTransitions(ctx echo.Context) error {
	status, err := order.StatusFromString(ctx.Param("status"))
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, validTransitionsResponse{
		Status:      status.String(),
		AllowedNext: status.ValidNextStrings(),
	})
}

// GetEventHistory handles GET /api/v1/orders/:id/events.
func (s *Server) GetEventHistory(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	query, err := queries.NewGetEventHistoryQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	events, err := s.eventHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]orderEventResponse, 0, len(events))
	for _, event := range events {
		response = append(response, orderEventResponse{
			ID:        event.ID.String(),
			Kind:      event.Kind,
			Message:   event.Message,
			Payload:   event.Payload,
			CreatedAt: event.CreatedAt,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetCriticalEvents handles GET /api/v1/events/critical?hours=24.
func (s *Server) GetCriticalEvents(ctx echo.Context) error {
	hours := 24
	if raw := ctx.QueryParam("hours"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(ctx, "invalid hours parameter")
		}
		hours = parsed
	}

	query, err := queries.NewGetCriticalEventsQuery(hours)
	if err != nil {
		return writeError(ctx, err)
	}

	events, err := s.criticalEvents.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]criticalEventResponse, 0, len(events))
	for _, event := range events {
		response = append(response, criticalEventResponse{
			ID:        event.ID.String(),
			OrderID:   event.OrderID.String(),
			Kind:      event.Kind,
			Message:   event.Message,
			CreatedAt: event.CreatedAt,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOpenOrders handles GET /api/v1/orders/open.
func (s *Server) GetOpenOrders(ctx echo.Context) error {
	orders, err := s.openOrders.Handle(ctx.Request().Context(), queries.NewGetOpenOrdersQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]openOrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, openOrderResponse{
			ID:         o.ID.String(),
			Email:      o.Email,
			Status:     o.Status,
			TotalPence: o.TotalPence,
			ItemCount:  o.ItemCount,
			CreatedAt:  o.CreatedAt,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// writeError maps domain errors onto HTTP status codes. Not-found is kept
// distinct from validation failures; transition conflicts and business-rule
// rejections carry their reason in the body so callers never have to guess
// why a request was refused.
func writeError(ctx echo.Context, err error) error {
	var invalid *errs.InvalidTransitionError
	if errors.As(err, &invalid) {
		return ctx.JSON(http.StatusConflict, errorResponse{
			Code:        http.StatusConflict,
			Message:     invalid.Error(),
			AllowedNext: invalid.Allowed,
		})
	}

	var confirm *errs.ConfirmationRequiredError
	if errors.As(err, &confirm) {
		return ctx.JSON(http.StatusConflict, errorResponse{
			Code:                 http.StatusConflict,
			Message:              confirm.Error(),
			RequiresConfirmation: true,
		})
	}

	// Business-rule rejection of an otherwise adjacent transition.
	if errors.Is(err, order.ErrTotalNotPositive) {
		return ctx.JSON(http.StatusConflict, errorResponse{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	}

	if errors.Is(err, errs.ErrObjectNotFound) {
		return ctx.JSON(http.StatusNotFound, errorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	}

	if errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsOutOfRange) ||
		errors.Is(err, order.ErrEmailIsRequired) ||
		errors.Is(err, order.ErrNoItems) {
		return badRequest(ctx, err.Error())
	}

	return ctx.JSON(http.StatusInternalServerError, errorResponse{
		Code:    http.StatusInternalServerError,
		Message: "internal error",
	})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
