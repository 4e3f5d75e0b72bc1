// Package http exposes the ordering API over echo. Handlers translate wire
// requests into commands and queries and map domain errors onto status codes:
// rejected transitions are client errors, missing objects are 404s.
package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler        commands.CreateOrderCommandHandler
	updateOrderHandler        commands.UpdateOrderCommandHandler
	deleteOrderHandler        commands.DeleteOrderCommandHandler
	reserveOrderHandler       commands.ReserveOrderCommandHandler
	unreserveOrderHandler     commands.UnreserveOrderCommandHandler
	confirmOrderHandler       commands.ConfirmOrderCommandHandler
	markOrderPaidHandler      commands.MarkOrderPaidCommandHandler
	cancelOrderHandler        commands.CancelOrderCommandHandler
	generateDeliveriesHandler commands.GenerateDeliveriesCommandHandler
	upsertOrderItemHandler    commands.UpsertOrderItemCommandHandler
	addBatchHandler           commands.AddBatchCommandHandler

	getOrderHandler         queries.GetOrderQueryHandler
	exportDraftOrderHandler queries.ExportDraftOrderQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderHandler commands.UpdateOrderCommandHandler,
	deleteOrderHandler commands.DeleteOrderCommandHandler,
	reserveOrderHandler commands.ReserveOrderCommandHandler,
	unreserveOrderHandler commands.UnreserveOrderCommandHandler,
	confirmOrderHandler commands.ConfirmOrderCommandHandler,
	markOrderPaidHandler commands.MarkOrderPaidCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	generateDeliveriesHandler commands.GenerateDeliveriesCommandHandler,
	upsertOrderItemHandler commands.UpsertOrderItemCommandHandler,
	addBatchHandler commands.AddBatchCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	exportDraftOrderHandler queries.ExportDraftOrderQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:        createOrderHandler,
		updateOrderHandler:        updateOrderHandler,
		deleteOrderHandler:        deleteOrderHandler,
		reserveOrderHandler:       reserveOrderHandler,
		unreserveOrderHandler:     unreserveOrderHandler,
		confirmOrderHandler:       confirmOrderHandler,
		markOrderPaidHandler:      markOrderPaidHandler,
		cancelOrderHandler:        cancelOrderHandler,
		generateDeliveriesHandler: generateDeliveriesHandler,
		upsertOrderItemHandler:    upsertOrderItemHandler,
		addBatchHandler:           addBatchHandler,
		getOrderHandler:           getOrderHandler,
		exportDraftOrderHandler:   exportDraftOrderHandler,
	}
}

// RegisterRoutes attaches the API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:order_id", s.GetOrder)
	api.PATCH("/orders/:order_id", s.UpdateOrder)
	api.DELETE("/orders/:order_id", s.DeleteOrder)
	api.POST("/orders/:order_id/mark_reserved", s.ReserveOrder)
	api.POST("/orders/:order_id/unreserve", s.UnreserveOrder)
	api.POST("/orders/:order_id/confirm", s.ConfirmOrder)
	api.POST("/orders/:order_id/mark_paid", s.MarkOrderPaid)
	api.POST("/orders/:order_id/cancel", s.CancelOrder)
	api.POST("/orders/:order_id/generate_deliveries", s.GenerateDeliveries)
	api.GET("/orders/:order_id/export_draft_order", s.ExportDraftOrder)
	api.PUT("/orders/:order_id/items", s.UpsertOrderItem)
	api.POST("/batches", s.AddBatch)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	organizationID, err := kernel.UUIDFromString(req.OrganizationID)
	if err != nil {
		return badRequest(ctx, "Invalid organization_id: "+err.Error())
	}
	managerID, err := optionalUUID(req.ManagerID)
	if err != nil {
		return badRequest(ctx, "Invalid manager_id: "+err.Error())
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, organizationID, req.OrganizationTitle, managerID)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{ID: orderID.String()})
}

// GetOrder handles GET /api/v1/orders/:order_id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	items := make([]OrderItemResponse, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, OrderItemResponse{
			ID:      item.ID.String(),
			OfferID: item.OfferID.String(),
			Amount:  item.Amount,
			Price:   item.Price,
			VAT:     item.VAT,
			Sum:     item.Sum,
			VATSum:  item.VATSum,
			Status:  item.Status,
		})
	}

	return ctx.JSON(http.StatusOK, OrderResponse{
		ID:                result.ID.String(),
		OrganizationID:    result.OrganizationID.String(),
		OrganizationTitle: result.OrganizationTitle,
		Title:             result.Title,
		Comment:           result.Comment,
		Status:            result.Status,
		StatusUpdatedAt:   result.StatusUpdatedAt,
		DereservationAt:   result.DereservationAt,
		CreatedAt:         result.CreatedAt,
		Total:             result.Total,
		Items:             items,
	})
}

// UpdateOrder handles PATCH /api/v1/orders/:order_id.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req UpdateOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	managerID, err := optionalUUID(req.ManagerID)
	if err != nil {
		return badRequest(ctx, "Invalid manager_id: "+err.Error())
	}

	cmd, err := commands.NewUpdateOrderCommand(orderID, req.Title, req.Comment, managerID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.updateOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeleteOrder handles DELETE /api/v1/orders/:order_id. Deletion is a status
// transition: orders past the editable stage respond with a client error.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.deleteOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReserveOrder handles POST /api/v1/orders/:order_id/mark_reserved.
func (s *Server) ReserveOrder(ctx echo.Context) error {
	return s.transition(ctx, func(orderID kernel.UUID) error {
		cmd, err := commands.NewReserveOrderCommand(orderID)
		if err != nil {
			return err
		}
		return s.reserveOrderHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// UnreserveOrder handles POST /api/v1/orders/:order_id/unreserve.
func (s *Server) UnreserveOrder(ctx echo.Context) error {
	return s.transition(ctx, func(orderID kernel.UUID) error {
		cmd, err := commands.NewUnreserveOrderCommand(orderID)
		if err != nil {
			return err
		}
		return s.unreserveOrderHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// ConfirmOrder handles POST /api/v1/orders/:order_id/confirm.
func (s *Server) ConfirmOrder(ctx echo.Context) error {
	return s.transition(ctx, func(orderID kernel.UUID) error {
		cmd, err := commands.NewConfirmOrderCommand(orderID)
		if err != nil {
			return err
		}
		return s.confirmOrderHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// MarkOrderPaid handles POST /api/v1/orders/:order_id/mark_paid.
func (s *Server) MarkOrderPaid(ctx echo.Context) error {
	return s.transition(ctx, func(orderID kernel.UUID) error {
		cmd, err := commands.NewMarkOrderPaidCommand(orderID)
		if err != nil {
			return err
		}
		return s.markOrderPaidHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// CancelOrder handles POST /api/v1/orders/:order_id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	return s.transition(ctx, func(orderID kernel.UUID) error {
		cmd, err := commands.NewCancelOrderCommand(orderID)
		if err != nil {
			return err
		}
		return s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// GenerateDeliveries handles POST /api/v1/orders/:order_id/generate_deliveries.
func (s *Server) GenerateDeliveries(ctx echo.Context) error {
	return s.transition(ctx, func(orderID kernel.UUID) error {
		cmd, err := commands.NewGenerateDeliveriesCommand(orderID)
		if err != nil {
			return err
		}
		return s.generateDeliveriesHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// ExportDraftOrder handles GET /api/v1/orders/:order_id/export_draft_order.
// Responds with the rendered spreadsheet as an attachment.
func (s *Server) ExportDraftOrder(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewExportDraftOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.exportDraftOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%s", result.FileName))
	return ctx.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", result.Content)
}

// UpsertOrderItem handles PUT /api/v1/orders/:order_id/items.
func (s *Server) UpsertOrderItem(ctx echo.Context) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req UpsertOrderItemRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	offerID, err := kernel.UUIDFromString(req.OfferID)
	if err != nil {
		return badRequest(ctx, "Invalid offer_id: "+err.Error())
	}
	itemID, err := optionalUUID(req.ItemID)
	if err != nil {
		return badRequest(ctx, "Invalid item_id: "+err.Error())
	}
	packageID, err := optionalUUID(req.PackageID)
	if err != nil {
		return badRequest(ctx, "Invalid package_id: "+err.Error())
	}

	cmd, err := commands.NewUpsertOrderItemCommand(
		orderID, itemID, offerID, packageID, req.Amount, req.Price, req.VAT,
	)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.upsertOrderItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AddBatch handles POST /api/v1/batches.
func (s *Server) AddBatch(ctx echo.Context) error {
	var req AddBatchRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	productID, err := kernel.UUIDFromString(req.ProductID)
	if err != nil {
		return badRequest(ctx, "Invalid product_id: "+err.Error())
	}
	organizationID, err := kernel.UUIDFromString(req.OrganizationID)
	if err != nil {
		return badRequest(ctx, "Invalid organization_id: "+err.Error())
	}
	storageID, err := kernel.UUIDFromString(req.StorageID)
	if err != nil {
		return badRequest(ctx, "Invalid storage_id: "+err.Error())
	}

	cmd, err := commands.NewAddBatchCommand(
		productID, organizationID, storageID,
		req.Amount, req.EstimatePrice,
		req.ProductCreatedAt, req.ProductExpiredAt,
		req.GTDCode,
	)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.addBatchHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// transition runs a status transition command and maps its outcome.
func (s *Server) transition(ctx echo.Context, run func(orderID kernel.UUID) error) error {
	orderID, err := pathOrderID(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = run(orderID); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func pathOrderID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("order_id"))
}

func optionalUUID(raw *string) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// domainError maps application errors onto HTTP status codes.
func domainError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, order.ErrTransitionNotAllowed),
		errors.Is(err, order.ErrOrderIsNotCancelable),
		errors.Is(err, order.ErrOrderIsNotEditable),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}
