// Package http exposes the fulfillment API over echo. Requester identity
// comes from the X-User-Id and X-User-Role headers set by the gateway;
// authentication itself happens upstream.
package http

import (
	"errors"
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler            commands.CreateOrderCommandHandler
	updateOrderStatusHandler      commands.UpdateOrderStatusCommandHandler
	updatePaymentStatusHandler    commands.UpdatePaymentStatusCommandHandler
	cancelOrderHandler            commands.CancelOrderCommandHandler
	createTrackingHandler         commands.CreateTrackingCommandHandler
	updateTrackingLocationHandler commands.UpdateTrackingLocationCommandHandler
	recordDeliveryAttemptHandler  commands.RecordDeliveryAttemptCommandHandler
	assignVehicleHandler          commands.AssignVehicleCommandHandler
	registerVehicleHandler        commands.RegisterVehicleCommandHandler

	// Query handlers
	getTrackingHandler          queries.GetTrackingQueryHandler
	getBuyerOrdersHandler       queries.GetBuyerOrdersQueryHandler
	getAvailableVehiclesHandler queries.GetAvailableVehiclesQueryHandler

	routePlanner ports.RoutePlanner
}

// NewServer creates an HTTP server with the required command and query
// handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	updatePaymentStatusHandler commands.UpdatePaymentStatusCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	createTrackingHandler commands.CreateTrackingCommandHandler,
	updateTrackingLocationHandler commands.UpdateTrackingLocationCommandHandler,
	recordDeliveryAttemptHandler commands.RecordDeliveryAttemptCommandHandler,
	assignVehicleHandler commands.AssignVehicleCommandHandler,
	registerVehicleHandler commands.RegisterVehicleCommandHandler,
	getTrackingHandler queries.GetTrackingQueryHandler,
	getBuyerOrdersHandler queries.GetBuyerOrdersQueryHandler,
	getAvailableVehiclesHandler queries.GetAvailableVehiclesQueryHandler,
	routePlanner ports.RoutePlanner,
) *Server {
	return &Server{
		createOrderHandler:            createOrderHandler,
		updateOrderStatusHandler:      updateOrderStatusHandler,
		updatePaymentStatusHandler:    updatePaymentStatusHandler,
		cancelOrderHandler:            cancelOrderHandler,
		createTrackingHandler:         createTrackingHandler,
		updateTrackingLocationHandler: updateTrackingLocationHandler,
		recordDeliveryAttemptHandler:  recordDeliveryAttemptHandler,
		assignVehicleHandler:          assignVehicleHandler,
		registerVehicleHandler:        registerVehicleHandler,
		getTrackingHandler:            getTrackingHandler,
		getBuyerOrdersHandler:         getBuyerOrdersHandler,
		getAvailableVehiclesHandler:   getAvailableVehiclesHandler,
		routePlanner:                  routePlanner,
	}
}

// RegisterRoutes mounts every API route on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetBuyerOrders)
	api.POST("/orders/:id/status", s.UpdateOrderStatus)
	api.POST("/orders/:id/payment", s.UpdatePaymentStatus)
	api.POST("/orders/:id/cancel", s.CancelOrder)

	api.POST("/trackings", s.CreateTracking)
	api.GET("/trackings/:number", s.GetTracking)
	api.POST("/trackings/:number/location", s.UpdateTrackingLocation)
	api.POST("/trackings/:number/attempts", s.RecordDeliveryAttempt)
	api.POST("/trackings/:number/vehicle", s.AssignVehicle)

	api.POST("/routes/estimate", s.EstimateRoute)
	api.POST("/routes/optimize", s.OptimizeRoute)

	api.POST("/vehicles", s.RegisterVehicle)
	api.GET("/vehicles/available", s.GetAvailableVehicles)

	e.GET("/health", s.Health)
}

// ErrorResponse is the error body returned by every route.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (s *Server) respondError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrAuthorization):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrConflict),
		errors.Is(err, errs.ErrResourceExhausted):
		status = http.StatusConflict
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}

func (s *Server) bindError(ctx echo.Context) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: "invalid request body",
	})
}

func requesterFrom(ctx echo.Context) (commands.Requester, error) {
	id, err := kernel.UUIDFromString(ctx.Request().Header.Get("X-User-Id"))
	if err != nil {
		return commands.Requester{}, errs.NewValueIsRequiredError("X-User-Id header")
	}

	return commands.NewRequester(id, ctx.Request().Header.Get("X-User-Role"))
}

type geoPointPayload struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req struct {
		BuyerID         string `json:"buyer_id"`
		FarmerID        string `json:"farmer_id"`
		ProductID       string `json:"product_id"`
		Quantity        int    `json:"quantity"`
		DeliveryAddress string `json:"delivery_address"`
	}
	if err := ctx.Bind(&req); err != nil {
		return s.bindError(ctx)
	}

	requester, err := requesterFrom(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	buyerID, err := kernel.UUIDFromString(req.BuyerID)
	if err != nil {
		return s.respondError(ctx, err)
	}
	farmerID, err := kernel.UUIDFromString(req.FarmerID)
	if err != nil {
		return s.respondError(ctx, err)
	}
	productID, err := kernel.UUIDFromString(req.ProductID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, requester, buyerID, farmerID, productID, req.Quantity, req.DeliveryAddress)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": orderID.String()})
}

// GetBuyerOrders handles GET /api/v1/orders. It lists the requesting buyer's
// orders, newest first.
func (s *Server) GetBuyerOrders(ctx echo.Context) error {
	requester, err := requesterFrom(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	query, err := queries.NewGetBuyerOrdersQuery(requester.ID())
	if err != nil {
		return s.respondError(ctx, err)
	}

	rows, err := s.getBuyerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	type orderRow struct {
		ID              string    `json:"id"`
		ProductID       string    `json:"product_id"`
		Quantity        int       `json:"quantity"`
		TotalAmount     float64   `json:"total_amount"`
		Status          string    `json:"status"`
		PaymentStatus   string    `json:"payment_status"`
		DeliveryAddress string    `json:"delivery_address"`
		CreatedAt       time.Time `json:"created_at"`
	}

	response := make([]orderRow, len(rows))
	for i, row := range rows {
		response[i] = orderRow{
			ID:              row.ID.String(),
			ProductID:       row.ProductID.String(),
			Quantity:        row.Quantity,
			TotalAmount:     row.TotalAmount,
			Status:          row.Status,
			PaymentStatus:   row.PaymentStatus,
			DeliveryAddress: row.DeliveryAddress,
			CreatedAt:       row.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// UpdateOrderStatus handles POST /api/v1/orders/:id/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	var req struct {
		Status string `json:"status"`
		Note   string `json:"note"`
	}
	if err := ctx.Bind(&req); err != nil {
		return s.bindError(ctx)
	}

	requester, err := requesterFrom(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, requester, req.Status, req.Note)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdatePaymentStatus handles POST /api/v1/orders/:id/payment.
func (s *Server) UpdatePaymentStatus(ctx echo.Context) error {
	var req struct {
		Status    string `json:"status"`
		Method    string `json:"method"`
		Reference string `json:"reference"`
	}
	if err := ctx.Bind(&req); err != nil {
		return s.bindError(ctx)
	}

	requester, err := requesterFrom(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewUpdatePaymentStatusCommand(
		orderID, requester, req.Status, req.Method, req.Reference)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err := s.updatePaymentStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	var req struct {
		Reason string `json:"reason"`
	}
	if err := ctx.Bind(&req); err != nil {
		return s.bindError(ctx)
	}

	requester, err := requesterFrom(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, requester, req.Reason)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateTracking handles POST /api/v1/trackings. It dispatches an order:
// plans the route, prices the delivery, claims a vehicle, and returns the
// tracking number.
func (s *Server) CreateTracking(ctx echo.Context) error {
	var req struct {
		OrderID     string          `json:"order_id"`
		Pickup      geoPointPayload `json:"pickup"`
		Delivery    geoPointPayload `json:"delivery"`
		WeightKg    float64         `json:"weight_kg"`
		Priority    string          `json:"priority"`
		VehicleType string          `json:"vehicle_type"`
	}
	if err := ctx.Bind(&req); err != nil {
		return s.bindError(ctx)
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	pickup, err := kernel.NewGeoPoint(req.Pickup.Lat, req.Pickup.Lng)
	if err != nil {
		return s.respondError(ctx, err)
	}
	delivery, err := kernel.NewGeoPoint(req.Delivery.Lat, req.Delivery.Lng)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewCreateTrackingCommand(
		kernel.NewUUID(), orderID, pickup, delivery, req.WeightKg, req.Priority, req.VehicleType)
	if err != nil {
		return s.respondError(ctx, err)
	}

	trackingNumber, err := s.createTrackingHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"tracking_number": trackingNumber})
}

// GetTracking handles GET /api/v1/trackings/:number.
func (s *Server) GetTracking(ctx echo.Context) error {
	query, err := queries.NewGetTrackingQuery(ctx.Param("number"))
	if err != nil {
		return s.respondError(ctx, err)
	}

	result, err := s.getTrackingHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, struct {
		TrackingNumber    string     `json:"tracking_number"`
		OrderID           string     `json:"order_id"`
		Status            string     `json:"status"`
		CurrentLat        float64    `json:"current_lat"`
		CurrentLng        float64    `json:"current_lng"`
		CurrentAddress    string     `json:"current_address"`
		EstimatedDelivery *time.Time `json:"estimated_delivery,omitempty"`
		ActualDelivery    *time.Time `json:"actual_delivery,omitempty"`
	}{
		TrackingNumber:    result.TrackingNumber,
		OrderID:           result.OrderID.String(),
		Status:            result.Status,
		CurrentLat:        result.CurrentLat,
		CurrentLng:        result.CurrentLng,
		CurrentAddress:    result.CurrentAddress,
		EstimatedDelivery: result.EstimatedDelivery,
		ActualDelivery:    result.ActualDelivery,
	})
}

// UpdateTrackingLocation handles POST /api/v1/trackings/:number/location.
func (s *Server) UpdateTrackingLocation(ctx echo.Context) error {
	var req struct {
		Lat     float64 `json:"lat"`
		Lng     float64 `json:"lng"`
		Address string  `json:"address"`
		Status  string  `json:"status"`
		Notes   string  `json:"notes"`
	}
	if err := ctx.Bind(&req); err != nil {
		return s.bindError(ctx)
	}

	location, err := kernel.NewGeoPoint(req.Lat, req.Lng)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewUpdateTrackingLocationCommand(
		ctx.Param("number"), location, req.Address, req.Status, req.Notes)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err := s.updateTrackingLocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RecordDeliveryAttempt handles POST /api/v1/trackings/:number/attempts.
func (s *Server) RecordDeliveryAttempt(ctx echo.Context) error {
	var req struct {
		Outcome     string     `json:"outcome"`
		Reason      string     `json:"reason"`
		NextAttempt *time.Time `json:"next_attempt"`
	}
	if err := ctx.Bind(&req); err != nil {
		return s.bindError(ctx)
	}

	cmd, err := commands.NewRecordDeliveryAttemptCommand(
		ctx.Param("number"), req.Outcome, req.Reason, req.NextAttempt)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err := s.recordDeliveryAttemptHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignVehicle handles POST /api/v1/trackings/:number/vehicle.
func (s *Server) AssignVehicle(ctx echo.Context) error {
	var req struct {
		VehicleID string `json:"vehicle_id"`
	}
	if err := ctx.Bind(&req); err != nil {
		return s.bindError(ctx)
	}

	vehicleID, err := kernel.UUIDFromString(req.VehicleID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewAssignVehicleCommand(ctx.Param("number"), vehicleID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err := s.assignVehicleHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// EstimateRoute handles POST /api/v1/routes/estimate.
func (s *Server) EstimateRoute(ctx echo.Context) error {
	var req struct {
		Pickup    geoPointPayload   `json:"pickup"`
		Delivery  geoPointPayload   `json:"delivery"`
		Waypoints []geoPointPayload `json:"waypoints"`
	}
	if err := ctx.Bind(&req); err != nil {
		return s.bindError(ctx)
	}

	pickup, err := kernel.NewGeoPoint(req.Pickup.Lat, req.Pickup.Lng)
	if err != nil {
		return s.respondError(ctx, err)
	}
	delivery, err := kernel.NewGeoPoint(req.Delivery.Lat, req.Delivery.Lng)
	if err != nil {
		return s.respondError(ctx, err)
	}

	waypoints := make([]kernel.GeoPoint, 0, len(req.Waypoints))
	for _, wp := range req.Waypoints {
		point, pointErr := kernel.NewGeoPoint(wp.Lat, wp.Lng)
		if pointErr != nil {
			return s.respondError(ctx, pointErr)
		}
		waypoints = append(waypoints, point)
	}

	estimate, err := s.routePlanner.Estimate(ctx.Request().Context(), pickup, delivery, waypoints)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, struct {
		DistanceKm  float64 `json:"distance_km"`
		DurationMin float64 `json:"duration_min"`
	}{
		DistanceKm:  estimate.DistanceKm,
		DurationMin: estimate.DurationMin,
	})
}

// OptimizeRoute handles POST /api/v1/routes/optimize.
func (s *Server) OptimizeRoute(ctx echo.Context) error {
	var req struct {
		Depot geoPointPayload   `json:"depot"`
		Stops []geoPointPayload `json:"stops"`
	}
	if err := ctx.Bind(&req); err != nil {
		return s.bindError(ctx)
	}

	depot, err := kernel.NewGeoPoint(req.Depot.Lat, req.Depot.Lng)
	if err != nil {
		return s.respondError(ctx, err)
	}

	stops := make([]kernel.GeoPoint, 0, len(req.Stops))
	for _, stop := range req.Stops {
		point, pointErr := kernel.NewGeoPoint(stop.Lat, stop.Lng)
		if pointErr != nil {
			return s.respondError(ctx, pointErr)
		}
		stops = append(stops, point)
	}

	ordered, err := s.routePlanner.OptimizeMultiStop(ctx.Request().Context(), depot, stops)
	if err != nil {
		return s.respondError(ctx, err)
	}

	response := make([]geoPointPayload, len(ordered))
	for i, stop := range ordered {
		response[i] = geoPointPayload{Lat: stop.Lat(), Lng: stop.Lng()}
	}

	return ctx.JSON(http.StatusOK, map[string]any{"stops": response})
}

// RegisterVehicle handles POST /api/v1/vehicles. Admin only.
func (s *Server) RegisterVehicle(ctx echo.Context) error {
	var req struct {
		VehicleType  string  `json:"vehicle_type"`
		Registration string  `json:"registration"`
		CapacityKg   float64 `json:"capacity_kg"`
	}
	if err := ctx.Bind(&req); err != nil {
		return s.bindError(ctx)
	}

	requester, err := requesterFrom(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	vehicleID := kernel.NewUUID()
	cmd, err := commands.NewRegisterVehicleCommand(
		vehicleID, requester, req.VehicleType, req.Registration, req.CapacityKg)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err := s.registerVehicleHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": vehicleID.String()})
}

// GetAvailableVehicles handles GET /api/v1/vehicles/available.
func (s *Server) GetAvailableVehicles(ctx echo.Context) error {
	rows, err := s.getAvailableVehiclesHandler.Handle(
		ctx.Request().Context(), queries.NewGetAvailableVehiclesQuery())
	if err != nil {
		return s.respondError(ctx, err)
	}

	type vehicleRow struct {
		ID           string  `json:"id"`
		VehicleType  string  `json:"vehicle_type"`
		Registration string  `json:"registration"`
		CapacityKg   float64 `json:"capacity_kg"`
	}

	response := make([]vehicleRow, len(rows))
	for i, row := range rows {
		response[i] = vehicleRow{
			ID:           row.ID.String(),
			VehicleType:  row.VehicleType,
			Registration: row.Registration,
			CapacityKg:   row.CapacityKg,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
