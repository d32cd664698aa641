package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/core/domain/model/food"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/telemetry"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Use case ports of the Server. The command and query handlers satisfy them.
type (
	PlaceOrderHandler interface {
		Handle(ctx context.Context, cmd commands.PlaceOrderCommand) (*order.Order, error)
	}
	CompleteOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CompleteOrderCommand) (*order.Order, error)
	}
	CancelOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CancelOrderCommand) (*order.Order, error)
	}
	CreateFoodHandler interface {
		Handle(ctx context.Context, cmd commands.CreateFoodCommand) (*food.Food, error)
	}
	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error)
	}
	ListOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderView, error)
	}
	ListFoodsHandler interface {
		Handle(ctx context.Context, query queries.ListFoodsQuery) ([]queries.FoodView, error)
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	PlaceOrder    PlaceOrderHandler
	CompleteOrder CompleteOrderHandler
	CancelOrder   CancelOrderHandler
	GetOrder      GetOrderHandler
	ListOrders    ListOrdersHandler
	CreateFood    CreateFoodHandler
	ListFoods     ListFoodsHandler
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	handlers Handlers
	metrics  *telemetry.OrderMetrics
	logger   *slog.Logger
}

// NewServer creates the API server. metrics may be nil.
func NewServer(handlers Handlers, metrics *telemetry.OrderMetrics, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		metrics:  metrics,
		logger:   logger.With("component", "http_server"),
	}
}

// RegisterRoutes mounts the API on g, normally the /api/v1 group.
func (s *Server) RegisterRoutes(g *echo.Group) {
	g.POST("/orders", s.PlaceOrder)
	g.GET("/orders", s.ListOrders)
	g.GET("/orders/:id", s.GetOrder)
	g.POST("/orders/:id/complete", s.CompleteOrder)
	g.POST("/orders/:id/cancel", s.CancelOrder)
	g.GET("/foods", s.ListFoods)
	g.POST("/foods", s.CreateFood)
}

// PlaceOrder handles POST /api/v1/orders.
func (s *Server) PlaceOrder(c echo.Context) error {
	var body NewOrder
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if user, ok := AuthenticatedUser(c); ok {
		if body.UserID == "" {
			body.UserID = user.String()
		} else if otherUser(body.UserID, user) {
			return forbidden(c, "userId does not match the authenticated user")
		}
	}

	cmd, err := commands.NewPlaceOrderCommand(
		kernel.NewUUID(),
		body.FoodID,
		body.UserID,
		body.ExternalOrderID,
		body.UserAddressID,
		body.PaymentMode,
	)
	if err != nil {
		return s.errorResponse(c, err)
	}

	placed, err := s.handlers.PlaceOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.errorResponse(c, err)
	}
	s.metrics.Placed(c.Request().Context())

	return c.JSON(http.StatusCreated, orderFromDomain(placed))
}

// CompleteOrder handles POST /api/v1/orders/:id/complete.
func (s *Server) CompleteOrder(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return s.errorResponse(c, err)
	}

	cmd, err := commands.NewCompleteOrderCommand(orderID)
	if err != nil {
		return s.errorResponse(c, err)
	}

	completed, err := s.handlers.CompleteOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.errorResponse(c, err)
	}
	s.metrics.Transitioned(c.Request().Context(), completed.Status().String())

	return c.JSON(http.StatusOK, orderFromDomain(completed))
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return s.errorResponse(c, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return s.errorResponse(c, err)
	}

	canceled, err := s.handlers.CancelOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.errorResponse(c, err)
	}
	s.metrics.Transitioned(c.Request().Context(), canceled.Status().String())

	return c.JSON(http.StatusOK, orderFromDomain(canceled))
}

// GetOrder handles GET /api/v1/orders/:id. Authenticated users only see their
// own orders.
func (s *Server) GetOrder(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return s.errorResponse(c, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.errorResponse(c, err)
	}

	view, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.errorResponse(c, err)
	}

	if user, ok := AuthenticatedUser(c); ok && !user.IsEqual(view.UserID) {
		return forbidden(c, "Order belongs to another user")
	}

	return c.JSON(http.StatusOK, orderFromView(view))
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(c echo.Context) error {
	var params ListOrdersParams
	if err := runtime.BindQueryParameter("form", true, false, "userId", c.QueryParams(), &params.UserID); err != nil {
		return badRequest(c, "Invalid format for parameter userId: "+err.Error())
	}
	if err := runtime.BindQueryParameter("form", true, false, "status", c.QueryParams(), &params.Status); err != nil {
		return badRequest(c, "Invalid format for parameter status: "+err.Error())
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", c.QueryParams(), &params.Limit); err != nil {
		return badRequest(c, "Invalid format for parameter limit: "+err.Error())
	}

	var userID kernel.UUID
	if params.UserID != nil {
		parsed, err := kernel.UUIDFromBytes(params.UserID[:])
		if err != nil {
			return s.errorResponse(c, err)
		}
		userID = parsed
	}
	if user, ok := AuthenticatedUser(c); ok {
		if params.UserID != nil && !user.IsEqual(userID) {
			return forbidden(c, "userId does not match the authenticated user")
		}
		userID = user
	}

	var status string
	if params.Status != nil {
		status = *params.Status
	}
	var limit int
	if params.Limit != nil {
		limit = *params.Limit
	}

	query, err := queries.NewListOrdersQuery(userID, status, limit)
	if err != nil {
		return s.errorResponse(c, err)
	}

	views, err := s.handlers.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.errorResponse(c, err)
	}

	response := make([]Order, len(views))
	for i, view := range views {
		response[i] = orderFromView(view)
	}
	return c.JSON(http.StatusOK, response)
}

// ListFoods handles GET /api/v1/foods.
func (s *Server) ListFoods(c echo.Context) error {
	views, err := s.handlers.ListFoods.Handle(c.Request().Context(), queries.NewListFoodsQuery())
	if err != nil {
		return s.errorResponse(c, err)
	}

	response := make([]Food, len(views))
	for i, view := range views {
		response[i] = foodFromView(view)
	}
	return c.JSON(http.StatusOK, response)
}

// CreateFood handles POST /api/v1/foods.
func (s *Server) CreateFood(c echo.Context) error {
	var body NewFood
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewCreateFoodCommand(
		kernel.NewUUID(),
		body.Name,
		body.Description,
		body.Price,
		body.Image,
		body.Category,
	)
	if err != nil {
		return s.errorResponse(c, err)
	}

	created, err := s.handlers.CreateFood.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.errorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, foodFromDomain(created))
}

// errorResponse maps use case errors onto status codes. Store failures and
// anything unexpected are logged and answered with an opaque 500.
func (s *Server) errorResponse(c echo.Context, err error) error {
	switch {
	case errs.IsValidation(err):
		return badRequest(c, err.Error())
	case errors.Is(err, errs.ErrObjectNotFound):
		s.logCause(c, err)
		return c.JSON(http.StatusNotFound, Error{Code: http.StatusNotFound, Message: notFoundMessage(err)})
	case errors.Is(err, errs.ErrInvalidTransition):
		s.logCause(c, err)
		return c.JSON(http.StatusConflict, Error{Code: http.StatusConflict, Message: transitionMessage(err)})
	}

	s.logger.ErrorContext(c.Request().Context(), "Request failed",
		"method", c.Request().Method,
		"path", c.Path(),
		"error", err,
	)
	return c.JSON(http.StatusInternalServerError, Error{
		Code:    http.StatusInternalServerError,
		Message: "Internal server error",
	})
}

// notFoundMessage names the missing object. The cause chain is left out: it
// may come from the store.
func notFoundMessage(err error) string {
	var notFound *errs.ObjectNotFoundError
	if errors.As(err, &notFound) {
		return errs.NewObjectNotFoundError(notFound.ParamName, notFound.ID).Error()
	}
	return errs.ErrObjectNotFound.Error()
}

func transitionMessage(err error) string {
	var transition *errs.InvalidTransitionError
	if errors.As(err, &transition) {
		return errs.NewInvalidTransitionError(transition.Action, transition.From).Error()
	}
	return errs.ErrInvalidTransition.Error()
}

func (s *Server) logCause(c echo.Context, err error) {
	s.logger.DebugContext(c.Request().Context(), "Request rejected",
		"method", c.Request().Method,
		"path", c.Path(),
		"error", err,
	)
}

func orderIDParam(c echo.Context) (kernel.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return kernel.UUIDFromBytes(id[:])
}

// otherUser reports whether raw names a user other than user. A malformed raw is
// left to command validation.
func otherUser(raw string, user kernel.UUID) bool {
	id, err := kernel.UUIDFromString(raw)
	return err == nil && !id.IsEqual(user)
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}

func forbidden(c echo.Context, message string) error {
	return c.JSON(http.StatusForbidden, Error{Code: http.StatusForbidden, Message: message})
}
