package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/ovenfresh/bakery-platform/internal/api/middleware"
	"github.com/ovenfresh/bakery-platform/internal/errors"
	"github.com/ovenfresh/bakery-platform/internal/export"
	"github.com/ovenfresh/bakery-platform/internal/models"
	service "github.com/ovenfresh/bakery-platform/internal/services"
	"github.com/ovenfresh/bakery-platform/internal/utils"
	"github.com/ovenfresh/bakery-platform/internal/utils/response"
)

// AdminHandler serves the back-office dashboard: order management, the order
// export and the customer directory.
type AdminHandler struct {
	orderService *service.OrderService
	userService  *service.UserService
	validator    *validator.Validate
}

func NewAdminHandler(orderService *service.OrderService, userService *service.UserService) *AdminHandler {
	return &AdminHandler{
		orderService: orderService,
		userService:  userService,
		validator:    validator.New(),
	}
}

func parseOrderFilter(r *http.Request) (*models.OrderFilter, error) {

	page, pageSize := utils.ParsePagination(r)

	filter := &models.OrderFilter{Page: page, PageSize: pageSize}

	if raw := r.URL.Query().Get("status"); raw != "" {
		status := models.OrderStatus(raw)

		switch status {
		case models.OrderStatusPending, models.OrderStatusAccepted, models.OrderStatusRejected, models.OrderStatusCompleted:
			filter.Status = &status
		default:
			return nil, errors.BadRequestError("Unknown order status: " + raw)
		}
	}

	return filter, nil
}

func (h *AdminHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		filter, err := parseOrderFilter(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		orders, total, err := h.orderService.ListOrders(r.Context(), filter)
		if err != nil {
			response.Error(w, err)
			return
		}

		if orders == nil {
			orders = []models.Order{}
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     orders,
			Total:    total,
			Page:     filter.Page,
			PageSize: filter.PageSize,
		})
	}
}

func (h *AdminHandler) UpdateOrderStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateOrderStatusRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		order, err := h.orderService.UpdateStatus(r.Context(), id, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		middleware.LoggerFromContext(r.Context()).Info("Order status updated",
			slog.String("orderId", id.String()), slog.String("status", string(order.Status)))
		response.Success(w, http.StatusOK, order)
	}
}

// ExportOrders streams every matching order as an xlsx download. Pagination is
// deliberately ignored so the sheet holds the complete result set.
func (h *AdminHandler) ExportOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		filter, err := parseOrderFilter(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		filter.Page = 1
		filter.PageSize = exportPageSize

		var all []models.Order

		for {
			orders, total, err := h.orderService.ListOrders(r.Context(), filter)
			if err != nil {
				response.Error(w, err)
				return
			}

			all = append(all, orders...)

			if len(all) >= total || len(orders) == 0 {
				break
			}

			filter.Page++
		}

		w.Header().Set("Content-Disposition", "attachment; filename=orders.xlsx")
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

		if err := export.WriteOrdersXLSX(w, all); err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Order export failed", slog.Any("error", err))
		}
	}
}

const exportPageSize = 100

// GetCustomer returns one customer together with their recent orders.
func (h *AdminHandler) GetCustomer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		customer, err := h.userService.GetUserByID(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		page, pageSize := utils.ParsePagination(r)

		orders, total, err := h.orderService.ListOrdersByCustomer(r.Context(), id, page, pageSize)
		if err != nil {
			response.Error(w, err)
			return
		}

		if orders == nil {
			orders = []models.Order{}
		}

		response.Success(w, http.StatusOK, map[string]any{
			"customer": customer,
			"orders": models.PaginatedResponse{
				Data:     orders,
				Total:    total,
				Page:     page,
				PageSize: pageSize,
			},
		})
	}
}

func (h *AdminHandler) ListCustomers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		page, pageSize := utils.ParsePagination(r)

		customers, total, err := h.userService.ListCustomers(r.Context(), page, pageSize)
		if err != nil {
			response.Error(w, err)
			return
		}

		if customers == nil {
			customers = []models.User{}
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     customers,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}
