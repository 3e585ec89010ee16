package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/ovenfresh/bakery-platform/internal/api/middleware"
	"github.com/ovenfresh/bakery-platform/internal/errors"
	"github.com/ovenfresh/bakery-platform/internal/models"
	service "github.com/ovenfresh/bakery-platform/internal/services"
	"github.com/ovenfresh/bakery-platform/internal/uploads"
	"github.com/ovenfresh/bakery-platform/internal/utils"
	"github.com/ovenfresh/bakery-platform/internal/utils/response"
)

type OrderHandler struct {
	orderService *service.OrderService
	uploadStore  *uploads.Store
	validator    *validator.Validate
}

func NewOrderHandler(orderService *service.OrderService, uploadStore *uploads.Store) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		uploadStore:  uploadStore,
		validator:    validator.New(),
	}
}

// Checkout reads a multipart form: repeated "cart_item_ids" fields, a
// "phone_number", an RFC 3339 "delivery_time" and the "payment_proof" image.
// Everything is validated before the order service runs.
func (h *OrderHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		if err := r.ParseMultipartForm(uploads.MaxImageSize); err != nil {
			response.Error(w, errors.BadRequestError("Invalid multipart form").WithError(err))
			return
		}

		req := &models.CheckoutRequest{
			PhoneNumber: r.FormValue("phone_number"),
		}

		for _, raw := range r.Form["cart_item_ids"] {
			id, err := uuid.Parse(raw)
			if err != nil {
				response.Error(w, errors.BadRequestError("Invalid cart item id: "+raw))
				return
			}

			req.CartItemIDs = append(req.CartItemIDs, id)
		}

		deliveryTime, err := time.Parse(time.RFC3339, r.FormValue("delivery_time"))
		if err != nil {
			response.Error(w, errors.BadRequestError("delivery_time must be RFC 3339"))
			return
		}

		req.DeliveryTime = deliveryTime

		if err := h.validator.Struct(req); err != nil {
			if errs, ok := err.(validator.ValidationErrors); ok {
				response.ValidationError(w, errs)
				return
			}

			response.Error(w, errors.ValidationError("Invalid checkout data").WithError(err))
			return
		}

		file, header, err := r.FormFile("payment_proof")
		if err != nil {
			response.Error(w, errors.BadRequestError("Payment proof is required"))
			return
		}
		defer file.Close()

		proofURL, err := h.uploadStore.SaveImage(file, header)
		if err != nil {
			response.Error(w, err)
			return
		}

		order, err := h.orderService.Checkout(r.Context(), claims.UserID, req, proofURL)
		if err != nil {
			response.Error(w, err)
			return
		}

		middleware.LoggerFromContext(r.Context()).Info("Order placed",
			slog.String("orderId", order.ID.String()), slog.Float64("total", order.TotalPrice))
		response.Success(w, http.StatusCreated, order)
	}
}

func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		order, err := h.orderService.GetOrder(r.Context(), id, claims)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

func (h *OrderHandler) ListMyOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		page, pageSize := utils.ParsePagination(r)

		orders, total, err := h.orderService.ListOrdersByCustomer(r.Context(), claims.UserID, page, pageSize)
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
			Page:     page,
			PageSize: pageSize,
		})
	}
}
