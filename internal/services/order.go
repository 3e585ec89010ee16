package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/ovenfresh/bakery-platform/internal/api/middleware"
	"github.com/ovenfresh/bakery-platform/internal/errors"
	"github.com/ovenfresh/bakery-platform/internal/models"
	"github.com/ovenfresh/bakery-platform/internal/pricing"
	repository "github.com/ovenfresh/bakery-platform/internal/repositories"
)

// EmailSender notifies a customer that an order was decided. Implementations
// must be safe to call with a best-effort contract; delivery failures never
// fail the order update.
type EmailSender interface {
	SendOrderDecision(ctx context.Context, toEmail, toName string, order *models.Order) error
}

type OrderService struct {
	repo      repository.OrderRepository
	cartRepo  repository.CartRepository
	userRepo  repository.UserRepository
	email     EmailSender
	sanitizer *bluemonday.Policy
}

func NewOrderService(repo repository.OrderRepository, cartRepo repository.CartRepository, userRepo repository.UserRepository, email EmailSender) *OrderService {
	return &OrderService{
		repo:      repo,
		cartRepo:  cartRepo,
		userRepo:  userRepo,
		email:     email,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Checkout snapshots the selected cart lines into a pending order. Prices are
// resolved server-side at this moment and frozen into the order items; the
// upfront amount is always the fixed share of the total.
func (s *OrderService) Checkout(ctx context.Context, customerID uuid.UUID, req *models.CheckoutRequest, paymentProof string) (*models.Order, error) {

	if paymentProof == "" {
		return nil, errors.BadRequestError("Payment proof is required")
	}

	items, err := s.cartRepo.ListByIDs(ctx, customerID, req.CartItemIDs)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load cart items").WithError(err)
	}

	if len(items) == 0 {
		return nil, errors.BadRequestError("No orderable cart items selected")
	}

	order := &models.Order{
		ID:           uuid.New(),
		CustomerID:   customerID,
		Status:       models.OrderStatusPending,
		PhoneNumber:  req.PhoneNumber,
		DeliveryTime: req.DeliveryTime,
		PaymentProof: paymentProof,
	}

	lines := make([]pricing.Line, 0, len(items))
	cartItemIDs := make([]uuid.UUID, 0, len(items))

	for i := range items {
		item := &items[i]
		unitPrice := pricing.ResolveUnitPrice(item, item.Subcategory)

		orderItem := models.OrderItem{
			ID:            uuid.New(),
			OrderID:       order.ID,
			ProductID:     item.ProductID,
			SubcategoryID: item.SubcategoryID,
			Quantity:      item.Quantity,
			Kilo:          item.Kilo,
			Pieces:        item.Pieces,
			CustomText:    item.CustomText,
			UnitPrice:     unitPrice,
			LineTotal:     unitPrice * float64(item.Quantity),
		}

		if item.Product != nil {
			orderItem.ProductName = item.Product.Name
		}

		if item.Subcategory != nil {
			orderItem.SubcategoryName = item.Subcategory.Name
		}

		order.Items = append(order.Items, orderItem)
		lines = append(lines, pricing.Line{UnitPrice: unitPrice, Quantity: item.Quantity})
		cartItemIDs = append(cartItemIDs, item.ID)
	}

	breakdown := pricing.Totals(lines)

	// A zero total means every selected line failed to price; accepting it
	// would create an order nobody can pay for.
	if breakdown.Total <= 0 {
		return nil, errors.BadRequestError("Selected items have no price. Contact the bakery before ordering.")
	}

	order.TotalPrice = breakdown.Total
	order.UpfrontPaid = breakdown.Upfront

	if err := s.repo.CreateOrder(ctx, order, cartItemIDs); err != nil {
		return nil, errors.DatabaseError("Failed to create order").WithError(err)
	}

	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID, claims *models.Claims) (*models.Order, error) {

	order, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Order not found").WithError(err)
	}

	if claims.Role != models.RoleAdmin && order.CustomerID != claims.UserID {
		return nil, errors.ForbiddenError("Order belongs to another customer")
	}

	return order, nil
}

func (s *OrderService) ListOrdersByCustomer(ctx context.Context, customerID uuid.UUID, page, size int) ([]models.Order, int, error) {

	orders, total, err := s.repo.ListOrdersByCustomer(ctx, customerID, page, size)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list orders").WithError(err)
	}

	return orders, total, nil
}

func (s *OrderService) ListOrders(ctx context.Context, filter *models.OrderFilter) ([]models.Order, int, error) {

	orders, total, err := s.repo.ListOrders(ctx, filter)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list orders").WithError(err)
	}

	return orders, total, nil
}

// Orders move pending -> accepted -> completed, or pending -> rejected.
func validStatusTransition(from, to models.OrderStatus) bool {
	switch from {
	case models.OrderStatusPending:
		return to == models.OrderStatusAccepted || to == models.OrderStatusRejected
	case models.OrderStatusAccepted:
		return to == models.OrderStatusCompleted
	default:
		return false
	}
}

func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, req *models.UpdateOrderStatusRequest) (*models.Order, error) {

	order, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Order not found").WithError(err)
	}

	if !validStatusTransition(order.Status, req.Status) {
		return nil, errors.BadRequestError("Cannot move order from " + string(order.Status) + " to " + string(req.Status))
	}

	rejectionComment := ""
	if req.Status == models.OrderStatusRejected {
		rejectionComment = s.sanitizer.Sanitize(req.RejectionComment)
	}

	if err := s.repo.UpdateOrderStatus(ctx, id, req.Status, rejectionComment); err != nil {
		return nil, errors.DatabaseError("Failed to update order status").WithError(err)
	}

	order.Status = req.Status
	order.RejectionComment = rejectionComment

	s.notifyDecision(ctx, order)

	return order, nil
}

// notifyDecision emails the customer about an accept or reject. Failures are
// logged and swallowed; the status change already happened.
func (s *OrderService) notifyDecision(ctx context.Context, order *models.Order) {
	if s.email == nil {
		return
	}

	if order.Status != models.OrderStatusAccepted && order.Status != models.OrderStatusRejected {
		return
	}

	logger := middleware.LoggerFromContext(ctx)

	customer, err := s.userRepo.GetUserByID(ctx, order.CustomerID)
	if err != nil {
		logger.Warn("Could not load customer for order decision email",
			slog.String("orderId", order.ID.String()), slog.Any("error", err))
		return
	}

	if err := s.email.SendOrderDecision(ctx, customer.Email, customer.Name, order); err != nil {
		logger.Warn("Order decision email failed",
			slog.String("orderId", order.ID.String()), slog.Any("error", err))
	}
}
