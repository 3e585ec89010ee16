package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	appErrors "github.com/ovenfresh/bakery-platform/internal/errors"
	"github.com/ovenfresh/bakery-platform/internal/models"
	repository "github.com/ovenfresh/bakery-platform/internal/repositories"
	service "github.com/ovenfresh/bakery-platform/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func floatPtr(f float64) *float64 { return &f }

func newOrderTestService() (*service.OrderService, *repository.MockOrderRepository, *repository.MockCartRepository, *repository.MockUserRepository) {
	mockOrderRepo := repository.NewMockOrderRepository()
	mockCartRepo := repository.NewMockCartRepository()
	mockUserRepo := repository.NewMockUserRepository()
	svc := service.NewOrderService(mockOrderRepo, mockCartRepo, mockUserRepo, nil)

	return svc, mockOrderRepo, mockCartRepo, mockUserRepo
}

func weightCartItem(userID uuid.UUID, kilo float64, quantity int, priceMap map[string]float64) models.CartItem {
	return models.CartItem{
		ID:            uuid.New(),
		UserID:        userID,
		ProductID:     1,
		SubcategoryID: 2,
		Quantity:      quantity,
		Kilo:          &kilo,
		Product:       &models.Product{ID: 1, Name: "Chocolate Truffle"},
		Subcategory:   &models.Subcategory{ID: 2, Name: "Truffle Cakes", KiloToPriceMap: priceMap},
	}
}

func TestCheckout(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()

	checkoutReq := func(ids ...uuid.UUID) *models.CheckoutRequest {
		return &models.CheckoutRequest{
			CartItemIDs:  ids,
			PhoneNumber:  "9876543210",
			DeliveryTime: time.Now().Add(48 * time.Hour),
		}
	}

	t.Run("Success - Snapshot And Totals", func(t *testing.T) {
		svc, mockOrderRepo, mockCartRepo, _ := newOrderTestService()

		item := weightCartItem(customerID, 1, 2, map[string]float64{"1kg": 550})
		req := checkoutReq(item.ID)

		mockCartRepo.On("ListByIDs", ctx, customerID, req.CartItemIDs).
			Return([]models.CartItem{item}, nil).Once()
		mockOrderRepo.On("CreateOrder", ctx, mock.AnythingOfType("*models.Order"), []uuid.UUID{item.ID}).
			Return(nil).Once()

		order, err := svc.Checkout(ctx, customerID, req, "/uploads/proof.png")

		assert.NoError(t, err)
		assert.NotNil(t, order)
		assert.Equal(t, models.OrderStatusPending, order.Status)
		assert.Equal(t, float64(1100), order.TotalPrice)
		assert.InDelta(t, 330, order.UpfrontPaid, 1e-9)
		assert.Len(t, order.Items, 1)
		assert.Equal(t, "Chocolate Truffle", order.Items[0].ProductName)
		assert.Equal(t, "Truffle Cakes", order.Items[0].SubcategoryName)
		assert.Equal(t, float64(550), order.Items[0].UnitPrice)
		assert.Equal(t, float64(1100), order.Items[0].LineTotal)
		mockCartRepo.AssertExpectations(t)
		mockOrderRepo.AssertExpectations(t)
	})

	t.Run("Failure - Missing Payment Proof", func(t *testing.T) {
		svc, mockOrderRepo, mockCartRepo, _ := newOrderTestService()

		order, err := svc.Checkout(ctx, customerID, checkoutReq(uuid.New()), "")

		assert.Nil(t, order)
		var appErr *appErrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)
		mockCartRepo.AssertNotCalled(t, "ListByIDs", mock.Anything, mock.Anything, mock.Anything)
		mockOrderRepo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - No Orderable Items", func(t *testing.T) {
		svc, mockOrderRepo, mockCartRepo, _ := newOrderTestService()

		req := checkoutReq(uuid.New())

		mockCartRepo.On("ListByIDs", ctx, customerID, req.CartItemIDs).
			Return([]models.CartItem{}, nil).Once()

		order, err := svc.Checkout(ctx, customerID, req, "/uploads/proof.png")

		assert.Nil(t, order)
		var appErr *appErrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)
		mockOrderRepo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
		mockCartRepo.AssertExpectations(t)
	})

	t.Run("Failure - Zero Total Is Refused", func(t *testing.T) {
		svc, mockOrderRepo, mockCartRepo, _ := newOrderTestService()

		// weight key 3kg is absent, so the line prices at zero
		item := weightCartItem(customerID, 3, 1, map[string]float64{"1kg": 550})
		req := checkoutReq(item.ID)

		mockCartRepo.On("ListByIDs", ctx, customerID, req.CartItemIDs).
			Return([]models.CartItem{item}, nil).Once()

		order, err := svc.Checkout(ctx, customerID, req, "/uploads/proof.png")

		assert.Nil(t, order)
		var appErr *appErrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)
		mockOrderRepo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
		mockCartRepo.AssertExpectations(t)
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		svc, mockOrderRepo, mockCartRepo, _ := newOrderTestService()

		item := weightCartItem(customerID, 1, 1, map[string]float64{"1kg": 550})
		req := checkoutReq(item.ID)
		dbErr := errors.New("insert failed")

		mockCartRepo.On("ListByIDs", ctx, customerID, req.CartItemIDs).
			Return([]models.CartItem{item}, nil).Once()
		mockOrderRepo.On("CreateOrder", ctx, mock.AnythingOfType("*models.Order"), []uuid.UUID{item.ID}).
			Return(dbErr).Once()

		order, err := svc.Checkout(ctx, customerID, req, "/uploads/proof.png")

		assert.Nil(t, order)
		var appErr *appErrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeDatabaseError, appErr.Code)
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestGetOrder(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()
	orderID := uuid.New()

	order := &models.Order{ID: orderID, CustomerID: customerID, Status: models.OrderStatusPending}

	t.Run("Success - Owner", func(t *testing.T) {
		svc, mockOrderRepo, _, _ := newOrderTestService()

		mockOrderRepo.On("GetOrderByID", ctx, orderID).Return(order, nil).Once()

		claims := &models.Claims{UserID: customerID, Role: models.RoleCustomer}
		got, err := svc.GetOrder(ctx, orderID, claims)

		assert.NoError(t, err)
		assert.Equal(t, orderID, got.ID)
	})

	t.Run("Success - Admin Can Read Any Order", func(t *testing.T) {
		svc, mockOrderRepo, _, _ := newOrderTestService()

		mockOrderRepo.On("GetOrderByID", ctx, orderID).Return(order, nil).Once()

		claims := &models.Claims{UserID: uuid.New(), Role: models.RoleAdmin}
		got, err := svc.GetOrder(ctx, orderID, claims)

		assert.NoError(t, err)
		assert.Equal(t, orderID, got.ID)
	})

	t.Run("Failure - Another Customer", func(t *testing.T) {
		svc, mockOrderRepo, _, _ := newOrderTestService()

		mockOrderRepo.On("GetOrderByID", ctx, orderID).Return(order, nil).Once()

		claims := &models.Claims{UserID: uuid.New(), Role: models.RoleCustomer}
		got, err := svc.GetOrder(ctx, orderID, claims)

		assert.Nil(t, got)
		var appErr *appErrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeForbidden, appErr.Code)
	})
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()

	pendingOrder := func() *models.Order {
		return &models.Order{ID: orderID, CustomerID: uuid.New(), Status: models.OrderStatusPending}
	}

	t.Run("Success - Accept Pending", func(t *testing.T) {
		svc, mockOrderRepo, _, mockUserRepo := newOrderTestService()

		order := pendingOrder()

		mockOrderRepo.On("GetOrderByID", ctx, orderID).Return(order, nil).Once()
		mockOrderRepo.On("UpdateOrderStatus", ctx, orderID, models.OrderStatusAccepted, "").Return(nil).Once()

		got, err := svc.UpdateStatus(ctx, orderID, &models.UpdateOrderStatusRequest{Status: models.OrderStatusAccepted})

		assert.NoError(t, err)
		assert.Equal(t, models.OrderStatusAccepted, got.Status)
		mockOrderRepo.AssertExpectations(t)
		mockUserRepo.AssertNotCalled(t, "GetUserByID", mock.Anything, mock.Anything)
	})

	t.Run("Success - Reject With Sanitized Comment", func(t *testing.T) {
		svc, mockOrderRepo, _, _ := newOrderTestService()

		order := pendingOrder()

		mockOrderRepo.On("GetOrderByID", ctx, orderID).Return(order, nil).Once()
		mockOrderRepo.On("UpdateOrderStatus", ctx, orderID, models.OrderStatusRejected, "Out of stock that week").Return(nil).Once()

		got, err := svc.UpdateStatus(ctx, orderID, &models.UpdateOrderStatusRequest{
			Status:           models.OrderStatusRejected,
			RejectionComment: "<script>alert(1)</script>Out of stock that week",
		})

		assert.NoError(t, err)
		assert.Equal(t, models.OrderStatusRejected, got.Status)
		assert.Equal(t, "Out of stock that week", got.RejectionComment)
		mockOrderRepo.AssertExpectations(t)
	})

	t.Run("Success - Complete Accepted", func(t *testing.T) {
		svc, mockOrderRepo, _, _ := newOrderTestService()

		order := pendingOrder()
		order.Status = models.OrderStatusAccepted

		mockOrderRepo.On("GetOrderByID", ctx, orderID).Return(order, nil).Once()
		mockOrderRepo.On("UpdateOrderStatus", ctx, orderID, models.OrderStatusCompleted, "").Return(nil).Once()

		got, err := svc.UpdateStatus(ctx, orderID, &models.UpdateOrderStatusRequest{Status: models.OrderStatusCompleted})

		assert.NoError(t, err)
		assert.Equal(t, models.OrderStatusCompleted, got.Status)
	})

	t.Run("Failure - Invalid Transition", func(t *testing.T) {
		svc, mockOrderRepo, _, _ := newOrderTestService()

		order := pendingOrder()
		order.Status = models.OrderStatusRejected

		mockOrderRepo.On("GetOrderByID", ctx, orderID).Return(order, nil).Once()

		got, err := svc.UpdateStatus(ctx, orderID, &models.UpdateOrderStatusRequest{Status: models.OrderStatusCompleted})

		assert.Nil(t, got)
		var appErr *appErrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)
		mockOrderRepo.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Pending Cannot Complete Directly", func(t *testing.T) {
		svc, mockOrderRepo, _, _ := newOrderTestService()

		mockOrderRepo.On("GetOrderByID", ctx, orderID).Return(pendingOrder(), nil).Once()

		got, err := svc.UpdateStatus(ctx, orderID, &models.UpdateOrderStatusRequest{Status: models.OrderStatusCompleted})

		assert.Nil(t, got)
		var appErr *appErrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)
	})
}
