package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	appErrors "github.com/ovenfresh/bakery-platform/internal/errors"
	"github.com/ovenfresh/bakery-platform/internal/models"
	repository "github.com/ovenfresh/bakery-platform/internal/repositories"
	service "github.com/ovenfresh/bakery-platform/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

func TestGetCart(t *testing.T) {
	mockRepo := repository.NewMockCartRepository()
	mockProductRepo := repository.NewMockProductRepository()
	cartService := service.NewCartService(mockRepo, mockProductRepo)
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Success - Prices Resolved And Subtotal Summed", func(t *testing.T) {
		items := []models.CartItem{
			{
				ID:          uuid.New(),
				UserID:      userID,
				Quantity:    2,
				Kilo:        floatPtr(1),
				Subcategory: &models.Subcategory{KiloToPriceMap: map[string]float64{"1kg": 550}},
			},
			{
				ID:          uuid.New(),
				UserID:      userID,
				Quantity:    3,
				Pieces:      intPtr(6),
				Subcategory: &models.Subcategory{Price: floatPtr(45)},
			},
		}

		mockRepo.On("ListActiveByUser", ctx, userID).Return(items, nil).Once()

		cart, err := cartService.GetCart(ctx, userID)

		assert.NoError(t, err)
		assert.Len(t, cart.Items, 2)
		assert.Equal(t, float64(550), cart.Items[0].UnitPrice)
		assert.Equal(t, float64(45), cart.Items[1].UnitPrice)
		assert.Equal(t, float64(550*2+45*3), cart.Subtotal)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success - Unpriced Line Shows Zero", func(t *testing.T) {
		items := []models.CartItem{
			{
				ID:          uuid.New(),
				UserID:      userID,
				Quantity:    1,
				Kilo:        floatPtr(4),
				Subcategory: &models.Subcategory{KiloToPriceMap: map[string]float64{"1kg": 550}},
			},
		}

		mockRepo.On("ListActiveByUser", ctx, userID).Return(items, nil).Once()

		cart, err := cartService.GetCart(ctx, userID)

		assert.NoError(t, err)
		assert.Equal(t, float64(0), cart.Items[0].UnitPrice)
		assert.Equal(t, float64(0), cart.Subtotal)
	})

	t.Run("Success - Empty Cart", func(t *testing.T) {
		mockRepo.On("ListActiveByUser", ctx, userID).Return(nil, nil).Once()

		cart, err := cartService.GetCart(ctx, userID)

		assert.NoError(t, err)
		assert.NotNil(t, cart.Items)
		assert.Empty(t, cart.Items)
		assert.Equal(t, float64(0), cart.Subtotal)
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		dbErr := errors.New("connection lost")
		mockRepo.On("ListActiveByUser", ctx, userID).Return(nil, dbErr).Once()

		cart, err := cartService.GetCart(ctx, userID)

		assert.Nil(t, cart)
		var appErr *appErrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeDatabaseError, appErr.Code)
	})
}

func TestAddItem(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	activeProduct := &models.Product{
		ID:            7,
		SubcategoryID: 3,
		Name:          "Red Velvet",
		Status:        "active",
		Subcategory:   &models.Subcategory{ID: 3, KiloToPriceMap: map[string]float64{"0.5kg": 400}},
	}

	t.Run("Success", func(t *testing.T) {
		mockRepo := repository.NewMockCartRepository()
		mockProductRepo := repository.NewMockProductRepository()
		cartService := service.NewCartService(mockRepo, mockProductRepo)

		mockProductRepo.On("GetProductByID", ctx, int64(7)).Return(activeProduct, nil).Once()
		mockRepo.On("AddItem", ctx, mock.AnythingOfType("*models.CartItem")).Return(nil).Once()

		req := &models.AddCartItemRequest{
			ProductID:  7,
			Quantity:   1,
			Kilo:       floatPtr(0.5),
			CustomText: "Happy Birthday Mira",
		}

		item, err := cartService.AddItem(ctx, userID, req)

		assert.NoError(t, err)
		assert.Equal(t, userID, item.UserID)
		assert.Equal(t, int64(3), item.SubcategoryID)
		assert.Equal(t, float64(400), item.UnitPrice)
		assert.Equal(t, "Happy Birthday Mira", item.CustomText)
		mockRepo.AssertExpectations(t)
		mockProductRepo.AssertExpectations(t)
	})

	t.Run("Success - Custom Text Is Sanitized", func(t *testing.T) {
		mockRepo := repository.NewMockCartRepository()
		mockProductRepo := repository.NewMockProductRepository()
		cartService := service.NewCartService(mockRepo, mockProductRepo)

		mockProductRepo.On("GetProductByID", ctx, int64(7)).Return(activeProduct, nil).Once()
		mockRepo.On("AddItem", ctx, mock.AnythingOfType("*models.CartItem")).Return(nil).Once()

		req := &models.AddCartItemRequest{
			ProductID:  7,
			Quantity:   1,
			CustomText: "<img src=x onerror=alert(1)>Congrats",
		}

		item, err := cartService.AddItem(ctx, userID, req)

		assert.NoError(t, err)
		assert.Equal(t, "Congrats", item.CustomText)
	})

	t.Run("Failure - Unknown Product", func(t *testing.T) {
		mockRepo := repository.NewMockCartRepository()
		mockProductRepo := repository.NewMockProductRepository()
		cartService := service.NewCartService(mockRepo, mockProductRepo)

		mockProductRepo.On("GetProductByID", ctx, int64(99)).Return(nil, sql.ErrNoRows).Once()

		item, err := cartService.AddItem(ctx, userID, &models.AddCartItemRequest{ProductID: 99, Quantity: 1})

		assert.Nil(t, item)
		var appErr *appErrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)
		mockRepo.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Inactive Product", func(t *testing.T) {
		mockRepo := repository.NewMockCartRepository()
		mockProductRepo := repository.NewMockProductRepository()
		cartService := service.NewCartService(mockRepo, mockProductRepo)

		inactive := &models.Product{ID: 8, Status: "inactive"}
		mockProductRepo.On("GetProductByID", ctx, int64(8)).Return(inactive, nil).Once()

		item, err := cartService.AddItem(ctx, userID, &models.AddCartItemRequest{ProductID: 8, Quantity: 1})

		assert.Nil(t, item)
		var appErr *appErrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)
	})
}

func TestUpdateItem(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	itemID := uuid.New()

	ownedItem := func() *models.CartItem {
		return &models.CartItem{
			ID:          itemID,
			UserID:      userID,
			Quantity:    1,
			Subcategory: &models.Subcategory{Price: floatPtr(120)},
		}
	}

	t.Run("Success", func(t *testing.T) {
		mockRepo := repository.NewMockCartRepository()
		cartService := service.NewCartService(mockRepo, repository.NewMockProductRepository())

		mockRepo.On("GetItemByID", ctx, itemID).Return(ownedItem(), nil).Once()
		mockRepo.On("UpdateItem", ctx, mock.AnythingOfType("*models.CartItem")).Return(nil).Once()

		item, err := cartService.UpdateItem(ctx, userID, itemID, &models.UpdateCartItemRequest{
			Quantity:   intPtr(4),
			CustomText: strPtr("New message"),
		})

		assert.NoError(t, err)
		assert.Equal(t, 4, item.Quantity)
		assert.Equal(t, "New message", item.CustomText)
		assert.Equal(t, float64(120), item.UnitPrice)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Not Owner", func(t *testing.T) {
		mockRepo := repository.NewMockCartRepository()
		cartService := service.NewCartService(mockRepo, repository.NewMockProductRepository())

		other := ownedItem()
		other.UserID = uuid.New()

		mockRepo.On("GetItemByID", ctx, itemID).Return(other, nil).Once()

		item, err := cartService.UpdateItem(ctx, userID, itemID, &models.UpdateCartItemRequest{Quantity: intPtr(2)})

		assert.Nil(t, item)
		var appErr *appErrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeForbidden, appErr.Code)
		mockRepo.AssertNotCalled(t, "UpdateItem", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Already Ordered", func(t *testing.T) {
		mockRepo := repository.NewMockCartRepository()
		cartService := service.NewCartService(mockRepo, repository.NewMockProductRepository())

		ordered := ownedItem()
		ordered.IsOrdered = true

		mockRepo.On("GetItemByID", ctx, itemID).Return(ordered, nil).Once()

		item, err := cartService.UpdateItem(ctx, userID, itemID, &models.UpdateCartItemRequest{Quantity: intPtr(2)})

		assert.Nil(t, item)
		var appErr *appErrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)
	})
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	itemID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockRepo := repository.NewMockCartRepository()
		cartService := service.NewCartService(mockRepo, repository.NewMockProductRepository())

		mockRepo.On("DeleteItem", ctx, itemID, userID).Return(nil).Once()

		assert.NoError(t, cartService.RemoveItem(ctx, userID, itemID))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		mockRepo := repository.NewMockCartRepository()
		cartService := service.NewCartService(mockRepo, repository.NewMockProductRepository())

		mockRepo.On("DeleteItem", ctx, itemID, userID).Return(sql.ErrNoRows).Once()

		err := cartService.RemoveItem(ctx, userID, itemID)

		var appErr *appErrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}
