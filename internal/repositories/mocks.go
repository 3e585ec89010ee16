package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ovenfresh/bakery-platform/internal/models"
	"github.com/stretchr/testify/mock"
)

// Hand-rolled testify mocks shared by the service tests.

type MockUserRepository struct {
	mock.Mock
}

func NewMockUserRepository() *MockUserRepository { return &MockUserRepository{} }

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) ListCustomers(ctx context.Context, page, size int) ([]models.User, int, error) {
	args := m.Called(ctx, page, size)
	if u := args.Get(0); u != nil {
		return u.([]models.User), args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

type MockCategoryRepository struct {
	mock.Mock
}

func NewMockCategoryRepository() *MockCategoryRepository { return &MockCategoryRepository{} }

func (m *MockCategoryRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*models.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	if c := args.Get(0); c != nil {
		return c.([]models.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockSubcategoryRepository struct {
	mock.Mock
}

func NewMockSubcategoryRepository() *MockSubcategoryRepository { return &MockSubcategoryRepository{} }

func (m *MockSubcategoryRepository) CreateSubcategory(ctx context.Context, sub *models.Subcategory) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubcategoryRepository) GetSubcategoryByID(ctx context.Context, id int64) (*models.Subcategory, error) {
	args := m.Called(ctx, id)
	if s := args.Get(0); s != nil {
		return s.(*models.Subcategory), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSubcategoryRepository) ListSubcategories(ctx context.Context, categoryID *int64) ([]models.Subcategory, error) {
	args := m.Called(ctx, categoryID)
	if s := args.Get(0); s != nil {
		return s.([]models.Subcategory), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSubcategoryRepository) UpdateSubcategory(ctx context.Context, sub *models.Subcategory) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubcategoryRepository) DeleteSubcategory(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockProductRepository struct {
	mock.Mock
}

func NewMockProductRepository() *MockProductRepository { return &MockProductRepository{} }

func (m *MockProductRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*models.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteProduct(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) ListProducts(ctx context.Context, filter *models.ProductFilter) ([]models.Product, int, error) {
	args := m.Called(ctx, filter)
	if p := args.Get(0); p != nil {
		return p.([]models.Product), args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

type MockCartRepository struct {
	mock.Mock
}

func NewMockCartRepository() *MockCartRepository { return &MockCartRepository{} }

func (m *MockCartRepository) AddItem(ctx context.Context, item *models.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCartRepository) GetItemByID(ctx context.Context, id uuid.UUID) (*models.CartItem, error) {
	args := m.Called(ctx, id)
	if i := args.Get(0); i != nil {
		return i.(*models.CartItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCartRepository) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	args := m.Called(ctx, userID)
	if i := args.Get(0); i != nil {
		return i.([]models.CartItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCartRepository) ListByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]models.CartItem, error) {
	args := m.Called(ctx, userID, ids)
	if i := args.Get(0); i != nil {
		return i.([]models.CartItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCartRepository) UpdateItem(ctx context.Context, item *models.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCartRepository) DeleteItem(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

type MockOrderRepository struct {
	mock.Mock
}

func NewMockOrderRepository() *MockOrderRepository { return &MockOrderRepository{} }

func (m *MockOrderRepository) CreateOrder(ctx context.Context, order *models.Order, cartItemIDs []uuid.UUID) error {
	args := m.Called(ctx, order, cartItemIDs)
	return args.Error(0)
}

func (m *MockOrderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*models.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) ListOrdersByCustomer(ctx context.Context, customerID uuid.UUID, page, size int) ([]models.Order, int, error) {
	args := m.Called(ctx, customerID, page, size)
	if o := args.Get(0); o != nil {
		return o.([]models.Order), args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

func (m *MockOrderRepository) ListOrders(ctx context.Context, filter *models.OrderFilter) ([]models.Order, int, error) {
	args := m.Called(ctx, filter)
	if o := args.Get(0); o != nil {
		return o.([]models.Order), args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

func (m *MockOrderRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus, rejectionComment string) error {
	args := m.Called(ctx, id, status, rejectionComment)
	return args.Error(0)
}

type MockRateLimitRepository struct {
	mock.Mock
}

func NewMockRateLimitRepository() *MockRateLimitRepository { return &MockRateLimitRepository{} }

func (m *MockRateLimitRepository) CheckLoginRateLimit(ctx context.Context, username string) (bool, int, int, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Int(1), args.Int(2), args.Error(3)
}

type MockTokenRepository struct {
	mock.Mock
}

func NewMockTokenRepository() *MockTokenRepository { return &MockTokenRepository{} }

func (m *MockTokenRepository) StoreRefreshToken(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error {
	args := m.Called(ctx, token, userID, ttl)
	return args.Error(0)
}

func (m *MockTokenRepository) ConsumeRefreshToken(ctx context.Context, token string) (uuid.UUID, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockTokenRepository) DeleteRefreshToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}
