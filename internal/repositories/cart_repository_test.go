package repository_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/ovenfresh/bakery-platform/internal/models"
	repository "github.com/ovenfresh/bakery-platform/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cartItemRows = []string{
	"id", "user_id", "product_id", "subcategory_id", "quantity", "kilo", "pieces",
	"custom_text", "additional_description", "is_ordered", "created_at", "updated_at",
	"p.id", "p.name", "p.images", "p.status",
	"s.id", "s.name", "s.price", "s.kilo_to_price_map",
}

func addCartItemRow(rows *sqlmock.Rows, id, userID uuid.UUID, kilo any, priceMap string) *sqlmock.Rows {
	now := time.Now()

	return rows.AddRow(
		id, userID, int64(1), int64(2), 2, kilo, nil,
		"Happy Birthday", "", false, now, now,
		int64(1), "Chocolate Truffle", []byte(`["a.png"]`), "active",
		int64(2), "Truffle Cakes", nil, []byte(priceMap),
	)
}

func TestCartRepository(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewCartRepo(db)
	ctx := context.Background()

	t.Run("AddItem_Success", func(t *testing.T) {
		item := &models.CartItem{
			ID:            uuid.New(),
			UserID:        uuid.New(),
			ProductID:     1,
			SubcategoryID: 2,
			Quantity:      1,
		}
		now := time.Now()

		mock.ExpectQuery(`INSERT INTO cart_items`).
			WithArgs(item.ID, item.UserID, item.ProductID, item.SubcategoryID, item.Quantity,
				item.Kilo, item.Pieces, item.CustomText, item.AdditionalDescription).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		err := repo.AddItem(ctx, item)

		require.NoError(t, err)
		assert.WithinDuration(t, now, item.CreatedAt, time.Second)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetItemByID_Success", func(t *testing.T) {
		itemID := uuid.New()
		userID := uuid.New()

		rows := addCartItemRow(sqlmock.NewRows(cartItemRows), itemID, userID, 1.0, `{"1kg":550}`)

		mock.ExpectQuery(`FROM cart_items ci`).
			WithArgs(itemID).
			WillReturnRows(rows)

		item, err := repo.GetItemByID(ctx, itemID)

		require.NoError(t, err)
		assert.Equal(t, itemID, item.ID)
		assert.Equal(t, userID, item.UserID)
		require.NotNil(t, item.Kilo)
		assert.Equal(t, 1.0, *item.Kilo)
		require.NotNil(t, item.Subcategory)
		assert.Equal(t, map[string]float64{"1kg": 550}, item.Subcategory.KiloToPriceMap)
		require.NotNil(t, item.Product)
		assert.Equal(t, []string{"a.png"}, item.Product.Images)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetItemByID_NotFound", func(t *testing.T) {
		itemID := uuid.New()

		mock.ExpectQuery(`FROM cart_items ci`).
			WithArgs(itemID).
			WillReturnError(sql.ErrNoRows)

		item, err := repo.GetItemByID(ctx, itemID)

		assert.Nil(t, item)
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ListByIDs_FiltersToOwnerAndActive", func(t *testing.T) {
		userID := uuid.New()
		ownID := uuid.New()
		foreignID := uuid.New()

		// only the caller's active line comes back
		rows := addCartItemRow(sqlmock.NewRows(cartItemRows), ownID, userID, nil, `{}`)

		mock.ExpectQuery(`ci\.user_id = \$1 AND ci\.is_ordered = FALSE AND ci\.id = ANY\(\$2\)`).
			WithArgs(userID, pq.Array([]uuid.UUID{ownID, foreignID})).
			WillReturnRows(rows)

		items, err := repo.ListByIDs(ctx, userID, []uuid.UUID{ownID, foreignID})

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, ownID, items[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UpdateItem_NotOwnedReturnsNoRows", func(t *testing.T) {
		item := &models.CartItem{ID: uuid.New(), UserID: uuid.New(), Quantity: 3}

		mock.ExpectExec(`UPDATE cart_items`).
			WithArgs(item.Quantity, item.Kilo, item.Pieces, item.CustomText, item.AdditionalDescription,
				item.ID, item.UserID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateItem(ctx, item)

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DeleteItem_Success", func(t *testing.T) {
		itemID := uuid.New()
		userID := uuid.New()

		mock.ExpectExec(`DELETE FROM cart_items`).
			WithArgs(itemID, userID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.DeleteItem(ctx, itemID, userID))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
