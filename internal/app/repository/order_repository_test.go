package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jangheelee880707/wooahhan/internal/app/model"
	"github.com/jangheelee880707/wooahhan/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupOrderTest(t *testing.T) OrderRepository {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	return NewOrderRepository(testDB)
}

func newTestOrder(sessionID, number string, completedAt time.Time) *model.Order {
	var cart model.Cart
	cart.Add(model.Product{ID: "p1", Name: "당일 도축 뭉티기 (Original)", Price: "₩45,000", Cut: model.CutMungtigi})
	cart.Add(model.Product{ID: "p1", Name: "당일 도축 뭉티기 (Original)", Price: "₩45,000", Cut: model.CutMungtigi})

	return &model.Order{
		ID:            uuid.NewString(),
		OrderNumber:   number,
		SessionID:     sessionID,
		Subtotal:      cart.TotalPrice(),
		ShippingFee:   model.DefaultShippingFee,
		Total:         cart.TotalPrice() + model.DefaultShippingFee,
		PaymentMethod: model.PaymentCard,
		PaymentStatus: model.PaymentStatusCompleted,
		RecipientName: "홍길동",
		Phone:         "010-0000-0000",
		Address:       "대구광역시 중구",
		AddressDetail: "1층",
		CompletedAt:   completedAt,
		OrderItems:    model.OrderItemsFromCart(cart),
	}
}

func TestOrderRepository_CreateAndFind(t *testing.T) {
	repo := setupOrderTest(t)

	order := newTestOrder("s1", "WH-20260101-AAAAAA", time.Now())
	require.NoError(t, repo.Create(order))

	found, err := repo.FindByOrderNumber("WH-20260101-AAAAAA")
	require.NoError(t, err)
	assert.Equal(t, int64(93500), found.Total)
	require.Len(t, found.OrderItems, 1)
	assert.Equal(t, 2, found.OrderItems[0].Quantity)
	assert.Equal(t, int64(90000), found.OrderItems[0].Subtotal)
}

func TestOrderRepository_FindBySessionID(t *testing.T) {
	repo := setupOrderTest(t)
	now := time.Now()

	require.NoError(t, repo.Create(newTestOrder("s1", "WH-1", now.Add(-time.Hour))))
	require.NoError(t, repo.Create(newTestOrder("s1", "WH-2", now)))
	require.NoError(t, repo.Create(newTestOrder("s2", "WH-3", now)))

	orders, err := repo.FindBySessionID("s1")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "WH-2", orders[0].OrderNumber)
	assert.Equal(t, "WH-1", orders[1].OrderNumber)

	none, err := repo.FindBySessionID("unknown")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestOrderRepository_DuplicateOrderNumber(t *testing.T) {
	repo := setupOrderTest(t)

	require.NoError(t, repo.Create(newTestOrder("s1", "WH-DUP", time.Now())))
	assert.Error(t, repo.Create(newTestOrder("s1", "WH-DUP", time.Now())))
}
