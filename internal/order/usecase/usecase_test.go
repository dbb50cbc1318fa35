package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sweetshop/backend/internal/model"
	"github.com/sweetshop/backend/internal/order"
	"github.com/sweetshop/backend/internal/order/dto"
	"github.com/sweetshop/backend/internal/pkg/logger"
)

type stubRepo struct {
	orders       map[string]*model.Order
	knownProduct map[string]bool
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		orders:       map[string]*model.Order{},
		knownProduct: map[string]bool{},
	}
}

func (r *stubRepo) addProduct(id string) { r.knownProduct[id] = true }

func (r *stubRepo) Create(ctx context.Context, o *model.Order) error {
	for _, item := range o.Items {
		if !r.knownProduct[item.ProductID] {
			return order.ErrProductNotFound
		}
	}
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *stubRepo) FindByID(ctx context.Context, id string) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *stubRepo) FindAll(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error) {
	var out []model.Order
	for _, o := range r.orders {
		if filters.UserID != "" && o.UserID != filters.UserID {
			continue
		}
		if filters.Status != "" && o.Status != filters.Status {
			continue
		}
		out = append(out, *o)
	}
	return out, len(out), nil
}

func (r *stubRepo) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error {
	o, ok := r.orders[id]
	if !ok {
		return order.ErrOrderNotFound
	}
	o.Status = status
	return nil
}

func newTestUseCase(repo order.Repository) order.UseCase {
	return NewOrderUseCase(repo, nil, logger.NewNop())
}

func TestCreate_EmptyCart(t *testing.T) {
	uc := newTestUseCase(newStubRepo())

	_, err := uc.Create(context.Background(), &dto.CreateOrderInput{
		UserID: uuid.New().String(),
		Items:  nil,
	})
	assert.ErrorIs(t, err, order.ErrEmptyCart)
}

func TestCreate_RejectsInvalidItems(t *testing.T) {
	uc := newTestUseCase(newStubRepo())

	cases := []dto.OrderItemInput{
		{ProductID: "p1", Quantity: 0, Price: 5},
		{ProductID: "p1", Quantity: -1, Price: 5},
		{ProductID: "p1", Quantity: 1, Price: -0.01},
	}
	for _, item := range cases {
		_, err := uc.Create(context.Background(), &dto.CreateOrderInput{
			UserID: "u1",
			Items:  []dto.OrderItemInput{item},
		})
		assert.ErrorIs(t, err, order.ErrInvalidItem)
	}
}

func TestCreate_UnknownProductAbortsOrder(t *testing.T) {
	repo := newStubRepo()
	repo.addProduct("p1")
	uc := newTestUseCase(repo)

	_, err := uc.Create(context.Background(), &dto.CreateOrderInput{
		UserID: "u1",
		Items: []dto.OrderItemInput{
			{ProductID: "p1", Quantity: 1, Price: 3},
			{ProductID: "ghost", Quantity: 1, Price: 3},
		},
	})
	assert.ErrorIs(t, err, order.ErrProductNotFound)
	assert.Empty(t, repo.orders)
}

func TestCreate_TotalComesFromPriceSnapshots(t *testing.T) {
	repo := newStubRepo()
	repo.addProduct("p1")
	repo.addProduct("p2")
	uc := newTestUseCase(repo)

	userID := uuid.New().String()
	o, err := uc.Create(context.Background(), &dto.CreateOrderInput{
		UserID: userID,
		Items: []dto.OrderItemInput{
			{ProductID: "p1", Quantity: 3, Price: 4.50},
			{ProductID: "p2", Quantity: 2, Price: 10.00},
		},
		Delivery: &dto.DeliveryInput{
			RecipientName: "Ada",
			Address:       "1 Candy Lane",
		},
	})
	require.NoError(t, err)

	assert.InDelta(t, 33.50, o.Total, 1e-9)
	assert.Equal(t, model.OrderStatusPending, o.Status)
	assert.Equal(t, userID, o.UserID)
	require.Len(t, o.Items, 2)
	assert.Equal(t, 4.50, o.Items[0].Price)
	assert.Equal(t, o.ID, o.Items[0].OrderID)
	require.NotNil(t, o.RecipientName)
	assert.Equal(t, "Ada", *o.RecipientName)
	assert.Nil(t, o.Phone)
}

func TestCreate_FreeItemIsAllowed(t *testing.T) {
	repo := newStubRepo()
	repo.addProduct("p1")
	uc := newTestUseCase(repo)

	o, err := uc.Create(context.Background(), &dto.CreateOrderInput{
		UserID: "u1",
		Items:  []dto.OrderItemInput{{ProductID: "p1", Quantity: 2, Price: 0}},
	})
	require.NoError(t, err)
	assert.Zero(t, o.Total)
}

func TestGetByID_OwnershipEnforced(t *testing.T) {
	repo := newStubRepo()
	repo.addProduct("p1")
	uc := newTestUseCase(repo)

	o, err := uc.Create(context.Background(), &dto.CreateOrderInput{
		UserID: "owner",
		Items:  []dto.OrderItemInput{{ProductID: "p1", Quantity: 1, Price: 2}},
	})
	require.NoError(t, err)

	// Owner sees their own order.
	got, err := uc.GetByID(context.Background(), o.ID, "owner", false)
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)

	// Another customer does not.
	_, err = uc.GetByID(context.Background(), o.ID, "stranger", false)
	assert.ErrorIs(t, err, order.ErrForbidden)

	// Admin sees everything.
	got, err = uc.GetByID(context.Background(), o.ID, "stranger", true)
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)
}

func TestGetByID_NotFound(t *testing.T) {
	uc := newTestUseCase(newStubRepo())

	_, err := uc.GetByID(context.Background(), uuid.New().String(), "u1", true)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestUpdateStatus_Transitions(t *testing.T) {
	repo := newStubRepo()
	repo.addProduct("p1")
	uc := newTestUseCase(repo)

	o, err := uc.Create(context.Background(), &dto.CreateOrderInput{
		UserID: "u1",
		Items:  []dto.OrderItemInput{{ProductID: "p1", Quantity: 1, Price: 2}},
	})
	require.NoError(t, err)

	updated, err := uc.UpdateStatus(context.Background(), o.ID, model.OrderStatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusProcessing, updated.Status)

	updated, err = uc.UpdateStatus(context.Background(), o.ID, model.OrderStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCompleted, updated.Status)

	// Completed is settled; nothing moves it again.
	_, err = uc.UpdateStatus(context.Background(), o.ID, model.OrderStatusShipped)
	assert.ErrorIs(t, err, order.ErrOrderFinal)
}

func TestUpdateStatus_CancelledIsFinal(t *testing.T) {
	repo := newStubRepo()
	repo.addProduct("p1")
	uc := newTestUseCase(repo)

	o, err := uc.Create(context.Background(), &dto.CreateOrderInput{
		UserID: "u1",
		Items:  []dto.OrderItemInput{{ProductID: "p1", Quantity: 1, Price: 2}},
	})
	require.NoError(t, err)

	_, err = uc.UpdateStatus(context.Background(), o.ID, model.OrderStatusCancelled)
	require.NoError(t, err)

	_, err = uc.UpdateStatus(context.Background(), o.ID, model.OrderStatusPending)
	assert.ErrorIs(t, err, order.ErrOrderFinal)
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	uc := newTestUseCase(newStubRepo())

	_, err := uc.UpdateStatus(context.Background(), "any", model.OrderStatus("lost"))
	assert.ErrorIs(t, err, order.ErrInvalidStatus)
}

func TestListForUser_FiltersByOwner(t *testing.T) {
	repo := newStubRepo()
	repo.addProduct("p1")
	uc := newTestUseCase(repo)

	for _, userID := range []string{"a", "a", "b"} {
		_, err := uc.Create(context.Background(), &dto.CreateOrderInput{
			UserID: userID,
			Items:  []dto.OrderItemInput{{ProductID: "p1", Quantity: 1, Price: 1}},
		})
		require.NoError(t, err)
	}

	orders, total, err := uc.ListForUser(context.Background(), "a", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	for _, o := range orders {
		assert.Equal(t, "a", o.UserID)
	}
}
