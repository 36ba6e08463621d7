package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karineriquena/fiap-soat1-tech-challenge/internal/adapters/storage/sqlite"
	"github.com/karineriquena/fiap-soat1-tech-challenge/internal/core/domain"
	"github.com/karineriquena/fiap-soat1-tech-challenge/internal/core/ports"
)

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	events []ports.OrderEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event ports.OrderEvent) error {
	p.events = append(p.events, event)
	return nil
}

type orderFixture struct {
	orders    *OrderService
	products  *ProductService
	published *recordingPublisher
}

func setupOrderService(t *testing.T) *orderFixture {
	t.Helper()
	store, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	productStore := sqlite.NewProductStore(store)
	published := &recordingPublisher{}

	fixture := &orderFixture{
		orders:    NewOrderService(sqlite.NewOrderStore(store), productStore, published),
		products:  NewProductService(productStore, nil),
		published: published,
	}

	seed := []CreateProductInput{
		{Name: "Burger", Category: "snack", Price: 18.9},
		{Name: "Fries", Category: "side", Price: 7.5},
	}
	for _, input := range seed {
		_, err := fixture.products.Create(context.Background(), input)
		require.NoError(t, err)
	}
	return fixture
}

func (f *orderFixture) productID(t *testing.T, name string) string {
	t.Helper()
	for _, category := range []string{"snack", "side"} {
		dtos, err := f.products.ListByCategory(context.Background(), category)
		require.NoError(t, err)
		for _, dto := range dtos {
			if dto.Name == name {
				return dto.ID
			}
		}
	}
	t.Fatalf("product %q not seeded", name)
	return ""
}

func TestOrderCreateComputesTotalServerSide(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()

	order, err := f.orders.Create(ctx, CreateOrderInput{
		Notes: "no pickles",
		Items: []CreateOrderItemInput{
			{ProductID: f.productID(t, "Burger"), Quantity: 2},
			{ProductID: f.productID(t, "Fries"), Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.InDelta(t, 45.3, order.Total, 1e-9)
	assert.Equal(t, string(domain.StatusPaymentPending), order.Status)
	require.Len(t, order.Items, 2)
	assert.InDelta(t, 18.9, order.Items[0].UnitPrice, 1e-9, "unit price frozen from the product store")

	require.Len(t, f.published.events, 1)
	assert.Equal(t, ports.EventOrderCreated, f.published.events[0].Name)
}

func TestOrderCreatePriceChangesDoNotTouchExistingOrders(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()

	burgerID := f.productID(t, "Burger")
	order, err := f.orders.Create(ctx, CreateOrderInput{
		Items: []CreateOrderItemInput{{ProductID: burgerID, Quantity: 1}},
	})
	require.NoError(t, err)

	newPrice := 25.0
	_, err = f.products.Update(ctx, burgerID, UpdateProductInput{Price: &newPrice})
	require.NoError(t, err)

	stored, err := f.orders.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.InDelta(t, 18.9, stored.Total, 1e-9)
}

func TestOrderCreateUnknownProduct(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()

	_, err := f.orders.Create(ctx, CreateOrderInput{
		Items: []CreateOrderItemInput{
			{ProductID: f.productID(t, "Burger"), Quantity: 1},
			{ProductID: "ghost", Quantity: 1},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// No partial write: the board stays empty.
	listed, err := f.orders.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)
	assert.Empty(t, f.published.events)
}

func TestOrderCreateRejectsPreAssignedStatus(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()

	_, err := f.orders.Create(ctx, CreateOrderInput{
		Status: string(domain.StatusReceived),
		Items:  []CreateOrderItemInput{{ProductID: f.productID(t, "Burger"), Quantity: 1}},
	})
	var rule *domain.BusinessRuleError
	assert.ErrorAs(t, err, &rule)

	// The initial status spelled out explicitly is fine.
	_, err = f.orders.Create(ctx, CreateOrderInput{
		Status: string(domain.StatusPaymentPending),
		Items:  []CreateOrderItemInput{{ProductID: f.productID(t, "Burger"), Quantity: 1}},
	})
	assert.NoError(t, err)
}

func TestConfirmPaymentAdvancesOnce(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()

	order, err := f.orders.Create(ctx, CreateOrderInput{
		Items: []CreateOrderItemInput{{ProductID: f.productID(t, "Burger"), Quantity: 1}},
	})
	require.NoError(t, err)

	confirmed, err := f.orders.ConfirmPayment(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusReceived), confirmed.Status)

	// Second confirmation fails: received is not payment_pending.
	_, err = f.orders.ConfirmPayment(ctx, order.ID)
	var rule *domain.BusinessRuleError
	assert.ErrorAs(t, err, &rule)

	require.Len(t, f.published.events, 2)
	assert.Equal(t, ports.EventOrderPaymentConfirmed, f.published.events[1].Name)
}

func TestConfirmPaymentUnknownOrder(t *testing.T) {
	f := setupOrderService(t)
	_, err := f.orders.ConfirmPayment(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrderUpdateRejectsEmptyPayload(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()

	order, err := f.orders.Create(ctx, CreateOrderInput{
		Items: []CreateOrderItemInput{{ProductID: f.productID(t, "Burger"), Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = f.orders.Update(ctx, order.ID, UpdateOrderInput{})
	var rule *domain.BusinessRuleError
	assert.ErrorAs(t, err, &rule)
}

func TestOrderUpdateAppliesPatch(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()

	order, err := f.orders.Create(ctx, CreateOrderInput{
		Items: []CreateOrderItemInput{{ProductID: f.productID(t, "Burger"), Quantity: 1}},
	})
	require.NoError(t, err)

	notes := "deliver to table 3"
	updated, err := f.orders.Update(ctx, order.ID, UpdateOrderInput{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, notes, updated.Notes)
	assert.InDelta(t, order.Total, updated.Total, 1e-9, "patching never touches the frozen total")

	_, err = f.orders.Update(ctx, "ghost", UpdateOrderInput{Notes: &notes})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrderListBoardOrdering(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()

	statuses := []domain.Status{domain.StatusCompleted, domain.StatusReceived, domain.StatusPreparing}
	ids := make([]string, len(statuses))
	for i, status := range statuses {
		order, err := f.orders.Create(ctx, CreateOrderInput{
			Items: []CreateOrderItemInput{{ProductID: f.productID(t, "Burger"), Quantity: 1}},
		})
		require.NoError(t, err)
		ids[i] = order.ID

		raw := string(status)
		_, err = f.orders.Update(ctx, order.ID, UpdateOrderInput{Status: &raw})
		require.NoError(t, err)
	}

	listed, err := f.orders.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 3)

	// Status rank wins over creation order: received, preparing, completed.
	assert.Equal(t, ids[1], listed[0].ID)
	assert.Equal(t, ids[2], listed[1].ID)
	assert.Equal(t, ids[0], listed[2].ID)
}

func TestOrderDeleteHidesFromReads(t *testing.T) {
	f := setupOrderService(t)
	ctx := context.Background()

	order, err := f.orders.Create(ctx, CreateOrderInput{
		Items: []CreateOrderItemInput{{ProductID: f.productID(t, "Burger"), Quantity: 1}},
	})
	require.NoError(t, err)

	require.NoError(t, f.orders.Delete(ctx, order.ID))

	_, err = f.orders.Get(ctx, order.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
