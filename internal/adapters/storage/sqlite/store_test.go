package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karineriquena/fiap-soat1-tech-challenge/internal/core/domain"
	"github.com/karineriquena/fiap-soat1-tech-challenge/internal/core/ports"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestCustomer(t *testing.T, name, rawEmail, rawCPF string) *domain.Customer {
	t.Helper()
	email, err := domain.NewEmail(rawEmail)
	require.NoError(t, err)

	var cpf *domain.CPF
	if rawCPF != "" {
		parsed, err := domain.NewCPF(rawCPF)
		require.NoError(t, err)
		cpf = &parsed
	}

	customer, err := domain.NewCustomer("cust-"+name, name, email, cpf)
	require.NoError(t, err)
	return customer
}

func newTestProduct(t *testing.T, id, name string, category domain.Category, price float64) *domain.Product {
	t.Helper()
	product, err := domain.NewProduct(id, name, "", category, price, "")
	require.NoError(t, err)
	return product
}

func TestCustomerStoreRoundTrip(t *testing.T) {
	store := setupStore(t)
	customers := NewCustomerStore(store)
	ctx := context.Background()

	customer := newTestCustomer(t, "Maria", "maria@example.com", "123.456.789-00")
	require.NoError(t, customers.Create(ctx, customer))

	byEmail, err := customers.GetByEmail(ctx, "maria@example.com")
	require.NoError(t, err)
	assert.Equal(t, customer.ID, byEmail.ID)
	assert.Equal(t, "Maria", byEmail.Name)
	require.NotNil(t, byEmail.CPF)
	assert.Equal(t, "123.456.789-00", byEmail.CPF.String())

	byCPF, err := customers.GetByCPF(ctx, "123.456.789-00")
	require.NoError(t, err)
	assert.Equal(t, customer.ID, byCPF.ID)
}

func TestCustomerStoreExistsDuplicate(t *testing.T) {
	store := setupStore(t)
	customers := NewCustomerStore(store)
	ctx := context.Background()

	customer := newTestCustomer(t, "Maria", "maria@example.com", "123.456.789-00")
	require.NoError(t, customers.Create(ctx, customer))

	duplicate, err := customers.ExistsDuplicate(ctx, "maria@example.com", "123.456.789-00")
	require.NoError(t, err)
	assert.True(t, duplicate)

	duplicate, err = customers.ExistsDuplicate(ctx, "maria@example.com", "999.999.999-99")
	require.NoError(t, err)
	assert.False(t, duplicate, "same email but different cpf is not the same pair")
}

func TestCustomerStoreSoftDelete(t *testing.T) {
	store := setupStore(t)
	customers := NewCustomerStore(store)
	ctx := context.Background()

	customer := newTestCustomer(t, "Maria", "maria@example.com", "")
	require.NoError(t, customers.Create(ctx, customer))
	require.NoError(t, customers.Delete(ctx, customer.ID))

	_, err := customers.GetByEmail(ctx, "maria@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Deleting again reports not found: the row is already invisible.
	assert.ErrorIs(t, customers.Delete(ctx, customer.ID), domain.ErrNotFound)
}

func TestProductStoreGetByIDsReturnsFoundSubset(t *testing.T) {
	store := setupStore(t)
	products := NewProductStore(store)
	ctx := context.Background()

	require.NoError(t, products.Create(ctx, newTestProduct(t, "p1", "Burger", domain.CategorySnack, 18.9)))
	require.NoError(t, products.Create(ctx, newTestProduct(t, "p2", "Fries", domain.CategorySide, 7.5)))

	found, err := products.GetByIDs(ctx, []string{"p1", "p2", "ghost"})
	require.NoError(t, err)
	assert.Len(t, found, 2, "missing ids are absent, not errors, at this layer")
}

func TestProductStoreSoftDeleteExcludedFromReads(t *testing.T) {
	store := setupStore(t)
	products := NewProductStore(store)
	ctx := context.Background()

	require.NoError(t, products.Create(ctx, newTestProduct(t, "p1", "Burger", domain.CategorySnack, 18.9)))
	require.NoError(t, products.Delete(ctx, "p1"))

	_, err := products.GetByID(ctx, "p1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	byCategory, err := products.GetByCategory(ctx, domain.CategorySnack)
	require.NoError(t, err)
	assert.Empty(t, byCategory)

	found, err := products.GetByIDs(ctx, []string{"p1"})
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestProductStoreUpdatePatch(t *testing.T) {
	store := setupStore(t)
	products := NewProductStore(store)
	ctx := context.Background()

	require.NoError(t, products.Create(ctx, newTestProduct(t, "p1", "Burger", domain.CategorySnack, 18.9)))

	price := 21.0
	updated, err := products.Update(ctx, "p1", ports.ProductPatch{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "Burger", updated.Name, "untouched fields survive the patch")
	assert.InDelta(t, 21.0, updated.Price, 1e-9)

	_, err = products.Update(ctx, "ghost", ports.ProductPatch{Price: &price})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func newStoredOrder(t *testing.T, orders *OrderStore, id string, status domain.Status, createdAt time.Time) {
	t.Helper()
	order, err := domain.NewOrder(id, "", []domain.OrderItem{
		{ProductID: "p1", Quantity: 1, UnitPrice: 10},
	}, "")
	require.NoError(t, err)
	order.Status = status
	order.CreatedAt = createdAt
	require.NoError(t, orders.Create(context.Background(), order))
}

func TestOrderStoreListBoardOrdering(t *testing.T) {
	store := setupStore(t)
	orders := NewOrderStore(store)

	base := time.Now().UTC().Truncate(time.Second)
	newStoredOrder(t, orders, "o-completed", domain.StatusCompleted, base)
	newStoredOrder(t, orders, "o-received", domain.StatusReceived, base.Add(time.Second))
	newStoredOrder(t, orders, "o-preparing", domain.StatusPreparing, base.Add(2*time.Second))

	listed, err := orders.List(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 3)

	got := []string{listed[0].ID, listed[1].ID, listed[2].ID}
	assert.Equal(t, []string{"o-received", "o-preparing", "o-completed"}, got)
}

func TestOrderStoreListCreationTimeTiebreak(t *testing.T) {
	store := setupStore(t)
	orders := NewOrderStore(store)

	base := time.Now().UTC().Truncate(time.Second)
	newStoredOrder(t, orders, "o-later", domain.StatusReceived, base.Add(time.Minute))
	newStoredOrder(t, orders, "o-earlier", domain.StatusReceived, base)

	listed, err := orders.List(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "o-earlier", listed[0].ID)
	assert.Equal(t, "o-later", listed[1].ID)
}

func TestOrderStoreGetByIDResolvesCustomer(t *testing.T) {
	store := setupStore(t)
	customers := NewCustomerStore(store)
	orders := NewOrderStore(store)
	ctx := context.Background()

	customer := newTestCustomer(t, "Maria", "maria@example.com", "")
	require.NoError(t, customers.Create(ctx, customer))

	order, err := domain.NewOrder("o1", customer.ID, []domain.OrderItem{
		{ProductID: "p1", Quantity: 2, UnitPrice: 9.5},
	}, "extra ketchup")
	require.NoError(t, err)
	require.NoError(t, orders.Create(ctx, order))

	stored, err := orders.GetByID(ctx, "o1")
	require.NoError(t, err)
	require.NotNil(t, stored.Customer)
	assert.Equal(t, "Maria", stored.Customer.Name)
	assert.InDelta(t, 19.0, stored.Total.Value(), 1e-9)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, 2, stored.Items[0].Quantity)
	assert.Equal(t, "extra ketchup", stored.Notes)
}

func TestOrderStoreUpdateStatusConditionalWrite(t *testing.T) {
	store := setupStore(t)
	orders := NewOrderStore(store)
	ctx := context.Background()

	newStoredOrder(t, orders, "o1", domain.StatusPaymentPending, time.Now().UTC())

	err := orders.UpdateStatus(ctx, "o1", domain.StatusPaymentPending, domain.StatusReceived)
	require.NoError(t, err)

	// The guard no longer holds: the row is already in "received".
	err = orders.UpdateStatus(ctx, "o1", domain.StatusPaymentPending, domain.StatusReceived)
	assert.ErrorIs(t, err, domain.ErrStatusConflict)

	err = orders.UpdateStatus(ctx, "ghost", domain.StatusPaymentPending, domain.StatusReceived)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrderStoreSoftDelete(t *testing.T) {
	store := setupStore(t)
	orders := NewOrderStore(store)
	ctx := context.Background()

	newStoredOrder(t, orders, "o1", domain.StatusReceived, time.Now().UTC())
	require.NoError(t, orders.Delete(ctx, "o1"))

	_, err := orders.GetByID(ctx, "o1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	listed, err := orders.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestOrderStoreUpdatePatch(t *testing.T) {
	store := setupStore(t)
	orders := NewOrderStore(store)
	ctx := context.Background()

	newStoredOrder(t, orders, "o1", domain.StatusReceived, time.Now().UTC())

	notes := "table 12"
	updated, err := orders.Update(ctx, "o1", ports.OrderPatch{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, "table 12", updated.Notes)
	assert.Equal(t, domain.StatusReceived, updated.Status)

	_, err = orders.Update(ctx, "ghost", ports.OrderPatch{Notes: &notes})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
