package commands_test

import (
	"context"
	"errors"
	"testing"

	"bookstore/internal/core/application/usecases/commands"
	"bookstore/internal/core/domain/model/catalog"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/core/ports"
	"bookstore/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCatalogRepository struct{ mock.Mock }

func (m *MockCatalogRepository) Search(_ context.Context, _ string) ([]catalog.Book, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockCatalogRepository) Get(ctx context.Context, id int64) (catalog.Book, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(catalog.Book), args.Error(1)
}
func (m *MockCatalogRepository) ListAll(_ context.Context) ([]catalog.Book, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockCatalogRepository) DecrementStock(ctx context.Context, id int64, quantity int) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Get(_ context.Context, _ int64) (*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) CatalogRepository() ports.CatalogRepository {
	args := m.Called()
	return args.Get(0).(ports.CatalogRepository)
}
func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

func validCommand(t *testing.T, items ...commands.PlaceOrderItem) commands.PlaceOrderCommand {
	t.Helper()
	cmd, err := commands.NewPlaceOrderCommand(order.Customer{
		Name:    "Lan",
		Phone:   "0987654321",
		Address: "12 Lê Lợi, Quận 1",
	}, items)
	require.NoError(t, err)
	return cmd
}

func assignID(id int64) func(mock.Arguments) {
	return func(args mock.Arguments) {
		_ = args.Get(1).(*order.Order).AssignID(id)
	}
}

func TestPlaceOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := validCommand(t,
		commands.PlaceOrderItem{BookID: 1, Quantity: 2},
		commands.PlaceOrderItem{BookID: 2, Quantity: 1},
	)

	books := new(MockCatalogRepository)
	orders := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CatalogRepository").Return(books).Once(),
		books.On("Get", ctx, int64(1)).Return(catalog.Book{ID: 1, Title: "Sapiens", Price: 189000, Stock: 5}, nil).Once(),
		books.On("DecrementStock", ctx, int64(1), 2).Return(nil).Once(),
		books.On("Get", ctx, int64(2)).Return(catalog.Book{ID: 2, Title: "Nhà Giả Kim", Price: 79000, Stock: 1}, nil).Once(),
		books.On("DecrementStock", ctx, int64(2), 1).Return(nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("Add", ctx, mock.AnythingOfType("*order.Order")).Run(assignID(42)).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory)
	id, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	placed := orders.Calls[0].Arguments.Get(1).(*order.Order)
	assert.Equal(t, 3, placed.TotalQuantity())
	assert.Equal(t, "2 x Sapiens; 1 x Nhà Giả Kim", placed.Note())

	books.AssertExpectations(t)
	orders.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.PlaceOrderCommand{}
	factory := new(MockUoWFactory)
	h := commands.NewPlaceOrderCommandHandler(factory)

	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrPlaceOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestPlaceOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd := validCommand(t, commands.PlaceOrderItem{BookID: 1, Quantity: 1})

	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewPlaceOrderCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	uow.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_InsufficientStock(t *testing.T) {
	ctx := t.Context()
	cmd := validCommand(t, commands.PlaceOrderItem{BookID: 1, Quantity: 3})

	books := new(MockCatalogRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CatalogRepository").Return(books).Once(),
		books.On("Get", ctx, int64(1)).Return(catalog.Book{ID: 1, Title: "Sapiens", Price: 1, Stock: 2}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrInsufficientStock)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	books.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_UnknownBook(t *testing.T) {
	ctx := t.Context()
	cmd := validCommand(t, commands.PlaceOrderItem{BookID: 9, Quantity: 1})

	books := new(MockCatalogRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CatalogRepository").Return(books).Once(),
		books.On("Get", ctx, int64(9)).Return(catalog.Book{}, errs.NewObjectNotFoundError("book", int64(9))).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd := validCommand(t, commands.PlaceOrderItem{BookID: 1, Quantity: 1})

	books := new(MockCatalogRepository)
	orders := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CatalogRepository").Return(books).Once(),
		books.On("Get", ctx, int64(1)).Return(catalog.Book{ID: 1, Title: "Sapiens", Price: 1, Stock: 2}, nil).Once(),
		books.On("DecrementStock", ctx, int64(1), 1).Return(nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	books.AssertExpectations(t)
	orders.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	cmd := validCommand(t, commands.PlaceOrderItem{BookID: 1, Quantity: 1})

	books := new(MockCatalogRepository)
	orders := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CatalogRepository").Return(books).Once(),
		books.On("Get", ctx, int64(1)).Return(catalog.Book{ID: 1, Title: "Sapiens", Price: 1, Stock: 2}, nil).Once(),
		books.On("DecrementStock", ctx, int64(1), 1).Return(nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("Add", ctx, mock.AnythingOfType("*order.Order")).Run(assignID(7)).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory)
	id, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.Zero(t, id)
	uow.AssertExpectations(t)
}
