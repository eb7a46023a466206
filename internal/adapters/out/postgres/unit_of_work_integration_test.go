package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "bookstore/internal/adapters/out/postgres"
	"bookstore/internal/adapters/out/postgres/bookrepo"
	"bookstore/internal/adapters/out/postgres/orderrepo"
	"bookstore/internal/core/application/usecases/commands"
	"bookstore/internal/core/application/usecases/queries"
	"bookstore/internal/core/domain/model/catalog"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/core/ports"
	"bookstore/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite runs the unit of work, the order placement
// handler and the order query against a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&bookrepo.BookDTO{}, &orderrepo.OrderDTO{}, &orderrepo.OrderLineDTO{})
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE order_lines, orders, books RESTART IDENTITY").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.CatalogRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackRestoresStock() {
	ctx := context.Background()
	book := suite.seedBook("Sapiens", 12)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(uow.CatalogRepository().DecrementStock(ctx, book.ID, 5))
	testOrder := suite.newOrder(book, 5)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))

	inTx, err := uow.CatalogRepository().Get(ctx, book.ID)
	suite.Require().NoError(err)
	suite.Equal(7, inTx.Stock)

	suite.Require().NoError(uow.Rollback(ctx))

	after, err := suite.factory.Create().CatalogRepository().Get(ctx, book.ID)
	suite.Require().NoError(err)
	suite.Equal(12, after.Stock)

	_, err = suite.factory.Create().OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_IsolationBetweenInstances() {
	ctx := context.Background()
	book := suite.seedBook("Đắc Nhân Tâm", 5)

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()
	suite.Require().NoError(uow1.Begin(ctx))
	suite.Require().NoError(uow2.Begin(ctx))

	order1 := suite.newOrder(book, 1)
	suite.Require().NoError(uow1.OrderRepository().Add(ctx, order1))

	_, err := uow2.OrderRepository().Get(ctx, order1.ID())
	suite.Require().Error(err, "uncommitted order must not be visible to another transaction")

	suite.Require().NoError(uow1.Commit(ctx))
	suite.Require().NoError(uow2.Rollback(ctx))

	_, err = suite.factory.Create().OrderRepository().Get(ctx, order1.ID())
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestPlaceOrder_EndToEnd() {
	ctx := context.Background()
	sapiens := suite.seedBook("Sapiens", 12)
	alchemist := suite.seedBook("Nhà Giả Kim", 3)

	handler := commands.NewPlaceOrderCommandHandler(uowFactory(func() commands.UoW {
		return suite.factory.Create()
	}))
	cmd, err := commands.NewPlaceOrderCommand(
		order.Customer{Name: "Nguyễn Văn An", Phone: "0987654321", Address: "12 Lê Lợi, Quận 1"},
		[]commands.PlaceOrderItem{{BookID: sapiens.ID, Quantity: 2}, {BookID: alchemist.ID, Quantity: 1}},
	)
	suite.Require().NoError(err)

	orderID, err := handler.Handle(ctx, cmd)
	suite.Require().NoError(err)
	suite.Positive(orderID)

	books := suite.factory.Create().CatalogRepository()
	left, err := books.Get(ctx, sapiens.ID)
	suite.Require().NoError(err)
	suite.Equal(10, left.Stock)
	left, err = books.Get(ctx, alchemist.ID)
	suite.Require().NoError(err)
	suite.Equal(2, left.Stock)

	resp, err := queries.NewGetOrderQueryHandler(suite.db).Handle(ctx, mustGetOrderQuery(suite, orderID))
	suite.Require().NoError(err)
	suite.Equal(orderID, resp.ID)
	suite.Equal("Nguyễn Văn An", resp.CustomerName)
	suite.Equal(3, resp.TotalQuantity)
	suite.InDelta(2*100000.0+100000.0, resp.TotalPrice, 0.001)
	suite.Equal("2 x Sapiens; 1 x Nhà Giả Kim", resp.Note)
	suite.Require().Len(resp.Lines, 2)
	suite.Equal(sapiens.ID, resp.Lines[0].BookID)
	suite.Equal(2, resp.Lines[0].Quantity)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestPlaceOrder_InsufficientStockRollsBack() {
	ctx := context.Background()
	sapiens := suite.seedBook("Sapiens", 12)
	alchemist := suite.seedBook("Nhà Giả Kim", 1)

	handler := commands.NewPlaceOrderCommandHandler(uowFactory(func() commands.UoW {
		return suite.factory.Create()
	}))
	cmd, err := commands.NewPlaceOrderCommand(
		order.Customer{Name: "An", Phone: "0987654321", Address: "12 Lê Lợi"},
		[]commands.PlaceOrderItem{{BookID: sapiens.ID, Quantity: 2}, {BookID: alchemist.ID, Quantity: 3}},
	)
	suite.Require().NoError(err)

	_, err = handler.Handle(ctx, cmd)
	suite.Require().ErrorIs(err, commands.ErrInsufficientStock)

	left, err := suite.factory.Create().CatalogRepository().Get(ctx, sapiens.ID)
	suite.Require().NoError(err)
	suite.Equal(12, left.Stock, "first line must be rolled back")

	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Zero(count)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestGetOrderQuery_UnknownOrder() {
	_, err := queries.NewGetOrderQueryHandler(suite.db).Handle(context.Background(), mustGetOrderQuery(suite, 404))
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) seedBook(title string, stock int) catalog.Book {
	book, err := catalog.NewBook(0, title, "Tác giả", 100000, stock, "Sách")
	suite.Require().NoError(err)
	book, err = bookrepo.NewGormBookRepository(suite.db).Add(context.Background(), book)
	suite.Require().NoError(err)
	return book
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder(book catalog.Book, qty int) *order.Order {
	line, err := order.NewLine(book.ID, book.Title, book.Price, qty)
	suite.Require().NoError(err)
	o, err := order.NewOrder(
		order.Customer{Name: "An", Phone: "0987654321", Address: "12 Lê Lợi"},
		[]order.Line{line},
		time.Now(),
	)
	suite.Require().NoError(err)
	return o
}

func mustGetOrderQuery(suite *UnitOfWorkIntegrationTestSuite, id int64) queries.GetOrderQuery {
	q, err := queries.NewGetOrderQuery(id)
	suite.Require().NoError(err)
	return q
}

type uowFactory func() commands.UoW

func (f uowFactory) Create() commands.UoW { return f() }

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
