package main

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"bookstore/internal/adapters/out/postgres"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

type ImportIntegrationTestSuite struct {
	suite.Suite
	container *postgrescontainer.PostgresContainer
	db        *sql.DB
	ctx       context.Context
}

func TestImportIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ImportIntegrationTestSuite))
}

func (suite *ImportIntegrationTestSuite) SetupSuite() {
	suite.ctx = context.Background()

	container, err := postgrescontainer.Run(suite.ctx,
		"postgres:15-alpine",
		postgrescontainer.WithDatabase("testdb"),
		postgrescontainer.WithUsername("testuser"),
		postgrescontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(suite.ctx, "sslmode=disable")
	suite.Require().NoError(err)

	gormDB, err := postgres.Open(connStr, zap.NewNop())
	suite.Require().NoError(err)
	suite.Require().NoError(postgres.Migrate(gormDB))

	suite.db, err = sql.Open("postgres", connStr)
	suite.Require().NoError(err)
}

func (suite *ImportIntegrationTestSuite) TearDownSuite() {
	if suite.db != nil {
		_ = suite.db.Close()
	}
	if suite.container != nil {
		_ = suite.container.Terminate(suite.ctx)
	}
}

func (suite *ImportIntegrationTestSuite) SetupTest() {
	_, err := suite.db.ExecContext(suite.ctx, "TRUNCATE TABLE books RESTART IDENTITY CASCADE")
	suite.Require().NoError(err)
}

func (suite *ImportIntegrationTestSuite) TestImport_InsertsThenRestocks() {
	books, err := ParseCSV(strings.NewReader(
		"title,author,price,stock,category\n" +
			"Sapiens,Yuval Noah Harari,189000,12,Lịch sử\n" +
			"Đắc Nhân Tâm,Dale Carnegie,86000,5,Kỹ năng\n",
	))
	suite.Require().NoError(err)

	stats, err := Import(suite.ctx, suite.db, books)
	suite.Require().NoError(err)
	suite.Equal(ImportStats{Inserted: 2}, stats)

	restock, err := ParseCSV(strings.NewReader(
		"title,author,price,stock,category\n" +
			"Sapiens,Yuval Noah Harari,1,3,Khác\n",
	))
	suite.Require().NoError(err)

	stats, err = Import(suite.ctx, suite.db, restock)
	suite.Require().NoError(err)
	suite.Equal(ImportStats{Restocked: 1}, stats)

	var stock int
	var price float64
	var category string
	err = suite.db.QueryRowContext(suite.ctx,
		"SELECT stock, price, category FROM books WHERE title = $1", "Sapiens",
	).Scan(&stock, &price, &category)
	suite.Require().NoError(err)
	suite.Equal(15, stock)
	suite.InDelta(189000, price, 0, "only the stock changes on conflict")
	suite.Equal("Lịch sử", category)
}

func (suite *ImportIntegrationTestSuite) TestImport_IsAtomic() {
	books, err := ParseCSV(strings.NewReader(
		"title,author,price,stock,category\n" +
			"Sapiens,Yuval Noah Harari,189000,12,Lịch sử\n",
	))
	suite.Require().NoError(err)
	// Bypasses NewBook so the check constraint rejects the row.
	books = append(books, books[0])
	books[1].Title = "Broken"
	books[1].Stock = -1

	_, err = Import(suite.ctx, suite.db, books)
	suite.Require().Error(err)
	suite.Contains(err.Error(), "check_violation")

	var count int
	suite.Require().NoError(suite.db.QueryRowContext(suite.ctx, "SELECT count(*) FROM books").Scan(&count))
	suite.Zero(count)
}
