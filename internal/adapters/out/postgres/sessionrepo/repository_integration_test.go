package sessionrepo_test

import (
	"context"
	"testing"
	"time"

	"bookstore/internal/adapters/out/postgres/sessionrepo"
	"bookstore/internal/core/domain/model/catalog"
	"bookstore/internal/core/domain/model/dialog"
	"bookstore/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type SessionRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *sessionrepo.GormSessionRepository
}

func (suite *SessionRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&sessionrepo.SessionDTO{}))
}

func (suite *SessionRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE chat_sessions").Error)
	suite.repository = sessionrepo.NewGormSessionRepository(suite.db)
}

func (suite *SessionRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *SessionRepositoryIntegrationTestSuite) TestSaveAndGet_RoundTripsDraft() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	session, err := dialog.NewSession("chat-1", now)
	suite.Require().NoError(err)
	draft, err := dialog.NewSingleDraft(catalog.Book{ID: 2, Title: "Đắc Nhân Tâm", Price: 86000, Stock: 5})
	suite.Require().NoError(err)
	suite.Require().NoError(draft.FillQuantity(2))
	suite.Require().NoError(session.Apply(dialog.AskCustomerName, dialog.ContextPatch{Draft: draft}, now))

	suite.Require().NoError(suite.repository.Save(ctx, session))

	got, err := suite.repository.Get(ctx, "chat-1")
	suite.Require().NoError(err)
	suite.Equal(dialog.AskCustomerName, got.State())
	suite.Equal(draft, got.Draft())
	suite.Nil(got.Selection())
	suite.WithinDuration(now, got.UpdatedAt(), time.Millisecond)
}

func (suite *SessionRepositoryIntegrationTestSuite) TestSave_OverwritesStateAndContext() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	session, err := dialog.NewSession("chat-2", now)
	suite.Require().NoError(err)
	books := []catalog.Book{{ID: 1, Title: "Harry Potter 1", Stock: 3}, {ID: 2, Title: "Harry Potter 2", Stock: 3}}
	suite.Require().NoError(session.Apply(dialog.ChooseBook, dialog.ContextPatch{Selection: dialog.NewSelection(books)}, now))
	suite.Require().NoError(suite.repository.Save(ctx, session))

	session.Reset(now.Add(time.Second))
	suite.Require().NoError(suite.repository.Save(ctx, session))

	got, err := suite.repository.Get(ctx, "chat-2")
	suite.Require().NoError(err)
	suite.Equal(dialog.Idle, got.State())
	suite.True(got.Context().IsEmpty())
	suite.WithinDuration(now, got.CreatedAt(), time.Millisecond)

	var count int64
	suite.Require().NoError(suite.db.Model(&sessionrepo.SessionDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *SessionRepositoryIntegrationTestSuite) TestGet_UnknownSession() {
	_, err := suite.repository.Get(context.Background(), "missing")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *SessionRepositoryIntegrationTestSuite) TestDeleteAndDeleteIdleSince() {
	ctx := context.Background()
	now := time.Now().UTC()

	for i, id := range []string{"old-1", "old-2", "fresh"} {
		at := now.Add(-2 * time.Hour)
		if i == 2 {
			at = now
		}
		s, err := dialog.NewSession(id, at)
		suite.Require().NoError(err)
		suite.Require().NoError(suite.repository.Save(ctx, s))
	}

	removed, err := suite.repository.DeleteIdleSince(ctx, now.Add(-time.Hour))
	suite.Require().NoError(err)
	suite.Equal(int64(2), removed)

	suite.Require().NoError(suite.repository.Delete(ctx, "fresh"))
	suite.Require().NoError(suite.repository.Delete(ctx, "fresh"), "deleting twice is not an error")

	_, err = suite.repository.Get(ctx, "fresh")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestSessionRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(SessionRepositoryIntegrationTestSuite))
}
