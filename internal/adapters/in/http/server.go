package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"bookstore/internal/core/application/usecases/queries"
	"bookstore/internal/core/domain/model/catalog"
	"bookstore/internal/core/domain/model/conversation"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	"go.uber.org/zap"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

type (
	// ChatHandler answers one chat message of a session.
	ChatHandler interface {
		Handle(ctx context.Context, sessionID, message string) (string, error)
	}

	// SessionClearer resets a session to idle.
	SessionClearer interface {
		Clear(ctx context.Context, id string) error
	}

	ListBooksHandler interface {
		Handle(ctx context.Context, query queries.ListBooksQuery) ([]catalog.Book, error)
	}

	GetBookHandler interface {
		Handle(ctx context.Context, query queries.GetBookQuery) (catalog.Book, error)
	}

	SearchBooksHandler interface {
		Handle(ctx context.Context, query queries.SearchBooksQuery) ([]catalog.Book, error)
	}

	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error)
	}

	// HistoryReader returns the recorded turns of a session, oldest first.
	HistoryReader interface {
		History(ctx context.Context, sessionID string, limit int) ([]conversation.Turn, error)
	}

	// Pinger checks the database connection.
	Pinger interface {
		PingContext(ctx context.Context) error
	}
)

// Server holds the HTTP handlers. It coordinates between echo and the
// dialog and catalog use cases.
type Server struct {
	chat     ChatHandler
	sessions SessionClearer

	listBooks   ListBooksHandler
	getBook     GetBookHandler
	searchBooks SearchBooksHandler
	getOrder    GetOrderHandler
	history     HistoryReader
	db          Pinger

	logger *zap.Logger
}

// Handlers groups the Server dependencies. History and DB are optional.
type Handlers struct {
	Chat        ChatHandler
	Sessions    SessionClearer
	ListBooks   ListBooksHandler
	GetBook     GetBookHandler
	SearchBooks SearchBooksHandler
	GetOrder    GetOrderHandler
	History     HistoryReader
	DB          Pinger
}

func NewServer(h Handlers, logger *zap.Logger) *Server {
	return &Server{
		chat:        h.Chat,
		sessions:    h.Sessions,
		listBooks:   h.ListBooks,
		getBook:     h.GetBook,
		searchBooks: h.SearchBooks,
		getOrder:    h.GetOrder,
		history:     h.History,
		db:          h.DB,
		logger:      logger.With(zap.String("component", "http_server")),
	}
}

// Chat handles POST /api/chat. A request without a session id starts a new
// session.
func (s *Server) Chat(ctx echo.Context) error {
	var req ChatRequest
	if err := ctx.Bind(&req); err != nil {
		return fail(ctx, http.StatusBadRequest, "Invalid request body")
	}
	req.Message = strings.TrimSpace(req.Message)
	req.SessionID = strings.TrimSpace(req.SessionID)
	if req.Message == "" {
		return fail(ctx, http.StatusBadRequest, "message is required")
	}
	if err := ctx.Validate(&req); err != nil {
		return fail(ctx, http.StatusBadRequest, err.Error())
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	reply, err := s.chat.Handle(ctx.Request().Context(), req.SessionID, req.Message)
	if err != nil {
		return s.failWith(ctx, err, "Failed to process message")
	}

	return ctx.JSON(http.StatusOK, ChatResponse{
		Success:   true,
		Response:  reply,
		SessionID: req.SessionID,
	})
}

// ListBooks handles GET /api/books.
func (s *Server) ListBooks(ctx echo.Context) error {
	books, err := s.listBooks.Handle(ctx.Request().Context(), queries.NewListBooksQuery())
	if err != nil {
		return s.failWith(ctx, err, "Failed to retrieve books")
	}
	return ctx.JSON(http.StatusOK, BookListResponse{Success: true, Total: len(books), Books: books})
}

// GetBook handles GET /api/books/:id.
func (s *Server) GetBook(ctx echo.Context) error {
	var id int64
	err := runtime.BindStyledParameterWithLocation("simple", false, "id", runtime.ParamLocationPath, ctx.Param("id"), &id)
	if err != nil {
		return fail(ctx, http.StatusBadRequest, "Invalid format for parameter id")
	}

	query, err := queries.NewGetBookQuery(id)
	if err != nil {
		return fail(ctx, http.StatusBadRequest, err.Error())
	}

	book, err := s.getBook.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.failWith(ctx, err, "Failed to retrieve book")
	}
	return ctx.JSON(http.StatusOK, SingleBookResponse{Success: true, Book: book})
}

// SearchBooks handles GET /api/search?q=.
func (s *Server) SearchBooks(ctx echo.Context) error {
	var keyword string
	if err := runtime.BindQueryParameter("form", true, true, "q", ctx.QueryParams(), &keyword); err != nil {
		return fail(ctx, http.StatusBadRequest, "Query parameter 'q' is required")
	}

	query, err := queries.NewSearchBooksQuery(keyword)
	if err != nil {
		return fail(ctx, http.StatusBadRequest, "Query parameter 'q' is required")
	}

	books, err := s.searchBooks.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.failWith(ctx, err, "Failed to search books")
	}
	return ctx.JSON(http.StatusOK, BookListResponse{Success: true, Total: len(books), Books: books})
}

// GetOrder handles GET /api/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	var id int64
	err := runtime.BindStyledParameterWithLocation("simple", false, "id", runtime.ParamLocationPath, ctx.Param("id"), &id)
	if err != nil {
		return fail(ctx, http.StatusBadRequest, "Invalid format for parameter id")
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return fail(ctx, http.StatusBadRequest, err.Error())
	}

	resp, err := s.getOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.failWith(ctx, err, "Failed to retrieve order")
	}
	return ctx.JSON(http.StatusOK, OrderResponse{Success: true, Order: orderFromQuery(resp)})
}

// ClearSession handles DELETE /api/sessions/:id.
func (s *Server) ClearSession(ctx echo.Context) error {
	id := strings.TrimSpace(ctx.Param("id"))
	if id == "" {
		return fail(ctx, http.StatusBadRequest, "session id is required")
	}
	if err := s.sessions.Clear(ctx.Request().Context(), id); err != nil {
		return s.failWith(ctx, err, "Failed to clear session")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// SessionHistory handles GET /api/sessions/:id/history?limit=.
func (s *Server) SessionHistory(ctx echo.Context) error {
	limit := defaultHistoryLimit
	if err := runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &limit); err != nil {
		return fail(ctx, http.StatusBadRequest, "Invalid format for parameter limit")
	}
	if limit < 1 || limit > maxHistoryLimit {
		return fail(ctx, http.StatusBadRequest, "limit must be between 1 and 500")
	}

	turns, err := s.history.History(ctx.Request().Context(), ctx.Param("id"), limit)
	if err != nil {
		return s.failWith(ctx, err, "Failed to retrieve history")
	}
	if turns == nil {
		turns = []conversation.Turn{}
	}
	return ctx.JSON(http.StatusOK, HistoryResponse{Success: true, Total: len(turns), Turns: turns})
}

// Health handles GET /api/health.
func (s *Server) Health(ctx echo.Context) error {
	resp := HealthResponse{Status: "healthy", Service: serviceName}
	if s.db == nil {
		return ctx.JSON(http.StatusOK, resp)
	}

	pingCtx, cancel := context.WithTimeout(ctx.Request().Context(), 2*time.Second)
	defer cancel()
	if err := s.db.PingContext(pingCtx); err != nil {
		s.logger.Warn("database ping failed", zap.Error(err))
		resp.Status = "unhealthy"
		resp.Database = "unreachable"
		return ctx.JSON(http.StatusServiceUnavailable, resp)
	}
	resp.Database = "ok"
	return ctx.JSON(http.StatusOK, resp)
}
