package http

import (
	"time"

	"bookstore/internal/core/application/usecases/queries"
	"bookstore/internal/core/domain/model/catalog"
	"bookstore/internal/core/domain/model/conversation"
)

const serviceName = "BookStore Chatbot API"

type ChatRequest struct {
	SessionID string `json:"session_id" validate:"omitempty,max=128"`
	Message   string `json:"message" validate:"required,max=2000"`
}

type ChatResponse struct {
	Success   bool   `json:"success"`
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

type BookListResponse struct {
	Success bool           `json:"success"`
	Total   int            `json:"total"`
	Books   []catalog.Book `json:"books"`
}

type SingleBookResponse struct {
	Success bool         `json:"success"`
	Book    catalog.Book `json:"book"`
}

type OrderLine struct {
	BookID    int64   `json:"book_id"`
	Title     string  `json:"title"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

type Order struct {
	ID            int64       `json:"order_id"`
	CustomerName  string      `json:"customer_name"`
	Phone         string      `json:"phone"`
	Address       string      `json:"address"`
	TotalQuantity int         `json:"total_quantity"`
	TotalPrice    float64     `json:"total_price"`
	Note          string      `json:"note"`
	CreatedAt     time.Time   `json:"created_at"`
	Lines         []OrderLine `json:"lines"`
}

type OrderResponse struct {
	Success bool  `json:"success"`
	Order   Order `json:"order"`
}

type HistoryResponse struct {
	Success bool                `json:"success"`
	Total   int                 `json:"total"`
	Turns   []conversation.Turn `json:"turns"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Database string `json:"database,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func orderFromQuery(resp queries.GetOrderQueryResponse) Order {
	lines := make([]OrderLine, len(resp.Lines))
	for i, l := range resp.Lines {
		lines[i] = OrderLine{BookID: l.BookID, Title: l.Title, UnitPrice: l.UnitPrice, Quantity: l.Quantity}
	}
	return Order{
		ID:            resp.ID,
		CustomerName:  resp.CustomerName,
		Phone:         resp.Phone,
		Address:       resp.Address,
		TotalQuantity: resp.TotalQuantity,
		TotalPrice:    resp.TotalPrice,
		Note:          resp.Note,
		CreatedAt:     resp.CreatedAt,
		Lines:         lines,
	}
}
