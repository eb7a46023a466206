package queries

import (
	"context"
	"database/sql"
	"errors"

	"bookstore/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler reads an order and its lines straight from the
// database, bypassing the aggregate.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order lookups.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns the order or errs.ErrObjectNotFound. Lines are sorted by
// insertion order.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var resp GetOrderQueryResponse
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			customer_name,
			phone,
			address,
			total_quantity,
			total_price,
			note,
			created_at
		FROM orders
		WHERE order_id = ?
	`, query.ID()).Row()

	err := row.Scan(
		&resp.ID,
		&resp.CustomerName,
		&resp.Phone,
		&resp.Address,
		&resp.TotalQuantity,
		&resp.TotalPrice,
		&resp.Note,
		&resp.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.ID())
		}
		return GetOrderQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			book_id,
			title,
			unit_price,
			quantity
		FROM order_lines
		WHERE order_id = ?
		ORDER BY id
	`, query.ID()).Rows()
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	defer rows.Close()

	resp.Lines = make([]GetOrderQueryLine, 0)
	for rows.Next() {
		var line GetOrderQueryLine
		if err = rows.Scan(&line.BookID, &line.Title, &line.UnitPrice, &line.Quantity); err != nil {
			return GetOrderQueryResponse{}, err
		}
		resp.Lines = append(resp.Lines, line)
	}

	return resp, rows.Err()
}
