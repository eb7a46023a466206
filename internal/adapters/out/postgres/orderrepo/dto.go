// Package orderrepo maps order aggregates to the orders and order_lines tables.
//
// The order row carries the aggregated quantity, the total and a readable
// itemization note next to the normalized lines, so reports that only read
// the orders table still see what was bought.
package orderrepo

import (
	"time"

	"bookstore/internal/core/domain/model/order"
)

// OrderDTO is the row of the orders table.
type OrderDTO struct {
	ID            int64     `gorm:"column:order_id;primaryKey;autoIncrement"`
	CustomerName  string    `gorm:"not null"`
	Phone         string    `gorm:"size:11;not null"`
	Address       string    `gorm:"not null"`
	TotalQuantity int       `gorm:"not null"`
	TotalPrice    float64   `gorm:"type:numeric(14,2);not null"`
	Note          string    `gorm:"not null;default:''"`
	CreatedAt     time.Time `gorm:"not null;index"`

	Lines []OrderLineDTO `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming convention.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLineDTO is one ordered book. Title and unit price are copied at order
// time so later catalog edits do not rewrite history.
type OrderLineDTO struct {
	ID        int64   `gorm:"primaryKey;autoIncrement"`
	OrderID   int64   `gorm:"not null;index"`
	BookID    int64   `gorm:"not null;index"`
	Title     string  `gorm:"not null"`
	UnitPrice float64 `gorm:"type:numeric(12,2);not null"`
	Quantity  int     `gorm:"not null"`
}

// TableName overrides GORM's default naming convention.
func (OrderLineDTO) TableName() string {
	return "order_lines"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	customer := aggregate.Customer()
	lines := aggregate.Lines()

	dto := OrderDTO{
		ID:            aggregate.ID(),
		CustomerName:  customer.Name,
		Phone:         customer.Phone,
		Address:       customer.Address,
		TotalQuantity: aggregate.TotalQuantity(),
		TotalPrice:    aggregate.TotalPrice(),
		Note:          aggregate.Note(),
		CreatedAt:     aggregate.CreatedAt(),
		Lines:         make([]OrderLineDTO, 0, len(lines)),
	}
	for _, l := range lines {
		dto.Lines = append(dto.Lines, OrderLineDTO{
			OrderID:   aggregate.ID(),
			BookID:    l.BookID(),
			Title:     l.Title(),
			UnitPrice: l.UnitPrice(),
			Quantity:  l.Quantity(),
		})
	}
	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	lines := make([]order.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		line, err := order.NewLine(l.BookID, l.Title, l.UnitPrice, l.Quantity)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	customer := order.Customer{Name: dto.CustomerName, Phone: dto.Phone, Address: dto.Address}
	return order.RestoreOrder(dto.ID, customer, lines, dto.CreatedAt)
}
