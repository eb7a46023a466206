package ports

import (
	"context"
)

// UnitOfWorkFactory hands out a fresh UnitOfWork per order placement.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction in which stock is decremented and the order
// inserted. Repositories obtained from it run inside the transaction once
// Begin has been called.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit fails when Begin was not called.
	Commit(ctx context.Context) error

	// Rollback fails when there is no open transaction, including after a
	// successful Commit. Deferred calls may ignore the error.
	Rollback(ctx context.Context) error

	CatalogRepository() CatalogRepository
	OrderRepository() OrderRepository
}
