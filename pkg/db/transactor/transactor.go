package transactor

import (
	"context"
)

// Transactor runs a function within a single database transaction.
// The transaction travels in the context, so repositories stay unaware
// of transaction boundaries.
type Transactor interface {
	WithinTransaction(context.Context, func(context.Context) error) error
}

type noopTransactor struct{}

// NewNoopTransactor builds a Transactor that runs the function directly,
// for stores with no transaction support
func NewNoopTransactor() Transactor {
	return noopTransactor{}
}

func (noopTransactor) WithinTransaction(ctx context.Context, txFunc func(context.Context) error) error {
	return txFunc(ctx)
}
