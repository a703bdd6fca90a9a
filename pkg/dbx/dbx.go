// Package dbx runs repository calls inside a store transaction. The active
// transaction travels in the context so repositories stay unaware of it.
package dbx

import (
	"context"
)

// TxRunner executes fn inside one transaction. When fn returns an error the
// transaction is rolled back and the error is returned unchanged.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// TxFunc adapts a function to TxRunner.
type TxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

func (f TxFunc) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return f(ctx, fn)
}

// NoTx runs fn directly. Used when the store has no transactions.
var NoTx TxRunner = TxFunc(func(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
})
