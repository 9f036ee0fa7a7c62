// Package dbmetrics оборачивает *sql.DB сбором метрик и определяет
// интерфейсы исполнителей запросов, через которые работают репозитории.
// Активная транзакция передаётся репозиториям через context.
package dbmetrics

import (
	"context"
	"database/sql"
)

// DBExecutor интерфейс исполнителя запросов (БД или транзакция)
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TxExecutor интерфейс транзакции. Реализуется *sql.Tx и *Tx (обёртка с метриками).
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

type txCtxKey struct{}

// WithTx кладёт активную транзакцию в context
func WithTx(ctx context.Context, tx TxExecutor) context.Context {
	return context.WithValue(ctx, txCtxKey{}, tx)
}

// TxFromContext извлекает активную транзакцию из context, если она есть
func TxFromContext(ctx context.Context) (TxExecutor, bool) {
	tx, ok := ctx.Value(txCtxKey{}).(TxExecutor)
	return tx, ok
}

// GetExecutor возвращает транзакцию из context, если она есть, иначе fallback.
// Репозитории вызывают его в начале каждого метода, благодаря чему один и тот
// же код работает и внутри транзакции, и вне её.
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return fallback
}

// IsInTransaction сообщает, выполняется ли запрос внутри транзакции.
// Репозитории используют это для добавления FOR UPDATE к блокирующим SELECT.
func IsInTransaction(ctx context.Context) bool {
	_, ok := TxFromContext(ctx)
	return ok
}
