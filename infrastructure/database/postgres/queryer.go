package postgres

import (
	"context"
	"database/sql"
)

// Queryer é a superfície mínima de leitura/escrita que os
// repositórios usam em cada operação
type Queryer interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (sql.Result, error)
	Query(ctx context.Context, sql string, args ...interface{}) (*sql.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) *sql.Row
}

// Conn é a dependência injetada nos repositórios: o Queryer mais o
// ciclo de vida da conexão e o suporte a transações
type Conn interface {
	Queryer
	Begin(context.Context) (*sql.Tx, error)
	Close() error
	Ping(context.Context) error
	RunInTransaction(context.Context, func(*sql.Tx) error) error
}
