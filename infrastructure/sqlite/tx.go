package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
)

var (
	errNoWriter = errors.New("write db is not initialized")
	errNoReader = errors.New("read db is not initialized")
)

// WithWriteTx runs fn on the single writer. The DSN uses _txlock=immediate,
// so the write lock is held from BEGIN and other writers wait on the busy
// timeout.
func (db *DB) WithWriteTx(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) error {
	if db == nil || db.W == nil {
		return errNoWriter
	}
	return db.W.RunInTx(ctx, &sql.TxOptions{}, fn)
}

// WithReadTx runs fn on the read pool; writes inside fn fail.
func (db *DB) WithReadTx(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) error {
	if db == nil || db.R == nil {
		return errNoReader
	}
	return db.R.RunInTx(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}
