// internal/service/tx.go
package service

import (
	"context"
	"fmt"

	"splitledger/internal/repository"
	"splitledger/pkg/db"
)

// TxManager runs a unit of work inside one database transaction.
// The begin/commit/rollback functions are injected so tests can replace them.
type TxManager struct {
	dbBeginner db.DBTxBeginner   // For starting transactions (e.g., *sqlx.DB)
	beginTx    db.BeginTxFunc    // Injected dependency for beginning transactions
	commitTx   db.CommitTxFunc   // Injected dependency for committing transactions
	rollbackTx db.RollbackTxFunc // Injected dependency for rolling back transactions
}

// NewTxManager creates a TxManager.
func NewTxManager(dbBeginner db.DBTxBeginner, beginTx db.BeginTxFunc, commitTx db.CommitTxFunc, rollbackTx db.RollbackTxFunc) *TxManager {
	return &TxManager{
		dbBeginner: dbBeginner,
		beginTx:    beginTx,
		commitTx:   commitTx,
		rollbackTx: rollbackTx,
	}
}

// WithinTx calls fn with a transactional executor and commits if fn succeeds.
// Any error from fn rolls the whole unit back and is returned unwrapped.
func (m *TxManager) WithinTx(ctx context.Context, op string, fn func(q repository.DBExecutor) error) error {
	txController, err := m.beginTx(ctx, m.dbBeginner)
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer m.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return fmt.Errorf("%s: transaction controller does not implement DBExecutor", op)
	}

	if err := fn(txExecutor); err != nil {
		return err
	}

	if err := m.commitTx(txController); err != nil {
		return fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}
	return nil
}
