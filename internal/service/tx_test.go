// internal/service/tx_test.go
package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"splitledger/internal/repository"
	"splitledger/pkg/db"
)

// plainTxController can commit and roll back but cannot run queries.
type plainTxController struct{ mock.Mock }

func (p *plainTxController) Commit() error   { return p.Called().Error(0) }
func (p *plainTxController) Rollback() error { return p.Called().Error(0) }

func TestWithinTx(t *testing.T) {
	t.Run("CommitsOnSuccess", func(t *testing.T) {
		mockTxController := new(MockTxController)
		mockTxController.On("Commit").Return(nil).Once()
		mockTxController.On("Rollback").Return(nil).Maybe()
		tx := newMockTxManager(new(MockDBBeginner), mockTxController)

		var got repository.DBExecutor
		err := tx.WithinTx(context.Background(), "op", func(q repository.DBExecutor) error {
			got = q
			return nil
		})

		assert.NoError(t, err)
		assert.Same(t, mockTxController, got)
		mockTxController.AssertExpectations(t)
	})

	t.Run("RollsBackOnError", func(t *testing.T) {
		mockTxController := new(MockTxController)
		mockTxController.On("Rollback").Return(nil).Once()
		tx := newMockTxManager(new(MockDBBeginner), mockTxController)

		boom := errors.New("boom")
		err := tx.WithinTx(context.Background(), "op", func(q repository.DBExecutor) error { return boom })

		assert.Same(t, boom, err)
		mockTxController.AssertNotCalled(t, "Commit")
		mockTxController.AssertExpectations(t)
	})

	t.Run("CommitFailure", func(t *testing.T) {
		mockTxController := new(MockTxController)
		mockTxController.On("Commit").Return(errors.New("connection reset")).Once()
		mockTxController.On("Rollback").Return(nil).Once()
		tx := newMockTxManager(new(MockDBBeginner), mockTxController)

		err := tx.WithinTx(context.Background(), "op", func(q repository.DBExecutor) error { return nil })

		assert.ErrorContains(t, err, "op: failed to commit transaction")
		mockTxController.AssertExpectations(t)
	})

	t.Run("BeginFailure", func(t *testing.T) {
		called := false
		tx := NewTxManager(new(MockDBBeginner),
			func(ctx context.Context, dbConn db.DBTxBeginner) (db.TxController, error) {
				return nil, errors.New("too many connections")
			},
			func(tx db.TxController) error { return nil },
			func(tx db.TxController) {},
		)

		err := tx.WithinTx(context.Background(), "op", func(q repository.DBExecutor) error {
			called = true
			return nil
		})

		assert.ErrorContains(t, err, "op: failed to begin transaction")
		assert.False(t, called)
	})

	t.Run("ControllerWithoutExecutor", func(t *testing.T) {
		controller := new(plainTxController)
		controller.On("Rollback").Return(nil).Once()
		tx := NewTxManager(new(MockDBBeginner),
			func(ctx context.Context, dbConn db.DBTxBeginner) (db.TxController, error) { return controller, nil },
			func(tx db.TxController) error { return tx.Commit() },
			func(tx db.TxController) { _ = tx.Rollback() },
		)

		err := tx.WithinTx(context.Background(), "op", func(q repository.DBExecutor) error { return nil })

		assert.ErrorContains(t, err, "does not implement DBExecutor")
		controller.AssertNotCalled(t, "Commit")
		controller.AssertExpectations(t)
	})
}
