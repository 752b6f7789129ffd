package dbmetrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTx struct {
	SqlTxWrapper
}

func TestGetExecutor(t *testing.T) {
	db := Wrap(nil)
	ctx := context.Background()

	assert.False(t, IsInTransaction(ctx))
	assert.Same(t, db, GetExecutor(ctx, db))

	tx := &fakeTx{}
	txCtx := WithTx(ctx, tx)

	assert.True(t, IsInTransaction(txCtx))
	assert.Same(t, tx, GetExecutor(txCtx, db))
}

func TestOperationOf(t *testing.T) {
	assert.Equal(t, "select", operationOf("SELECT id FROM rooms"))
	assert.Equal(t, "insert", operationOf("  INSERT INTO reservations (id) VALUES ($1)"))
	assert.Equal(t, "unknown", operationOf(""))
}
