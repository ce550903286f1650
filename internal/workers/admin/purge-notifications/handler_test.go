// internal/workers/admin/purge-notifications/handler_test.go
package purgenotifications

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fruitcenter-events/internal/common/logger"
)

func newTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	t.Helper()
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewHandler(&Config{Timeout: 5 * time.Second}, db, logger.NewTestLogger(t)), dbMock
}

var purgeStmt = regexp.QuoteMeta(`DELETE FROM notifications`)

func TestExecute_DeletesAllAndReportsCount(t *testing.T) {
	h, dbMock := newTestHandler(t)

	dbMock.ExpectBegin()
	dbMock.ExpectExec(purgeStmt).WillReturnResult(sqlmock.NewResult(0, 42))
	dbMock.ExpectCommit()

	result, err := h.Execute(context.Background())

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, int64(42), result.Count)
	assert.Equal(t, "Successfully deleted 42 test notifications", result.Message)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestExecute_EmptyTableReportsZero(t *testing.T) {
	h, dbMock := newTestHandler(t)

	dbMock.ExpectBegin()
	dbMock.ExpectExec(purgeStmt).WillReturnResult(sqlmock.NewResult(0, 0))
	dbMock.ExpectCommit()

	result, err := h.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(0), result.Count)
}

func TestExecute_DeleteFailureRollsBack(t *testing.T) {
	h, dbMock := newTestHandler(t)

	dbMock.ExpectBegin()
	dbMock.ExpectExec(purgeStmt).WillReturnError(errors.New("deadlock detected"))
	dbMock.ExpectRollback()

	_, err := h.Execute(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "QUERY_EXECUTION_FAILED")
	assert.Contains(t, err.Error(), "deadlock detected")
	assert.NoError(t, dbMock.ExpectationsWereMet())
}
