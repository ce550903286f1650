// internal/workers/admin/purge-notifications/handler.go
package purgenotifications

import (
	"context"
	"database/sql"
	"fmt"

	commonerrors "fruitcenter-events/internal/common/errors"
	"fruitcenter-events/internal/common/logger"
)

const (
	TaskType = "purge-notifications"
)

// Handler wipes the notifications table in a single transaction. Maintenance
// tooling for clearing out records generated by test runs.
type Handler struct {
	config *Config
	db     *sql.DB
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		db:     db,
		logger: log.With(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Execute(ctx context.Context) (*PurgeResult, error) {
	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin purge transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM notifications`)
	if err != nil {
		return nil, commonerrors.NewQueryExecutionFailedError("DELETE FROM notifications", err)
	}

	count, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("count deleted notifications: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit purge transaction: %w", err)
	}

	h.logger.Info("purged notifications", map[string]interface{}{
		"count": count,
	})
	return &PurgeResult{
		Success: true,
		Message: fmt.Sprintf("Successfully deleted %d test notifications", count),
		Count:   count,
	}, nil
}
