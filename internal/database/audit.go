package database

import (
	"context"
	"time"

	"github.com/The-UnknownHacker/daydream-sydney-db/internal/metrics"
	"github.com/The-UnknownHacker/daydream-sydney-db/internal/models"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// AuditRecorder appends audit entries. It never returns an error: a failed
// audit write is logged and counted, and the caller carries on.
type AuditRecorder struct {
	log zerolog.Logger
	now func() time.Time
}

func NewAuditRecorder(logger zerolog.Logger) *AuditRecorder {
	return &AuditRecorder{log: logger, now: time.Now}
}

// Record is called from inside Writer.Do with the handle it was given.
func (a *AuditRecorder) Record(ctx context.Context, db *gorm.DB, action models.UserAction, table, details string) {
	entry := models.AuditLog{
		Action:    action,
		Table:     table,
		Details:   details,
		Timestamp: a.now().UTC(),
	}

	if err := db.Create(&entry).Error; err != nil {
		metrics.AuditFailures.Inc()
		loggerFrom(ctx, a.log).Error().
			Err(err).
			Str("action", string(action)).
			Str("table", table).
			Str("details", details).
			Msg("failed to write audit log")
	}
}
