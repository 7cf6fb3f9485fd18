package database

import (
	"context"
	"testing"
	"time"

	"github.com/The-UnknownHacker/daydream-sydney-db/internal/metrics"
	"github.com/The-UnknownHacker/daydream-sydney-db/internal/models"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditRecorderAppends(t *testing.T) {
	store := openTestStore(t)
	fixed := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	store.Audit.now = func() time.Time { return fixed }

	store.Audit.Record(context.Background(), store.DB, models.ActionInsert, models.TableUsers, "User u1 created")
	store.Audit.Record(context.Background(), store.DB, models.ActionDelete, models.TableUsers, "User u1 deleted")

	var entries []models.AuditLog
	require.NoError(t, store.DB.Order("id asc").Find(&entries).Error)
	require.Len(t, entries, 2)

	assert.Equal(t, models.ActionInsert, entries[0].Action)
	assert.Equal(t, "users", entries[0].Table)
	assert.Equal(t, "User u1 created", entries[0].Details)
	assert.True(t, fixed.Equal(entries[0].Timestamp))
	assert.Greater(t, entries[1].ID, entries[0].ID)
}

func TestAuditRecorderSwallowsFailures(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.DB.Migrator().DropTable(&models.AuditLog{}))
	before := testutil.ToFloat64(metrics.AuditFailures)

	assert.NotPanics(t, func() {
		store.Audit.Record(context.Background(), store.DB, models.ActionInsert, models.TableStars, "Star s1 for user u1")
	})
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.AuditFailures)-before)
}
