package records

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/The-UnknownHacker/daydream-sydney-db/internal/config"
	"github.com/The-UnknownHacker/daydream-sydney-db/internal/database"
	"github.com/The-UnknownHacker/daydream-sydney-db/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *database.Store) {
	t.Helper()

	cfg := config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		Path:         filepath.Join(t.TempDir(), "records.db"),
		BusyTimeout:  5 * time.Second,
		MaxRetries:   3,
		RetryBackoff: time.Millisecond,
	}
	store, err := database.Open(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	svc := NewService(store)
	svc.now = func() time.Time { return fixedNow }
	return svc, store
}

func mustCreateUser(t *testing.T, svc *Service, id, email string) *models.User {
	t.Helper()
	u, err := svc.CreateUser(context.Background(), UserInput{ID: id, Name: "User " + id, Email: email})
	require.NoError(t, err)
	return u
}

func mustLinkTag(t *testing.T, svc *Service, tagID, userID string) {
	t.Helper()
	_, _, err := svc.LinkTag(context.Background(), TagInput{TagID: tagID, UserID: userID})
	require.NoError(t, err)
}

func auditDetails(t *testing.T, svc *Service) []string {
	t.Helper()
	logs, err := svc.ListAudit(context.Background(), AuditFilter{})
	require.NoError(t, err)
	out := make([]string, 0, len(logs))
	for _, l := range logs {
		out = append(out, l.Details)
	}
	return out
}
