package records

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/The-UnknownHacker/daydream-sydney-db/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestCreateStarRequiresUser(t *testing.T) {
	svc, store := newTestService(t)

	_, _, err := svc.CreateStar(context.Background(), StarInput{ID: "s1", UserID: "ghost"})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "user ghost does not exist")

	var count int64
	require.NoError(t, store.DB.Model(&models.Star{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateStarIsIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	mustCreateUser(t, svc, "u1", "a@x.com")
	mustCreateUser(t, svc, "u2", "b@x.com")

	first, created, err := svc.CreateStar(ctx, StarInput{ID: "s1", UserID: "u1"})
	require.NoError(t, err)
	assert.True(t, created)

	again, created, err := svc.CreateStar(ctx, StarInput{ID: "s1", UserID: "u1"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)
	assert.True(t, first.CreatedAt.Equal(again.CreatedAt))

	_, _, err = svc.CreateStar(ctx, StarInput{ID: "s1", UserID: "u2"})
	assert.True(t, IsConflict(err))

	stars, err := svc.ListUserStars(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, stars, 1)
}

func TestConcurrentStarCreation(t *testing.T) {
	svc, store := newTestService(t)
	mustCreateUser(t, svc, "u1", "a@x.com")

	var createdCount int32
	var g errgroup.Group
	for i := 0; i < 16; i++ {
		g.Go(func() error {
			_, created, err := svc.CreateStar(context.Background(), StarInput{ID: "s1", UserID: "u1"})
			if err != nil {
				return err
			}
			if created {
				atomic.AddInt32(&createdCount, 1)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int32(1), createdCount)

	var count int64
	require.NoError(t, store.DB.Model(&models.Star{}).Where("id = ?", "s1").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	logs, err := svc.ListAudit(context.Background(), AuditFilter{Table: models.TableStars})
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestGetAndDeleteStar(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	mustCreateUser(t, svc, "u1", "a@x.com")
	_, _, err := svc.CreateStar(ctx, StarInput{ID: "s1", UserID: "u1"})
	require.NoError(t, err)

	star, err := svc.GetStar(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "u1", star.UserID)

	require.NoError(t, svc.DeleteStar(ctx, "s1"))

	_, err = svc.GetStar(ctx, "s1")
	assert.True(t, IsNotFound(err))
	assert.True(t, IsNotFound(svc.DeleteStar(ctx, "s1")))
	assert.Contains(t, auditDetails(t, svc), "Star s1 deleted")
}

func TestDeleteUserStars(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	mustCreateUser(t, svc, "u1", "a@x.com")
	for i := 0; i < 3; i++ {
		_, _, err := svc.CreateStar(ctx, StarInput{ID: fmt.Sprintf("s%d", i), UserID: "u1"})
		require.NoError(t, err)
	}

	n, err := svc.DeleteUserStars(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	n, err = svc.DeleteUserStars(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.Contains(t, auditDetails(t, svc), "3 stars deleted for user u1")
}
