package records

import (
	"context"
	"testing"
	"time"

	"github.com/The-UnknownHacker/daydream-sydney-db/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetUser(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, UserInput{ID: " u1 ", Name: "A", Email: "a@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.False(t, u.CreatedAt.IsZero())
	assert.False(t, u.UpdatedAt.IsZero())

	got, err := svc.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)
	assert.Equal(t, "a@x.com", got.Email)

	assert.Contains(t, auditDetails(t, svc), "User u1 created")
}

func TestCreateUserValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		in      UserInput
		wantMsg string
	}{
		{name: "missing id", in: UserInput{Name: "A", Email: "a@x.com"}, wantMsg: "missing required field: id"},
		{name: "blank name", in: UserInput{ID: "u1", Name: "   ", Email: "a@x.com"}, wantMsg: "missing required field: name"},
		{name: "missing email", in: UserInput{ID: "u1", Name: "A"}, wantMsg: "missing required field: email"},
		{name: "bad email", in: UserInput{ID: "u1", Name: "A", Email: "nope"}, wantMsg: "invalid email address"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateUser(ctx, tt.in)
			require.Error(t, err)
			assert.True(t, IsValidation(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	mustCreateUser(t, svc, "u1", "a@x.com")

	_, err := svc.CreateUser(context.Background(), UserInput{ID: "u2", Name: "B", Email: "A@X.com"})
	require.Error(t, err)
	assert.True(t, IsConflict(err))
}

func TestCreateUserDuplicateID(t *testing.T) {
	svc, _ := newTestService(t)
	mustCreateUser(t, svc, "u1", "a@x.com")

	_, err := svc.CreateUser(context.Background(), UserInput{ID: "u1", Name: "B", Email: "b@x.com"})
	require.Error(t, err)
	assert.True(t, IsConflict(err))
	assert.Contains(t, err.Error(), "user u1 already exists")
}

func TestUpdateUser(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	created := mustCreateUser(t, svc, "u1", "a@x.com")
	mustCreateUser(t, svc, "u2", "b@x.com")

	time.Sleep(10 * time.Millisecond)
	updated, err := svc.UpdateUser(ctx, "u1", UserUpdate{Name: "Alice", Email: "alice@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "Alice", updated.Name)
	assert.Equal(t, "alice@x.com", updated.Email)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	// keeping your own email is fine
	_, err = svc.UpdateUser(ctx, "u1", UserUpdate{Name: "Alice", Email: "alice@x.com"})
	require.NoError(t, err)

	_, err = svc.UpdateUser(ctx, "u1", UserUpdate{Name: "Alice", Email: "b@x.com"})
	assert.True(t, IsConflict(err))

	_, err = svc.UpdateUser(ctx, "ghost", UserUpdate{Name: "G", Email: "g@x.com"})
	assert.True(t, IsNotFound(err))

	assert.Contains(t, auditDetails(t, svc), "User u1 updated")
}

func TestDeleteUser(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	mustCreateUser(t, svc, "u1", "a@x.com")

	require.NoError(t, svc.DeleteUser(ctx, "u1"))

	_, err := svc.GetUser(ctx, "u1")
	assert.True(t, IsNotFound(err))

	err = svc.DeleteUser(ctx, "u1")
	assert.True(t, IsNotFound(err))
}

func TestDeleteUserCascades(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	mustCreateUser(t, svc, "u1", "a@x.com")
	mustCreateUser(t, svc, "u2", "b@x.com")

	_, _, err := svc.CreateStar(ctx, StarInput{ID: "s1", UserID: "u1"})
	require.NoError(t, err)
	_, _, err = svc.CreateStar(ctx, StarInput{ID: "s2", UserID: "u2"})
	require.NoError(t, err)
	mustLinkTag(t, svc, "t1", "u1")
	mustLinkTag(t, svc, "t2", "u2")
	_, _, err = svc.MarkAttendance(ctx, AttendanceInput{TagID: "t1", Status: "present"})
	require.NoError(t, err)
	_, _, err = svc.MarkAttendance(ctx, AttendanceInput{TagID: "t2", Status: "present"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, "u1"))

	stars, err := svc.ListUserStars(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, stars)

	tags, err := svc.ListUserTags(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, tags)

	att, err := svc.ListAttendance(ctx, AttendanceFilter{UserID: "u1"})
	require.NoError(t, err)
	assert.Empty(t, att)

	var count int64
	require.NoError(t, store.DB.Model(&models.Attendance{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "other user's attendance must survive")

	stars, err = svc.ListUserStars(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, stars, 1)
}

func TestGetUserByTag(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	mustCreateUser(t, svc, "u1", "a@x.com")
	mustLinkTag(t, svc, "t1", "u1")

	u, err := svc.GetUserByTag(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)

	_, err = svc.GetUserByTag(ctx, "nope")
	assert.True(t, IsNotFound(err))
}

func TestAuditFailureDoesNotAbortWrite(t *testing.T) {
	svc, store := newTestService(t)
	require.NoError(t, store.DB.Migrator().DropTable(&models.AuditLog{}))

	u, err := svc.CreateUser(context.Background(), UserInput{ID: "u1", Name: "A", Email: "a@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)

	_, err = svc.GetUser(context.Background(), "u1")
	require.NoError(t, err)
}
