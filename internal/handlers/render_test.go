package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/The-UnknownHacker/daydream-sydney-db/internal/database"
	"github.com/The-UnknownHacker/daydream-sydney-db/internal/records"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "validation",
			err:        &records.Error{Kind: records.KindValidation, Message: "missing required field: email"},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "missing required field: email",
		},
		{
			name:       "conflict",
			err:        &records.Error{Kind: records.KindConflict, Message: "email already in use"},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "email already in use",
		},
		{
			name:       "not found",
			err:        fmt.Errorf("wrapped: %w", &records.Error{Kind: records.KindNotFound, Message: "user u1 not found"}),
			wantStatus: http.StatusNotFound,
			wantMsg:    "user u1 not found",
		},
		{
			name:       "store unavailable",
			err:        fmt.Errorf("%w: gave up", database.ErrStoreUnavailable),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    msgStoreUnavailable,
		},
		{
			name:       "unexpected",
			err:        errors.New("disk I/O error at /var/lib/secret.db"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    msgUnexpected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

			respondError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"status":"error","message":%q}`, tt.wantMsg), w.Body.String())
		})
	}
}

func TestBindJSONRejectsMalformedBody(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/users", strings.NewReader("{not json"))
	c.Request.Header.Set("Content-Type", "application/json")

	var in records.UserInput
	assert.False(t, bindJSON(c, &in))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
