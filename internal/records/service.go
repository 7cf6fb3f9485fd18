// Package records implements the resource operations for users, stars, NFC
// tags, attendance and the audit trail. Every mutating operation runs its
// whole check-then-write sequence inside database.Writer.Do; reads go straight
// to the pool.
package records

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/The-UnknownHacker/daydream-sydney-db/internal/database"
	"github.com/The-UnknownHacker/daydream-sydney-db/internal/models"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type Service struct {
	db       *gorm.DB
	writer   *database.Writer
	audit    *database.AuditRecorder
	validate *validator.Validate
	now      func() time.Time
}

func NewService(store *database.Store) *Service {
	return &Service{
		db:       store.DB,
		writer:   store.Writer,
		audit:    store.Audit,
		validate: newValidator(),
		now:      time.Now,
	}
}

func (s *Service) read(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func (s *Service) today() string {
	return s.now().Format(models.DateLayout)
}

// requireUser checks that a referenced user exists.
func requireUser(db *gorm.DB, userID string) error {
	var count int64
	if err := db.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return validationf("user %s does not exist", userID)
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func trimSpace(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}
