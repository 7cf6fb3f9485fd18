package records

import (
	"context"
	"fmt"
	"strings"

	"github.com/The-UnknownHacker/daydream-sydney-db/internal/models"
)

type AuditFilter struct {
	Table  string
	Action string
}

// ListAudit returns audit entries newest first.
func (s *Service) ListAudit(ctx context.Context, f AuditFilter) ([]models.AuditLog, error) {
	q := s.read(ctx).Model(&models.AuditLog{})

	if t := strings.TrimSpace(f.Table); t != "" {
		q = q.Where("table_name = ?", t)
	}
	if a := strings.TrimSpace(f.Action); a != "" {
		action, ok := models.ParseUserAction(strings.ToUpper(a))
		if !ok {
			return nil, validationf("field action must be one of: INSERT, UPDATE, DELETE")
		}
		q = q.Where("action = ?", action)
	}

	logs := []models.AuditLog{}
	if err := q.Order("id desc").Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	return logs, nil
}
