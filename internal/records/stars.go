package records

import (
	"context"
	"fmt"

	"github.com/The-UnknownHacker/daydream-sydney-db/internal/models"

	"gorm.io/gorm"
)

type StarInput struct {
	ID     string `json:"id" validate:"required,max=255"`
	UserID string `json:"user_id" validate:"required,max=255"`
}

// CreateStar is idempotent: an existing star with the same id and user is
// returned with created=false; the same id owned by another user is a conflict.
func (s *Service) CreateStar(ctx context.Context, in StarInput) (star *models.Star, created bool, err error) {
	trimSpace(&in.ID, &in.UserID)
	if err := s.check(in); err != nil {
		return nil, false, err
	}

	err = s.writer.Do(ctx, func(db *gorm.DB) error {
		created = false
		if err := requireUser(db, in.UserID); err != nil {
			return err
		}

		var existing models.Star
		err := db.Where("id = ?", in.ID).Take(&existing).Error
		switch {
		case err == nil:
			if existing.UserID != in.UserID {
				return conflictf("star %s already belongs to a different user", in.ID)
			}
			star = &existing
			return nil
		case !isNotFound(err):
			return err
		}

		star = &models.Star{ID: in.ID, UserID: in.UserID}
		if err := db.Create(star).Error; err != nil {
			return translateWriteError(err, "star "+in.ID)
		}
		created = true

		s.audit.Record(ctx, db, models.ActionInsert, models.TableStars, fmt.Sprintf("Star %s for user %s", in.ID, in.UserID))
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return star, created, nil
}

func (s *Service) GetStar(ctx context.Context, id string) (*models.Star, error) {
	var star models.Star
	if err := s.read(ctx).Where("id = ?", id).Take(&star).Error; err != nil {
		if isNotFound(err) {
			return nil, notFoundf("star %s not found", id)
		}
		return nil, fmt.Errorf("get star %s: %w", id, err)
	}
	return &star, nil
}

func (s *Service) ListUserStars(ctx context.Context, userID string) ([]models.Star, error) {
	stars := []models.Star{}
	err := s.read(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc, id asc").
		Find(&stars).Error
	if err != nil {
		return nil, fmt.Errorf("list stars of user %s: %w", userID, err)
	}
	return stars, nil
}

func (s *Service) DeleteStar(ctx context.Context, id string) error {
	return s.writer.Do(ctx, func(db *gorm.DB) error {
		res := db.Where("id = ?", id).Delete(&models.Star{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return notFoundf("star %s not found", id)
		}

		s.audit.Record(ctx, db, models.ActionDelete, models.TableStars, fmt.Sprintf("Star %s deleted", id))
		return nil
	})
}

// DeleteUserStars removes every star of the user and reports how many went.
// A user with no stars is not an error.
func (s *Service) DeleteUserStars(ctx context.Context, userID string) (int64, error) {
	var deleted int64
	err := s.writer.Do(ctx, func(db *gorm.DB) error {
		res := db.Where("user_id = ?", userID).Delete(&models.Star{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected

		if deleted > 0 {
			s.audit.Record(ctx, db, models.ActionDelete, models.TableStars,
				fmt.Sprintf("%d stars deleted for user %s", deleted, userID))
		}
		return nil
	})
	return deleted, err
}
