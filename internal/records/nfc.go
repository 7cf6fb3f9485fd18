package records

import (
	"context"
	"fmt"

	"github.com/The-UnknownHacker/daydream-sydney-db/internal/models"

	"gorm.io/gorm"
)

type TagInput struct {
	TagID  string `json:"tag_id" validate:"required,max=255"`
	UserID string `json:"user_id" validate:"required,max=255"`
}

// LinkTag binds a tag to a user. Re-linking to the same user returns the
// existing link with created=false; a tag already bound to someone else is
// rejected and the existing link is left untouched.
func (s *Service) LinkTag(ctx context.Context, in TagInput) (tag *models.NfcTag, created bool, err error) {
	trimSpace(&in.TagID, &in.UserID)
	if err := s.check(in); err != nil {
		return nil, false, err
	}

	err = s.writer.Do(ctx, func(db *gorm.DB) error {
		created = false
		if err := requireUser(db, in.UserID); err != nil {
			return err
		}

		var existing models.NfcTag
		err := db.Where("tag_id = ?", in.TagID).Take(&existing).Error
		switch {
		case err == nil:
			if existing.UserID != in.UserID {
				return conflictf("tag %s is already linked to a different user", in.TagID)
			}
			tag = &existing
			return nil
		case !isNotFound(err):
			return err
		}

		tag = &models.NfcTag{TagID: in.TagID, UserID: in.UserID}
		if err := db.Create(tag).Error; err != nil {
			return translateWriteError(err, "tag "+in.TagID)
		}
		created = true

		s.audit.Record(ctx, db, models.ActionInsert, models.TableNfcTags, fmt.Sprintf("Tag %s for user %s", in.TagID, in.UserID))
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return tag, created, nil
}

func (s *Service) GetTag(ctx context.Context, tagID string) (*models.NfcTag, error) {
	return findTag(s.read(ctx), tagID)
}

func (s *Service) ListUserTags(ctx context.Context, userID string) ([]models.NfcTag, error) {
	tags := []models.NfcTag{}
	err := s.read(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc, tag_id asc").
		Find(&tags).Error
	if err != nil {
		return nil, fmt.Errorf("list tags of user %s: %w", userID, err)
	}
	return tags, nil
}

func (s *Service) UnlinkTag(ctx context.Context, tagID string) error {
	return s.writer.Do(ctx, func(db *gorm.DB) error {
		res := db.Where("tag_id = ?", tagID).Delete(&models.NfcTag{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return notFoundf("tag %s not found", tagID)
		}

		s.audit.Record(ctx, db, models.ActionDelete, models.TableNfcTags, fmt.Sprintf("Tag %s unlinked", tagID))
		return nil
	})
}

func findTag(db *gorm.DB, tagID string) (*models.NfcTag, error) {
	var tag models.NfcTag
	if err := db.Where("tag_id = ?", tagID).Take(&tag).Error; err != nil {
		if isNotFound(err) {
			return nil, notFoundf("tag %s not found", tagID)
		}
		return nil, fmt.Errorf("get tag %s: %w", tagID, err)
	}
	return &tag, nil
}
