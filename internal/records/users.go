package records

import (
	"context"
	"fmt"

	"github.com/The-UnknownHacker/daydream-sydney-db/internal/models"

	"gorm.io/gorm"
)

type UserInput struct {
	ID    string `json:"id" validate:"required,max=255"`
	Name  string `json:"name" validate:"required,max=255"`
	Email string `json:"email" validate:"required,max=255,email"`
}

type UserUpdate struct {
	Name  string `json:"name" validate:"required,max=255"`
	Email string `json:"email" validate:"required,max=255,email"`
}

func (s *Service) CreateUser(ctx context.Context, in UserInput) (*models.User, error) {
	trimSpace(&in.ID, &in.Name, &in.Email)
	if err := s.check(in); err != nil {
		return nil, err
	}

	var user models.User
	err := s.writer.Do(ctx, func(db *gorm.DB) error {
		taken, err := emailTaken(db, in.Email, "")
		if err != nil {
			return err
		}
		if taken {
			return conflictf("email %s is already in use", in.Email)
		}

		user = models.User{ID: in.ID, Name: in.Name, Email: in.Email}
		if err := db.Create(&user).Error; err != nil {
			return translateWriteError(err, "user "+in.ID)
		}

		s.audit.Record(ctx, db, models.ActionInsert, models.TableUsers, fmt.Sprintf("User %s created", user.ID))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := s.read(ctx).Order("created_at asc, id asc").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*models.User, error) {
	return findUser(s.read(ctx), id)
}

func (s *Service) UpdateUser(ctx context.Context, id string, in UserUpdate) (*models.User, error) {
	trimSpace(&id, &in.Name, &in.Email)
	if err := s.check(in); err != nil {
		return nil, err
	}

	var user *models.User
	err := s.writer.Do(ctx, func(db *gorm.DB) error {
		var err error
		user, err = findUser(db, id)
		if err != nil {
			return err
		}

		taken, err := emailTaken(db, in.Email, id)
		if err != nil {
			return err
		}
		if taken {
			return conflictf("email %s is already in use", in.Email)
		}

		user.Name = in.Name
		user.Email = in.Email
		if err := db.Save(user).Error; err != nil {
			return translateWriteError(err, "user "+id)
		}

		s.audit.Record(ctx, db, models.ActionUpdate, models.TableUsers, fmt.Sprintf("User %s updated", id))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the user row; stars, tags and attendance go with it
// through ON DELETE CASCADE.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	return s.writer.Do(ctx, func(db *gorm.DB) error {
		res := db.Where("id = ?", id).Delete(&models.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return notFoundf("user %s not found", id)
		}

		s.audit.Record(ctx, db, models.ActionDelete, models.TableUsers, fmt.Sprintf("User %s deleted", id))
		return nil
	})
}

// GetUserByTag resolves a tag to the user it is linked to.
func (s *Service) GetUserByTag(ctx context.Context, tagID string) (*models.User, error) {
	db := s.read(ctx)
	tag, err := findTag(db, tagID)
	if err != nil {
		return nil, err
	}
	return findUser(db, tag.UserID)
}

func findUser(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	if err := db.Where("id = ?", id).Take(&user).Error; err != nil {
		if isNotFound(err) {
			return nil, notFoundf("user %s not found", id)
		}
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return &user, nil
}

// emailTaken compares case-insensitively, ignoring exceptID when set.
func emailTaken(db *gorm.DB, email, exceptID string) (bool, error) {
	q := db.Model(&models.User{}).Where("LOWER(email) = LOWER(?)", email)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
