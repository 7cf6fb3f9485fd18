package records

import (
	"context"
	"fmt"
	"time"

	"github.com/The-UnknownHacker/daydream-sydney-db/internal/models"

	"gorm.io/gorm"
)

type AttendanceInput struct {
	TagID  string `json:"tag_id" validate:"required,max=255"`
	Status string `json:"status" validate:"required,oneof=present absent"`
	// Date defaults to today when empty.
	Date string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// AttendanceFilter fields are optional and combined with AND.
// An empty Date means today.
type AttendanceFilter struct {
	Date   string
	UserID string
	TagID  string
}

// MarkAttendance upserts the (tag, date) row. created reports whether a new
// row was inserted rather than an existing one updated.
func (s *Service) MarkAttendance(ctx context.Context, in AttendanceInput) (record *models.Attendance, created bool, err error) {
	trimSpace(&in.TagID, &in.Status, &in.Date)
	if err := s.check(in); err != nil {
		return nil, false, err
	}
	status, _ := models.ParseAttendanceStatus(in.Status)
	date := in.Date
	if date == "" {
		date = s.today()
	}

	err = s.writer.Do(ctx, func(db *gorm.DB) error {
		created = false

		var tag models.NfcTag
		if err := db.Where("tag_id = ?", in.TagID).Take(&tag).Error; err != nil {
			if isNotFound(err) {
				return validationf("tag %s is not linked to any user", in.TagID)
			}
			return err
		}

		var existing models.Attendance
		err := db.Where("tag_id = ? AND date = ?", in.TagID, date).Take(&existing).Error
		switch {
		case err == nil:
			existing.Status = status
			existing.UserID = tag.UserID
			if err := db.Save(&existing).Error; err != nil {
				return translateWriteError(err, "attendance for tag "+in.TagID)
			}
			record = &existing

			s.audit.Record(ctx, db, models.ActionUpdate, models.TableAttendance,
				fmt.Sprintf("Attendance %d for tag %s on %s set to %s", existing.ID, in.TagID, date, status))
			return nil
		case !isNotFound(err):
			return err
		}

		record = &models.Attendance{
			TagID:  in.TagID,
			UserID: tag.UserID,
			Status: status,
			Date:   date,
		}
		if err := db.Create(record).Error; err != nil {
			return translateWriteError(err, "attendance for tag "+in.TagID)
		}
		created = true

		s.audit.Record(ctx, db, models.ActionInsert, models.TableAttendance,
			fmt.Sprintf("Attendance %d for tag %s on %s marked %s", record.ID, in.TagID, date, status))
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return record, created, nil
}

// ListAttendance returns matching rows joined with their user, newest first.
func (s *Service) ListAttendance(ctx context.Context, f AttendanceFilter) ([]models.AttendanceView, error) {
	trimSpace(&f.Date, &f.UserID, &f.TagID)
	date := f.Date
	if date == "" {
		date = s.today()
	} else if _, err := time.Parse(models.DateLayout, date); err != nil {
		return nil, validationf("field date must be a date in YYYY-MM-DD format")
	}

	q := s.read(ctx).
		Table("attendance AS a").
		Select(`a.id, a.tag_id, a.user_id,
			COALESCE(u.name, '') AS user_name, COALESCE(u.email, '') AS user_email,
			a.status, a.date, a.created_at, a.updated_at`).
		Joins("LEFT JOIN users u ON u.id = a.user_id").
		Where("a.date = ?", date)
	if f.UserID != "" {
		q = q.Where("a.user_id = ?", f.UserID)
	}
	if f.TagID != "" {
		q = q.Where("a.tag_id = ?", f.TagID)
	}

	views := []models.AttendanceView{}
	if err := q.Order("a.date desc, a.updated_at desc, a.id desc").Scan(&views).Error; err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return views, nil
}

func (s *Service) DeleteAttendance(ctx context.Context, id uint) error {
	return s.writer.Do(ctx, func(db *gorm.DB) error {
		res := db.Where("id = ?", id).Delete(&models.Attendance{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return notFoundf("attendance record %d not found", id)
		}

		s.audit.Record(ctx, db, models.ActionDelete, models.TableAttendance, fmt.Sprintf("Attendance %d deleted", id))
		return nil
	})
}
