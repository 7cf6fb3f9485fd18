package models

import "time"

type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
)

// DateLayout is the calendar-day format stored in Attendance.Date.
const DateLayout = "2006-01-02"

func ParseAttendanceStatus(s string) (AttendanceStatus, bool) {
	switch AttendanceStatus(s) {
	case StatusPresent, StatusAbsent:
		return AttendanceStatus(s), true
	}
	return "", false
}

// Attendance is one presence mark per tag per calendar day.
// UserID is copied from the tag at marking time.
type Attendance struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	TagID     string           `gorm:"size:255;not null;uniqueIndex:idx_attendance_tag_date,priority:1" json:"tag_id"`
	UserID    string           `gorm:"size:255;not null;index:idx_attendance_user" json:"user_id"`
	Status    AttendanceStatus `gorm:"type:varchar(16);not null" json:"status"`
	Date      string           `gorm:"size:10;not null;uniqueIndex:idx_attendance_tag_date,priority:2;index:idx_attendance_date" json:"date"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Attendance) TableName() string { return "attendance" }

// AttendanceView is the list shape, joined with the owning user.
type AttendanceView struct {
	ID        uint             `json:"id"`
	TagID     string           `json:"tag_id"`
	UserID    string           `json:"user_id"`
	UserName  string           `json:"user_name"`
	UserEmail string           `json:"user_email"`
	Status    AttendanceStatus `json:"status"`
	Date      string           `json:"date"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}
