package models

import "time"

type UserAction string

const (
	ActionInsert UserAction = "INSERT"
	ActionUpdate UserAction = "UPDATE"
	ActionDelete UserAction = "DELETE"
)

func ParseUserAction(s string) (UserAction, bool) {
	switch UserAction(s) {
	case ActionInsert, ActionUpdate, ActionDelete:
		return UserAction(s), true
	}
	return "", false
}

// AuditLog is append-only; nothing in the service updates or deletes rows.
type AuditLog struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Action    UserAction `gorm:"type:varchar(16);not null" json:"action"`
	Table     string     `gorm:"column:table_name;size:64;not null" json:"table"`
	Details   string     `gorm:"type:text" json:"details"`
	Timestamp time.Time  `gorm:"not null" json:"timestamp"`
}

// Table names used in audit entries.
const (
	TableUsers      = "users"
	TableStars      = "stars"
	TableNfcTags    = "nfc_tags"
	TableAttendance = "attendance"
)
