package models

import "time"

// NfcTag binds a physical tag identifier to exactly one user.
type NfcTag struct {
	TagID     string    `gorm:"primaryKey;size:255" json:"tag_id"`
	UserID    string    `gorm:"size:255;not null;index:idx_nfc_tags_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}
