package models

import "time"

// Star is a bookmark-like marker owned by a user.
type Star struct {
	ID        string    `gorm:"primaryKey;size:255" json:"id"`
	UserID    string    `gorm:"size:255;not null;index:idx_stars_user_created,priority:1" json:"user_id"`
	CreatedAt time.Time `gorm:"index:idx_stars_user_created,priority:2" json:"created_at"`

	User *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}
