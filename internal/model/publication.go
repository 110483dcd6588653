package model

import "time"

type Publication struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	File      string    `gorm:"size:255" json:"file,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}
