package model

import "time"

// Follow is a directed edge: FollowingUserID follows FollowedUserID.
type Follow struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	FollowingUserID uint      `gorm:"column:following_user;not null;uniqueIndex:idx_follow_pair,priority:1" json:"following_user"`
	FollowedUserID  uint      `gorm:"column:followed_user;not null;index;uniqueIndex:idx_follow_pair,priority:2" json:"followed_user"`
	CreatedAt       time.Time `gorm:"index" json:"created_at"`

	FollowingUser *User `gorm:"foreignKey:FollowingUserID" json:"-"`
	FollowedUser  *User `gorm:"foreignKey:FollowedUserID" json:"-"`
}

func (Follow) TableName() string { return "follows" }
