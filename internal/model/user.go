package model

import "time"

const (
	RoleUser  = "role_user"
	RoleAdmin = "role_admin"

	DefaultAvatar = "default.png"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:64;not null" json:"name"`
	LastName     string    `gorm:"size:64;not null" json:"last_name"`
	Nick         string    `gorm:"size:64;not null;uniqueIndex" json:"nick"`
	Email        string    `gorm:"size:128;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"column:password;size:255;not null" json:"-"`
	Bio          string    `gorm:"size:512" json:"bio,omitempty"`
	Role         string    `gorm:"size:16;not null;default:role_user" json:"role"`
	Image        string    `gorm:"size:255;not null;default:default.png" json:"image"`
	CreatedAt    time.Time `json:"created_at"`
}

// PublicUser is the projection of a User that other users may see.
type PublicUser struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	LastName  string    `json:"last_name"`
	Nick      string    `json:"nick"`
	Bio       string    `json:"bio,omitempty"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) Public() *PublicUser {
	if u == nil {
		return nil
	}
	return &PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		LastName:  u.LastName,
		Nick:      u.Nick,
		Bio:       u.Bio,
		Image:     u.Image,
		CreatedAt: u.CreatedAt,
	}
}

// PublicUserColumns lists the columns loaded when a user is populated into
// another record.
var PublicUserColumns = []string{"id", "name", "last_name", "nick", "bio", "image", "created_at"}
