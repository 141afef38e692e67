package models

import (
	"time"
)

type User struct {
	Username     string    `gorm:"primaryKey;type:varchar(20)" json:"username"`
	PasswordHash string    `gorm:"not null;type:varchar(255)" json:"-"`
	Email        string    `gorm:"uniqueIndex;not null;type:varchar(50)" json:"email"`
	FirstName    string    `gorm:"not null;type:varchar(30)" json:"first_name"`
	LastName     string    `gorm:"not null;type:varchar(30)" json:"last_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Feedback []Feedback `gorm:"foreignKey:OwnerUsername;references:Username" json:"feedback,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
