package models

import (
	"time"
)

type Feedback struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"not null;type:varchar(100)" json:"title"`
	Content       string    `gorm:"not null;type:text" json:"content"`
	OwnerUsername string    `gorm:"not null;type:varchar(20);index" json:"owner_username"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Owner User `gorm:"foreignKey:OwnerUsername;references:Username" json:"owner,omitempty"`
}

func (Feedback) TableName() string {
	return "feedback"
}
