package models

import (
	"time"
)

type User struct {
	UserID   int        `gorm:"primaryKey;column:user_id" json:"user_id"`
	Email    string     `gorm:"column:email;unique" json:"email"`
	Password string     `gorm:"column:password" json:"-"`
	CreateAt *time.Time `gorm:"column:create_at" json:"create_at,omitempty"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at,omitempty"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Submissions []TaxSubmission `gorm:"foreignKey:UserID" json:"submissions,omitempty"`
}

func (User) TableName() string {
	return "users"
}
