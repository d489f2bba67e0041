// internal/models/user.go
package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:80;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:200;not null" json:"-"`
	FirstName    string    `gorm:"size:80;not null" json:"first_name"`
	LastName     string    `gorm:"size:80;not null" json:"last_name"`
	Phone        string    `gorm:"size:20" json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
