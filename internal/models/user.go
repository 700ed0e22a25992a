package models

import "time"

// User is a registered account. PasswordHash holds a bcrypt digest and is never serialized.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;type:varchar(100);not null" validate:"required,max=100"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the authenticated caller passed explicitly into every inventory operation.
type Identity struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}
