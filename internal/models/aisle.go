package models

import "time"

// Aisle is a named storage section. AisleNumber is a free-text physical locator ("A1", "12B").
type Aisle struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(100);not null" validate:"required,max=100"`
	AisleNumber string    `json:"aisle_number" gorm:"type:varchar(50);not null" validate:"required,max=50"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type AisleInput struct {
	Name        string `json:"name" form:"name"`
	AisleNumber string `json:"aisle_number" form:"aisle_number"`
}
