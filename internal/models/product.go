package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// Product is a stocked item. It always belongs to exactly one aisle.
type Product struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null" validate:"required,max=100"`
	Quantity  int       `json:"quantity" gorm:"not null;default:0" validate:"gte=0"`
	AisleID   uint      `json:"aisle_id" gorm:"not null;index" validate:"required"`
	Aisle     *Aisle    `json:"aisle,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" validate:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductInput carries raw field values from the delivery shell.
// Quantity and AisleID are parsed by the product service.
type ProductInput struct {
	Name     string     `json:"name" form:"name"`
	Quantity FieldValue `json:"quantity" form:"quantity"`
	AisleID  FieldValue `json:"aisle_id" form:"aisle_id"`
}

// FieldValue is the raw text of a form or JSON field. In JSON it accepts a string
// or any scalar literal, so `10` and `"10"` decode alike and bad values surface as field errors.
type FieldValue string

func (v *FieldValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FieldValue(s)
	default:
		*v = FieldValue(data)
	}
	return nil
}
