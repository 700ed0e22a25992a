package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"stockroom/internal/apperr"
	"stockroom/internal/models"
)

// validateStruct runs the validator tags on v and converts failures into an *apperr.ValidationError.
func validateStruct(validate *validator.Validate, v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("failed to validate input: %w", err)
	}
	fields := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		fields[fieldName(e.Field())] = fmt.Sprintf("failed on the '%s' tag", e.Tag())
	}
	return &apperr.ValidationError{Fields: fields}
}

func fieldName(structField string) string {
	switch structField {
	case "AisleNumber":
		return "aisle_number"
	case "AisleID":
		return "aisle_id"
	default:
		return strings.ToLower(structField)
	}
}

// ParseQuantity parses a raw quantity field. Negative values are rejected.
func ParseQuantity(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, apperr.Validation("quantity", "is required")
	}
	quantity, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Validation("quantity", fmt.Sprintf("%q is not an integer", raw))
	}
	if quantity < 0 {
		return 0, apperr.Validation("quantity", "must not be negative")
	}
	return quantity, nil
}

// ParseID parses a raw surrogate key such as a path parameter or an aisle_id field.
func ParseID(field, raw string) (uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, apperr.Validation(field, "is required")
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperr.Validation(field, fmt.Sprintf("%q is not a valid id", raw))
	}
	return uint(id), nil
}

// requireIdentity is the precondition of every aisle and product operation.
func requireIdentity(caller *models.Identity) error {
	if caller == nil || caller.UserID == 0 {
		return apperr.ErrUnauthenticated
	}
	return nil
}
