package entity

import (
	"reflect"

	"github.com/go-playground/validator/v10"
)

// RegisterValidations installs the custom tags used by detection types.
func RegisterValidations(v *validator.Validate) error {
	return v.RegisterValidation("bbox", validateBoundingBox)
}

func validateBoundingBox(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice {
		return false
	}
	box := make(BoundingBox, field.Len())
	for i := range box {
		box[i] = field.Index(i).Float()
	}
	return box.Valid()
}
