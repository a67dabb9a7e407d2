package config

import (
	"CafeAnalyzer/internal/entity"
	"github.com/go-playground/validator/v10"
)

func NewValidator() *validator.Validate {
	v := validator.New()
	if err := entity.RegisterValidations(v); err != nil {
		panic(err)
	}
	return v
}
