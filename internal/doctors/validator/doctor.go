package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Farhatmahi/dentist-spa-server/pkg/model"
	"github.com/go-playground/validator/v10"
)

type DoctorValidator struct {
	validate *validator.Validate
}

func NewDoctorValidator() *DoctorValidator {
	return &DoctorValidator{validate: validator.New()}
}

func (v *DoctorValidator) Validate(doctor *model.Doctor) error {
	if err := v.validate.Struct(doctor); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translate(validationErrs)
		}
		return err
	}
	return nil
}

func translate(errs validator.ValidationErrors) error {
	var messages []string
	for _, err := range errs {
		switch err.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", err.Field()))
		case "email":
			messages = append(messages, fmt.Sprintf("%s must be a valid email address", err.Field()))
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s characters", err.Field(), err.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param()))
		default:
			messages = append(messages, err.Error())
		}
	}
	return fmt.Errorf("validation failed: %s", strings.Join(messages, "; "))
}
