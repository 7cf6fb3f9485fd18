package records

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// check runs struct validation and turns the first failure into a
// ValidationError naming the offending JSON field.
func (s *Service) check(in any) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return validationf("invalid input: %v", err)
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return validationf("missing required field: %s", fe.Field())
	case "email":
		return validationf("invalid email address: %v", fe.Value())
	case "max":
		return validationf("field %s must be at most %s characters", fe.Field(), fe.Param())
	case "datetime":
		return validationf("field %s must be a date in YYYY-MM-DD format", fe.Field())
	case "oneof":
		return validationf("field %s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	}
	return validationf("invalid value for field %s", fe.Field())
}
