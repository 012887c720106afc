package validator

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/AndyMuloki/zen-spa/pkg/errors"
)

var phonePattern = regexp.MustCompile(`^(\+\d{1,3})?\s*(\(\d{1,4}\))?\s*[\d\s-]{7,}$`)

// Validator runs struct tag validation and reports every failing field by its json name.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	if err := v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return IsPhone(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	return &Validator{v: v}
}

// IsPhone reports whether s looks like a phone number: optional country code,
// optional area code in parentheses, then at least seven digits, spaces or dashes.
func IsPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// Fields returns one FieldError per failing field. A non-nil error means obj
// could not be validated at all.
func (v *Validator) Fields(obj interface{}) ([]apperrors.FieldError, error) {
	err := v.v.Struct(obj)
	if err == nil {
		return nil, nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return nil, err
	}

	fields := make([]apperrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperrors.FieldError{
			Field:   fieldPath(fe),
			Message: message(fe),
		})
	}
	return fields, nil
}

// Validate is Fields folded into a single validation AppError.
func (v *Validator) Validate(obj interface{}) error {
	fields, err := v.Fields(obj)
	if err != nil {
		return apperrors.NewBadRequest("invalid request", err)
	}
	if len(fields) > 0 {
		return apperrors.NewValidation(fields)
	}
	return nil
}

// fieldPath drops the top-level struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	kind := fe.Kind()
	if kind == reflect.Ptr {
		kind = fe.Type().Elem().Kind()
	}
	isString := kind == reflect.String

	switch fe.Tag() {
	case "required":
		return "Required"
	case "email":
		return "Invalid email address"
	case "phone":
		return "Invalid phone number"
	case "min":
		if isString {
			return fmt.Sprintf("Must contain at least %s character(s)", fe.Param())
		}
		return fmt.Sprintf("Must be greater than or equal to %s", fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("Must contain at most %s character(s)", fe.Param())
		}
		return fmt.Sprintf("Must be less than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", fe.Param())
	default:
		return fmt.Sprintf("Failed on the '%s' rule", fe.Tag())
	}
}
