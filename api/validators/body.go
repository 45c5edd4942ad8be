package validators

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"reflect"
	"strings"

	pkgerrors "github.com/angelmondragon/spicy-pepper-shop/pkg/errors"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		if !isFloat(fl.Field()) {
			return false
		}
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})
	_ = v.RegisterValidation("whole", func(fl validator.FieldLevel) bool {
		if !isFloat(fl.Field()) {
			return false
		}
		f := fl.Field().Float()
		return f == math.Trunc(f)
	})
	_ = v.RegisterValidation("safeint", func(fl validator.FieldLevel) bool {
		if !isFloat(fl.Field()) {
			return false
		}
		return math.Abs(fl.Field().Float()) <= MaxSafeInteger
	})
	return v
}

// MaxSafeInteger bounds integer fields to values a float64 JSON number represents exactly.
const MaxSafeInteger = 1<<53 - 1

func isFloat(v reflect.Value) bool {
	return v.Kind() == reflect.Float32 || v.Kind() == reflect.Float64
}

// DecodeJSONBody decodes the request body into dest. An empty body decodes as {}.
// Unknown fields are ignored; clients send extra keys.
func DecodeJSONBody(r *http.Request, dest any) error {
	defer func() {
		io.Copy(io.Discard, r.Body)
	}()
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dest); err != nil && !errors.Is(err, io.EOF) {
		wrapped := pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body")
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return wrapped.WithDetails(map[string]string{typeErr.Field: "has the wrong type"})
		}
		return wrapped
	}
	return nil
}

// Struct validates dest against its validate tags. Failures carry message as the
// public error and a field → problem map as details.
func Struct(dest any, message string) error {
	if err := validate.Struct(dest); err != nil {
		return formatValidationErrors(err, message)
	}
	return nil
}

func formatValidationErrors(err error, message string) *pkgerrors.Error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = validationMessage(fieldErr)
		}
		return pkgerrors.New(pkgerrors.CodeValidation, message).WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, message)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "finite":
		return "must be a number"
	case "whole":
		return "must be a whole number"
	case "safeint":
		return "is out of range"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "min":
		return fmt.Sprintf("must have at least %s entries", fe.Param())
	}
	return "is invalid"
}
