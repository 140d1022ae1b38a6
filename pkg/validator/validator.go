// Package validator decodes and validates JSON request bodies with
// go-playground/validator tags. Field names in error maps follow the json tag.
package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/errhttp"
	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/httpx"
)

var (
	validate = newValidate()

	mu       sync.RWMutex
	messages = map[string]string{
		"required": "This field is required",
		"uuid":     "Must be a valid UUID",
		"uuid4":    "Must be a valid UUID",
		"numeric":  "Must be a numeric value",
	}
)

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// RegisterString adds a custom tag for string fields. valid decides the value;
// message is reported for the field when it fails. Call it from an init func.
func RegisterString(tag, message string, valid func(string) bool) {
	err := validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return valid(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("validator: register %q: %v", tag, err))
	}
	mu.Lock()
	messages[tag] = message
	mu.Unlock()
}

// Validate runs struct-level validation.
func Validate(s any) error {
	return validate.Struct(s)
}

// FormatValidationErrors maps each failing field to a human-readable message.
// Errors that are not validation errors produce an empty map.
func FormatValidationErrors(err error) map[string]string {
	out := make(map[string]string)
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return out
	}
	for _, e := range ve {
		out[e.Field()] = message(e)
	}
	return out
}

func message(e validator.FieldError) string {
	mu.RLock()
	m, ok := messages[e.Tag()]
	mu.RUnlock()
	if ok {
		return m
	}

	switch e.Tag() {
	case "min":
		return fmt.Sprintf("Minimum length is %s", e.Param())
	case "max":
		return fmt.Sprintf("Maximum length is %s", e.Param())
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", e.Param())
	case "lte":
		return fmt.Sprintf("Must be less than or equal to %s", e.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", e.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", e.Param())
	default:
		return fmt.Sprintf("Validation failed on '%s'", e.Tag())
	}
}

// ValidateRequest decodes the JSON body of r into T and validates it. On
// failure it writes the error response and returns ok=false:
// 400 for malformed or empty JSON, 413 past the body limit, 422 with a
// per-field map when validation fails.
func ValidateRequest[T any](w http.ResponseWriter, r *http.Request) (req *T, ok bool) {
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			httpx.JSONError(w, http.StatusRequestEntityTooLarge, errhttp.CodePayloadTooLarge,
				fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit))
		case errors.Is(err, io.EOF):
			httpx.JSONError(w, http.StatusBadRequest, errhttp.CodeBadRequest, "Request body is required")
		default:
			httpx.JSONError(w, http.StatusBadRequest, errhttp.CodeBadRequest, "Invalid JSON")
		}
		return nil, false
	}
	if err := Validate(&v); err != nil {
		httpx.JSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "Validation failed",
			"code":   errhttp.CodeValidation,
			"fields": FormatValidationErrors(err),
		})
		return nil, false
	}
	return &v, true
}
