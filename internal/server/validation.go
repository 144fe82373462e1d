package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ValidationError is one field-level failure in a request body.
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// ValidateStruct validates a struct's validate tags and returns
// user-facing errors.
func ValidateStruct(s interface{}) []ValidationError {
	validate := validator.New()
	var errs []ValidationError

	err := validate.Struct(s)
	if err != nil {
		for _, fieldErr := range err.(validator.ValidationErrors) {
			errs = append(errs, ValidationError{
				Field:   fieldErr.Field(),
				Tag:     fieldErr.Tag(),
				Message: errorMessage(fieldErr),
			})
		}
	}

	return errs
}

func errorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return err.Field() + " is required"
	case "email":
		return err.Field() + " must be a valid email address"
	case "min":
		return err.Field() + " must be at least " + err.Param() + " characters"
	case "max":
		return err.Field() + " must be at most " + err.Param() + " characters"
	default:
		return err.Field() + " is invalid"
	}
}

// RespondWithValidationErrors sends validation errors as a 400 response.
func RespondWithValidationErrors(c *gin.Context, errs []ValidationError) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "validation failed",
		"details": errs,
	})
}
