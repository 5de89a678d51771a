package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopizer/backend/internal/interfaces/http/dto"
)

var setupValidator sync.Once

// SetupValidator registers the shop's validation tags on gin's validator and
// makes errors report json (or form) field names:
//
//	code      entity codes: letters, digits, '-', '_' and '.'
//	langcode  language codes such as "en", "fr" or "en-CA"
func SetupValidator() {
	setupValidator.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(fieldName)
		_ = v.RegisterValidation("code", func(fl validator.FieldLevel) bool {
			return isCode(fl.Field().String())
		})
		_ = v.RegisterValidation("langcode", func(fl validator.FieldLevel) bool {
			return isLanguageCode(fl.Field().String())
		})
	})
}

func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form", "uri"} {
		name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
		switch name {
		case "-":
			return ""
		case "":
			continue
		default:
			return name
		}
	}
	return fld.Name
}

func isCode(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}

// isLanguageCode accepts a 2-3 letter language optionally followed by one
// region or script subtag. Whether the language exists is checked on lookup.
func isLanguageCode(s string) bool {
	lang, region, hasRegion := strings.Cut(strings.ReplaceAll(s, "_", "-"), "-")
	if len(lang) < 2 || len(lang) > 3 || !isLetters(lang) {
		return false
	}
	if !hasRegion {
		return true
	}
	return len(region) >= 2 && len(region) <= 4 && isCode(region) && !strings.ContainsAny(region, "-_.")
}

func isLetters(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

// FormatValidationErrors converts binding errors into a 400 body. Errors
// other than field validation failures, such as malformed JSON, produce a
// body without field details.
func FormatValidationErrors(err error, requestID string) dto.ErrorResponse {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return dto.NewErrorResponse(dto.ErrCodeBadRequest, "Malformed request: "+err.Error(), requestID)
	}
	details := make([]dto.ValidationDetail, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		details = append(details, dto.ValidationDetail{Field: fe.Field(), Message: validationMessage(fe)})
	}
	return dto.NewValidationErrorResponse("Request validation failed", requestID, details)
}

// HandleValidationError aborts the request with a validation error response
func HandleValidationError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, FormatValidationErrors(err, GetRequestID(c)))
}

var fixedMessages = map[string]string{
	"required": "This field is required",
	"email":    "Invalid email format",
	"uuid":     "Invalid UUID format",
	"numeric":  "Must be numeric",
	"code":     "Only letters, digits, '-', '_' and '.' are allowed",
	"langcode": "Must be a language code such as en or en-CA",
}

func validationMessage(fe validator.FieldError) string {
	if msg, ok := fixedMessages[fe.Tag()]; ok {
		return msg
	}
	unit := ""
	if fe.Type().Kind() == reflect.String {
		unit = " characters"
	}
	switch fe.Tag() {
	case "min":
		return "Must be at least " + fe.Param() + unit
	case "max":
		return "Must be at most " + fe.Param() + unit
	case "len":
		return "Must be exactly " + fe.Param() + unit
	case "oneof":
		return "Must be one of: " + fe.Param()
	case "gte":
		return "Must be greater than or equal to " + fe.Param()
	case "lte":
		return "Must be less than or equal to " + fe.Param()
	default:
		return "Invalid value"
	}
}
