package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/osa911/portfolio-backend/internal/api/dto/v1/contact"
	"github.com/osa911/portfolio-backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// DefaultEmailPattern is local@domain.tld where no part holds '@' or whitespace.
// RE2's \s is ASCII only, so vertical tab, Unicode separators and BOM are listed explicitly.
const DefaultEmailPattern = `^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`

var (
	ErrEmptyMessage  = errors.New("message is empty")
	ErrMissingFields = errors.New("missing required fields")
	ErrInvalidEmail  = errors.New("invalid email format")
)

// Validator checks inbound chat and contact payloads. It has no side effects.
type Validator struct {
	validate   *validator.Validate
	emailRegex *regexp.Regexp
}

// New creates a validator using emailPattern for the email tag
func New(emailPattern string) (*Validator, error) {
	if emailPattern == "" {
		emailPattern = DefaultEmailPattern
	}
	emailRegex, err := regexp.Compile(emailPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid email pattern: %w", err)
	}

	v := &Validator{
		validate:   validator.New(),
		emailRegex: emailRegex,
	}
	if err := RegisterValidators(v.validate, emailRegex); err != nil {
		return nil, err
	}
	return v, nil
}

// RegisterValidators registers custom validators
func RegisterValidators(v *validator.Validate, emailRegex *regexp.Regexp) error {
	return v.RegisterValidation("email", func(fl validator.FieldLevel) bool {
		return emailRegex.MatchString(fl.Field().String())
	})
}

// ValidateChatInput trims raw and returns the message, or ErrEmptyMessage
// when raw is not a string or nothing is left after trimming.
func (v *Validator) ValidateChatInput(raw any) (string, error) {
	s, ok := raw.(string)
	if !ok {
		return "", ErrEmptyMessage
	}
	message := strings.TrimSpace(s)
	if message == "" {
		return "", ErrEmptyMessage
	}
	return message, nil
}

// ValidateContactInput checks the four required fields, then the email
// shape. Values are passed through untouched.
func (v *Validator) ValidateContactInput(req contact.ContactRequest) (models.ContactSubmission, error) {
	if err := v.validate.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return models.ContactSubmission{}, fmt.Errorf("validate contact request: %w", err)
		}
		failed := FormatValidationError(validationErrors)
		for _, f := range failed {
			if f.Tag == "required" {
				return models.ContactSubmission{}, fmt.Errorf("%w: %v", ErrMissingFields, failed)
			}
		}
		return models.ContactSubmission{}, fmt.Errorf("%w: %v", ErrInvalidEmail, failed)
	}

	return models.ContactSubmission{
		Name:         req.Name,
		Email:        req.Email,
		Subject:      req.Subject,
		Message:      req.Message,
		CaptchaToken: req.Token(),
	}, nil
}

// ValidationError describes a single failed field
type ValidationError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
}

// FormatValidationError flattens validator errors for logging
func FormatValidationError(err error) []ValidationError {
	var out []ValidationError
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			out = append(out, ValidationError{
				Field: e.Field(),
				Tag:   e.Tag(),
			})
		}
	}
	return out
}
