package validation

import (
	"regexp"
	"strings"

	"prepdeck/internal/domain"
	"prepdeck/internal/dto"
)

const maxAnswerLength = 5000

var (
	ulidPattern  = regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateSubmitAnswerRequest validates the answer submission request.
func (v *Validator) ValidateSubmitAnswerRequest(req dto.SubmitAnswerRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.SessionID) == "" {
		errors = append(errors, domain.NewMissingFieldError("session_id"))
	} else if !IsValidULID(req.SessionID) {
		errors = append(errors, domain.NewInvalidFormatError("session_id", req.SessionID))
	}

	if req.QuestionIndex < 0 {
		errors = append(errors, domain.NewInvalidFormatError("question_index", req.QuestionIndex))
	}

	if strings.TrimSpace(req.Answer) == "" {
		errors = append(errors, domain.NewMissingFieldError("answer"))
	} else if len(req.Answer) > maxAnswerLength {
		errors = append(errors, domain.NewOutOfRangeError("answer", len(req.Answer), 1, maxAnswerLength))
	}

	return errors
}

// ValidateRegisterRequest validates the registration request.
func (v *Validator) ValidateRegisterRequest(req dto.RegisterRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Name) == "" {
		errors = append(errors, domain.NewMissingFieldError("name"))
	}

	if strings.TrimSpace(req.Email) == "" {
		errors = append(errors, domain.NewMissingFieldError("email"))
	} else if !emailPattern.MatchString(req.Email) {
		errors = append(errors, domain.NewInvalidFormatError("email", req.Email))
	}

	if req.Password == "" {
		errors = append(errors, domain.NewMissingFieldError("password"))
	} else if len(req.Password) < 8 {
		errors = append(errors, domain.NewOutOfRangeError("password", len(req.Password), 8, 72))
	}

	return errors
}

// ValidateLoginRequest validates the login request.
func (v *Validator) ValidateLoginRequest(req dto.LoginRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Email) == "" {
		errors = append(errors, domain.NewMissingFieldError("email"))
	}
	if req.Password == "" {
		errors = append(errors, domain.NewMissingFieldError("password"))
	}

	return errors
}

// IsValidULID reports whether the string is a well-formed ULID.
func IsValidULID(s string) bool {
	return ulidPattern.MatchString(s)
}
