package domain

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ContactSubject categorizes an inbound lead
type ContactSubject string

const (
	SubjectGeneralInquiry ContactSubject = "GENERAL_INQUIRY"
	SubjectDemoRequest    ContactSubject = "DEMO_REQUEST"
	SubjectSupport        ContactSubject = "SUPPORT"
	SubjectFeedback       ContactSubject = "FEEDBACK"
	SubjectOther          ContactSubject = "OTHER"
)

// ContactLead is a contact-form submission handed to the persistence
// collaborator. It is unrelated to risk scoring and never enters the
// assessment pipeline.
type ContactLead struct {
	ID           uuid.UUID      `json:"id"`
	FullName     string         `json:"full_name"`
	Email        string         `json:"email"`
	Organization string         `json:"organization,omitempty"`
	Phone        string         `json:"phone,omitempty"`
	Subject      ContactSubject `json:"subject"`
	Message      string         `json:"message"`
	SubmittedAt  time.Time      `json:"submitted_at"`
}

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+?\d{7,15}$`)
)

// Validate checks required fields and formats. Phone is optional but must
// be well-formed when present.
func (l *ContactLead) Validate() error {
	if strings.TrimSpace(l.FullName) == "" {
		return &MissingFieldError{Field: "full_name"}
	}
	if strings.TrimSpace(l.Email) == "" {
		return &MissingFieldError{Field: "email"}
	}
	if !emailPattern.MatchString(l.Email) {
		return &InvalidValueError{Field: "email", Reason: "not a valid email address"}
	}
	if l.Phone != "" && !phonePattern.MatchString(l.Phone) {
		return &InvalidValueError{Field: "phone", Reason: "digits only, optional leading +"}
	}
	if strings.TrimSpace(l.Message) == "" {
		return &MissingFieldError{Field: "message"}
	}
	return nil
}
