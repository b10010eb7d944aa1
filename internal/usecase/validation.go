package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	domainErrors "github.com/polkiloo/bankportal/internal/domain/errors"
	"github.com/polkiloo/bankportal/internal/domain/model"
)

var documentPatterns = map[model.KYCDocumentType]*regexp.Regexp{
	model.KYCDocumentAadhaar: regexp.MustCompile(`^\d{4}\s?\d{4}\s?\d{4}$`),
	model.KYCDocumentPAN:     regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`),
}

// NormalizeDocument validates number against the pattern of docType and
// returns it in canonical form. PAN numbers are upper-cased first.
func NormalizeDocument(docType model.KYCDocumentType, number string) (string, error) {
	pattern, ok := documentPatterns[docType]
	if !ok {
		return "", fmt.Errorf("%w: unsupported document type %q", domainErrors.ErrValidation, docType)
	}
	number = strings.TrimSpace(number)
	if docType == model.KYCDocumentPAN {
		number = strings.ToUpper(number)
	}
	if !pattern.MatchString(number) {
		return "", fmt.Errorf("%w: %s number has an invalid format", domainErrors.ErrInvalidDocument, docType)
	}
	return number, nil
}

// ValidateRegistration applies the sign up field rules of the auth service.
func ValidateRegistration(reg model.Registration) error {
	if n := utf8.RuneCountInString(reg.Username); n < 3 || n > 20 {
		return invalid("username must be between 3 and 20 characters")
	}
	if reg.Email == "" || len(reg.Email) > 50 || !validEmail(reg.Email) {
		return invalid("email must be valid")
	}
	if n := utf8.RuneCountInString(reg.Password); n < 6 || n > 40 {
		return invalid("password must be between 6 and 40 characters")
	}
	if !reg.Role.IsValid() {
		return invalid("role must be either CUSTOMER or ADMIN")
	}
	return nil
}

func validEmail(v string) bool {
	addr, err := mail.ParseAddress(v)
	return err == nil && addr.Address == v && strings.Contains(v[strings.LastIndex(v, "@"):], ".")
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", domainErrors.ErrValidation, msg)
}

// requireFields takes name/value pairs and reports the first blank value.
func requireFields(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			return invalid(pairs[i] + " is required")
		}
	}
	return nil
}
