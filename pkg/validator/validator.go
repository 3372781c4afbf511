package validator

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	minEmailLength    = 3
	maxEmailLength    = 255
	minPasswordLength = 8
	maxPasswordLength = 128
	minFullNameLength = 3
	maxFullNameLength = 255
	maxNameLength     = 255
	minQty            = 1
	asciiControlStart = 32
	asciiDelete       = 127

	errEmailEmptyFmt        = "email cannot be empty"
	errEmailLengthFmt       = "email must be between %d and %d characters"
	errEmailInvalidFmt      = "invalid email format"
	errPasswordMinLengthFmt = "password must be at least %d characters"
	errPasswordMaxLengthFmt = "password must not exceed %d characters"
	errFullNameLengthFmt    = "full name must be between %d and %d characters"
	errNameEmptyFmt         = "name cannot be empty"
	errNameMaxLengthFmt     = "name must not exceed %d characters"
	errNameControlCharsFmt  = "name cannot contain control characters"
	errQtyMinFmt            = "quantity must be at least %d"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func Email(email string) error {
	if email == "" {
		return fmt.Errorf(errEmailEmptyFmt)
	}

	if len(email) < minEmailLength || len(email) > maxEmailLength {
		return fmt.Errorf(errEmailLengthFmt, minEmailLength, maxEmailLength)
	}

	if !emailRegex.MatchString(email) {
		return fmt.Errorf(errEmailInvalidFmt)
	}

	return nil
}

func Password(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf(errPasswordMinLengthFmt, minPasswordLength)
	}

	if len(password) > maxPasswordLength {
		return fmt.Errorf(errPasswordMaxLengthFmt, maxPasswordLength)
	}

	return nil
}

func FullName(name string) error {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < minFullNameLength || len(trimmed) > maxFullNameLength {
		return fmt.Errorf(errFullNameLengthFmt, minFullNameLength, maxFullNameLength)
	}

	return nil
}

// Name validates a display name for products, tags, and categories.
func Name(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf(errNameEmptyFmt)
	}

	if len(name) > maxNameLength {
		return fmt.Errorf(errNameMaxLengthFmt, maxNameLength)
	}

	for _, r := range name {
		if r < asciiControlStart || r == asciiDelete {
			return fmt.Errorf(errNameControlCharsFmt)
		}
	}

	return nil
}

func Quantity(qty int) error {
	if qty < minQty {
		return fmt.Errorf(errQtyMinFmt, minQty)
	}

	return nil
}
