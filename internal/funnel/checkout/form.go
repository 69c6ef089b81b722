package checkout

import (
	"errors"
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Form is the billing form state driving a checkout attempt.
type Form struct {
	FirstName string
	LastName  string
	Email     string
	Country   string
}

// Validate checks the form in display order and returns the first
// user-facing problem found.
func (f *Form) Validate() error {
	if strings.TrimSpace(f.FirstName) == "" {
		return errors.New("first name is required")
	}
	if strings.TrimSpace(f.LastName) == "" {
		return errors.New("last name is required")
	}
	if !emailPattern.MatchString(strings.TrimSpace(f.Email)) {
		return errors.New("a valid email is required")
	}
	return nil
}

// FullName joins the name parts for the checkout payload.
func (f *Form) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(f.FirstName) + " " + strings.TrimSpace(f.LastName))
}

// SplitName seeds first and last name from a single collected name. The
// first word becomes the first name, the remainder the last name.
func SplitName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
