package validate

import (
	"fmt"
	"regexp"
	"unicode"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

const weakPasswordMessage = "Your password must contain 1 lowercase, 1 uppercase, 1 number, 1 special character, and be at least 8 characters long"

func IsEmail(value string) bool {
	return emailRegex.MatchString(value)
}

// IsStrongPassword requires at least 8 characters with at least one
// lowercase letter, one uppercase letter, one digit and one special character.
func IsStrongPassword(value string) bool {
	if len(value) < 8 {
		return false
	}
	var lower, upper, digit, special bool
	for _, r := range value {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	return lower && upper && digit && special
}

// Credentials checks email format and password strength, returning one
// message per failing field. An empty map means the input is acceptable.
func Credentials(email, password string) map[string]string {
	errObj := map[string]string{}
	if !IsEmail(email) {
		errObj["email"] = "Please enter a valid email"
	}
	if !IsStrongPassword(password) {
		errObj["password"] = weakPasswordMessage
	}
	return errObj
}

// EmptyFields reports every string-valued field in a decoded JSON body whose
// value is the empty string. Absent fields are not checked.
func EmptyFields(body map[string]interface{}) map[string]string {
	errObj := map[string]string{}
	for key, value := range body {
		if s, ok := value.(string); ok && s == "" {
			errObj[key] = fmt.Sprintf("%s cannot be empty", key)
		}
	}
	return errObj
}
