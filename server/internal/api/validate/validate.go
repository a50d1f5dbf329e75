package validate

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var emailRx = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Username must be 1-50 chars of letters, digits, underscore, dot or hyphen,
// and not only dots: "." and ".." are path segments routers collapse.
var usernameRx = regexp.MustCompile(`^[A-Za-z0-9_.\-]{1,50}$`)

// MaxTuitLength bounds the text of a single tuit, counted in runes.
const MaxTuitLength = 280

func Username(v string) error {
	if v == "" {
		return fmt.Errorf("username is required")
	}
	if !usernameRx.MatchString(v) {
		return fmt.Errorf("username must be 1-50 letters, digits, '_', '.' or '-'")
	}
	if strings.Trim(v, ".") == "" {
		return fmt.Errorf("username cannot consist only of dots")
	}
	return nil
}

func Password(v string) error {
	if v == "" {
		return fmt.Errorf("password is required")
	}
	if len(v) > 72 {
		return fmt.Errorf("password exceeds 72 bytes")
	}
	return nil
}

// Email is optional; when present it must look like an address.
func Email(v string) error {
	if v == "" {
		return nil
	}
	if !emailRx.MatchString(v) {
		return fmt.Errorf("invalid email")
	}
	return nil
}

// CreateUser validates the fields of a user registration.
func CreateUser(username, password, email string) error {
	if err := Username(username); err != nil {
		return err
	}
	if err := Password(password); err != nil {
		return err
	}
	return Email(email)
}

// TuitText validates the body of a new tuit.
func TuitText(v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("tuit is required")
	}
	if utf8.RuneCountInString(v) > MaxTuitLength {
		return fmt.Errorf("tuit exceeds %d characters", MaxTuitLength)
	}
	return nil
}

// IsJSONObject reports whether raw is a JSON object (not an array, string or null).
func IsJSONObject(raw []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil || m == nil {
		return fmt.Errorf("request body must be a JSON object")
	}
	return nil
}
