package validation

import (
	"fmt"
	"strings"
)

// ValidateVOEN checks the shape of a tax identification number: exactly 10
// digits. The EDV core carries VÖENs through without validating them; this
// helper is for the outer surfaces that accept one as a query parameter.
func ValidateVOEN(voen string) error {
	v := strings.TrimSpace(voen)
	if v == "" {
		return fmt.Errorf("VÖEN must not be empty")
	}
	if len(v) != 10 {
		return fmt.Errorf("VÖEN must be exactly 10 digits, got %d characters", len(v))
	}
	for _, r := range v {
		if r < '0' || r > '9' {
			return fmt.Errorf("VÖEN must contain only digits")
		}
	}
	return nil
}
