// Package validate holds the input validation shared by the CRUD handlers.
package validate

import "fmt"

// Len checks the inclusive length bounds of a user-supplied string. The
// returned error message is user-facing.
func Len(input string, minLen, maxLen int, property string) error {
	if len(input) < minLen || len(input) > maxLen {
		return fmt.Errorf(
			"%s length must be between %d and %d characters",
			property, minLen, maxLen,
		)
	}
	return nil
}
