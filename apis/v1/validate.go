package v1

import (
	"errors"
	"fmt"
)

var ErrMissingField = errors.New("missing required field")

// required reports the first empty value of name/value pairs.
func required(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, pairs[i])
		}
	}
	return nil
}
