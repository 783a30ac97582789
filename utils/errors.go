package utils

import (
	"github.com/pkg/errors"
)

// NewUnknownNameError is used when a lookup by name in a closed set fails.
func NewUnknownNameError(kind, name string) error {
	return errors.Errorf("unknown %s %q", kind, name)
}
