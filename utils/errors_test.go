package utils

import (
	"testing"

	"go.viam.com/test"
)

func TestNewUnknownNameError(t *testing.T) {
	err := NewUnknownNameError("task type", "fly")
	test.That(t, err.Error(), test.ShouldEqual, `unknown task type "fly"`)
}
