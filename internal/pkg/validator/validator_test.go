package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name     string `json:"name" validate:"required"`
	Duration int    `json:"duration" validate:"gt=0"`
	Internal string `validate:"max=3"`
}

func TestValidate(t *testing.T) {
	assert.Nil(t, Validate(sample{Name: "Corte", Duration: 30}))

	errs := Validate(sample{Internal: "toolong"})
	assert.Equal(t, map[string]string{
		"name":     "required",
		"duration": "gt",
		"Internal": "max",
	}, errs)
}

func TestValidate_NotAStruct(t *testing.T) {
	errs := Validate(42)
	assert.Contains(t, errs, "_")
}
