package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name  string   `validate:"required"`
	Score int      `validate:"min=0,max=100"`
	Tags  []string `validate:"required"`
}

func TestStruct(t *testing.T) {
	assert.NoError(t, Struct(sample{Name: "a", Score: 50, Tags: []string{}}))

	err := Struct(sample{Score: 101})
	assert.ErrorIs(t, err, ErrInvalid)
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "sample.Name failed required")
		assert.Contains(t, err.Error(), "sample.Score failed max=100")
		assert.Contains(t, err.Error(), "sample.Tags failed required")
	}
}
