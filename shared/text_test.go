package shared

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestFirstNotEmpty(t *testing.T) {
	assert.Equal(t, "a", FirstNotEmpty("a", "b"))
	assert.Equal(t, "b", FirstNotEmpty("", "b"))
	assert.Equal(t, "", FirstNotEmpty("", ""))
}

func TestErrors(t *testing.T) {
	collected := NewErrors()
	assert.Nil(t, collected.Error())
	collected.Append(nil)
	assert.Equal(t, 0, collected.Size())

	first := errors.New("first")
	collected.Append(first)
	collected.Append(errors.New("second"))
	assert.Equal(t, 2, collected.Size())
	assert.Equal(t, first, collected.Error())
}
