package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateApplicationID_Shape(t *testing.T) {
	for i := 0; i < 1000; i++ {
		id := GenerateApplicationID()
		assert.Regexp(t, `^BD-\d{10}$`, id)
	}
}

func TestValidApplicationID(t *testing.T) {
	assert.True(t, ValidApplicationID("BD-0000000001"))
	assert.True(t, ValidApplicationID("BD-9999999999"))
	assert.False(t, ValidApplicationID("BD-123"))
	assert.False(t, ValidApplicationID("XX-1234567890"))
	assert.False(t, ValidApplicationID("BD-12345678901"))
	assert.False(t, ValidApplicationID(""))
}
