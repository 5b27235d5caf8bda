package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDataURIContentType(t *testing.T) {
	assert.Equal(t, "image/jpeg", dataURIContentType("data:image/jpeg;base64,/9j/4AAQ"))
	assert.Empty(t, dataURIContentType("image/jpeg;base64,/9j/4AAQ"))
	assert.Empty(t, dataURIContentType("data:image/jpeg,/9j/4AAQ"))
}
