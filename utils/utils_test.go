package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateQRCode(t *testing.T) {
	png, err := GenerateQRCode("Ticket ID: 42", 256)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG\r\n\x1a\n")), "not a PNG")
}

func TestGenerateQRCode_EmptyContent(t *testing.T) {
	_, err := GenerateQRCode("", 256)
	assert.Error(t, err)
}

func TestStringPtr(t *testing.T) {
	assert.Nil(t, StringPtr(""))

	p := StringPtr("hello")
	require.NotNil(t, p)
	assert.Equal(t, "hello", *p)
}
