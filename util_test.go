package cflag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalBase64String(t *testing.T) {
	input := []byte("SGVsbG8sIHdvcmxkIQ==")
	var output Base64String
	err := (&output).UnmarshalText(input)
	require.Nil(t, err)
	assert.Equal(t, "Hello, world!", string(output))
	assert.Equal(t, "SGVsbG8sIHdvcmxkIQ==", output.String())
}

func TestBase64StringFlag(t *testing.T) {
	var secret Base64String
	fs := newTestFlagSet(t, "test")
	err := fs.Parse([]Flag{
		{Name: "secret", Usage: "shared secret", Convert: Text, Value: &secret},
	}, []string{"--secret=aGk="})
	require.NoError(t, err)
	assert.Equal(t, "hi", string(secret))
}
