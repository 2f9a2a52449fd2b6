package qrcode

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenerator(t *testing.T) {
	gen := NewGenerator()
	assert.Equal(t, 256, gen.size)
	assert.Equal(t, Medium, gen.recoveryLevel)

	gen = NewGenerator(WithSize(128), WithRecoveryLevel(High))
	assert.Equal(t, 128, gen.size)
	assert.Equal(t, High, gen.recoveryLevel)
}

func TestGenerator_Encode(t *testing.T) {
	gen := NewGenerator(WithSize(128))

	code, err := gen.Encode("RES-42")
	require.NoError(t, err)
	assert.Equal(t, "RES-42", code.Content)

	img, err := png.Decode(bytes.NewReader(code.PNG))
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())
}

func TestGenerator_EncodeEmpty(t *testing.T) {
	_, err := NewGenerator().Encode("")
	assert.Error(t, err)
}

func TestCode_DataURL(t *testing.T) {
	code, err := NewGenerator(WithRecoveryLevel(Low)).Encode("RES-1")
	require.NoError(t, err)

	url := code.DataURL()
	require.True(t, strings.HasPrefix(url, "data:image/png;base64,"))

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.Equal(t, code.PNG, decoded)
}

func TestToQRCodeLevel(t *testing.T) {
	for _, level := range []RecoveryLevel{Low, Medium, High, Highest, RecoveryLevel(99)} {
		gen := NewGenerator(WithRecoveryLevel(level))
		_, err := gen.Encode("RES-1")
		assert.NoError(t, err)
	}
}
