package capture

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeSignature(t *testing.T, dataURI string) image.Image {
	t.Helper()
	require.True(t, strings.HasPrefix(dataURI, "data:image/png;base64,"))
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURI, "data:image/png;base64,"))
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	return img
}

func inked(img image.Image, x, y int) bool {
	r, g, b, _ := img.At(x, y).RGBA()
	return r < 0x8000 && g < 0x8000 && b < 0x8000
}

func regionInked(img image.Image, x0, y0, x1, y1 int) bool {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if inked(img, x, y) {
				return true
			}
		}
	}
	return false
}

func TestSignaturePadEmptySavesNothing(t *testing.T) {
	pad := NewSignaturePad(600, 300)
	assert.True(t, pad.Empty())
	assert.Equal(t, "", pad.Save())
}

func TestSignaturePadCapturesStroke(t *testing.T) {
	pad := NewSignaturePad(600, 300)

	pad.Begin(100, 150)
	assert.True(t, pad.Drawing())
	pad.Move(140, 150)
	pad.Move(180, 150)
	pad.End()
	assert.False(t, pad.Drawing())
	assert.False(t, pad.Empty())

	img := decodeSignature(t, pad.Save())
	assert.True(t, inked(img, 140, 150), "stroke path should be inked")
	assert.False(t, inked(img, 400, 150), "untouched area should stay blank")
}

func TestSignaturePadMoveWithoutBeginIsIgnored(t *testing.T) {
	pad := NewSignaturePad(600, 300)
	pad.Move(100, 100)
	pad.End()
	assert.True(t, pad.Empty())
}

func TestSignaturePadStrokesOutsideBoundsAreClipped(t *testing.T) {
	pad := NewSignaturePad(600, 300)
	pad.Begin(-50, -50)
	pad.Move(700, 400)
	pad.End()

	// Must not panic and must still produce a decodable image.
	img := decodeSignature(t, pad.Save())
	assert.Equal(t, 600, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())
}
