package reflectance

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/kettek/apng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMixRamp(t *testing.T) {
	r := Default()
	a, b := RGB{0, 33, 133}, RGB{252, 211, 0}
	ramp, err := r.MixRamp(a, b, 5, 4, 100*time.Millisecond)
	require.NoError(t, err)
	require.Len(t, ramp.Frames, 5)
	colors := ramp.Colors()
	assert.Equal(t, a, colors[0])
	assert.Equal(t, b, colors[4])
	mid, err := r.MixSRGB(a, b, 0.5)
	require.NoError(t, err)
	assert.Equal(t, mid, colors[2])
	for i, f := range ramp.Frames {
		assert.Equal(t, uint(i+1), f.Number)
		assert.InDelta(t, float64(i)/4, f.T, 1e-15)
		bounds := f.Image.Bounds()
		assert.Equal(t, 12, bounds.Dx())
		assert.Equal(t, 4, bounds.Dy())
		assert.Equal(t, color.NRGBA{f.Color.R, f.Color.G, f.Color.B, 255}, f.Image.At(5, 2))
		assert.Equal(t, color.NRGBA{a.R, a.G, a.B, 255}, f.Image.At(0, 0))
	}
	assert.Equal(t, 20, ramp.Strip(4).Bounds().Dx())

	_, err = r.MixRamp(a, b, 1, 4, 0)
	require.Error(t, err)
	_, err = r.MixRamp(a, b, 3, 0, 0)
	require.Error(t, err)
}

func TestRampEncodeAsPNG(t *testing.T) {
	r := Default()
	ramp, err := r.MixRamp(RGB{255, 0, 0}, RGB{0, 0, 255}, 4, 3, 250*time.Millisecond)
	require.NoError(t, err)
	buf := bytes.Buffer{}
	require.NoError(t, ramp.EncodeAsPNG(&buf))
	anim, err := apng.DecodeAll(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	frames := 0
	for _, f := range anim.Frames {
		if !f.IsDefault {
			frames++
			assert.Equal(t, [2]uint16{1, 4}, [2]uint16{f.DelayNumerator, f.DelayDenominator})
		}
	}
	assert.Equal(t, 4, frames)

	ramp.Frames = ramp.Frames[:1]
	buf.Reset()
	require.NoError(t, ramp.EncodeAsPNG(&buf))
	img, err := png.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 9, img.Bounds().Dx())

	ramp.Frames = nil
	require.Error(t, ramp.EncodeAsPNG(&buf))
}

func TestAPNGDelay(t *testing.T) {
	for d, expected := range map[time.Duration][2]uint16{
		0:                        {0, 1},
		-time.Second:             {0, 1},
		time.Second:              {1, 1},
		100 * time.Millisecond:   {1, 10},
		250 * time.Millisecond:   {1, 4},
		1500 * time.Millisecond:  {3, 2},
		time.Second / 3:          {333, 1000},
		70 * time.Second:         {70, 1},
		65537 * time.Millisecond: {66, 1},
		100 * time.Hour:          {65535, 1},
	} {
		num, den := apng_delay(d)
		assert.Equal(t, expected, [2]uint16{num, den}, d.String())
	}
}
