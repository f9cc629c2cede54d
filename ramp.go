package reflectance

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"
	"time"

	"github.com/kettek/apng"
)

var _ = fmt.Print

// Frame is one step of a mixing Ramp.
type Frame struct {
	Number uint
	T      float64 // mixing ratio, 0 is all From, 1 is all To
	Color  RGB
	Image  image.Image
	Delay  time.Duration
}

// Ramp is the sequence of colors obtained by mixing From into To in equal
// steps of the mixing ratio. Each frame shows From, the mix and To side by
// side.
type Ramp struct {
	From, To  RGB
	Frames    []*Frame
	LoopCount uint // 0 means loop forever, 1 means loop once, ...
}

func swatch(size int, colors ...RGB) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size*len(colors), size))
	for i, c := range colors {
		draw.Draw(img, image.Rect(i*size, 0, (i+1)*size, size), image.NewUniform(c), image.Point{}, draw.Src)
	}
	return img
}

// MixRamp reconstructs a and b once and mixes them at steps evenly spaced
// ratios from 0 to 1 inclusive. size is the edge length in pixels of each
// of the three squares in a frame, delay the display time of each frame.
func (r *Reconstructor) MixRamp(a, b RGB, steps, size int, delay time.Duration) (*Ramp, error) {
	if steps < 2 {
		return nil, fmt.Errorf("a mixing ramp needs at least two steps, got %d", steps)
	}
	if size < 1 {
		return nil, fmt.Errorf("invalid swatch size: %d", size)
	}
	spectra, err := r.FromSRGBAll([]RGB{a, b})
	if err != nil {
		return nil, err
	}
	ans := &Ramp{From: a, To: b, Frames: make([]*Frame, steps)}
	for i := range steps {
		t := float64(i) / float64(steps-1)
		m, err := Mix(spectra[0], spectra[1], t)
		if err != nil {
			return nil, err
		}
		c := r.SRGB(m)
		ans.Frames[i] = &Frame{Number: uint(i + 1), T: t, Color: c, Image: swatch(size, a, c, b), Delay: delay}
	}
	return ans, nil
}

// Colors returns the mixed color of every frame.
func (self *Ramp) Colors() []RGB {
	ans := make([]RGB, len(self.Frames))
	for i, f := range self.Frames {
		ans[i] = f.Color
	}
	return ans
}

// apng_delay expresses d, rounded to the millisecond, as the
// numerator/denominator pair of an APNG frame delay in seconds. Delays
// too long for a uint16 numerator fall back to whole seconds, saturating at
// 65535 s.
func apng_delay(d time.Duration) (num, den uint16) {
	ms := d.Round(time.Millisecond).Milliseconds()
	if ms <= 0 {
		return 0, 1
	}
	a, b := ms, int64(1000)
	for b != 0 {
		a, b = b, a%b
	}
	if n := ms / a; n <= math.MaxUint16 {
		return uint16(n), uint16(1000 / a)
	}
	return uint16(min(math.Round(d.Seconds()), math.MaxUint16)), 1
}

func (self *Ramp) as_apng() (ans apng.APNG) {
	ans.LoopCount = self.LoopCount
	for _, f := range self.Frames {
		d := apng.Frame{DisposeOp: apng.DISPOSE_OP_NONE, BlendOp: apng.BLEND_OP_SOURCE, Image: f.Image}
		d.DelayNumerator, d.DelayDenominator = apng_delay(f.Delay)
		ans.Frames = append(ans.Frames, d)
	}
	return
}

// EncodeAsPNG writes the ramp as an animated PNG, or a plain PNG when it
// has a single frame.
func (self *Ramp) EncodeAsPNG(w io.Writer) error {
	switch len(self.Frames) {
	case 0:
		return fmt.Errorf("cannot encode an empty ramp")
	case 1:
		return png.Encode(w, self.Frames[0].Image)
	}
	return apng.Encode(w, self.as_apng())
}

// Strip returns a single image with the mixed color of every frame side by
// side, each size pixels wide.
func (self *Ramp) Strip(size int) image.Image {
	return swatch(size, self.Colors()...)
}
