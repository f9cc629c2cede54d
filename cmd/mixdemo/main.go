package main

import (
	"fmt"
	"os"
	"time"

	"github.com/kovidgoyal/reflectance"
	"github.com/kovidgoyal/reflectance/cie"
)

var _ = fmt.Print

func main() {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}()
	if len(os.Args) < 3 || len(os.Args) > 4 {
		fmt.Fprintln(os.Stderr, "usage: go run ./cmd/mixdemo color1 color2 [output.apng]")
		os.Exit(1)
	}
	a, err := reflectance.ParseColor(os.Args[1])
	if err != nil {
		return
	}
	b, err := reflectance.ParseColor(os.Args[2])
	if err != nil {
		return
	}
	r := reflectance.Default()
	spectra, err := r.FromSRGBAll([]reflectance.RGB{a, b})
	if err != nil {
		return
	}
	mixed, err := reflectance.Mix(spectra[0], spectra[1], 0.5)
	if err != nil {
		return
	}
	fmt.Println(cie.ReferenceGrid)
	fmt.Printf("%6s %10s %10s %10s\n", "nm", a.AsSharp(), b.AsSharp(), "mix")
	for i, w := range cie.ReferenceGrid.Wavelengths() {
		fmt.Printf("%6g %10.6f %10.6f %10.6f\n", w, spectra[0][i], spectra[1][i], mixed[i])
	}
	fmt.Println("Mixed color:", r.SRGB(mixed).AsSharp())
	if len(os.Args) < 4 {
		return
	}
	ramp, err := r.MixRamp(a, b, 11, 64, 200*time.Millisecond)
	if err != nil {
		return
	}
	output_file := os.Args[3]
	if err = save(ramp, output_file); err == nil {
		fmt.Println("Mixing ramp saved to:", output_file)
	}
}

// save writes the ramp as an (animated) PNG. Errors from closing the file
// are returned too.
func save(ramp *reflectance.Ramp, path string) (err error) {
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o666)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	return ramp.EncodeAsPNG(out)
}
