// Beam profile sampler - writes the Gaussian envelope of a beam to CSV.
//
// Usage: go run ./cmd/beamprofile -waist 0.002 -wavelength 1550e-9 -length 20 -samples 64
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/lumenlink/roomsim/optics"
)

// ProfileRow is one CSV row of the sampled envelope.
type ProfileRow struct {
	Distance  float64 `csv:"distance_m"`
	Radius    float64 `csv:"radius_m"`
	Intensity float64 `csv:"axial_intensity_w_m2"`
}

func main() {
	waist := flag.Float64("waist", 0.002, "Beam waist w0 in meters")
	wavelength := flag.Float64("wavelength", 1550e-9, "Wavelength in meters")
	length := flag.Float64("length", 20, "Propagation distance in meters")
	samples := flag.Int("samples", 64, "Number of sample intervals")
	power := flag.Float64("power", 0.01, "Total beam power in watts")
	out := flag.String("out", "", "Output CSV path (empty = stdout)")

	flag.Parse()

	params, err := optics.NewBeamParameters(*waist, *wavelength)
	if err != nil {
		slog.Error("invalid beam parameters", "error", err)
		os.Exit(1)
	}

	profile := optics.SampleProfile(params.Waist, params.Rayleigh(), *length, *samples)
	rows := make([]ProfileRow, 0, len(profile))
	for _, p := range profile {
		rows = append(rows, ProfileRow{
			Distance:  p.Distance,
			Radius:    p.Radius,
			Intensity: optics.IntensityAt(*power, 0, p.Distance, params),
		})
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			slog.Error("creating output file", "error", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	if err := gocsv.Marshal(rows, w); err != nil {
		slog.Error("writing profile", "error", err)
		os.Exit(1)
	}
}
