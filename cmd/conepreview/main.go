// Collision cone preview tool - interactive visualization with sliders.
//
// Shows the side profile of the generated beam cone mesh for a chosen
// waist, wavelength, length and segment fidelity, with the live
// vertex/triangle counts.
//
// Usage: go run ./cmd/conepreview
package main

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/lumenlink/roomsim/geom"
	"github.com/lumenlink/roomsim/optics"
)

const (
	windowWidth  = 1000
	windowHeight = 620
	previewW     = 620
	panelWidth   = windowWidth - previewW - 30
)

// ConeParams holds the preview parameters.
type ConeParams struct {
	WaistMM      float32 // millimeters for slider ergonomics
	WavelengthNM float32
	Length       float32
	AxialSegs    int
	RadialSegs   int
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Beam Cone Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := ConeParams{
		WaistMM:      2.0,
		WavelengthNM: 1550,
		Length:       10,
		AxialSegs:    8,
		RadialSegs:   12,
	}

	for !rl.WindowShouldClose() {
		beam, err := optics.NewBeamParameters(
			float64(params.WaistMM)/1000,
			float64(params.WavelengthNM)*1e-9,
		)
		if err != nil {
			beam, _ = optics.NewBeamParameters(0.002, 1550e-9)
		}
		mesh, meshErr := geom.BuildBeamCone(beam, float64(params.Length), params.AxialSegs, params.RadialSegs)

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		drawProfile(beam, float64(params.Length), params.AxialSegs)

		panelX := float32(previewW + 20)
		panelY := float32(20)

		rl.DrawText("Beam Cone Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		rl.DrawText("Waist (mm)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		params.WaistMM = gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.5", "10",
			params.WaistMM, 0.5, 10,
		)
		rl.DrawText(fmt.Sprintf("%.1f", params.WaistMM), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		panelY += 35

		rl.DrawText("Wavelength (nm)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		params.WavelengthNM = gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"850", "1600",
			params.WavelengthNM, 850, 1600,
		)
		rl.DrawText(fmt.Sprintf("%.0f", params.WavelengthNM), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		panelY += 35

		rl.DrawText("Length (m)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		params.Length = gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "50",
			params.Length, 0, 50,
		)
		rl.DrawText(fmt.Sprintf("%.1f", params.Length), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		panelY += 35

		rl.DrawText("Axial segments", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newAxial := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"1", "32",
			float32(params.AxialSegs), 1, 32,
		)
		params.AxialSegs = int(newAxial)
		rl.DrawText(fmt.Sprintf("%d", params.AxialSegs), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		panelY += 35

		rl.DrawText("Radial segments", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newRadial := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"3", "32",
			float32(params.RadialSegs), 3, 32,
		)
		params.RadialSegs = int(newRadial)
		rl.DrawText(fmt.Sprintf("%d", params.RadialSegs), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		panelY += 45

		if meshErr == nil {
			rl.DrawText(fmt.Sprintf("Vertices: %d", len(mesh.Vertices)), int32(panelX), int32(panelY), 16, rl.DarkGray)
			panelY += 22
			rl.DrawText(fmt.Sprintf("Triangles: %d", len(mesh.Triangles)), int32(panelX), int32(panelY), 16, rl.DarkGray)
			panelY += 22
		}
		rl.DrawText(fmt.Sprintf("Rayleigh range: %.2f m", beam.Rayleigh()), int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 22
		rl.DrawText(fmt.Sprintf("Divergence: %.3f mrad", beam.Divergence()*1000), int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 30

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset") {
			params = ConeParams{WaistMM: 2.0, WavelengthNM: 1550, Length: 10, AxialSegs: 8, RadialSegs: 12}
		}

		rl.EndDrawing()
	}
}

// drawProfile renders the beam envelope side view with the discretized
// ring positions overlaid.
func drawProfile(beam optics.BeamParameters, length float64, axialSegs int) {
	const marginX, midY = 30, windowHeight / 2
	plotW := float64(previewW - 2*marginX)

	maxRadius := beam.Radius(length)
	if maxRadius <= 0 {
		maxRadius = beam.Waist
	}
	// Fit the envelope into ~200px half-height.
	scale := 200 / maxRadius

	samples := optics.SampleProfile(beam.Waist, beam.Rayleigh(), length, 256)
	for i := 1; i < len(samples); i++ {
		x0 := int32(marginX + plotW*samples[i-1].Distance/max(length, 1e-12))
		x1 := int32(marginX + plotW*samples[i].Distance/max(length, 1e-12))
		r0 := int32(samples[i-1].Radius * scale)
		r1 := int32(samples[i].Radius * scale)
		rl.DrawLine(x0, midY-r0, x1, midY-r1, rl.Blue)
		rl.DrawLine(x0, midY+r0, x1, midY+r1, rl.Blue)
	}
	rl.DrawLine(marginX, midY, previewW-marginX, midY, rl.LightGray)

	// Discretized ring positions.
	rings := optics.SampleProfile(beam.Waist, beam.Rayleigh(), length, axialSegs)
	for _, ring := range rings {
		x := int32(marginX + plotW*ring.Distance/max(length, 1e-12))
		r := int32(ring.Radius * scale)
		rl.DrawLine(x, midY-r, x, midY+r, rl.Fade(rl.Red, 0.5))
	}
}
