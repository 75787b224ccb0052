// Package ui renders the viewer's heads-up display.
package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/lumenlink/roomsim/sim"
)

// HUDData holds everything the HUD needs for one frame.
type HUDData struct {
	Title        string
	Links        []sim.Snapshot
	Rebuilds     int
	Skipped      int
	FPS          int32
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the link status overlay.
type HUD struct{}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{}
}

// Draw renders the HUD. Must be called outside BeginMode3D.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	blocked := 0
	for _, s := range data.Links {
		if s.Blocked {
			blocked++
		}
	}
	rl.DrawText(
		fmt.Sprintf("Links: %d | Blocked: %d | Rebuilds: %d | Skipped specs: %d",
			len(data.Links), blocked, data.Rebuilds, data.Skipped),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(fmt.Sprintf("FPS: %d", data.FPS), 10, 55, 16, rl.LightGray)

	// Per-link status lines, bottom-left.
	y := data.ScreenHeight - int32(len(data.Links))*18 - 10
	for _, s := range data.Links {
		color := rl.Green
		text := fmt.Sprintf("%s  %.2fm  clear", s.Name, s.Length)
		if s.Blocked {
			color = rl.Red
			text = fmt.Sprintf("%s  %.2fm  blocked by %s", s.Name, s.Length, s.Blocker)
		}
		rl.DrawText(text, 10, y, 16, color)
		y += 18
	}

	rl.DrawText("drag: orbit | wheel: zoom | R: rebuild", data.ScreenWidth-310, 10, 16, rl.Gray)
}
