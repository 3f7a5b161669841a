package loop

import (
	"github.com/tomz197/savetheearth/internal/asset"
	"github.com/tomz197/savetheearth/internal/config"
	"github.com/tomz197/savetheearth/internal/draw"
	"github.com/tomz197/savetheearth/internal/input"
	"github.com/tomz197/savetheearth/internal/object"
	"github.com/tomz197/savetheearth/internal/physics"
)

// window is the full play field.
var window = physics.NewRect(0, 0, config.WindowWidth, config.WindowHeight)

// Menu is the title screen.
type Menu struct {
	lines []object.Text
}

// NewMenu lays out the title screen around the window centre.
func NewMenu() *Menu {
	cx, cy := window.CenterX(), window.CenterY()
	return &Menu{lines: []object.Text{
		{X: cx, Y: cy, Size: config.TitleFontSize, Value: config.WindowTitle, Color: config.Yellow},
		{X: cx, Y: cy + config.MenuPromptOffset, Size: config.SubtitleFontSize, Value: "Press Enter", Color: config.Yellow},
		{X: cx, Y: cy + config.MenuStartOffset, Size: config.SubtitleFontSize, Value: "Start the Game", Color: config.Yellow},
	}}
}

// Step draws the menu and returns the next state for this frame's events.
func (m *Menu) Step(s draw.Surface, events []input.Event) (State, error) {
	s.Blit(asset.Background, window)
	for _, line := range m.lines {
		line.Draw(s)
	}
	if err := s.Present(); err != nil {
		return StateMenu, err
	}

	for _, ev := range events {
		switch {
		case ev.Type == input.EventQuit:
			return StateQuit, nil
		case ev == input.Down(input.KeyEnter):
			return StatePlaying, nil
		}
	}
	return StateMenu, nil
}

// shutdownLines is the notice shown while the host shuts down.
var shutdownLines = []object.Text{
	{X: window.CenterX(), Y: window.CenterY(), Size: config.SubtitleFontSize, Value: "Server shutting down", Color: config.Red},
	{X: window.CenterX(), Y: window.CenterY() + config.HUDFontSize*2, Size: config.HUDFontSize, Value: "Thanks for playing", Color: config.Yellow},
}

func drawShutdown(s draw.Surface) error {
	s.Blit(asset.Background, window)
	for _, line := range shutdownLines {
		line.Draw(s)
	}
	return s.Present()
}
