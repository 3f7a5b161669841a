package config

import (
	"image/color"
	"time"
)

// Window - the logical play field in pixels. Terminal frontends scale it
// to fit; the desktop window uses it directly.
const (
	WindowWidth  = 480
	WindowHeight = 640
	WindowTitle  = "Save the Earth"
)

// Frame pacing. All speeds below are pixels per frame.
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// Fighter
const (
	FighterStep = 5 // Horizontal velocity change per key press
)

// Missiles
const (
	MissileSpeed = 10
)

// Rocks
const (
	RockVariants       = 30 // rock01 .. rock30
	RockSpawnOdds      = 40 // One spawn roll in this many frames succeeds
	RockSpawnMargin    = 30 // Rocks spawn with x in [0, WindowWidth-RockSpawnMargin]
	RockCountDivisor   = 300
	RockMinSpeedDivide = 200
	RockMaxSpeedDivide = 100
)

// Scoring
const (
	MaxMissed = 3
)

// Game over
const (
	GameOverPause = time.Second
	// GameOverPauseFrames is GameOverPause expressed in frames so the pause
	// can run inside a frame-driven host without blocking it.
	GameOverPauseFrames = int(GameOverPause / TargetFrameTime)
)

// HUD and menu text.
const (
	HUDFontSize      = 28
	TitleFontSize    = 70
	SubtitleFontSize = 40
	HitsLabelX       = 100
	MissedLabelX     = 360
	HUDLabelY        = 20
	MenuPromptOffset = 200 // Below the window centre
	MenuStartOffset  = 250
)

// Palette used for text.
var (
	Black  = color.RGBA{0, 0, 0, 255}
	White  = color.RGBA{255, 255, 255, 255}
	Yellow = color.RGBA{250, 250, 50, 255}
	Red    = color.RGBA{250, 50, 50, 255}
)

// Terminal rendering limits; larger terminals get a centred, bordered
// play area.
const (
	MaxTermWidth  = 120
	MaxTermHeight = 60
)

// SSH sessions
const (
	ShutdownGrace        = 15 * time.Second
	ShutdownNotice       = 5 * time.Second // Shutdown message shown before a session disconnects
	ShutdownNoticeFrames = int(ShutdownNotice / TargetFrameTime)
	IdleTimeout          = 2 * time.Minute
)
