package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"quartz/hal/button"
	"quartz/hal/lcd"
	"quartz/sim"
)

// Face geometry in logical pixels, scaled by the window.
const (
	digitW   = 22
	digitH   = 40
	segThick = 4
	digitGap = 8
	colonGap = 12
	marginX  = 16
	marginY  = 20

	faceW = marginX*2 + 6*digitW + 3*digitGap + 2*colonGap
	faceH = marginY*2 + digitH
)

var (
	faceBG  = color.RGBA{0x98, 0xa8, 0x90, 0xFF} // unlit glass green
	segOff  = color.RGBA{0x8e, 0x9e, 0x86, 0xFF}
	segOn   = color.RGBA{0x20, 0x28, 0x20, 0xFF}
	beepDot = color.RGBA{0xc0, 0x30, 0x30, 0xFF}
)

// game renders the display frame and forwards key presses as button edges.
type game struct {
	dev   *sim.Device
	scale int
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		g.dev.Press(button.Alarm)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.dev.Press(button.Mode)
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(faceBG)

	frame := g.dev.Frame()
	x := float32(marginX)
	for pos := 0; pos < 6; pos++ {
		g.drawDigit(screen, frame, pos, x)
		x += digitW
		switch pos {
		case 1, 3:
			g.drawColon(screen, x+colonGap/2)
			x += colonGap
		default:
			x += digitGap
		}
	}

	if g.dev.BuzzerOn() {
		vector.DrawFilledCircle(screen, float32(faceW-10), 10, 4, beepDot, false)
	}
}

// drawDigit paints the seven segments of one position. Layout:
//
//	 A
//	F B
//	 G
//	E C
//	 D
func (g *game) drawDigit(screen *ebiten.Image, f lcd.Frame, pos int, x float32) {
	y := float32(marginY)
	w := float32(digitW)
	h := float32(digitH)
	t := float32(segThick)
	half := h / 2

	hseg := func(sy float32, lit bool) {
		vector.DrawFilledRect(screen, x+t, sy, w-2*t, t, segColor(lit), false)
	}
	vseg := func(sx, sy float32, lit bool) {
		vector.DrawFilledRect(screen, sx, sy+t/2, t, half-t, segColor(lit), false)
	}

	lit := func(seg int) bool { return lcd.SegmentLit(f, pos, seg) }

	hseg(y, lit(0))               // A
	vseg(x+w-t, y, lit(1))        // B
	vseg(x+w-t, y+half, lit(2))   // C
	hseg(y+h-t, lit(3))           // D
	vseg(x, y+half, lit(4))       // E
	vseg(x, y, lit(5))            // F
	hseg(y+half-t/2, lit(6))      // G
}

func (g *game) drawColon(screen *ebiten.Image, cx float32) {
	y := float32(marginY)
	h := float32(digitH)
	t := float32(segThick)
	vector.DrawFilledRect(screen, cx-t/2, y+h/3, t, t, segOn, false)
	vector.DrawFilledRect(screen, cx-t/2, y+2*h/3, t, t, segOn, false)
}

func segColor(lit bool) color.RGBA {
	if lit {
		return segOn
	}
	return segOff
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return faceW, faceH
}
