package main

import (
	"fmt"
	"image/color"
	"math"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"github.com/tbarlow/chip8vm/chip8"
)

const sampleRate = 44100

// chip8Keys maps the conventional 4x4 hex keypad to a QWERTY layout,
// the same "1234/qwer/asdf/zxcv" arrangement most CHIP-8 frontends use.
// Index is the hex key value (0x0-0xF).
var chip8Keys = [16]ebiten.Key{
	0x1: ebiten.Key1, 0x2: ebiten.Key2, 0x3: ebiten.Key3, 0xC: ebiten.Key4,
	0x4: ebiten.KeyQ, 0x5: ebiten.KeyW, 0x6: ebiten.KeyE, 0xD: ebiten.KeyR,
	0x7: ebiten.KeyA, 0x8: ebiten.KeyS, 0x9: ebiten.KeyD, 0xE: ebiten.KeyF,
	0xA: ebiten.KeyZ, 0x0: ebiten.KeyX, 0xB: ebiten.KeyC, 0xF: ebiten.KeyV,
}

// EbitenDriver renders into a window via ebiten and plays a square-wave
// tone through oto/v3 while the sound timer is nonzero. It implements
// ebiten.Game (Layout/Update/Draw) and polls keys the way a classic
// controller-scan loop does. The emulation step is the function main
// hands to RunGame, which Update calls once per tick, since
// chip8.Machine.Run is synchronous and cheap enough to call once per
// Update tick.
type EbitenDriver struct {
	scale   int
	otoCtx  *oto.Context
	player  *oto.Player
	beeping atomic.Bool
	phase   float64

	last    *chip8.Machine
	onFrame func() error

	// title is overlaid in the corner of the window for 90 Update ticks
	// (1.5 seconds at ebiten's default 60 TPS) after the ROM loads, then
	// left blank; PauseMsg is drawn instead
	// whenever the driver is paused.
	title    string
	titleTTL int
	PauseMsg string
}

// NewEbitenDriver constructs a driver that scales the CHIP-8 display by
// scale pixels per logical pixel. title is the ROM name shown briefly
// in the window corner when the driver starts.
func NewEbitenDriver(scale int, title string) *EbitenDriver {
	return &EbitenDriver{scale: scale, title: title, titleTTL: 90}
}

func (d *EbitenDriver) Init(m *chip8.Machine) error {
	w, h := m.Display().Width(), m.Display().Height()
	ebiten.SetWindowSize(w*d.scale, h*d.scale)
	ebiten.SetWindowTitle("chip8vm")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return fmt.Errorf("chip8vm: init audio: %w", err)
	}
	<-ready
	d.otoCtx = ctx
	d.player = ctx.NewPlayer(d)
	d.player.Play()
	return nil
}

// Read implements io.Reader for the oto player: a continuous 440Hz
// square wave, gated on or off by Beep via d.beeping.
func (d *EbitenDriver) Read(p []byte) (int, error) {
	if !d.beeping.Load() {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}

	const freq = 440.0
	samples := len(p) / 4
	for i := 0; i < samples; i++ {
		var sample float32 = -0.2
		if math.Sin(d.phase) >= 0 {
			sample = 0.2
		}
		d.phase += 2 * math.Pi * freq / sampleRate
		if d.phase > 2*math.Pi {
			d.phase -= 2 * math.Pi
		}
		bits := math.Float32bits(sample)
		p[i*4] = byte(bits)
		p[i*4+1] = byte(bits >> 8)
		p[i*4+2] = byte(bits >> 16)
		p[i*4+3] = byte(bits >> 24)
	}
	return samples * 4, nil
}

func (d *EbitenDriver) PollInput(m *chip8.Machine) {
	for key, ebitenKey := range chip8Keys {
		m.SetKey(uint8(key), ebiten.IsKeyPressed(ebitenKey))
	}
}

func (d *EbitenDriver) Render(m *chip8.Machine) {
	// Actual pixel copy happens in Draw, called by ebiten itself;
	// Render just remembers the machine for the next Draw call.
	d.last = m
}

func (d *EbitenDriver) Beep(sound uint8) {
	d.beeping.Store(sound > 0)
}

func (d *EbitenDriver) Close() error {
	if d.player != nil {
		d.player.Close()
	}
	return nil
}

// RunGame drives the ebiten render loop, calling step once per tick
// before drawing the current display state. It blocks until the window
// is closed or step returns a non-nil error.
func (d *EbitenDriver) RunGame(step func() error) error {
	d.onFrame = step
	return ebiten.RunGame(d)
}

func (d *EbitenDriver) Layout(outsideWidth, outsideHeight int) (int, int) {
	if d.last == nil {
		return 64, 32
	}
	return d.last.Display().Width(), d.last.Display().Height()
}

func (d *EbitenDriver) Update() error {
	if d.titleTTL > 0 {
		d.titleTTL--
	}
	if ebiten.IsKeyJustPressed(ebiten.KeyP) {
		if d.PauseMsg == "" {
			d.PauseMsg = "PAUSED (P to resume)"
		} else {
			d.PauseMsg = ""
		}
	}
	if d.PauseMsg != "" || d.onFrame == nil {
		return nil
	}
	return d.onFrame()
}

func (d *EbitenDriver) Draw(screen *ebiten.Image) {
	if d.last == nil {
		return
	}
	rows := d.last.Display().Read()
	on := color.RGBA{0xff, 0xff, 0xff, 0xff}
	for y, row := range rows {
		for x, px := range row {
			if px != 0 {
				screen.Set(x, y, on)
			}
		}
	}

	switch {
	case d.PauseMsg != "":
		text.Draw(screen, d.PauseMsg, basicfont.Face7x13, 4, 14, color.RGBA{0xff, 0x40, 0x40, 0xff})
	case d.titleTTL > 0 && d.title != "":
		text.Draw(screen, d.title, basicfont.Face7x13, 4, 14, color.RGBA{0x40, 0xff, 0x40, 0xff})
	}
}
