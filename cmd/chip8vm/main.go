package main

import (
	"flag"
	"log"
	"time"

	"github.com/tbarlow/chip8vm/chip8"
	"github.com/tbarlow/chip8vm/quirks"
	"github.com/tbarlow/chip8vm/rom"
)

var (
	romFile       = flag.String("rom", "", "Path to a CHIP-8/SUPER-CHIP/XO-CHIP ROM to run.")
	profile       = flag.String("profile", "chip8", "Quirk profile: chip8, schip-modern, or xochip.")
	scale         = flag.Int("scale", 10, "Pixels per logical pixel in the ebiten window.")
	termMode      = flag.Bool("term", false, "Render in the terminal instead of opening a window.")
	ticksPerFrame = flag.Int("ticks", 11, "Instructions executed per 1/60s frame (under the vblank quirk a draw ends the frame early).")
)

func main() {
	flag.Parse()

	if *romFile == "" {
		log.Fatal("chip8vm: -rom is required")
	}

	r, err := rom.Load(*romFile)
	if err != nil {
		log.Fatalf("chip8vm: %v", err)
	}
	log.Printf("chip8vm: loaded %d bytes from %s", r.Size(), r.Path())

	q, ok := quirks.Profile(*profile)
	if !ok {
		log.Fatalf("chip8vm: unknown quirk profile %q", *profile)
	}

	opts := chip8.DefaultOptions()
	opts.Quirks = q
	m, err := chip8.New(opts)
	if err != nil {
		log.Fatalf("chip8vm: %v", err)
	}
	if err := m.LoadProgram(r.Bytes()); err != nil {
		log.Fatalf("chip8vm: %v", err)
	}

	var drv Driver
	if *termMode {
		drv = NewTermDriver()
	} else {
		drv = NewEbitenDriver(*scale, r.Path())
	}

	if err := drv.Init(m); err != nil {
		log.Fatalf("chip8vm: %v", err)
	}
	defer drv.Close()

	step := func() error {
		drv.PollInput(m)
		if _, err := m.Run(*ticksPerFrame); err != nil {
			if _, ok := err.(*chip8.ExitError); ok {
				return err
			}
			log.Printf("chip8vm: %v", err)
			return err
		}
		drv.Render(m)
		drv.Beep(m.Sound())
		return nil
	}

	if gd, ok := drv.(*EbitenDriver); ok {
		if err := gd.RunGame(step); err != nil {
			log.Printf("chip8vm: exited: %v", err)
		}
		return
	}

	for {
		if err := step(); err != nil {
			log.Printf("chip8vm: exited: %v", err)
			return
		}
		time.Sleep(time.Second / 60)
	}
}
