// Command goboycore runs the emulator core against a ROM file, either in a
// terminal renderer, an SDL2 window with audio, or headless for a fixed
// number of frames.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/kestrelmark/goboycore/internal/core/system"
	"github.com/kestrelmark/goboycore/internal/hostsdl2"
	"github.com/kestrelmark/goboycore/internal/hostterm"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "goboycore"
	app.Description = "A DMG (Game Boy) emulator core"
	app.Usage = "goboycore [options] <ROM file>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "Path to the ROM file",
		},
		cli.BoolFlag{
			Name:  "headless",
			Usage: "Run the emulator without any display",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run in headless mode (required for headless)",
			Value: 0,
		},
		cli.BoolFlag{
			Name:  "sdl2",
			Usage: "Use an SDL2 window and audio device instead of the terminal renderer",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("goboycore exited with error", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	romPath := c.String("rom")
	if romPath == "" {
		if c.NArg() > 0 {
			romPath = c.Args().Get(0)
		} else {
			cli.ShowAppHelp(c)
			return errors.New("no ROM path provided")
		}
	}

	rom, err := os.ReadFile(romPath)
	if err != nil {
		return fmt.Errorf("failed to read ROM: %v", err)
	}

	sys, err := system.FromCart(rom)
	if err != nil {
		return fmt.Errorf("failed to load cartridge: %v", err)
	}

	if c.Bool("headless") {
		frames := c.Int("frames")
		if frames <= 0 {
			return errors.New("headless mode requires --frames option with a positive value")
		}
		return runHeadless(sys, frames)
	}

	if c.Bool("sdl2") {
		return runSDL2(sys)
	}

	if !hostterm.IsInteractive() {
		return errors.New("stdout is not a terminal; pass --headless or --sdl2")
	}
	return runTerminal(sys)
}

func runHeadless(sys *system.System, frames int) error {
	slog.Info("running headless", "frames", frames)
	for i := 0; i < frames; i++ {
		if err := sys.RunFrame(); err != nil {
			return err
		}
		if i%60 == 0 {
			slog.Info("frame progress", "completed", i, "total", frames)
		}
	}
	slog.Info("headless execution completed", "frames", frames)
	return nil
}

func runTerminal(sys *system.System) error {
	renderer, err := hostterm.NewRenderer(sys)
	if err != nil {
		return err
	}
	return renderer.Run()
}

func runSDL2(sys *system.System) error {
	window, err := hostsdl2.NewVideoWindow("goboycore")
	if err != nil {
		return err
	}
	defer window.Close()

	audio, err := hostsdl2.NewAudioSink()
	if err != nil {
		return err
	}
	defer audio.Close()

	var buttons system.Buttons
	for window.Running() {
		window.Present(sys.Framebuffer(), &buttons)
		sys.SetButtonState(buttons)
		if err := sys.RunFrame(); err != nil {
			return err
		}
		audio.Feed(sys)
	}
	return nil
}
