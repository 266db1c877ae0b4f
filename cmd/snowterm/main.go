package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"snowfall/internal/app"
	"snowfall/internal/audio"
	"snowfall/internal/audio/beepout"
	"snowfall/internal/render"
	"snowfall/internal/term"

	"github.com/gdamore/tcell/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	cell := flag.Int("cell", 4, "scene pixels per half-block row and column")
	logPath := flag.String("log", "", "write logs to this file (the terminal is in use)")
	flag.Parse()

	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.SetOutput(os.Stderr)
			log.Fatalf("open log file: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	if err := run(cfg, *cell); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
}

func run(cfg *app.Config, cell int) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.Clear()

	cols, rows := screen.Size()
	sc, err := cfg.BuildScene(cols*cell, rows*2*cell)
	if err != nil {
		return err
	}

	var music *audio.Player
	if cfg.MusicDir != "" {
		var backend audio.Backend
		if b, err := beepout.New(); err != nil {
			log.Printf("[Music] Audio output unavailable: %v", err)
		} else {
			backend = b
		}
		music = cfg.OpenMusic(backend)
	}
	session := app.NewSession(sc, music, cfg.Seed)
	defer session.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner, err := term.NewRunner(screen, session, cell, cfg.TPS, render.LoadSpriteAsync(cfg.SpriteImage, 64))
	if err != nil {
		return err
	}
	if err := runner.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
