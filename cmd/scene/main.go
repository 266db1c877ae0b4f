//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"snowfall/internal/app"
	"snowfall/internal/audio"
	"snowfall/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	width := flag.Int("width", 960, "initial scene width in pixels")
	height := flag.Int("height", 540, "initial scene height in pixels")
	flag.Parse()

	sc, err := cfg.BuildScene(*width, *height)
	if err != nil {
		log.Fatal(err)
	}

	var music *audio.Player
	if cfg.MusicDir != "" {
		music = cfg.OpenMusic(audio.NewEbitenBackend())
	}
	session := app.NewSession(sc, music, cfg.Seed)
	defer session.Close()

	game := app.New(session, cfg.Scale, cfg.HUD, render.LoadSpriteAsync(cfg.SpriteImage, 64))
	size := sc.Size()

	ebiten.SetWindowTitle("snowfall: " + sc.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale, size.H*cfg.Scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
