// Package web serves scene previews and a page hosting the WebAssembly build.
package web

import (
	"encoding/json"
	"errors"
	"image/png"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"snowfall/internal/core"
	"snowfall/internal/render"
	_ "snowfall/internal/scene"
	"snowfall/internal/web/components"
	"snowfall/internal/web/viewmodel"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Options tunes the HTTP host.
type Options struct {
	// StaticDir holds wasm_exec.js and snowfall.wasm. Empty disables /static.
	StaticDir string
	// MaxTicks caps how far a preview may be simulated.
	MaxTicks int
	// MaxSize caps preview width and height.
	MaxSize int
}

// DefaultOptions returns limits suitable for a public preview server.
func DefaultOptions() Options {
	return Options{MaxTicks: 20000, MaxSize: 1280}
}

type parameterProvider interface {
	Parameters() core.ParameterSnapshot
}

type spriteReadier interface {
	SetSpriteReady(ready bool)
}

type handler struct {
	opts Options
}

// NewRouter wires every route behind the standard middleware stack.
func NewRouter(opts Options) http.Handler {
	if opts.MaxTicks <= 0 {
		opts.MaxTicks = DefaultOptions().MaxTicks
	}
	if opts.MaxSize <= 0 {
		opts.MaxSize = DefaultOptions().MaxSize
	}
	h := &handler{opts: opts}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(15 * time.Second))

	if opts.StaticDir != "" {
		r.Mount("/static", http.StripPrefix("/static", http.FileServer(http.Dir(opts.StaticDir))))
	}
	r.Get("/", h.index)
	r.Get("/scene/{name}", h.player)
	r.Get("/preview/{file}", h.preview)
	r.Get("/api/scenes/{name}", h.parameters)
	return r
}

// NewServer returns an http.Server with conservative timeouts.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

func renderPage(w http.ResponseWriter, r *http.Request, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		http.Error(w, "failed to render", http.StatusInternalServerError)
	}
}

func (h *handler) index(w http.ResponseWriter, r *http.Request) {
	page := viewmodel.IndexPage{Title: "Snowfall scenes"}
	for _, name := range core.SceneNames() {
		sc, err := core.NewScene(name, 0, 0, 0)
		if err != nil {
			continue
		}
		var snap core.ParameterSnapshot
		if p, ok := sc.(parameterProvider); ok {
			snap = p.Parameters()
		}
		page.Scenes = append(page.Scenes, viewmodel.NewSceneCard(name, snap))
	}
	renderPage(w, r, components.IndexPage(page))
}

func (h *handler) player(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if _, ok := core.Scenes()[name]; !ok {
		http.NotFound(w, r)
		return
	}
	renderPage(w, r, components.PlayerPage(viewmodel.NewPlayerPage(name)))
}

func (h *handler) parameters(w http.ResponseWriter, r *http.Request) {
	sc, err := core.NewScene(chi.URLParam(r, "name"), 0, 0, 0)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	out := struct {
		Name   string                `json:"name"`
		Width  int                   `json:"width"`
		Height int                   `json:"height"`
		Groups []core.ParameterGroup `json:"groups"`
	}{Name: sc.Name(), Width: sc.Size().W, Height: sc.Size().H}
	if p, ok := sc.(parameterProvider); ok {
		out.Groups = p.Parameters().Groups
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		log.Printf("[Web] Failed to encode parameters: %v", err)
	}
}

// preview simulates a scene headlessly and returns the final frame as PNG.
func (h *handler) preview(w http.ResponseWriter, r *http.Request) {
	name, ok := strings.CutSuffix(chi.URLParam(r, "file"), ".png")
	if !ok {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()
	width := clampQuery(q.Get("w"), 320, 1, h.opts.MaxSize)
	height := clampQuery(q.Get("h"), 180, 1, h.opts.MaxSize)
	ticks := clampQuery(q.Get("ticks"), 1800, 0, h.opts.MaxTicks)
	seed, _ := strconv.ParseInt(q.Get("seed"), 10, 64)

	sc, err := core.NewScene(name, width, height, seed)
	if err != nil {
		if errors.Is(err, core.ErrUnknownScene) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	raster := render.NewRaster(width, height, 1)
	raster.SetSprite(render.DefaultSprite(64))
	if s, ok := sc.(spriteReadier); ok {
		s.SetSpriteReady(true)
	}
	ctx := r.Context()
	for i := 0; i < ticks; i++ {
		if i%500 == 0 && ctx.Err() != nil {
			return
		}
		sc.Step()
	}
	raster.Clear()
	sc.Draw(raster)

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=300")
	if err := png.Encode(w, raster.Image()); err != nil {
		log.Printf("[Web] Failed to encode preview for %s: %v", name, err)
	}
}

func clampQuery(v string, fallback, lo, hi int) int {
	n, err := strconv.Atoi(v)
	if v == "" || err != nil {
		n = fallback
	}
	return min(max(n, lo), hi)
}
