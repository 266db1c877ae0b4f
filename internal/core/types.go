package core

import (
	"errors"
	"fmt"
	"sort"
)

// Size describes the dimensions of a scene viewport in pixels.
type Size struct {
	W int
	H int
}

// Scene defines the minimal contract an animated scene must implement.
type Scene interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Resize(w, h int)
	Step()
	Draw(s Surface)
}

// Pointer receives discrete pointer events delivered by the host.
type Pointer interface {
	PointerDown(x, y float64) bool
	PointerMove(x, y float64)
	PointerUp()
}

// Factory constructs a Scene using an optional configuration map.
type Factory func(cfg map[string]string) Scene

var scenes = map[string]Factory{}

// Register adds a scene factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	scenes[name] = f
}

// Scenes exposes the registry of available scene factories.
func Scenes() map[string]Factory {
	return scenes
}

// SceneNames lists the registered scene names in sorted order.
func SceneNames() []string {
	names := make([]string, 0, len(scenes))
	for name := range scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ErrUnknownScene is returned when a name has no registered factory.
var ErrUnknownScene = errors.New("unknown scene")

// NewScene builds a registered scene. Zero dimensions or seed keep the
// factory defaults.
func NewScene(name string, w, h int, seed int64) (Scene, error) {
	factory, ok := scenes[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %v)", ErrUnknownScene, name, SceneNames())
	}
	opts := map[string]string{}
	if w > 0 && h > 0 {
		opts["w"] = fmt.Sprint(w)
		opts["h"] = fmt.Sprint(h)
	}
	if seed != 0 {
		opts["seed"] = fmt.Sprint(seed)
	}
	return factory(opts), nil
}
