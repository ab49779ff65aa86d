package chart

import (
	"sync"
	"time"
)

// Layout recomputes a chart scene for a measured frame. It must only read
// already normalized data.
type Layout func(frame Frame) (*Scene, error)

// Viewport holds the latest measured container size of one chart and the
// scene computed for it. Every resize bumps the generation so animations
// bound to an older size can notice they are stale.
type Viewport struct {
	mu         sync.RWMutex
	layout     Layout
	width      float64
	height     float64
	generation uint64
	scene      *Scene
}

func NewViewport(layout Layout) *Viewport {
	return &Viewport{
		layout: layout,
	}
}

// Resize re-measures the container and re-runs the layout. A zero dimension
// clears the scene and draws nothing.
func (v *Viewport) Resize(width, height float64) (*Scene, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.width, v.height = width, height
	v.generation++
	v.scene = nil

	frame := Frame{Width: width, Height: height}
	if !frame.Drawable() {
		return nil, nil
	}

	scene, err := v.layout(frame)
	if err != nil {
		return nil, err
	}
	v.scene = scene
	return scene, nil
}

func (v *Viewport) Scene() *Scene {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.scene
}

func (v *Viewport) Size() (float64, float64) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.width, v.height
}

func (v *Viewport) Generation() uint64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.generation
}

// Play binds a player to the current scene. It returns nil when nothing is drawn.
func (v *Viewport) Play() *Player {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.scene == nil {
		return nil
	}
	return &Player{
		viewport:   v,
		generation: v.generation,
		scene:      v.scene,
	}
}

// Player samples the transitions of a scene over time.
type Player struct {
	viewport   *Viewport
	generation uint64
	scene      *Scene
}

// Frame returns every element's shape at elapsed time since the scene was
// drawn, or ErrStale once the viewport has been resized.
func (p *Player) Frame(elapsed time.Duration) ([]Shape, error) {
	if p.viewport.Generation() != p.generation {
		return nil, ErrStale
	}

	shapes := make([]Shape, 0, len(p.scene.Elements))
	for _, el := range p.scene.Elements {
		s, err := el.At(elapsed)
		if err != nil {
			return nil, err
		}
		shapes = append(shapes, s)
	}
	return shapes, nil
}

func (p *Player) Done(elapsed time.Duration) bool {
	return elapsed >= p.scene.TotalDuration()
}
