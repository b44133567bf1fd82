// Package lighting flattens scene lights into the uniform layout the shaders expect.
package lighting

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/spacefolio/internal/engine/scene"
)

// MaxPointLights is the maximum number of point lights supported in shaders.
const MaxPointLights = 8

// PointLight represents a point light source for GPU upload.
type PointLight struct {
	Position  [3]float32 // World position
	Color     [3]float32 // RGB color (0-1 range)
	Range     float32    // Falloff distance; 0 means no falloff
	Intensity float32    // Light intensity multiplier
}

// PointLightBuffer holds lights for GPU upload.
type PointLightBuffer struct {
	Lights  []PointLight
	Count   int
	Ambient [3]float32 // Sum of all ambient lights, premultiplied by intensity
}

// NewPointLightBuffer creates an empty point light buffer.
func NewPointLightBuffer() *PointLightBuffer {
	return &PointLightBuffer{
		Lights: make([]PointLight, 0, MaxPointLights),
	}
}

// FromScene converts scene lights. Point lights keep their world position;
// ambient lights are summed into one term since they have no position.
func FromScene(lights []*scene.Light) (points []PointLight, ambient [3]float32) {
	for _, l := range lights {
		c := clampColor(l.Color)
		switch l.Kind {
		case scene.AmbientLight:
			for i := range ambient {
				ambient[i] += c[i] * l.Intensity
			}
		case scene.PointLight:
			points = append(points, PointLight{
				Position:  l.Position,
				Color:     c,
				Intensity: l.Intensity,
			})
		}
	}
	return points, ambient
}

// SetScene replaces the buffer contents with the given scene lights.
// Point lights beyond MaxPointLights are dropped; it reports how many.
func (b *PointLightBuffer) SetScene(lights []*scene.Light) (dropped int) {
	points, ambient := FromScene(lights)
	b.Clear()
	for _, p := range points {
		if !b.AddLight(p) {
			dropped++
		}
	}
	b.Ambient = ambient
	return dropped
}

func clampColor(c mgl32.Vec3) [3]float32 {
	var out [3]float32
	for i := 0; i < 3; i++ {
		out[i] = mgl32.Clamp(c[i], 0, 1)
	}
	return out
}

// Clear removes all lights from the buffer.
func (b *PointLightBuffer) Clear() {
	b.Lights = b.Lights[:0]
	b.Count = 0
	b.Ambient = [3]float32{}
}

// AddLight adds a point light to the buffer.
// Returns false if buffer is full.
func (b *PointLightBuffer) AddLight(light PointLight) bool {
	if b.Count >= MaxPointLights {
		return false
	}
	b.Lights = append(b.Lights, light)
	b.Count++
	return true
}

// Positions returns positions as a flat float32 slice for GPU upload.
// Format: [x0, y0, z0, x1, y1, z1, ...]
func (b *PointLightBuffer) Positions() []float32 {
	result := make([]float32, MaxPointLights*3)
	for i, light := range b.Lights {
		copy(result[i*3:], light.Position[:])
	}
	return result
}

// Colors returns colors premultiplied by intensity as a flat float32 slice.
// Format: [r0, g0, b0, r1, g1, b1, ...]
func (b *PointLightBuffer) Colors() []float32 {
	result := make([]float32, MaxPointLights*3)
	for i, light := range b.Lights {
		for c := 0; c < 3; c++ {
			result[i*3+c] = light.Color[c] * light.Intensity
		}
	}
	return result
}

// Ranges returns ranges as a flat float32 slice for GPU upload.
func (b *PointLightBuffer) Ranges() []float32 {
	result := make([]float32, MaxPointLights)
	for i, light := range b.Lights {
		result[i] = light.Range
	}
	return result
}
