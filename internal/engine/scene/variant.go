package scene

import (
	"fmt"
	"strings"
)

// Capabilities selects the optional features the construction routine builds.
type Capabilities struct {
	Lighting      bool // standard materials, point + ambient light
	Textures      bool // background, avatar cube, textured planet
	OrbitControl  bool // mouse drag orbits the camera
	ScrollBinding bool // page scroll drives camera and two meshes
	DebugHelpers  bool // light helper and ground grid
}

func (c Capabilities) String() string {
	var on []string
	if c.Lighting {
		on = append(on, "lighting")
	}
	if c.Textures {
		on = append(on, "textures")
	}
	if c.OrbitControl {
		on = append(on, "orbit")
	}
	if c.ScrollBinding {
		on = append(on, "scroll")
	}
	if c.DebugHelpers {
		on = append(on, "helpers")
	}
	if len(on) == 0 {
		return "none"
	}
	return strings.Join(on, ",")
}

// Variant names a preset capability set.
type Variant string

const (
	// VariantRing is a lone wireframe ring.
	VariantRing Variant = "ring"
	// VariantLit adds lights, helpers, orbit control and a single star.
	VariantLit Variant = "lit"
	// VariantPortfolio adds textures, a starfield and scroll-driven camera.
	VariantPortfolio Variant = "portfolio"
)

// Preset is what a variant builds before any overrides.
type Preset struct {
	Capabilities Capabilities
	Stars        int
}

var presets = map[Variant]Preset{
	VariantRing: {},
	VariantLit: {
		Capabilities: Capabilities{Lighting: true, OrbitControl: true, DebugHelpers: true},
		Stars:        1,
	},
	VariantPortfolio: {
		Capabilities: Capabilities{Lighting: true, Textures: true, ScrollBinding: true},
		Stars:        200,
	},
}

// ParseVariant resolves a variant name.
func ParseVariant(name string) (Variant, error) {
	v := Variant(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := presets[v]; !ok {
		return "", fmt.Errorf("unknown scene variant %q", name)
	}
	return v, nil
}

// Preset returns the variant's default capabilities and star count.
func (v Variant) Preset() Preset {
	return presets[v]
}
