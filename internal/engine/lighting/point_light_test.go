package lighting

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/spacefolio/internal/engine/scene"
)

func TestFromScene(t *testing.T) {
	point := scene.NewPointLight("point", scene.White)
	point.Position = mgl32.Vec3{5, 5, 5}
	ambient := scene.NewAmbientLight("ambient", scene.White)
	dim := scene.NewAmbientLight("dim", mgl32.Vec3{0.2, 0.4, 2})
	dim.Intensity = 0.5

	points, amb := FromScene([]*scene.Light{point, ambient, dim})

	if len(points) != 1 {
		t.Fatalf("points = %d, want 1", len(points))
	}
	if points[0].Position != [3]float32{5, 5, 5} || points[0].Intensity != 1 || points[0].Range != 0 {
		t.Errorf("point = %+v", points[0])
	}
	want := [3]float32{1.1, 1.2, 1.5}
	for i := range want {
		if abs(amb[i]-want[i]) > 1e-6 {
			t.Errorf("ambient = %v, want %v", amb, want)
			break
		}
	}
}

func TestFromSceneClampsColor(t *testing.T) {
	hot := scene.NewPointLight("hot", mgl32.Vec3{3, -1, 0.5})
	points, _ := FromScene([]*scene.Light{hot})
	if points[0].Color != [3]float32{1, 0, 0.5} {
		t.Errorf("color = %v", points[0].Color)
	}
}

func TestSetSceneTruncates(t *testing.T) {
	var lights []*scene.Light
	for i := 0; i < MaxPointLights+3; i++ {
		lights = append(lights, scene.NewPointLight("p", scene.White))
	}

	b := NewPointLightBuffer()
	if dropped := b.SetScene(lights); dropped != 3 {
		t.Errorf("dropped = %d, want 3", dropped)
	}
	if b.Count != MaxPointLights || len(b.Lights) != MaxPointLights {
		t.Errorf("count = %d/%d", b.Count, len(b.Lights))
	}
}

func TestSetSceneReplaces(t *testing.T) {
	b := NewPointLightBuffer()
	b.SetScene([]*scene.Light{
		scene.NewPointLight("a", scene.White),
		scene.NewPointLight("b", scene.White),
		scene.NewAmbientLight("amb", scene.White),
	})

	if dropped := b.SetScene([]*scene.Light{scene.NewPointLight("c", scene.White)}); dropped != 0 {
		t.Errorf("dropped = %d", dropped)
	}
	if b.Count != 1 || len(b.Lights) != 1 || b.Ambient != [3]float32{} {
		t.Errorf("second SetScene kept stale state: %+v", b)
	}
}

func TestBufferFlattening(t *testing.T) {
	b := NewPointLightBuffer()
	b.AddLight(PointLight{Position: [3]float32{1, 2, 3}, Color: [3]float32{1, 0.5, 0}, Intensity: 2, Range: 10})
	b.AddLight(PointLight{Position: [3]float32{4, 5, 6}, Color: [3]float32{0, 0, 1}, Intensity: 1})

	pos := b.Positions()
	if len(pos) != MaxPointLights*3 || pos[3] != 4 || pos[5] != 6 {
		t.Errorf("positions = %v", pos[:6])
	}
	col := b.Colors()
	if col[0] != 2 || col[1] != 1 || col[5] != 1 {
		t.Errorf("colors should be premultiplied, got %v", col[:6])
	}
	if r := b.Ranges(); len(r) != MaxPointLights || r[0] != 10 || r[1] != 0 {
		t.Errorf("ranges = %v", r[:2])
	}
}

func TestBufferFullAndClear(t *testing.T) {
	b := NewPointLightBuffer()
	for i := 0; i < MaxPointLights; i++ {
		if !b.AddLight(PointLight{}) {
			t.Fatalf("AddLight %d rejected", i)
		}
	}
	if b.AddLight(PointLight{}) {
		t.Error("AddLight accepted past capacity")
	}

	b.Ambient = [3]float32{1, 1, 1}
	b.Clear()
	if b.Count != 0 || len(b.Lights) != 0 || b.Ambient != [3]float32{} {
		t.Errorf("Clear left %+v", b)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
