// Package debug provides debug visualization utilities.
package debug

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/spacefolio/internal/engine/scene"
)

// Grid helper colors.
var (
	GridCenterColor = scene.HexColor(0x444444)
	GridColor       = scene.HexColor(0x888888)
)

// LineVertex is one endpoint of a debug line segment.
type LineVertex struct {
	X, Y, Z float32 // Position
	R, G, B float32 // Color
}

// LineVertexFloats is the number of float32 values per LineVertex.
const LineVertexFloats = 6

func vertex(p, c mgl32.Vec3) LineVertex {
	return LineVertex{p[0], p[1], p[2], c[0], c[1], c[2]}
}

// GridLines generates a size x size grid on the XZ plane centered at the
// origin. The two lines through the origin use centerColor.
func GridLines(size float32, divisions int, centerColor, gridColor mgl32.Vec3) []LineVertex {
	if divisions < 1 || size <= 0 {
		return nil
	}

	half := size / 2
	step := size / float32(divisions)
	center := divisions / 2

	vertices := make([]LineVertex, 0, (divisions+1)*4)
	for i := 0; i <= divisions; i++ {
		k := -half + float32(i)*step
		c := gridColor
		if i == center {
			c = centerColor
		}
		vertices = append(vertices,
			// Along X at z = k
			vertex(mgl32.Vec3{-half, 0, k}, c),
			vertex(mgl32.Vec3{half, 0, k}, c),
			// Along Z at x = k
			vertex(mgl32.Vec3{k, 0, -half}, c),
			vertex(mgl32.Vec3{k, 0, half}, c),
		)
	}
	return vertices
}

// octahedron corners and edges, the wireframe of a 4x2 segment sphere.
var (
	octaCorners = [6]mgl32.Vec3{
		{1, 0, 0}, {-1, 0, 0},
		{0, 1, 0}, {0, -1, 0},
		{0, 0, 1}, {0, 0, -1},
	}
	octaEdges = [12][2]int{
		{2, 0}, {2, 1}, {2, 4}, {2, 5},
		{3, 0}, {3, 1}, {3, 4}, {3, 5},
		{0, 4}, {4, 1}, {1, 5}, {5, 0},
	}
)

// OctahedronVertexCount is the number of vertices for a light gizmo (12 edges x 2).
const OctahedronVertexCount = 24

// OctahedronLines generates a wireframe octahedron of the given radius around
// center. It marks a point light's position.
func OctahedronLines(center mgl32.Vec3, radius float32, color mgl32.Vec3) []LineVertex {
	vertices := make([]LineVertex, 0, OctahedronVertexCount)
	for _, e := range octaEdges {
		vertices = append(vertices,
			vertex(center.Add(octaCorners[e[0]].Mul(radius)), color),
			vertex(center.Add(octaCorners[e[1]].Mul(radius)), color),
		)
	}
	return vertices
}

// HelperLines generates the line vertices for one scene helper. Light helpers
// track the light's current position and color.
func HelperLines(h *scene.Helper) []LineVertex {
	switch h.Kind {
	case scene.GridHelper:
		return GridLines(h.Size, h.Divisions, GridCenterColor, GridColor)
	case scene.PointLightHelper:
		if h.Light == nil {
			return nil
		}
		return OctahedronLines(h.Light.Position, h.Size, h.Light.Color)
	default:
		return nil
	}
}

// AppendFloats flattens vertices into dst for GPU upload.
// Format: [x, y, z, r, g, b] per vertex.
func AppendFloats(dst []float32, vertices []LineVertex) []float32 {
	for _, v := range vertices {
		dst = append(dst, v.X, v.Y, v.Z, v.R, v.G, v.B)
	}
	return dst
}
