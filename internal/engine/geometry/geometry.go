// Package geometry generates indexed triangle meshes for primitive shapes.
package geometry

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// Stride is the number of floats per interleaved vertex: position, normal, uv.
const Stride = 8

// Geometry is an indexed triangle list with per-vertex normals and UVs.
type Geometry struct {
	Kind      string
	Positions []float32 // x, y, z per vertex
	Normals   []float32 // x, y, z per vertex
	UVs       []float32 // u, v per vertex
	Indices   []uint32  // three per triangle, counter-clockwise
}

// VertexCount returns the number of vertices.
func (g *Geometry) VertexCount() int {
	return len(g.Positions) / 3
}

// TriangleCount returns the number of triangles.
func (g *Geometry) TriangleCount() int {
	return len(g.Indices) / 3
}

// Interleaved packs vertices as [px py pz nx ny nz u v] for GPU upload.
func (g *Geometry) Interleaved() []float32 {
	n := g.VertexCount()
	out := make([]float32, 0, n*Stride)
	for i := 0; i < n; i++ {
		out = append(out,
			g.Positions[i*3], g.Positions[i*3+1], g.Positions[i*3+2],
			g.Normals[i*3], g.Normals[i*3+1], g.Normals[i*3+2],
			g.UVs[i*2], g.UVs[i*2+1],
		)
	}
	return out
}

// Bounds returns the axis-aligned bounding box of all vertices.
func (g *Geometry) Bounds() (min, max mgl32.Vec3) {
	if g.VertexCount() == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}
	min = mgl32.Vec3{1e10, 1e10, 1e10}
	max = mgl32.Vec3{-1e10, -1e10, -1e10}
	for i := 0; i < len(g.Positions); i += 3 {
		for axis := 0; axis < 3; axis++ {
			v := g.Positions[i+axis]
			if v < min[axis] {
				min[axis] = v
			}
			if v > max[axis] {
				max[axis] = v
			}
		}
	}
	return min, max
}

func (g *Geometry) addVertex(p, n mgl32.Vec3, u, v float32) {
	g.Positions = append(g.Positions, p[0], p[1], p[2])
	g.Normals = append(g.Normals, n[0], n[1], n[2])
	g.UVs = append(g.UVs, u, v)
}

// Torus builds a ring in the XY plane centered at the origin.
// radius is the distance from the center to the middle of the tube.
func Torus(radius, tube float32, radialSegments, tubularSegments int) *Geometry {
	radialSegments = max(radialSegments, 3)
	tubularSegments = max(tubularSegments, 3)

	g := &Geometry{Kind: "torus"}
	for j := 0; j <= radialSegments; j++ {
		v := float64(j) / float64(radialSegments) * 2 * gomath.Pi
		for i := 0; i <= tubularSegments; i++ {
			u := float64(i) / float64(tubularSegments) * 2 * gomath.Pi

			ring := float64(radius) + float64(tube)*gomath.Cos(v)
			p := mgl32.Vec3{
				float32(ring * gomath.Cos(u)),
				float32(ring * gomath.Sin(u)),
				float32(float64(tube) * gomath.Sin(v)),
			}
			center := mgl32.Vec3{
				float32(float64(radius) * gomath.Cos(u)),
				float32(float64(radius) * gomath.Sin(u)),
				0,
			}
			g.addVertex(p, p.Sub(center).Normalize(),
				float32(i)/float32(tubularSegments), float32(j)/float32(radialSegments))
		}
	}

	row := uint32(tubularSegments + 1)
	for j := uint32(1); j <= uint32(radialSegments); j++ {
		for i := uint32(1); i <= uint32(tubularSegments); i++ {
			a := row*j + i - 1
			b := row*(j-1) + i - 1
			c := row*(j-1) + i
			d := row*j + i
			g.Indices = append(g.Indices, a, b, d, b, c, d)
		}
	}
	return g
}

// Sphere builds a UV sphere centered at the origin.
func Sphere(radius float32, widthSegments, heightSegments int) *Geometry {
	widthSegments = max(widthSegments, 3)
	heightSegments = max(heightSegments, 2)

	g := &Geometry{Kind: "sphere"}
	grid := make([][]uint32, heightSegments+1)
	var index uint32
	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		grid[iy] = make([]uint32, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			n := mgl32.Vec3{
				float32(-gomath.Cos(u*2*gomath.Pi) * gomath.Sin(v*gomath.Pi)),
				float32(gomath.Cos(v * gomath.Pi)),
				float32(gomath.Sin(u*2*gomath.Pi) * gomath.Sin(v*gomath.Pi)),
			}
			g.addVertex(n.Mul(radius), n, float32(u), float32(1-v))
			grid[iy][ix] = index
			index++
		}
	}

	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			// Degenerate triangles at the poles are skipped.
			if iy != 0 {
				g.Indices = append(g.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				g.Indices = append(g.Indices, b, c, d)
			}
		}
	}
	return g
}

// boxFace describes one side of a box: outward normal plus the in-plane axes,
// chosen so that u × v == n keeps the winding counter-clockwise.
type boxFace struct {
	n, u, v mgl32.Vec3
}

var boxFaces = [6]boxFace{
	{n: mgl32.Vec3{1, 0, 0}, u: mgl32.Vec3{0, 0, -1}, v: mgl32.Vec3{0, 1, 0}},
	{n: mgl32.Vec3{-1, 0, 0}, u: mgl32.Vec3{0, 0, 1}, v: mgl32.Vec3{0, 1, 0}},
	{n: mgl32.Vec3{0, 1, 0}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 0, -1}},
	{n: mgl32.Vec3{0, -1, 0}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 0, 1}},
	{n: mgl32.Vec3{0, 0, 1}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 1, 0}},
	{n: mgl32.Vec3{0, 0, -1}, u: mgl32.Vec3{-1, 0, 0}, v: mgl32.Vec3{0, 1, 0}},
}

// Box builds an axis-aligned box centered at the origin. Each face carries its
// own four vertices so textures map onto every side.
func Box(width, height, depth float32) *Geometry {
	half := mgl32.Vec3{width / 2, height / 2, depth / 2}
	extent := func(axis mgl32.Vec3) float32 {
		return abs(axis[0])*half[0] + abs(axis[1])*half[1] + abs(axis[2])*half[2]
	}

	g := &Geometry{Kind: "box"}
	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for fi, f := range boxFaces {
		hn, hu, hv := extent(f.n), extent(f.u), extent(f.v)
		for _, c := range corners {
			p := f.n.Mul(hn).Add(f.u.Mul(c[0] * hu)).Add(f.v.Mul(c[1] * hv))
			g.addVertex(p, f.n, (c[0]+1)/2, (c[1]+1)/2)
		}
		base := uint32(fi * 4)
		g.Indices = append(g.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return g
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
