package shader

import _ "embed"

// MeshVertexShader transforms lit and unlit meshes.
//
//go:embed glsl/mesh.vert
var MeshVertexShader string

// BasicFragmentShader shades unlit meshes.
//
//go:embed glsl/basic.frag
var BasicFragmentShader string

// StandardFragmentShader shades meshes with point and ambient lights.
//
//go:embed glsl/standard.frag
var StandardFragmentShader string

// LineVertexShader is the vertex shader for debug lines.
//
//go:embed glsl/line.vert
var LineVertexShader string

// LineFragmentShader is the fragment shader for debug lines.
//
//go:embed glsl/line.frag
var LineFragmentShader string

// BackgroundVertexShader emits a full-screen triangle.
//
//go:embed glsl/background.vert
var BackgroundVertexShader string

// BackgroundFragmentShader samples the scene background texture.
//
//go:embed glsl/background.frag
var BackgroundFragmentShader string

// Source pairs the two stages of one program.
type Source struct {
	Name     string
	Vertex   string
	Fragment string
}

// Programs used by the renderer.
var (
	Basic      = Source{Name: "basic", Vertex: MeshVertexShader, Fragment: BasicFragmentShader}
	Standard   = Source{Name: "standard", Vertex: MeshVertexShader, Fragment: StandardFragmentShader}
	Line       = Source{Name: "line", Vertex: LineVertexShader, Fragment: LineFragmentShader}
	Background = Source{Name: "background", Vertex: BackgroundVertexShader, Fragment: BackgroundFragmentShader}
)

// All lists every program source.
func All() []Source {
	return []Source{Basic, Standard, Line, Background}
}
