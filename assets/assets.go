// Package assets bundles the shader sources shipped with luminal.
package assets

import "embed"

// FS holds the embedded shader sources under shaders/.
//
//go:embed shaders/*.glsl
var FS embed.FS

// Shader resource names.
const (
	WallVertexShader   = "shaders/wall_vertex.glsl"
	WallFragmentShader = "shaders/wall_fragment.glsl"
	MeshVertexShader   = "shaders/mesh_vertex.glsl"
	MeshFragmentShader = "shaders/mesh_fragment.glsl"
)
