// Package render draws a scene into an offscreen framebuffer with a single
// flat-lit shader. Node geometry is uploaded lazily and released when a
// node leaves the scene.
package render

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/meshanatomy/internal/engine/camera"
	"github.com/Faultbox/meshanatomy/internal/engine/framebuffer"
	"github.com/Faultbox/meshanatomy/internal/engine/shader"
	"github.com/Faultbox/meshanatomy/internal/scene"
	"github.com/Faultbox/meshanatomy/pkg/math"
)

const vertexShaderSource = `#version 410 core
layout (location = 0) in vec3 aPosition;
layout (location = 1) in vec3 aNormal;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProjection;

out vec3 vNormal;

void main() {
    vNormal = mat3(uModel) * aNormal;
    gl_Position = uProjection * uView * uModel * vec4(aPosition, 1.0);
}
`

const fragmentShaderSource = `#version 410 core
in vec3 vNormal;

uniform vec3 uColor;
uniform float uOpacity;
uniform vec3 uLightDir;
uniform bool uLit;

out vec4 FragColor;

void main() {
    vec3 result = uColor;
    if (uLit) {
        vec3 normal = normalize(vNormal);
        float diff = max(dot(normal, normalize(uLightDir)), 0.0);
        result = (0.35 + 0.65 * diff) * uColor;
    }
    FragColor = vec4(result, uOpacity);
}
`

// vertex is the interleaved GPU vertex layout.
type vertex struct {
	Position [3]float32
	Normal   [3]float32
}

// glMesh is the uploaded form of one node's geometry.
type glMesh struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
	mode       uint32
}

// Viewport renders a scene with an orbit camera into a framebuffer whose
// color texture is displayed by the UI.
type Viewport struct {
	fb      *framebuffer.Framebuffer
	program uint32

	locModel      int32
	locView       int32
	locProjection int32
	locColor      int32
	locOpacity    int32
	locLightDir   int32
	locLit        int32

	meshes map[*scene.Node]*glMesh

	// Light direction in world space.
	LightDir math.Vec3
	// Background clear color.
	Background [3]float32
}

// NewViewport creates the render target and shader program. Requires a
// current GL context.
func NewViewport(width, height int32) (*Viewport, error) {
	v := &Viewport{
		meshes:     make(map[*scene.Node]*glMesh),
		LightDir:   math.Vec3{X: 0.5, Y: 0.8, Z: 0.6},
		Background: [3]float32{0.07, 0.08, 0.1},
	}

	var err error
	v.fb, err = framebuffer.New(width, height)
	if err != nil {
		return nil, fmt.Errorf("framebuffer: %w", err)
	}

	v.program, err = shader.CompileProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		v.fb.Destroy()
		return nil, fmt.Errorf("shader: %w", err)
	}

	v.locModel = shader.GetUniform(v.program, "uModel")
	v.locView = shader.GetUniform(v.program, "uView")
	v.locProjection = shader.GetUniform(v.program, "uProjection")
	v.locColor = shader.GetUniform(v.program, "uColor")
	v.locOpacity = shader.GetUniform(v.program, "uOpacity")
	v.locLightDir = shader.GetUniform(v.program, "uLightDir")
	v.locLit = shader.GetUniform(v.program, "uLit")

	return v, nil
}

// Size returns the framebuffer dimensions.
func (v *Viewport) Size() (int32, int32) {
	return v.fb.Size()
}

// Resize adjusts the render target, keeping at least 1x1.
func (v *Viewport) Resize(width, height int32) {
	v.fb.Resize(width, height)
}

// ReadPixels returns the last rendered frame as RGBA bytes.
func (v *Viewport) ReadPixels() ([]byte, int, int) {
	w, h := v.fb.Size()
	return v.fb.ReadPixels(), int(w), int(h)
}

// Render draws the scene and returns the color texture ID for display.
func (v *Viewport) Render(s *scene.Scene, cam *camera.OrbitCamera) uint32 {
	v.fb.Bind()
	v.fb.Clear(v.Background[0], v.Background[1], v.Background[2], 1.0)

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.LineWidth(2)

	gl.UseProgram(v.program)

	w, h := v.fb.Size()
	projection := math.Perspective(0.8, float32(w)/float32(h), 0.05, 500)
	view := cam.ViewMatrix()
	gl.UniformMatrix4fv(v.locProjection, 1, false, projection.Ptr())
	gl.UniformMatrix4fv(v.locView, 1, false, view.Ptr())
	gl.Uniform3f(v.locLightDir, v.LightDir.X, v.LightDir.Y, v.LightDir.Z)

	live := make(map[*scene.Node]bool, s.Len())
	for _, node := range s.Nodes() {
		live[node] = true
		if !node.Visible || node.Opacity <= 0 || node.Scale <= 0 {
			continue
		}
		v.drawNode(node)
	}

	// Release buffers of nodes no longer in the scene.
	for node, mesh := range v.meshes {
		if !live[node] {
			mesh.destroy()
			delete(v.meshes, node)
		}
	}

	gl.BindVertexArray(0)
	gl.UseProgram(0)
	v.fb.Unbind()

	return v.fb.ColorTexture()
}

func (v *Viewport) drawNode(node *scene.Node) {
	mesh := v.meshes[node]
	if mesh == nil {
		mesh = uploadMesh(&node.Mesh)
		if mesh == nil {
			return
		}
		v.meshes[node] = mesh
	}

	model := node.ModelMatrix()
	gl.UniformMatrix4fv(v.locModel, 1, false, model.Ptr())
	gl.Uniform3f(v.locColor, node.Color[0], node.Color[1], node.Color[2])
	gl.Uniform1f(v.locOpacity, node.Opacity)
	lit := int32(0)
	if mesh.mode == gl.TRIANGLES && len(node.Mesh.Normals) > 0 {
		lit = 1
	}
	gl.Uniform1i(v.locLit, lit)

	// Translucent nodes leave no depth footprint so layers behind them
	// stay visible.
	translucent := node.Opacity < 1
	if translucent {
		gl.DepthMask(false)
	}

	gl.BindVertexArray(mesh.vao)
	gl.DrawElements(mesh.mode, mesh.indexCount, gl.UNSIGNED_INT, nil)

	if translucent {
		gl.DepthMask(true)
	}
}

// uploadMesh interleaves positions and normals and uploads VAO/VBO/EBO.
// Returns nil for empty geometry.
func uploadMesh(data *scene.MeshData) *glMesh {
	if len(data.Positions) == 0 || len(data.Indices) == 0 {
		return nil
	}

	vertices := make([]vertex, len(data.Positions))
	for i, p := range data.Positions {
		vertices[i].Position = [3]float32{p.X, p.Y, p.Z}
		if i < len(data.Normals) {
			n := data.Normals[i]
			vertices[i].Normal = [3]float32{n.X, n.Y, n.Z}
		}
	}

	mesh := &glMesh{indexCount: int32(len(data.Indices))}
	switch data.Mode {
	case scene.Lines:
		mesh.mode = gl.LINES
	default:
		mesh.mode = gl.TRIANGLES
	}

	gl.GenVertexArrays(1, &mesh.vao)
	gl.BindVertexArray(mesh.vao)

	gl.GenBuffers(1, &mesh.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, mesh.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*int(unsafe.Sizeof(vertex{})), unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &mesh.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, mesh.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data.Indices)*4, unsafe.Pointer(&data.Indices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(unsafe.Sizeof(vertex{})), 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(unsafe.Sizeof(vertex{})), 12)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	return mesh
}

func (m *glMesh) destroy() {
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteBuffers(1, &m.ebo)
	gl.DeleteVertexArrays(1, &m.vao)
}

// Destroy releases all GL resources held by the viewport.
func (v *Viewport) Destroy() {
	for node, mesh := range v.meshes {
		mesh.destroy()
		delete(v.meshes, node)
	}
	if v.program != 0 {
		gl.DeleteProgram(v.program)
		v.program = 0
	}
	if v.fb != nil {
		v.fb.Destroy()
	}
}
