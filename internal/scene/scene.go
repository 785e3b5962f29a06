// Package scene provides a minimal renderer-agnostic scene graph: a flat
// list of drawable nodes with transform, color, and visibility state. The
// render package uploads and draws nodes; everything here is plain data, so
// scene manipulation can be tested without a GL context.
package scene

import (
	"github.com/Faultbox/meshanatomy/pkg/math"
)

// Node is one drawable object in the scene.
type Node struct {
	Name string
	Mesh MeshData

	Position math.Vec3
	Scale    float32 // uniform scale, animated for reveal effects

	Color   [3]float32
	Opacity float32
	Visible bool
}

// NewNode returns a visible node at the origin with full scale and opacity.
func NewNode(name string, mesh MeshData) *Node {
	return &Node{
		Name:    name,
		Mesh:    mesh,
		Scale:   1,
		Color:   [3]float32{1, 1, 1},
		Opacity: 1,
		Visible: true,
	}
}

// ModelMatrix returns the node's local-to-world transform.
func (n *Node) ModelMatrix() math.Mat4 {
	return math.Translate(n.Position.X, n.Position.Y, n.Position.Z).
		Mul(math.ScaleUniform(n.Scale))
}

// Scene is an ordered collection of nodes.
type Scene struct {
	nodes []*Node
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{}
}

// Add appends a node to the scene.
func (s *Scene) Add(n *Node) {
	s.nodes = append(s.nodes, n)
}

// Remove detaches a node from the scene. Removing a node that is not in
// the scene is a no-op.
func (s *Scene) Remove(n *Node) {
	for i, node := range s.nodes {
		if node == n {
			s.nodes = append(s.nodes[:i], s.nodes[i+1:]...)
			return
		}
	}
}

// Nodes returns the scene's nodes in draw order. The returned slice is
// shared; callers must not mutate it.
func (s *Scene) Nodes() []*Node {
	return s.nodes
}

// Len returns the number of nodes in the scene.
func (s *Scene) Len() int {
	return len(s.nodes)
}
