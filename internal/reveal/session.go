// Package reveal implements the progressive mesh-reveal state machine.
//
// A Session owns the extracted topology of the current shape and the four
// visual layers derived from it: vertex markers, edge lines, face patches,
// and the assembled shaded mesh. Each layer is created at most once per
// topology generation; repeated actions toggle visibility. Later layers
// build on the marker instances of earlier ones, so edge and face geometry
// tracks wherever the markers sit.
package reveal

import (
	"errors"

	"github.com/tanema/gween/ease"

	"github.com/Faultbox/meshanatomy/internal/engine/tween"
	"github.com/Faultbox/meshanatomy/internal/scene"
	"github.com/Faultbox/meshanatomy/internal/topology"
	"github.com/Faultbox/meshanatomy/pkg/math"
)

var (
	// ErrNoTopology is returned by actions before any geometry was set.
	ErrNoTopology = errors.New("reveal: no topology extracted")
	// ErrVerticesNotRevealed gates edge and face creation on the markers.
	ErrVerticesNotRevealed = errors.New("reveal: vertices not revealed yet")
	// ErrFacesNotFormed gates mesh assembly on the face layer.
	ErrFacesNotFormed = errors.New("reveal: faces not formed yet")
)

// LayerState tracks one visual layer's lifecycle.
type LayerState int

const (
	// LayerEmpty means the layer has no created objects.
	LayerEmpty LayerState = iota
	// LayerCreated means the layer's objects exist (visible or hidden).
	LayerCreated
)

// Animation pacing. The per-index stagger produces the sequential
// reveal effect.
const (
	StaggerDelay   float32 = 0.05
	revealDuration float32 = 0.45
	fadeDuration   float32 = 0.4
	meshDuration   float32 = 1.0

	// FaceOpacity is the target opacity of revealed face patches.
	FaceOpacity float32 = 0.7

	// markerRadiusFactor sizes markers relative to the shape's bounds.
	markerRadiusFactor float32 = 0.03
)

var (
	markerColor = [3]float32{1.0, 0.72, 0.1}
	edgeColor   = [3]float32{0.4, 0.85, 0.95}
	faceColor   = [3]float32{0.25, 0.5, 0.9}
	meshColor   = [3]float32{0.0, 0.33, 1.0}
)

// Session drives the reveal of one shape. All methods must be called from
// the main loop; the session is not safe for concurrent use.
type Session struct {
	scene    *scene.Scene
	animator tween.Animator

	geometry topology.Geometry
	topo     *topology.Topology

	markers []*scene.Node
	edges   []*scene.Node
	faces   []*scene.Node
	mesh    *scene.Node

	markersVisible bool
	edgesVisible   bool
	facesVisible   bool
	meshVisible    bool
}

// NewSession returns a session adding its visuals to host and animating
// them through animator.
func NewSession(host *scene.Scene, animator tween.Animator) *Session {
	return &Session{
		scene:    host,
		animator: animator,
	}
}

// SetGeometry replaces the active shape: the topology is re-extracted in
// full and all derived visuals are torn down. On extraction failure the
// session is left with no topology.
func (s *Session) SetGeometry(g topology.Geometry) error {
	s.Reset()

	topo, err := topology.Extract(g)
	if err != nil {
		s.geometry = topology.Geometry{}
		s.topo = nil
		return err
	}
	s.geometry = g.Clone()
	s.topo = topo
	return nil
}

// Topology returns the current topology, or nil before SetGeometry.
func (s *Session) Topology() *topology.Topology {
	return s.topo
}

// RevealVertices creates one marker per vertex on first call, animating
// each marker's scale from 0 to 1 with a staggered overshoot-then-settle
// ease. Later calls toggle the whole layer's visibility.
func (s *Session) RevealVertices() error {
	if s.topo == nil {
		return ErrNoTopology
	}
	if s.VerticesState() == LayerCreated {
		s.markersVisible = !s.markersVisible
		for _, m := range s.markers {
			m.Visible = s.markersVisible
		}
		return nil
	}

	markerMesh := octahedron(s.topo.BoundingRadius() * markerRadiusFactor)
	for i, v := range s.topo.Vertices {
		m := scene.NewNode("vertex", markerMesh)
		m.Position = v
		m.Color = markerColor
		m.Scale = 0
		s.scene.Add(m)
		s.markers = append(s.markers, m)

		s.animator.Animate(tween.Request{
			From: 0, To: 1,
			Duration: revealDuration,
			Delay:    float32(i) * StaggerDelay,
			Ease:     ease.OutBack,
			Apply:    func(v float32) { m.Scale = v },
		})
	}
	s.markersVisible = true
	return nil
}

// ConnectEdges creates one line segment per derived edge on first call,
// fading opacity in with a staggered decelerating ease. Endpoints are read
// from the referenced markers so the lines track marker positions. Later
// calls toggle visibility. Requires the vertex layer.
func (s *Session) ConnectEdges() error {
	if s.topo == nil {
		return ErrNoTopology
	}
	if s.VerticesState() != LayerCreated {
		return ErrVerticesNotRevealed
	}
	if s.EdgesState() == LayerCreated {
		s.edgesVisible = !s.edgesVisible
		for _, e := range s.edges {
			e.Visible = s.edgesVisible
		}
		return nil
	}

	for i, edge := range s.topo.Edges {
		a := s.markers[edge.Lo].Position
		b := s.markers[edge.Hi].Position
		n := scene.NewNode("edge", scene.MeshData{
			Positions: []math.Vec3{a, b},
			Indices:   []uint32{0, 1},
			Mode:      scene.Lines,
		})
		n.Color = edgeColor
		n.Opacity = 0
		s.scene.Add(n)
		s.edges = append(s.edges, n)

		s.animator.Animate(tween.Request{
			From: 0, To: 1,
			Duration: fadeDuration,
			Delay:    float32(i) * StaggerDelay,
			Ease:     ease.OutCubic,
			Apply:    func(v float32) { n.Opacity = v },
		})
	}
	s.edgesVisible = true
	return nil
}

// FormFaces creates one flat triangle patch per face on first call, with
// smooth normals computed across shared corner positions, fading opacity to
// FaceOpacity with a staggered decelerating ease. Later calls toggle
// visibility. Requires the vertex layer.
func (s *Session) FormFaces() error {
	if s.topo == nil {
		return ErrNoTopology
	}
	if s.VerticesState() != LayerCreated {
		return ErrVerticesNotRevealed
	}
	if s.FacesState() == LayerCreated {
		s.facesVisible = !s.facesVisible
		for _, f := range s.faces {
			f.Visible = s.facesVisible
		}
		return nil
	}

	// Smooth normals are computed over all patch corners at once so that
	// patches sharing a corner position shade continuously.
	positions := make([]math.Vec3, 0, len(s.topo.Faces)*3)
	indices := make([]uint32, 0, len(s.topo.Faces)*3)
	for _, f := range s.topo.Faces {
		for _, vi := range f {
			indices = append(indices, uint32(len(positions)))
			positions = append(positions, s.markers[vi].Position)
		}
	}
	normals := scene.ComputeSmoothNormals(positions, indices)

	for i := range s.topo.Faces {
		n := scene.NewNode("face", scene.MeshData{
			Positions: positions[i*3 : i*3+3],
			Normals:   normals[i*3 : i*3+3],
			Indices:   []uint32{0, 1, 2},
			Mode:      scene.Triangles,
		})
		n.Color = faceColor
		n.Opacity = 0
		s.scene.Add(n)
		s.faces = append(s.faces, n)

		s.animator.Animate(tween.Request{
			From: 0, To: FaceOpacity,
			Duration: fadeDuration,
			Delay:    float32(i) * StaggerDelay,
			Ease:     ease.OutCubic,
			Apply:    func(v float32) { n.Opacity = v },
		})
	}
	s.facesVisible = true
	return nil
}

// AssembleMesh hides the face patches and grows the fully shaded mesh from
// a copy of the original geometry on first call; later calls toggle the
// mesh's visibility. Requires the face layer.
func (s *Session) AssembleMesh() error {
	if s.topo == nil {
		return ErrNoTopology
	}
	if s.FacesState() != LayerCreated {
		return ErrFacesNotFormed
	}
	if s.MeshState() == LayerCreated {
		s.meshVisible = !s.meshVisible
		s.mesh.Visible = s.meshVisible
		return nil
	}

	// Hide patches so the full surface does not z-fight with them.
	s.facesVisible = false
	for _, f := range s.faces {
		f.Visible = false
	}

	g := s.geometry.Clone()
	indices := g.Indices
	if len(indices) == 0 {
		indices = make([]uint32, len(g.Positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	n := scene.NewNode("mesh", scene.MeshData{
		Positions: g.Positions,
		Normals:   scene.ComputeSmoothNormals(g.Positions, indices),
		Indices:   indices,
		Mode:      scene.Triangles,
	})
	n.Color = meshColor
	n.Scale = 0
	s.scene.Add(n)
	s.mesh = n

	s.animator.Animate(tween.Request{
		From: 0, To: 1,
		Duration: meshDuration,
		Ease:     ease.OutCubic,
		Apply:    func(v float32) { n.Scale = v },
	})
	s.meshVisible = true
	return nil
}

// Reset tears down every created visual and returns all four layers to
// empty. The topology itself is kept. In-flight tweens are not cancelled;
// their setters keep firing against the detached nodes, which is harmless.
func (s *Session) Reset() {
	for _, m := range s.markers {
		s.scene.Remove(m)
	}
	for _, e := range s.edges {
		s.scene.Remove(e)
	}
	for _, f := range s.faces {
		s.scene.Remove(f)
	}
	if s.mesh != nil {
		s.scene.Remove(s.mesh)
	}

	s.markers = nil
	s.edges = nil
	s.faces = nil
	s.mesh = nil
	s.markersVisible = false
	s.edgesVisible = false
	s.facesVisible = false
	s.meshVisible = false
}

// VerticesState reports the vertex layer's lifecycle state.
func (s *Session) VerticesState() LayerState { return layerState(len(s.markers) > 0) }

// EdgesState reports the edge layer's lifecycle state.
func (s *Session) EdgesState() LayerState { return layerState(len(s.edges) > 0) }

// FacesState reports the face layer's lifecycle state.
func (s *Session) FacesState() LayerState { return layerState(len(s.faces) > 0) }

// MeshState reports the assembled mesh layer's lifecycle state.
func (s *Session) MeshState() LayerState { return layerState(s.mesh != nil) }

// VertexCount reports the number of unique vertices, 0 before SetGeometry.
func (s *Session) VertexCount() int {
	if s.topo == nil {
		return 0
	}
	return len(s.topo.Vertices)
}

// EdgeCount reports the number of unique undirected edges.
func (s *Session) EdgeCount() int {
	if s.topo == nil {
		return 0
	}
	return len(s.topo.Edges)
}

// FaceCount reports the number of triangle faces.
func (s *Session) FaceCount() int {
	if s.topo == nil {
		return 0
	}
	return len(s.topo.Faces)
}

func layerState(created bool) LayerState {
	if created {
		return LayerCreated
	}
	return LayerEmpty
}

// octahedron returns the shared marker mesh: a small octahedron of the
// given radius.
func octahedron(radius float32) scene.MeshData {
	if radius <= 0 {
		radius = 0.01
	}
	return scene.MeshData{
		Positions: []math.Vec3{
			{X: radius}, {X: -radius},
			{Y: radius}, {Y: -radius},
			{Z: radius}, {Z: -radius},
		},
		Indices: []uint32{
			2, 4, 0, 2, 0, 5, 2, 5, 1, 2, 1, 4,
			3, 0, 4, 3, 5, 0, 3, 1, 5, 3, 4, 1,
		},
		Mode: scene.Triangles,
	}
}
