package reveal

import (
	"testing"

	"github.com/Faultbox/meshanatomy/internal/engine/tween"
	"github.com/Faultbox/meshanatomy/internal/primitive"
	"github.com/Faultbox/meshanatomy/internal/scene"
	"github.com/Faultbox/meshanatomy/internal/topology"
)

// recorder captures animation requests without running them.
type recorder struct {
	requests []tween.Request
}

func (r *recorder) Animate(req tween.Request) {
	if req.Apply != nil {
		req.Apply(req.From)
	}
	r.requests = append(r.requests, req)
}

// finishAll applies every recorded request's final value.
func (r *recorder) finishAll() {
	for _, req := range r.requests {
		req.Apply(req.To)
	}
}

func newCubeSession(t *testing.T) (*Session, *scene.Scene, *recorder) {
	t.Helper()
	host := scene.New()
	rec := &recorder{}
	s := NewSession(host, rec)
	if err := s.SetGeometry(primitive.Box(2, 2, 2)); err != nil {
		t.Fatalf("SetGeometry() error = %v", err)
	}
	return s, host, rec
}

func TestActionsBeforeGeometry(t *testing.T) {
	s := NewSession(scene.New(), &recorder{})

	if err := s.RevealVertices(); err != ErrNoTopology {
		t.Errorf("RevealVertices() error = %v, want ErrNoTopology", err)
	}
	if err := s.ConnectEdges(); err != ErrNoTopology {
		t.Errorf("ConnectEdges() error = %v, want ErrNoTopology", err)
	}
	if err := s.AssembleMesh(); err != ErrNoTopology {
		t.Errorf("AssembleMesh() error = %v, want ErrNoTopology", err)
	}
}

func TestLayerGating(t *testing.T) {
	s, host, _ := newCubeSession(t)

	if err := s.ConnectEdges(); err != ErrVerticesNotRevealed {
		t.Errorf("ConnectEdges() before vertices: error = %v, want ErrVerticesNotRevealed", err)
	}
	if err := s.FormFaces(); err != ErrVerticesNotRevealed {
		t.Errorf("FormFaces() before vertices: error = %v, want ErrVerticesNotRevealed", err)
	}
	if err := s.AssembleMesh(); err != ErrFacesNotFormed {
		t.Errorf("AssembleMesh() before faces: error = %v, want ErrFacesNotFormed", err)
	}
	if host.Len() != 0 {
		t.Errorf("gated actions created %d nodes, want 0", host.Len())
	}
}

func TestRevealVerticesCreatesMarkers(t *testing.T) {
	s, host, rec := newCubeSession(t)

	if err := s.RevealVertices(); err != nil {
		t.Fatalf("RevealVertices() error = %v", err)
	}
	if host.Len() != 8 {
		t.Errorf("scene has %d nodes, want 8 markers", host.Len())
	}
	if s.VerticesState() != LayerCreated {
		t.Error("vertex layer not Created after reveal")
	}

	// Scale starts at 0 and the stagger grows with the index.
	if len(rec.requests) != 8 {
		t.Fatalf("recorded %d requests, want 8", len(rec.requests))
	}
	for i, req := range rec.requests {
		if req.From != 0 || req.To != 1 {
			t.Errorf("request %d animates %v->%v, want 0->1", i, req.From, req.To)
		}
		if want := float32(i) * StaggerDelay; req.Delay != want {
			t.Errorf("request %d delay = %v, want %v", i, req.Delay, want)
		}
	}
}

func TestIdempotentToggle(t *testing.T) {
	s, host, _ := newCubeSession(t)

	if err := s.RevealVertices(); err != nil {
		t.Fatalf("RevealVertices() error = %v", err)
	}
	created := host.Len()

	// Second call toggles visibility without creating anything.
	if err := s.RevealVertices(); err != nil {
		t.Fatalf("second RevealVertices() error = %v", err)
	}
	if host.Len() != created {
		t.Errorf("node count changed on toggle: %d -> %d", created, host.Len())
	}
	for _, n := range host.Nodes() {
		if n.Visible {
			t.Fatal("markers still visible after toggle off")
		}
	}

	// Third call toggles back on.
	if err := s.RevealVertices(); err != nil {
		t.Fatalf("third RevealVertices() error = %v", err)
	}
	for _, n := range host.Nodes() {
		if !n.Visible {
			t.Fatal("markers not visible after toggle on")
		}
	}
}

func TestConnectEdgesTracksMarkers(t *testing.T) {
	s, host, _ := newCubeSession(t)

	if err := s.RevealVertices(); err != nil {
		t.Fatalf("RevealVertices() error = %v", err)
	}

	// Displace one marker before connecting: the edge endpoints must come
	// from the marker, not the raw topology.
	moved := s.markers[0]
	moved.Position.X += 5

	if err := s.ConnectEdges(); err != nil {
		t.Fatalf("ConnectEdges() error = %v", err)
	}
	if got, want := host.Len(), 8+18; got != want {
		t.Errorf("scene has %d nodes, want %d", got, want)
	}

	found := false
	for _, e := range s.edges {
		for _, p := range e.Mesh.Positions {
			if p == moved.Position {
				found = true
			}
		}
	}
	if !found {
		t.Error("no edge endpoint follows the displaced marker position")
	}
}

func TestFormFacesOpacityTarget(t *testing.T) {
	s, _, rec := newCubeSession(t)

	if err := s.RevealVertices(); err != nil {
		t.Fatalf("RevealVertices() error = %v", err)
	}
	rec.requests = nil

	if err := s.FormFaces(); err != nil {
		t.Fatalf("FormFaces() error = %v", err)
	}
	if len(rec.requests) != 12 {
		t.Fatalf("recorded %d requests, want 12", len(rec.requests))
	}
	for i, req := range rec.requests {
		if req.To != FaceOpacity {
			t.Errorf("face %d fades to %v, want %v", i, req.To, FaceOpacity)
		}
	}
	for _, f := range s.faces {
		if len(f.Mesh.Normals) != 3 {
			t.Errorf("face patch has %d normals, want 3", len(f.Mesh.Normals))
		}
	}
}

func TestAssembleMeshHidesFaces(t *testing.T) {
	s, host, _ := newCubeSession(t)

	if err := s.RevealVertices(); err != nil {
		t.Fatalf("RevealVertices() error = %v", err)
	}
	if err := s.FormFaces(); err != nil {
		t.Fatalf("FormFaces() error = %v", err)
	}
	before := host.Len()

	if err := s.AssembleMesh(); err != nil {
		t.Fatalf("AssembleMesh() error = %v", err)
	}
	if host.Len() != before+1 {
		t.Errorf("scene has %d nodes, want %d", host.Len(), before+1)
	}
	for _, f := range s.faces {
		if f.Visible {
			t.Fatal("face patches still visible after mesh assembly")
		}
	}
	if s.MeshState() != LayerCreated || !s.mesh.Visible {
		t.Error("assembled mesh not created visible")
	}

	// Repeated calls toggle the mesh only.
	if err := s.AssembleMesh(); err != nil {
		t.Fatalf("second AssembleMesh() error = %v", err)
	}
	if s.mesh.Visible {
		t.Error("mesh still visible after toggle")
	}
	if host.Len() != before+1 {
		t.Errorf("toggle changed node count to %d", host.Len())
	}
}

func TestResetCompleteness(t *testing.T) {
	s, host, rec := newCubeSession(t)

	if err := s.RevealVertices(); err != nil {
		t.Fatalf("RevealVertices() error = %v", err)
	}
	if err := s.ConnectEdges(); err != nil {
		t.Fatalf("ConnectEdges() error = %v", err)
	}
	if err := s.FormFaces(); err != nil {
		t.Fatalf("FormFaces() error = %v", err)
	}
	if err := s.AssembleMesh(); err != nil {
		t.Fatalf("AssembleMesh() error = %v", err)
	}

	s.Reset()

	if host.Len() != 0 {
		t.Errorf("scene has %d nodes after Reset, want 0", host.Len())
	}
	for name, state := range map[string]LayerState{
		"vertices": s.VerticesState(),
		"edges":    s.EdgesState(),
		"faces":    s.FacesState(),
		"mesh":     s.MeshState(),
	} {
		if state != LayerEmpty {
			t.Errorf("%s layer = %v after Reset, want LayerEmpty", name, state)
		}
	}

	// Topology survives Reset; the vertex layer can be rebuilt.
	if s.Topology() == nil {
		t.Fatal("topology discarded by Reset")
	}
	if err := s.RevealVertices(); err != nil {
		t.Fatalf("RevealVertices() after Reset error = %v", err)
	}
	if host.Len() != 8 {
		t.Errorf("scene has %d nodes after re-reveal, want 8", host.Len())
	}

	// In-flight tweens from before the Reset keep firing against detached
	// nodes; that must not disturb the rebuilt scene.
	rec.finishAll()
	if host.Len() != 8 {
		t.Errorf("late tween callbacks changed the scene: %d nodes", host.Len())
	}
}

func TestSetGeometryReplacesTopology(t *testing.T) {
	s, host, _ := newCubeSession(t)

	if err := s.RevealVertices(); err != nil {
		t.Fatalf("RevealVertices() error = %v", err)
	}
	if err := s.SetGeometry(primitive.Cone(1, 2, 10)); err != nil {
		t.Fatalf("SetGeometry() error = %v", err)
	}

	if host.Len() != 0 {
		t.Errorf("scene has %d nodes after shape change, want 0", host.Len())
	}
	if got := len(s.Topology().Vertices); got != 12 {
		t.Errorf("topology has %d vertices, want 12", got)
	}
}

func TestSetGeometryFailureClearsTopology(t *testing.T) {
	s, _, _ := newCubeSession(t)

	if err := s.SetGeometry(topology.Geometry{}); err != topology.ErrNoGeometry {
		t.Fatalf("SetGeometry(empty) error = %v, want ErrNoGeometry", err)
	}
	if s.Topology() != nil {
		t.Error("stale topology kept after failed extraction")
	}
	if err := s.RevealVertices(); err != ErrNoTopology {
		t.Errorf("RevealVertices() error = %v, want ErrNoTopology", err)
	}
}

func TestCounts(t *testing.T) {
	empty := NewSession(scene.New(), &recorder{})
	if empty.VertexCount() != 0 || empty.EdgeCount() != 0 || empty.FaceCount() != 0 {
		t.Error("counts non-zero before SetGeometry")
	}

	s, _, _ := newCubeSession(t)
	if got := s.VertexCount(); got != 8 {
		t.Errorf("VertexCount() = %d, want 8", got)
	}
	if got := s.EdgeCount(); got != 18 {
		t.Errorf("EdgeCount() = %d, want 18", got)
	}
	if got := s.FaceCount(); got != 12 {
		t.Errorf("FaceCount() = %d, want 12", got)
	}
}
