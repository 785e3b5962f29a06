package scene

import (
	"testing"

	"github.com/Faultbox/meshanatomy/pkg/math"
)

func TestSceneAddRemove(t *testing.T) {
	s := New()
	a := NewNode("a", MeshData{})
	b := NewNode("b", MeshData{})

	s.Add(a)
	s.Add(b)
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}

	s.Remove(a)
	if s.Len() != 1 || s.Nodes()[0] != b {
		t.Errorf("after Remove: %d nodes", s.Len())
	}

	// Removing a detached node is a no-op.
	s.Remove(a)
	if s.Len() != 1 {
		t.Errorf("Remove of detached node changed scene, Len() = %d", s.Len())
	}
}

func TestNodeModelMatrix(t *testing.T) {
	n := NewNode("marker", MeshData{})
	n.Position = math.Vec3{X: 1, Y: 2, Z: 3}
	n.Scale = 2

	got := n.ModelMatrix().TransformVec3(math.Vec3{X: 1, Y: 0, Z: 0})
	want := math.Vec3{X: 3, Y: 2, Z: 3}
	if got != want {
		t.Errorf("transform = %v, want %v", got, want)
	}
}

func TestComputeSmoothNormalsFlatTriangle(t *testing.T) {
	positions := []math.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
	}
	normals := ComputeSmoothNormals(positions, []uint32{0, 1, 2})
	for i, n := range normals {
		if n.Z < 0.999 {
			t.Errorf("normals[%d] = %v, want +Z", i, n)
		}
	}
}

func TestComputeSmoothNormalsWeldsDuplicatePositions(t *testing.T) {
	// Two triangles meeting at a shared position held in separate vertices.
	positions := []math.Vec3{
		{X: -1, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 0}, {X: -0.5, Y: 0, Z: -1},
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0.5, Y: 0, Z: -1},
	}
	normals := ComputeSmoothNormals(positions, []uint32{0, 1, 2, 3, 4, 5})

	if normals[1] != normals[3] {
		t.Errorf("duplicate positions got different normals: %v vs %v", normals[1], normals[3])
	}
}
