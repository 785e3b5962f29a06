package primitive

import (
	"reflect"
	"testing"

	"github.com/Faultbox/meshanatomy/internal/topology"
)

// eulerCharacteristic returns V - E + F for the extracted topology.
// Closed welded genus-0 surfaces must give 2.
func eulerCharacteristic(t *testing.T, g topology.Geometry) int {
	t.Helper()
	topo, err := topology.Extract(g)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	return len(topo.Vertices) - len(topo.Edges) + len(topo.Faces)
}

func TestBoxTopology(t *testing.T) {
	topo, err := topology.Extract(Box(2, 2, 2))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(topo.Vertices) != 8 {
		t.Errorf("vertices = %d, want 8", len(topo.Vertices))
	}
	if len(topo.Faces) != 12 {
		t.Errorf("faces = %d, want 12", len(topo.Faces))
	}
	if len(topo.Edges) != 18 {
		t.Errorf("edges = %d, want 18", len(topo.Edges))
	}
}

func TestBoxEuler(t *testing.T) {
	if euler := eulerCharacteristic(t, Box(1, 2, 3)); euler != 2 {
		t.Errorf("V-E+F = %d, want 2", euler)
	}
}

func TestCylinderCounts(t *testing.T) {
	const sectors = 12
	topo, err := topology.Extract(Cylinder(1, 2, sectors))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got, want := len(topo.Vertices), 2*sectors+2; got != want {
		t.Errorf("vertices = %d, want %d", got, want)
	}
	if got, want := len(topo.Faces), 4*sectors; got != want {
		t.Errorf("faces = %d, want %d", got, want)
	}
	if got, want := len(topo.Edges), 6*sectors; got != want {
		t.Errorf("edges = %d, want %d", got, want)
	}
}

func TestCylinderEuler(t *testing.T) {
	if euler := eulerCharacteristic(t, Cylinder(1, 2, 16)); euler != 2 {
		t.Errorf("V-E+F = %d, want 2", euler)
	}
}

func TestConeCounts(t *testing.T) {
	const sectors = 10
	topo, err := topology.Extract(Cone(1, 2, sectors))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got, want := len(topo.Vertices), sectors+2; got != want {
		t.Errorf("vertices = %d, want %d", got, want)
	}
	if got, want := len(topo.Faces), 2*sectors; got != want {
		t.Errorf("faces = %d, want %d", got, want)
	}
	if got, want := len(topo.Edges), 3*sectors; got != want {
		t.Errorf("edges = %d, want %d", got, want)
	}
}

func TestConeEuler(t *testing.T) {
	if euler := eulerCharacteristic(t, Cone(1, 2, 24)); euler != 2 {
		t.Errorf("V-E+F = %d, want 2", euler)
	}
}

func TestSphereCounts(t *testing.T) {
	const sectors, rings = 12, 8
	g := Sphere(1, sectors, rings)
	if got, want := len(g.Positions), (rings+1)*(sectors+1); got != want {
		t.Errorf("positions = %d, want %d", got, want)
	}
	// Pole rows contribute one triangle per sector, inner rows two.
	if got, want := len(g.Indices)/3, 2*sectors*(rings-1); got != want {
		t.Errorf("triangles = %d, want %d", got, want)
	}
}

func TestSphereIndicesInRange(t *testing.T) {
	g := Sphere(1, 16, 12)
	for _, idx := range g.Indices {
		if int(idx) >= len(g.Positions) {
			t.Fatalf("index %d out of range (%d positions)", idx, len(g.Positions))
		}
	}
}

func TestGeneratorsDeterministic(t *testing.T) {
	if !reflect.DeepEqual(Sphere(1, 12, 8), Sphere(1, 12, 8)) {
		t.Error("Sphere() is not deterministic")
	}
	if !reflect.DeepEqual(Cylinder(1, 2, 12), Cylinder(1, 2, 12)) {
		t.Error("Cylinder() is not deterministic")
	}
}
