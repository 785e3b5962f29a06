// Package topology derives the combinatorial structure of a triangle mesh:
// its vertices, faces, and deduplicated undirected edges.
package topology

import (
	"errors"

	"github.com/Faultbox/meshanatomy/pkg/math"
)

// ErrNoGeometry is returned by Extract when no geometry is loaded.
var ErrNoGeometry = errors.New("topology: no geometry loaded")

// Geometry is a raw mesh buffer: vertex positions plus an optional index
// buffer grouping vertices into triangles. A nil or position-less Geometry
// is the explicit "nothing loaded" state.
type Geometry struct {
	Positions []math.Vec3
	Indices   []uint32
}

// Empty reports whether the geometry has no vertex data.
func (g *Geometry) Empty() bool {
	return g == nil || len(g.Positions) == 0
}

// Clone returns a deep copy of the geometry.
func (g *Geometry) Clone() Geometry {
	var c Geometry
	c.Positions = append(c.Positions, g.Positions...)
	c.Indices = append(c.Indices, g.Indices...)
	return c
}

// Face is one triangle, an ordered triple of vertex indices.
type Face [3]uint32

// Edge is an undirected edge between two vertices, canonicalized so that
// Lo < Hi. A geometric edge appears exactly once regardless of which face
// or winding produced it.
type Edge struct {
	Lo, Hi uint32
}

// key packs the canonical pair into a single integer for dedup.
func (e Edge) key() uint64 {
	return uint64(e.Lo) | uint64(e.Hi)<<32
}

// canonicalEdge returns the edge between a and b with endpoints ordered.
func canonicalEdge(a, b uint32) Edge {
	if b < a {
		a, b = b, a
	}
	return Edge{Lo: a, Hi: b}
}

// Topology is the derived (vertices, faces, edges) triple for one mesh.
// It is rebuilt in full whenever the active geometry changes; it is never
// patched incrementally.
type Topology struct {
	Vertices []math.Vec3
	Faces    []Face
	Edges    []Edge
}

// Bounds returns the axis-aligned bounding box of the vertices.
func (t *Topology) Bounds() (min, max math.Vec3) {
	if len(t.Vertices) == 0 {
		return math.Vec3{}, math.Vec3{}
	}
	min, max = t.Vertices[0], t.Vertices[0]
	for _, v := range t.Vertices[1:] {
		if v.X < min.X {
			min.X = v.X
		}
		if v.Y < min.Y {
			min.Y = v.Y
		}
		if v.Z < min.Z {
			min.Z = v.Z
		}
		if v.X > max.X {
			max.X = v.X
		}
		if v.Y > max.Y {
			max.Y = v.Y
		}
		if v.Z > max.Z {
			max.Z = v.Z
		}
	}
	return min, max
}

// BoundingRadius returns the distance from the bounds center to its corner.
func (t *Topology) BoundingRadius() float32 {
	min, max := t.Bounds()
	return max.Sub(min).Length() / 2
}

// Extract derives the topology of the given geometry.
//
// Vertices are a direct copy of the positions, order preserved. Faces come
// from the index buffer in triples; without an index buffer every 3
// consecutive vertices form one face. In both cases a trailing partial
// triple is truncated. Edges are the canonical (min,max) pairs over each
// face's three sides, deduplicated, in first-seen order.
//
// No geometric validation is performed: degenerate triangles, out-of-range
// indices, and coincident vertices pass through untouched. For identical
// input the output ordering is identical, so faces and edges can be
// referenced by index when building visuals.
func Extract(g Geometry) (*Topology, error) {
	if g.Empty() {
		return nil, ErrNoGeometry
	}

	topo := &Topology{
		Vertices: append([]math.Vec3(nil), g.Positions...),
	}

	if len(g.Indices) > 0 {
		for i := 0; i+2 < len(g.Indices); i += 3 {
			topo.Faces = append(topo.Faces, Face{g.Indices[i], g.Indices[i+1], g.Indices[i+2]})
		}
	} else {
		// Unindexed fallback: consecutive vertex triples are triangles.
		for i := 0; i+2 < len(g.Positions); i += 3 {
			topo.Faces = append(topo.Faces, Face{uint32(i), uint32(i + 1), uint32(i + 2)})
		}
	}

	seen := make(map[uint64]struct{}, len(topo.Faces)*3)
	for _, f := range topo.Faces {
		for _, e := range [3]Edge{
			canonicalEdge(f[0], f[1]),
			canonicalEdge(f[1], f[2]),
			canonicalEdge(f[2], f[0]),
		} {
			if _, ok := seen[e.key()]; ok {
				continue
			}
			seen[e.key()] = struct{}{}
			topo.Edges = append(topo.Edges, e)
		}
	}

	return topo, nil
}
