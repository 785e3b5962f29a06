package scene

import (
	"github.com/Faultbox/meshanatomy/pkg/math"
)

// DrawMode selects how a mesh's vertices are assembled.
type DrawMode int

const (
	// Triangles draws indexed triangles.
	Triangles DrawMode = iota
	// Lines draws indexed line segments (index pairs).
	Lines
)

// MeshData is the geometry carried by a node. Normals may be empty for
// unlit draw modes (points rendered as scaled markers, line segments).
type MeshData struct {
	Positions []math.Vec3
	Normals   []math.Vec3
	Indices   []uint32
	Mode      DrawMode
}

// ComputeSmoothNormals returns per-vertex normals averaged over all faces
// sharing a vertex position. Vertices are matched by quantized position so
// unwelded duplicates smooth together, which reduces faceting.
func ComputeSmoothNormals(positions []math.Vec3, indices []uint32) []math.Vec3 {
	normals := make([]math.Vec3, len(positions))

	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		if int(a) >= len(positions) || int(b) >= len(positions) || int(c) >= len(positions) {
			continue
		}
		fn := positions[b].Sub(positions[a]).Cross(positions[c].Sub(positions[a]))
		normals[a] = normals[a].Add(fn)
		normals[b] = normals[b].Add(fn)
		normals[c] = normals[c].Add(fn)
	}

	// Group by quantized position and average across duplicates.
	const epsilon float32 = 0.001
	posMap := make(map[[3]int32][]int, len(positions))
	for i, p := range positions {
		key := [3]int32{
			int32(p.X / epsilon),
			int32(p.Y / epsilon),
			int32(p.Z / epsilon),
		}
		posMap[key] = append(posMap[key], i)
	}

	for _, idxs := range posMap {
		if len(idxs) > 1 {
			var sum math.Vec3
			for _, idx := range idxs {
				sum = sum.Add(normals[idx])
			}
			avg := sum.Normalize()
			for _, idx := range idxs {
				normals[idx] = avg
			}
		}
	}

	for i := range normals {
		normals[i] = normals[i].Normalize()
	}
	return normals
}
