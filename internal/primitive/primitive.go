// Package primitive builds geometry buffers for the selectable primitive
// shapes. All generators are deterministic: the same parameters produce the
// same vertex and index ordering.
package primitive

import (
	gomath "math"

	"github.com/Faultbox/meshanatomy/internal/topology"
	"github.com/Faultbox/meshanatomy/pkg/math"
)

// Box returns a welded box centered on the origin: 8 vertices, 12 triangles.
// Sharing corner vertices keeps the derived topology minimal (18 edges),
// which is what the vertex markers should show.
func Box(width, height, depth float32) topology.Geometry {
	hx, hy, hz := width/2, height/2, depth/2

	return topology.Geometry{
		Positions: []math.Vec3{
			{X: -hx, Y: -hy, Z: -hz}, {X: hx, Y: -hy, Z: -hz},
			{X: hx, Y: hy, Z: -hz}, {X: -hx, Y: hy, Z: -hz},
			{X: -hx, Y: -hy, Z: hz}, {X: hx, Y: -hy, Z: hz},
			{X: hx, Y: hy, Z: hz}, {X: -hx, Y: hy, Z: hz},
		},
		Indices: []uint32{
			0, 2, 1, 0, 3, 2, // back (-z)
			4, 5, 6, 4, 6, 7, // front (+z)
			0, 1, 5, 0, 5, 4, // bottom (-y)
			3, 7, 6, 3, 6, 2, // top (+y)
			0, 4, 7, 0, 7, 3, // left (-x)
			1, 2, 6, 1, 6, 5, // right (+x)
		},
	}
}

// Sphere returns a UV sphere centered on the origin. The grid has rings+1
// rows of sectors+1 columns; the seam column and pole rows are duplicated,
// as in a standard textured sphere layout.
func Sphere(radius float32, sectors, rings int) topology.Geometry {
	var g topology.Geometry

	for i := 0; i <= rings; i++ {
		phi := gomath.Pi * float64(i) / float64(rings)
		y := radius * float32(gomath.Cos(phi))
		r := radius * float32(gomath.Sin(phi))

		for j := 0; j <= sectors; j++ {
			theta := 2 * gomath.Pi * float64(j) / float64(sectors)
			g.Positions = append(g.Positions, math.Vec3{
				X: r * float32(gomath.Cos(theta)),
				Y: y,
				Z: r * float32(gomath.Sin(theta)),
			})
		}
	}

	for i := 0; i < rings; i++ {
		k1 := uint32(i * (sectors + 1))
		k2 := k1 + uint32(sectors) + 1

		for j := 0; j < sectors; j++ {
			if i != 0 {
				g.Indices = append(g.Indices, k1, k1+1, k2)
			}
			if i != rings-1 {
				g.Indices = append(g.Indices, k1+1, k2+1, k2)
			}
			k1++
			k2++
		}
	}

	return g
}

// Cylinder returns a welded capped cylinder centered on the origin.
// Layout: top ring [0,sectors), bottom ring [sectors,2*sectors), then the
// top and bottom cap centers.
func Cylinder(radius, height float32, sectors int) topology.Geometry {
	var g topology.Geometry
	hy := height / 2

	for _, y := range [2]float32{hy, -hy} {
		for j := 0; j < sectors; j++ {
			theta := 2 * gomath.Pi * float64(j) / float64(sectors)
			g.Positions = append(g.Positions, math.Vec3{
				X: radius * float32(gomath.Cos(theta)),
				Y: y,
				Z: radius * float32(gomath.Sin(theta)),
			})
		}
	}
	topCenter := uint32(2 * sectors)
	bottomCenter := topCenter + 1
	g.Positions = append(g.Positions,
		math.Vec3{Y: hy},
		math.Vec3{Y: -hy},
	)

	s := uint32(sectors)
	for j := uint32(0); j < s; j++ {
		jn := (j + 1) % s
		top, topN := j, jn
		bottom, bottomN := s+j, s+jn

		// Side quad as two triangles.
		g.Indices = append(g.Indices,
			top, bottom, bottomN,
			top, bottomN, topN,
		)
		// Caps.
		g.Indices = append(g.Indices, topCenter, topN, top)
		g.Indices = append(g.Indices, bottomCenter, bottom, bottomN)
	}

	return g
}

// Cone returns a welded cone centered on the origin, apex up.
// Layout: base ring [0,sectors), then the apex and the base center.
func Cone(radius, height float32, sectors int) topology.Geometry {
	var g topology.Geometry
	hy := height / 2

	for j := 0; j < sectors; j++ {
		theta := 2 * gomath.Pi * float64(j) / float64(sectors)
		g.Positions = append(g.Positions, math.Vec3{
			X: radius * float32(gomath.Cos(theta)),
			Y: -hy,
			Z: radius * float32(gomath.Sin(theta)),
		})
	}
	apex := uint32(sectors)
	baseCenter := apex + 1
	g.Positions = append(g.Positions,
		math.Vec3{Y: hy},
		math.Vec3{Y: -hy},
	)

	s := uint32(sectors)
	for j := uint32(0); j < s; j++ {
		jn := (j + 1) % s
		g.Indices = append(g.Indices, apex, jn, j)
		g.Indices = append(g.Indices, baseCenter, j, jn)
	}

	return g
}
