// Package obj loads Wavefront OBJ models. Only the subset the viewer needs
// is supported: vertex positions and faces. Texture coordinates, normals,
// materials, and groups are skipped.
package obj

import (
	"bufio"
	"bytes"
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/meshanatomy/pkg/math"
)

// ErrEmptyModel is returned when a file contains no usable vertex data.
var ErrEmptyModel = errors.New("obj: model contains no vertices")

// Model is a loaded OBJ mesh: positions plus a triangulated index buffer.
// Indices may be empty when the file declares vertices but no faces.
type Model struct {
	Name      string
	Positions []math.Vec3
	Indices   []uint32
}

// Load reads and parses an OBJ file from disk.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses OBJ data. Faces are triangulated with a fan, indices may be
// 1-based or negative (relative to the running vertex count), and the
// v/vt/vn reference forms are accepted. Only the first named object is
// used; a second `o` directive after face data stops parsing. Lines that
// fail to parse are skipped.
func Parse(data []byte) (*Model, error) {
	m := &Model{}
	scanner := bufio.NewScanner(bytes.NewReader(data))

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "o":
			if len(m.Indices) > 0 {
				// Single-mesh assumption: keep the first object only.
				return m, nil
			}
			if len(fields) > 1 {
				m.Name = fields[1]
			}

		case "v":
			if len(fields) < 4 {
				continue
			}
			x, errX := strconv.ParseFloat(fields[1], 32)
			y, errY := strconv.ParseFloat(fields[2], 32)
			z, errZ := strconv.ParseFloat(fields[3], 32)
			if errX != nil || errY != nil || errZ != nil {
				continue
			}
			m.Positions = append(m.Positions, math.Vec3{
				X: float32(x), Y: float32(y), Z: float32(z),
			})

		case "f":
			refs := fields[1:]
			indices := make([]uint32, 0, len(refs))
			for _, ref := range refs {
				idx, ok := resolveIndex(ref, len(m.Positions))
				if !ok {
					indices = nil
					break
				}
				indices = append(indices, idx)
			}
			if len(indices) < 3 {
				continue
			}
			// Fan triangulation of the polygon.
			for i := 1; i+1 < len(indices); i++ {
				m.Indices = append(m.Indices, indices[0], indices[i], indices[i+1])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(m.Positions) == 0 {
		return nil, ErrEmptyModel
	}
	return m, nil
}

// resolveIndex converts one face vertex reference ("7", "7/1", "7//3",
// "-1") into a zero-based position index.
func resolveIndex(ref string, vertexCount int) (uint32, bool) {
	if i := strings.IndexByte(ref, '/'); i >= 0 {
		ref = ref[:i]
	}
	n, err := strconv.Atoi(ref)
	if err != nil || n == 0 {
		return 0, false
	}
	if n < 0 {
		n += vertexCount
	} else {
		n--
	}
	if n < 0 || n >= vertexCount {
		return 0, false
	}
	return uint32(n), true
}
