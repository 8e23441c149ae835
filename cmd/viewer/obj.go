package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type triangle struct {
	v [3]int
	// texcoord indices, -1 when the face has none
	t [3]int
}

type mesh_t struct {
	triangles []triangle
	points    []vec3
	uvs       []vec2
}

var err_no_faces = errors.New("mesh has no faces")

// load_obj reads the geometry of a Wavefront OBJ file. Polygons are fan
// triangulated; normals, groups and materials are ignored.
func load_obj(r io.Reader) (*mesh_t, error) {
	mesh := &mesh_t{}
	scanner := bufio.NewScanner(r)
	line := 0

	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		var err error
		switch typ, args := fields[0], fields[1:]; typ {
		default:
			err = fmt.Errorf("unknown type: %s", typ)
		case "o", "g", "s", "l", "p", "vn", "vp", "usemtl", "mtllib":
		case "v":
			var p [3]float
			if err = parse_floats(args, p[:]); err == nil {
				mesh.points = append(mesh.points, vec3(p))
			} else {
				err = fmt.Errorf("bad vertex: %w", err)
			}
		case "vt":
			var t [2]float
			if err = parse_floats(args, t[:]); err == nil {
				mesh.uvs = append(mesh.uvs, vec2(t))
			} else {
				err = fmt.Errorf("bad texcoord: %w", err)
			}
		case "f":
			err = mesh.add_face(args)
		}

		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	if len(mesh.triangles) == 0 {
		return nil, err_no_faces
	}

	return mesh, nil
}

// parse_floats fills dst from the leading args; extra components such as
// a vertex w are ignored.
func parse_floats(args []string, dst []float) error {
	if len(args) < len(dst) {
		return fmt.Errorf("want %d components, got %d", len(dst), len(args))
	}
	for i := range dst {
		f, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return err
		}
		dst[i] = float(f)
	}
	return nil
}

func (m *mesh_t) add_face(refs []string) error {
	if len(refs) < 3 {
		return fmt.Errorf("bad face: %d vertices", len(refs))
	}

	v := make([]int, len(refs))
	t := make([]int, len(refs))

	for i, ref := range refs {
		parts := strings.Split(ref, "/")

		var err error
		if v[i], err = resolve_index(parts[0], len(m.points)); err != nil {
			return fmt.Errorf("bad face vertex %q: %w", ref, err)
		}

		t[i] = -1
		if len(parts) > 1 && parts[1] != "" {
			if t[i], err = resolve_index(parts[1], len(m.uvs)); err != nil {
				return fmt.Errorf("bad face texcoord %q: %w", ref, err)
			}
		}
	}

	for i := 2; i < len(refs); i++ {
		m.triangles = append(m.triangles, triangle{
			v: [3]int{v[0], v[i-1], v[i]},
			t: [3]int{t[0], t[i-1], t[i]},
		})
	}

	return nil
}

// resolve_index converts a 1-based or negative (relative) OBJ index into a
// 0-based slice index.
func resolve_index(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	switch {
	case i > 0:
		i--
	case i < 0:
		i += n
	default:
		return 0, errors.New("index 0")
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("index out of range [0,%d)", n)
	}
	return i, nil
}
