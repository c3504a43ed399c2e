package scene

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// objRef is one face corner: 0-based position / UV / normal indices, -1 when absent.
type objRef struct{ v, vt, vn int }

type objGroup struct {
	name    string
	matName string
	tris    [][3]objRef
}

// LoadOBJ parses a Wavefront .obj file and returns one Mesh per object/group.
// Materials referenced through "mtllib" are resolved relative to the file.
func LoadOBJ(path string) ([]*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj %q: %w", path, err)
	}
	defer f.Close()

	meshes, err := ParseOBJ(f, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("obj %q: %w", path, err)
	}
	return meshes, nil
}

// ParseOBJ reads OBJ text from r. dir is where mtllib and texture paths
// are looked up. Polygons are fan-triangulated.
func ParseOBJ(r io.Reader, dir string) ([]*Mesh, error) {
	var (
		positions []mgl32.Vec3
		normals   []mgl32.Vec3
		uvs       []mgl32.Vec2
	)
	materials := map[string]*Material{}

	var groups []objGroup
	cur := &objGroup{name: "default"}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			p, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			positions = append(positions, mgl32.Vec3{p[0], p[1], p[2]})

		case "vn":
			n, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			normals = append(normals, mgl32.Vec3{n[0], n[1], n[2]})

		case "vt":
			t, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			uvs = append(uvs, mgl32.Vec2{t[0], t[1]})

		case "o", "g":
			if len(cur.tris) > 0 {
				groups = append(groups, *cur)
			}
			name := "default"
			if len(fields) > 1 {
				name = fields[1]
			}
			cur = &objGroup{name: name, matName: cur.matName}

		case "usemtl":
			if len(fields) > 1 {
				if len(cur.tris) > 0 && cur.matName != fields[1] {
					groups = append(groups, *cur)
					cur = &objGroup{name: cur.name}
				}
				cur.matName = fields[1]
			}

		case "mtllib":
			for _, name := range fields[1:] {
				loaded, err := loadMTL(filepath.Join(dir, name), dir)
				if err != nil {
					slog.Warn("obj: material library skipped", "path", name, "err", err)
					continue
				}
				for k, m := range loaded {
					materials[k] = m
				}
			}

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", lineNo)
			}
			refs := make([]objRef, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				ref, err := parseFaceRef(tok, len(positions), len(uvs), len(normals))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				refs = append(refs, ref)
			}
			for i := 1; i+1 < len(refs); i++ {
				cur.tris = append(cur.tris, [3]objRef{refs[0], refs[i], refs[i+1]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	if len(cur.tris) > 0 {
		groups = append(groups, *cur)
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("no geometry")
	}

	meshes := make([]*Mesh, 0, len(groups))
	for _, g := range groups {
		mesh := buildOBJMesh(g, positions, normals, uvs)
		if mat, ok := materials[g.matName]; ok {
			mesh.Material = mat
		}
		meshes = append(meshes, mesh)
	}
	return meshes, nil
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(f)
	}
	return out, nil
}

// parseFaceRef parses "v", "v/vt", "v//vn" or "v/vt/vn". OBJ indices are
// 1-based; negative ones count back from the most recent element.
func parseFaceRef(tok string, nv, nvt, nvn int) (objRef, error) {
	ref := objRef{v: -1, vt: -1, vn: -1}
	parts := strings.Split(tok, "/")
	counts := [3]int{nv, nvt, nvn}
	dst := [3]*int{&ref.v, &ref.vt, &ref.vn}
	for i := 0; i < len(parts) && i < 3; i++ {
		if parts[i] == "" {
			continue
		}
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return ref, fmt.Errorf("face index %q: %w", tok, err)
		}
		switch {
		case n > 0:
			*dst[i] = n - 1
		case n < 0:
			*dst[i] = counts[i] + n
		default:
			return ref, fmt.Errorf("face index %q: zero is not a valid index", tok)
		}
		if *dst[i] < 0 || *dst[i] >= counts[i] {
			return ref, fmt.Errorf("face index %q out of range", tok)
		}
	}
	if ref.v < 0 {
		return ref, fmt.Errorf("face vertex %q has no position", tok)
	}
	return ref, nil
}

// buildOBJMesh deduplicates face corners into an indexed mesh.
func buildOBJMesh(g objGroup, positions, normals []mgl32.Vec3, uvs []mgl32.Vec2) *Mesh {
	seen := map[objRef]uint32{}
	var vertices []Vertex
	var indices []uint32
	missingNormals := false

	for _, tri := range g.tris {
		for _, ref := range tri {
			if idx, ok := seen[ref]; ok {
				indices = append(indices, idx)
				continue
			}
			v := Vertex{Position: positions[ref.v]}
			if ref.vn >= 0 {
				v.Normal = normals[ref.vn]
			} else {
				missingNormals = true
			}
			if ref.vt >= 0 {
				v.UV = uvs[ref.vt]
			}
			idx := uint32(len(vertices))
			vertices = append(vertices, v)
			seen[ref] = idx
			indices = append(indices, idx)
		}
	}

	if missingNormals {
		generateNormals(vertices, indices)
	}
	return NewMesh(g.name, vertices, indices)
}

// generateNormals writes area-weighted smooth normals for every vertex.
func generateNormals(vertices []Vertex, indices []uint32) {
	accum := make([]mgl32.Vec3, len(vertices))
	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		p0 := vertices[i0].Position
		n := vertices[i1].Position.Sub(p0).Cross(vertices[i2].Position.Sub(p0))
		accum[i0] = accum[i0].Add(n)
		accum[i1] = accum[i1].Add(n)
		accum[i2] = accum[i2].Add(n)
	}
	for i := range vertices {
		if accum[i].Len() > 0 {
			vertices[i].Normal = accum[i].Normalize()
		} else {
			vertices[i].Normal = mgl32.Vec3{0, 1, 0}
		}
	}
}

func loadMTL(path, dir string) (map[string]*Material, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseMTL(f, dir)
}

func parseMTL(r io.Reader, dir string) (map[string]*Material, error) {
	mats := map[string]*Material{}
	var cur *Material

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if fields[0] == "newmtl" {
			if len(fields) > 1 {
				cur = DefaultMaterial()
				cur.Name = fields[1]
				mats[cur.Name] = cur
			}
			continue
		}
		if cur == nil {
			continue
		}

		switch fields[0] {
		case "Kd":
			if c, err := parseFloats(fields[1:], 3); err == nil {
				cur.Diffuse = mgl32.Vec3{c[0], c[1], c[2]}
			}
		case "Ks":
			if c, err := parseFloats(fields[1:], 3); err == nil {
				cur.Specular = mgl32.Vec3{c[0], c[1], c[2]}
			}
		case "Ns":
			if ns, err := parseFloats(fields[1:], 1); err == nil {
				cur.Shininess = math32.Max(1, ns[0])
			}
		case "map_Kd", "map_Ks":
			if len(fields) < 2 {
				continue
			}
			// Options such as -s or -o precede the file name.
			texPath := filepath.Join(dir, fields[len(fields)-1])
			tex, err := LoadTexture(texPath)
			if err != nil {
				slog.Warn("mtl: texture skipped", "material", cur.Name, "path", texPath, "err", err)
				continue
			}
			if fields[0] == "map_Kd" {
				cur.DiffuseTexture = tex
			} else {
				cur.SpecularTexture = tex
			}
		}
	}
	return mats, scanner.Err()
}
