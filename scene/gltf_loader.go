package scene

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// LoadGLTF opens a .glb or .gltf file and flattens its default scene into
// a list of meshes. Node transforms are baked into the vertices, so every
// mesh is placed the way the file intends when drawn with one model matrix.
func LoadGLTF(path string) ([]*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}
	l := &gltfLoader{doc: doc, dir: filepath.Dir(path)}
	l.loadTextures()
	l.loadMaterials()

	for _, root := range l.roots() {
		if err := l.walk(root, mgl32.Ident4(), 0); err != nil {
			return nil, fmt.Errorf("gltf %q: %w", path, err)
		}
	}
	if len(l.meshes) == 0 {
		return nil, fmt.Errorf("gltf %q: no geometry", path)
	}
	return l.meshes, nil
}

type gltfLoader struct {
	doc       *gltf.Document
	dir       string
	textures  []*Texture
	materials []*Material
	meshes    []*Mesh
}

func (l *gltfLoader) loadTextures() {
	l.textures = make([]*Texture, len(l.doc.Textures))
	for i, gt := range l.doc.Textures {
		if gt.Source == nil {
			continue
		}
		img := l.doc.Images[*gt.Source]
		name := img.Name
		if name == "" {
			name = fmt.Sprintf("gltf_img_%d", *gt.Source)
		}

		var (
			tex *Texture
			err error
		)
		switch {
		case img.BufferView != nil:
			var raw []byte
			raw, err = modeler.ReadBufferView(l.doc, l.doc.BufferViews[*img.BufferView])
			if err == nil {
				tex, err = decodeTextureBytes(name, raw)
			}
		case img.IsEmbeddedResource():
			var raw []byte
			raw, err = img.MarshalData()
			if err == nil {
				tex, err = decodeTextureBytes(name, raw)
			}
		case img.URI != "":
			tex, err = LoadTexture(filepath.Join(l.dir, img.URI))
		}
		if err != nil {
			slog.Warn("gltf: image skipped", "image", *gt.Source, "err", err)
			continue
		}
		l.textures[i] = tex
	}
}

func (l *gltfLoader) texture(idx int) *Texture {
	if idx >= 0 && idx < len(l.textures) {
		return l.textures[idx]
	}
	return nil
}

// loadMaterials maps metallic-roughness onto the Phong model the viewer
// shades with: smooth surfaces get a tight highlight, metals a bright one.
func (l *gltfLoader) loadMaterials() {
	l.materials = make([]*Material, len(l.doc.Materials))
	for i, gm := range l.doc.Materials {
		mat := DefaultMaterial()
		mat.Name = gm.Name
		if pbr := gm.PBRMetallicRoughness; pbr != nil {
			cf := pbr.BaseColorFactorOrDefault()
			mat.Diffuse = mgl32.Vec3{float32(cf[0]), float32(cf[1]), float32(cf[2])}
			if pbr.BaseColorTexture != nil {
				mat.DiffuseTexture = l.texture(pbr.BaseColorTexture.Index)
			}
			roughness := float32(pbr.RoughnessFactorOrDefault())
			metallic := float32(pbr.MetallicFactorOrDefault())
			mat.Shininess = (1-roughness)*(1-roughness)*128 + 1
			s := metallic * 0.7
			mat.Specular = mgl32.Vec3{s, s, s}
		}
		l.materials[i] = mat
	}
}

func (l *gltfLoader) roots() []int {
	doc := l.doc
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	hasParent := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !hasParent[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

const maxNodeDepth = 64

func (l *gltfLoader) walk(idx int, parent mgl32.Mat4, depth int) error {
	if idx < 0 || idx >= len(l.doc.Nodes) {
		return fmt.Errorf("node %d out of range", idx)
	}
	if depth > maxNodeDepth {
		return fmt.Errorf("node hierarchy deeper than %d", maxNodeDepth)
	}
	node := l.doc.Nodes[idx]
	world := parent.Mul4(nodeMatrix(node))

	if node.Mesh != nil && *node.Mesh < len(l.doc.Meshes) {
		gm := l.doc.Meshes[*node.Mesh]
		for pi, prim := range gm.Primitives {
			m, err := l.primitive(gm.Name, pi, prim)
			if err != nil {
				slog.Warn("gltf: primitive skipped", "mesh", gm.Name, "primitive", pi, "err", err)
				continue
			}
			l.meshes = append(l.meshes, m.Transform(world))
		}
	}
	for _, c := range node.Children {
		if err := l.walk(c, world, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func nodeMatrix(n *gltf.Node) mgl32.Mat4 {
	if m := n.MatrixOrDefault(); m != gltf.DefaultMatrix {
		var out mgl32.Mat4
		for i := range out {
			out[i] = float32(m[i])
		}
		return out
	}
	t := n.TranslationOrDefault()
	r := n.RotationOrDefault() // x, y, z, w
	s := n.ScaleOrDefault()
	q := mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}
	return mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2])).
		Mul4(q.Mat4()).
		Mul4(mgl32.Scale3D(float32(s[0]), float32(s[1]), float32(s[2])))
}

func (l *gltfLoader) primitive(meshName string, idx int, prim *gltf.Primitive) (*Mesh, error) {
	if prim.Mode != gltf.PrimitiveTriangles {
		return nil, fmt.Errorf("unsupported primitive mode %v", prim.Mode)
	}
	name := fmt.Sprintf("%s_p%d", meshName, idx)
	if meshName == "" {
		name = fmt.Sprintf("prim_%d", idx)
	}

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(l.doc, l.doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	var uvs [][2]float32
	if i, ok := prim.Attributes[gltf.NORMAL]; ok {
		if normals, err = modeler.ReadNormal(l.doc, l.doc.Accessors[i], nil); err != nil {
			return nil, fmt.Errorf("normals: %w", err)
		}
	}
	if i, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if uvs, err = modeler.ReadTextureCoord(l.doc, l.doc.Accessors[i], nil); err != nil {
			return nil, fmt.Errorf("uvs: %w", err)
		}
	}

	verts := make([]Vertex, len(positions))
	for i, p := range positions {
		verts[i].Position = mgl32.Vec3{p[0], p[1], p[2]}
		if i < len(uvs) {
			verts[i].UV = mgl32.Vec2{uvs[i][0], uvs[i][1]}
		}
		if i < len(normals) {
			verts[i].Normal = mgl32.Vec3{normals[i][0], normals[i][1], normals[i][2]}
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		if indices, err = modeler.ReadIndices(l.doc, l.doc.Accessors[*prim.Indices], nil); err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	}

	m := NewMesh(name, verts, indices)
	if len(normals) == 0 {
		generateNormals(m.Vertices, m.Indices)
	}
	if prim.Material != nil && *prim.Material < len(l.materials) {
		m.Material = l.materials[*prim.Material]
	}
	return m, nil
}
