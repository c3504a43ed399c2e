package scene

import "github.com/go-gl/mathgl/mgl32"

// Material describes the Phong surface of a mesh. Textures, when present,
// replace the matching colour in the shader.
type Material struct {
	Name      string
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
	Shininess float32

	DiffuseTexture  *Texture
	SpecularTexture *Texture
}

// DefaultMaterial returns a plain white matte material.
func DefaultMaterial() *Material {
	return &Material{
		Name:      "default",
		Diffuse:   mgl32.Vec3{1, 1, 1},
		Specular:  mgl32.Vec3{0.3, 0.3, 0.3},
		Shininess: 32,
	}
}
