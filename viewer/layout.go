package viewer

import "github.com/go-gl/mathgl/mgl32"

// MeshID names one of the scene's fixed models.
type MeshID int

const (
	MeshLandscape MeshID = iota
	MeshUnmovable
	MeshAsteroid
	MeshEarth
	MeshFlake

	MeshCount
)

var meshNames = [MeshCount]string{
	MeshLandscape: "landscape",
	MeshUnmovable: "unmovable",
	MeshAsteroid:  "asteroid",
	MeshEarth:     "earth",
	MeshFlake:     "flake",
}

func (id MeshID) String() string {
	if id < 0 || id >= MeshCount {
		return "invalid"
	}
	return meshNames[id]
}

var modelFiles = [MeshCount]string{
	MeshAsteroid: "asteroid1.obj",
	MeshFlake:    "flakeu.obj",
}

// ModelPath is the model file for id, relative to the asset root:
// models/<name>/<file>, where file defaults to <name>.obj.
func (id MeshID) ModelPath() string {
	n := id.String()
	file := n + ".obj"
	if id >= 0 && id < MeshCount && modelFiles[id] != "" {
		file = modelFiles[id]
	}
	return "models/" + n + "/" + file
}

// SkyboxFaces are the cube map faces, relative to the asset root, in GL
// face order: right, left, top, bottom, back, front.
var SkyboxFaces = [6]string{
	"skybox/starfield_rt.png",
	"skybox/starfield_lf.png",
	"skybox/starfield_up.png",
	"skybox/starfield_dn.png",
	"skybox/starfield_bk.png",
	"skybox/starfield_ft.png",
}

// Animated bodies spin about a vertical axis through their pivot.
var (
	AsteroidPivot = mgl32.Vec3{-4.036, 6.9571, -4.23668}
	EarthPivot    = mgl32.Vec3{-52, 0, -3}
)

// Spin rates in degrees per second.
const (
	AsteroidSpin = 20
	EarthSpin    = 3
)
