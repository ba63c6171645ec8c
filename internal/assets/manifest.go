// Package assets loads the texture files that back each body.
//
// Loading is asynchronous and never fatal. Progress and failures are
// reported through the [Manager] callbacks; bodies whose texture is missing
// simply render without one.
package assets

import (
	"path"

	"github.com/san-kum/solarsim/internal/kinematics"
)

// EnvironmentFaces is the cube-map face order: +x, -x, +y, -y, +z, -z.
var EnvironmentFaces = []string{"px", "nx", "py", "ny", "pz", "nz"}

type Item struct {
	Body kinematics.BodyID
	Path string
}

type Manifest struct {
	Textures    []Item
	Environment []string
}

// DefaultManifest lists textures/planets/<body>.jpg for every body and the
// space environment map.
func DefaultManifest(ids []kinematics.BodyID) Manifest {
	m := Manifest{
		Textures:    make([]Item, 0, len(ids)),
		Environment: make([]string, 0, len(EnvironmentFaces)),
	}
	for _, id := range ids {
		m.Textures = append(m.Textures, Item{Body: id, Path: path.Join("textures", "planets", string(id)+".jpg")})
	}
	for _, face := range EnvironmentFaces {
		m.Environment = append(m.Environment, path.Join("textures", "environmentMaps", "space", face+".png"))
	}
	return m
}

func (m Manifest) Len() int { return len(m.Textures) + len(m.Environment) }

func (m Manifest) paths() []string {
	out := make([]string, 0, m.Len())
	for _, it := range m.Textures {
		out = append(out, it.Path)
	}
	return append(out, m.Environment...)
}
