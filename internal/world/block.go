package world

import (
	"github.com/go-gl/mathgl/mgl32"
)

// BlockID is the stored type of a cell. Air is never stored.
type BlockID uint8

const (
	BlockAir BlockID = iota
	BlockSolid
	// BlockTop marks the surface block of a column when surface marking is enabled.
	BlockTop
)

// IsSolid reports whether the block occludes its neighbours.
func (b BlockID) IsSolid() bool {
	return b != BlockAir
}

// Face identifies one of the six axis-aligned faces of a block
type Face int

const (
	FaceEast   Face = iota // +X
	FaceWest               // -X
	FaceTop                // +Y
	FaceBottom             // -Y
	FaceNorth              // +Z
	FaceSouth              // -Z
)

// Faces lists all faces in meshing order.
var Faces = [6]Face{FaceEast, FaceWest, FaceTop, FaceBottom, FaceNorth, FaceSouth}

var faceOffsets = [6][3]int{
	FaceEast:   {1, 0, 0},
	FaceWest:   {-1, 0, 0},
	FaceTop:    {0, 1, 0},
	FaceBottom: {0, -1, 0},
	FaceNorth:  {0, 0, 1},
	FaceSouth:  {0, 0, -1},
}

// Offset returns the unit step toward the neighbour across the face.
func (f Face) Offset() (dx, dy, dz int) {
	d := faceOffsets[f]
	return d[0], d[1], d[2]
}

// Normal returns the outward unit normal of the face.
func (f Face) Normal() mgl32.Vec3 {
	d := faceOffsets[f]
	return mgl32.Vec3{float32(d[0]), float32(d[1]), float32(d[2])}
}

func (f Face) String() string {
	switch f {
	case FaceEast:
		return "east"
	case FaceWest:
		return "west"
	case FaceTop:
		return "top"
	case FaceBottom:
		return "bottom"
	case FaceNorth:
		return "north"
	case FaceSouth:
		return "south"
	default:
		return "unknown"
	}
}

// FaceShade returns the flat shading factor applied to a face by the renderer.
func FaceShade(f Face) float32 {
	switch f {
	case FaceTop:
		return 1.0
	case FaceBottom:
		return 0.5
	case FaceNorth, FaceSouth:
		return 0.8
	case FaceEast, FaceWest:
		return 0.65
	default:
		return 0.7
	}
}

// BlockColor returns the base albedo for a block id.
func BlockColor(id BlockID) mgl32.Vec3 {
	switch id {
	case BlockTop:
		return mgl32.Vec3{0.36, 0.62, 0.27} // grass
	case BlockSolid:
		return mgl32.Vec3{0.55, 0.45, 0.33} // dirt
	default:
		return mgl32.Vec3{0.5, 0.5, 0.5}
	}
}
