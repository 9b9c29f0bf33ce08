package parameter

import "math"

// Projection
const (
	// FieldOfView is the vertical field of view in radians (45 degrees)
	FieldOfView = math.Pi / 4

	NearPlane = 0.1
	FarPlane  = 1000.0

	// FarDepth initializes the depth buffer, below any projected depth
	FarDepth = -FarPlane
)

// Scene defaults, world space
var (
	DefaultCamera = [3]float64{0, 0, 4}

	// DefaultLight is normalized at load time
	DefaultLight = [3]float64{1, 5, -3}
)

// Shading
const (
	DiffuseWeight  = 0.75
	SpecularWeight = 0.25

	// MaxLight caps brightness so light*len(palette) stays below len(palette)
	MaxLight = 0.99
)

// Output
const (
	// Palette orders characters dim to bright
	Palette = "..',-~+*=$#@"

	// Caption is centered on CaptionTopRow and the last row
	Caption = "F O R B I D D E N D O N U T"

	CaptionTopRow = 1
)
