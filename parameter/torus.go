package parameter

// Torus geometry
const (
	// TorusMajorSteps subdivides the ring (phi1)
	TorusMajorSteps = 250

	// TorusMinorSteps subdivides the tube cross section (phi2)
	TorusMinorSteps = 100

	// TorusMajorRadius is the distance from torus center to tube center
	TorusMajorRadius = 1.0

	// TorusMinorRadius is the tube radius
	TorusMinorRadius = 0.45
)
