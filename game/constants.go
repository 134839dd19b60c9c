package game

import "time"

// Scene geometry, in logical units. The scene origin is its midpoint.
const (
	SceneWidth  = 256
	SceneHeight = 256

	// DespawnMargin extends the scene on every side before projectiles are removed.
	DespawnMargin = 200
)

// Motion.
const (
	FramesPerSecond = 60
	FrameInterval   = time.Second / FramesPerSecond

	// FixedStep is the simulated time of one frame, independent of wall-clock time.
	FixedStep float32 = 1.0 / FramesPerSecond

	// Horizontal drift is half of vertical drift.
	HorizontalSpeed float32 = 50
	VerticalSpeed   float32 = 100
)

// Spawning.
const (
	ProjectileDepth float32 = 10
	ChickenChance   float32 = 1.0 / 3.0

	MinVelX, MaxVelX float32 = -1.0, 1.0
	MinVelY, MaxVelY float32 = -1.0, -0.2
)

// Asset names.
const (
	PlayerSprite  = "farm.png"
	ChickenSprite = "chicken.png"
	ChickenSound  = "killChicken.wav"
	DogSprite     = "dog.png"
	DogSound      = "dog03.wav"
)
