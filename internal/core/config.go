package core

// RuntimeConfig contains host settings passed to the quiz at startup.
// The presentation surface uses the screen size; the engine uses the seed.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Countdown updates per second (default 60)
	Seed     int64 // RNG seed for reproducible target sequences
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}
