// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Viewer   ViewerConfig   `yaml:"viewer"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ViewerConfig holds shape and viewport settings.
type ViewerConfig struct {
	// Shape selected at startup: cube, cylinder, cone, or sphere.
	Shape string `yaml:"shape"`

	// Tessellation of the generated primitives. Low counts keep the
	// vertex markers readable.
	SphereSectors   int `yaml:"sphere_sectors"`
	SphereRings     int `yaml:"sphere_rings"`
	CylinderSectors int `yaml:"cylinder_sectors"`
	ConeSectors     int `yaml:"cone_sectors"`

	// SnapshotDir is where viewport snapshots are written.
	SnapshotDir string `yaml:"snapshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:  1280,
			Height: 800,
		},
		Viewer: ViewerConfig{
			Shape:           "cube",
			SphereSectors:   12,
			SphereRings:     8,
			CylinderSectors: 12,
			ConeSectors:     12,
			SnapshotDir:     "snapshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
