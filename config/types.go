package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0"`
}

// OverpassConfig points at the external geographic-query endpoint the
// fetch layer talks to. The core never calls it directly.
type OverpassConfig struct {
	APIURL    string `yaml:"apiURL" validate:"omitempty,url"`
	TimeoutMS int    `yaml:"timeoutMS" validate:"gte=0"`
}

// MapConfig contains map-view behavior settings
type MapConfig struct {
	// FilterLines keeps only public-transport nodes on the base layer.
	FilterLines bool `yaml:"filterLines"`
	// MinDownloadZoom is the minimum zoom at which new data downloads
	// are allowed.
	MinDownloadZoom int `yaml:"minDownloadZoom" validate:"gte=0"`
	// Bounds is the initial visible rectangle: south,west,north,east.
	Bounds []float64 `yaml:"bounds" validate:"omitempty,len=4"`
}

// LogConfig contains logging configuration
type LogConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=trace debug info warn error"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server   ServerConfig   `yaml:"server" validate:"required"`
	Overpass OverpassConfig `yaml:"overpass"`
	Map      MapConfig      `yaml:"map"`
	Log      LogConfig      `yaml:"log"`
}
