package api

// Config holds configuration for the HTTP API surface.
type Config struct {
	// MaintenanceMode answers API requests with a 503 and serves a
	// placeholder page instead of the frontend.
	MaintenanceMode bool `yaml:"maintenance_mode" mapstructure:"maintenance_mode"`
	// LiveStreamKey is handed to the browser for client-side live
	// transcription streaming. Empty disables the endpoint.
	LiveStreamKey string `yaml:"live_stream_key" mapstructure:"live_stream_key"`
	// StaticDir is the frontend directory served at / and /static.
	StaticDir string `yaml:"static_dir" mapstructure:"static_dir"`
}
